// Package pdftest builds small, valid PDF files for tests.
package pdftest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Build returns a PDF with one page per entry in pages, each page showing
// its text with a single Tj operator in Helvetica.
func Build(pages ...string) []byte {
	streams := make([]string, len(pages))
	for i, text := range pages {
		streams[i] = SingleRun(text)
	}
	return BuildStreams(streams...)
}

// SingleRun draws text as one Tj
func SingleRun(text string) string {
	return "BT\n/F1 12 Tf\n72 720 Td\n(" + escape(text) + ") Tj\nET"
}

// SeparateBlocks draws label and value in two text objects on one baseline,
// the way title blocks place a caption next to its field.
func SeparateBlocks(label, value string) string {
	return "BT\n/F1 12 Tf\n72 720 Td\n(" + escape(label) + ") Tj\nET\n" +
		"BT\n/F1 12 Tf\n160 720 Td\n(" + escape(value) + ") Tj\nET"
}

// KernedRun draws label and value as one TJ array with a wide gap between them
func KernedRun(label, value string) string {
	return "BT\n/F1 12 Tf\n72 720 Td\n[(" + escape(label) + ") -3000 (" + escape(value) + ")] TJ\nET"
}

// BuildStreams returns a PDF with one page per content stream. Streams may
// use /F1, which is Helvetica.
func BuildStreams(streams ...string) []byte {
	// 1 catalog, 2 page tree, 3 font, then a page and content object per page.
	objCount := 3 + 2*len(streams)
	offsets := make([]int, objCount+1)

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	kids := make([]string, len(streams))
	for i := range streams {
		kids[i] = fmt.Sprintf("%d 0 R", pageObj(i))
	}

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), len(streams))

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n")

	for i, stream := range streams {
		offsets[pageObj(i)] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>\nendobj\n",
			pageObj(i), pageObj(i)+1)

		offsets[pageObj(i)+1] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", pageObj(i)+1, len(stream), stream)
	}

	xrefOffset := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", objCount+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= objCount; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", objCount+1, xrefOffset)

	return []byte(b.String())
}

// WriteFile builds a PDF from pages and writes it as name inside dir
func WriteFile(t testing.TB, dir, name string, pages ...string) string {
	t.Helper()
	return WriteRaw(t, dir, name, Build(pages...))
}

// WriteRaw writes already built PDF bytes as name inside dir
func WriteRaw(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write test PDF: %v", err)
	}
	return path
}

func pageObj(i int) int {
	return 4 + 2*i
}

func escape(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, "(", `\(`)
	return strings.ReplaceAll(text, ")", `\)`)
}
