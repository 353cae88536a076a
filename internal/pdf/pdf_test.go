package pdf

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/Epistemic-Technology/pdfsplit/internal/pdf/pdftest"
	"github.com/Epistemic-Technology/pdfsplit/models"
)

func TestOpen_PageCountAndText(t *testing.T) {
	dir := t.TempDir()
	path := pdftest.WriteFile(t, dir, "drawings.pdf", "LITTERA AB123", "no identifier here", "LITTERA CD456")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	if doc.PageCount() != 3 {
		t.Fatalf("Expected 3 pages, got %d", doc.PageCount())
	}

	want := []string{"LITTERA AB123", "no identifier here", "LITTERA CD456"}
	for i, w := range want {
		text, err := doc.PageText(i)
		if err != nil {
			t.Fatalf("PageText(%d) failed: %v", i, err)
		}
		if !strings.Contains(text, w) {
			t.Errorf("PageText(%d) = %q, want it to contain %q", i, text, w)
		}
	}
}

func TestPageText_SeparateRunsKeepWordBreaks(t *testing.T) {
	tests := []struct {
		name   string
		stream string
	}{
		{"separate text objects", pdftest.SeparateBlocks("LITTERA", "AB123")},
		{"kerned TJ array", pdftest.KernedRun("LITTERA", "AB123")},
		{"Td move inside one text object", "BT\n/F1 12 Tf\n72 720 Td\n(LITTERA) Tj\n90 0 Td\n(AB123) Tj\nET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := pdftest.WriteRaw(t, t.TempDir(), "title-block.pdf", pdftest.BuildStreams(tt.stream))

			doc, err := Open(path)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer doc.Close()

			text, err := doc.PageText(0)
			if err != nil {
				t.Fatalf("PageText failed: %v", err)
			}
			if !strings.Contains(text, "LITTERA AB123") && !strings.Contains(text, "LITTERA\nAB123") {
				t.Errorf("PageText = %q, want LITTERA and AB123 as separate words", text)
			}
		})
	}
}

func TestWritePage_ProducesSinglePagePDF(t *testing.T) {
	dir := t.TempDir()
	path := pdftest.WriteFile(t, dir, "two.pdf", "first page", "second page")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	for i := 0; i < doc.PageCount(); i++ {
		var buf bytes.Buffer
		if err := doc.WritePage(i, &buf); err != nil {
			t.Fatalf("WritePage(%d) failed: %v", i, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("Page %d is empty", i+1)
		}

		pageCount, err := api.PageCount(bytes.NewReader(buf.Bytes()), nil)
		if err != nil {
			t.Fatalf("Page %d is not a valid PDF: %v", i+1, err)
		}
		if pageCount != 1 {
			t.Errorf("Page %d should have 1 page, but has %d", i+1, pageCount)
		}
	}
}

func TestPageIndexOutOfRange(t *testing.T) {
	path := pdftest.WriteFile(t, t.TempDir(), "one.pdf", "only page")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	if _, err := doc.PageText(1); err == nil {
		t.Error("Expected error for PageText past the last page")
	}
	if err := doc.WritePage(-1, &bytes.Buffer{}); err == nil {
		t.Error("Expected error for negative page index")
	}
}

func TestClose_Twice(t *testing.T) {
	path := pdftest.WriteFile(t, t.TempDir(), "one.pdf", "only page")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := doc.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := doc.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if _, err := doc.PageText(0); err == nil {
		t.Error("Expected error reading from a closed document")
	}
}

func TestOpen_InvalidInput(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.pdf")
	if _, err := Open(missing); err == nil {
		t.Error("Expected error for missing file, got nil")
	}

	notPDF := filepath.Join(dir, "notes.pdf")
	if err := os.WriteFile(notPDF, []byte("This is not a PDF"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(notPDF); err == nil {
		t.Error("Expected error for invalid PDF data, got nil")
	}
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{"PDF header", []byte("%PDF-1.7\n..."), true},
		{"HTML", []byte("<!DOCTYPE html>"), false},
		{"ZIP", []byte{0x50, 0x4B, 0x03, 0x04}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPDF(tt.data); got != tt.expected {
				t.Errorf("IsPDF() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetData(t *testing.T) {
	ctx := context.Background()
	body := pdftest.Build("served")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.pdf" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(body)
	}))
	defer srv.Close()

	t.Run("url", func(t *testing.T) {
		data, err := GetData(ctx, models.SourceInfo{URL: srv.URL + "/doc.pdf"})
		if err != nil {
			t.Fatalf("GetData failed: %v", err)
		}
		if !bytes.Equal(data, body) {
			t.Errorf("GetData returned %d bytes, want %d", len(data), len(body))
		}
	})

	t.Run("url not found", func(t *testing.T) {
		if _, err := GetData(ctx, models.SourceInfo{URL: srv.URL + "/missing.pdf"}); err == nil {
			t.Error("Expected error for 404 response")
		}
	})

	t.Run("path", func(t *testing.T) {
		path := pdftest.WriteFile(t, t.TempDir(), "local.pdf", "local")
		data, err := GetData(ctx, models.SourceInfo{Path: path})
		if err != nil {
			t.Fatalf("GetData failed: %v", err)
		}
		if !IsPDF(data) {
			t.Error("Expected PDF bytes from local path")
		}
	})

	t.Run("no source", func(t *testing.T) {
		if _, err := GetData(ctx, models.SourceInfo{}); err == nil {
			t.Error("Expected error when no source is set")
		}
	})
}
