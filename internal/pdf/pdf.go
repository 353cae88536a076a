package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Document is an opened PDF. Page structure and serialization go through
// pdfcpu; plain text comes from ledongthuc/pdf, which decodes font encodings.
type Document struct {
	path string

	file *os.File
	ctx  *model.Context

	textFile *os.File
	text     *lpdf.Reader
}

// Open reads and validates the PDF at path. The returned Document holds
// open file handles until Close is called.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pdfContext, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	tf, tr, err := lpdf.Open(path)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("text reader: %w", err)
	}

	return &Document{
		path:     path,
		file:     f,
		ctx:      pdfContext,
		textFile: tf,
		text:     tr,
	}, nil
}

// Path returns the file the document was opened from
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages in the document
func (d *Document) PageCount() int {
	if d.ctx == nil {
		return 0
	}
	return d.ctx.PageCount
}

// PageText returns the plain text of the 0-based page index.
// Pages without a text layer yield an empty string. A run split by kerning
// inside a word comes back with a space at the split.
func (d *Document) PageText(index int) (string, error) {
	if err := d.checkIndex(index); err != nil {
		return "", err
	}
	if index >= d.text.NumPage() {
		return "", nil
	}
	page := d.text.Page(index + 1)
	if page.V.IsNull() {
		return "", nil
	}
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("page %d text: %w", index+1, err)
	}
	return joinRows(rows), nil
}

// joinRows lays text runs out as lines: runs sharing a baseline are joined
// with a space, rows with a newline. A label and its value drawn as
// separate runs stay separate words.
func joinRows(rows lpdf.Rows) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var words []string
		for _, run := range row.Content {
			if strings.TrimSpace(run.S) == "" {
				continue
			}
			words = append(words, run.S)
		}
		if len(words) > 0 {
			lines = append(lines, strings.Join(words, " "))
		}
	}
	return strings.Join(lines, "\n")
}

// WritePage extracts the 0-based page index into a standalone document and
// writes it to w optimized: unused objects dropped, streams compressed into
// object and xref streams. The intermediate single-page document lives only
// for the duration of this call.
func (d *Document) WritePage(index int, w io.Writer) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}

	pageReader, err := api.ExtractPage(d.ctx, index+1)
	if err != nil {
		return fmt.Errorf("extract page %d: %w", index+1, err)
	}
	pageData, err := io.ReadAll(pageReader)
	if err != nil {
		return fmt.Errorf("read page %d: %w", index+1, err)
	}

	if err := api.Optimize(bytes.NewReader(pageData), w, writeConfiguration()); err != nil {
		return fmt.Errorf("optimize page %d: %w", index+1, err)
	}
	return nil
}

// Close releases both underlying file handles. Calling it twice is harmless.
func (d *Document) Close() error {
	var errs []error
	if d.file != nil {
		errs = append(errs, d.file.Close())
		d.file = nil
	}
	if d.textFile != nil {
		errs = append(errs, d.textFile.Close())
		d.textFile = nil
	}
	d.ctx = nil
	d.text = nil
	return errors.Join(errs...)
}

func (d *Document) checkIndex(index int) error {
	if d.ctx == nil {
		return errors.New("document is closed")
	}
	if index < 0 || index >= d.ctx.PageCount {
		return fmt.Errorf("page index %d out of range (0-%d)", index, d.ctx.PageCount-1)
	}
	return nil
}

func writeConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true
	return conf
}
