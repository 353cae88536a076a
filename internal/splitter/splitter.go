package splitter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Epistemic-Technology/pdfsplit/internal/logger"
	"github.com/Epistemic-Technology/pdfsplit/internal/pdf"
	"github.com/Epistemic-Technology/pdfsplit/models"
)

// Document is the view of a source PDF the splitter needs. Page indexes are 0-based.
type Document interface {
	PageCount() int
	PageText(index int) (string, error)
	WritePage(index int, w io.Writer) error
	Close() error
}

// Opener opens the source document at path
type Opener func(path string) (Document, error)

// Progress is reported after each page has been written and archived
type Progress struct {
	PageNumber int `json:"page_number"`
	TotalPages int `json:"total_pages"`
}

type ProgressFunc func(Progress)

// Splitter turns a multi-page PDF into one PDF per page, named after an
// identifier found in each page's text, plus a zip of all of them.
type Splitter struct {
	open     Opener
	log      logger.Logger
	progress ProgressFunc
}

type Option func(*Splitter)

// WithOpener replaces the PDF backend
func WithOpener(open Opener) Option {
	return func(s *Splitter) {
		s.open = open
	}
}

func WithLogger(log logger.Logger) Option {
	return func(s *Splitter) {
		s.log = log
	}
}

// WithProgress registers a callback invoked once per completed page
func WithProgress(fn ProgressFunc) Option {
	return func(s *Splitter) {
		s.progress = fn
	}
}

func New(opts ...Option) *Splitter {
	s := &Splitter{
		open: openPDF,
		log:  logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func openPDF(path string) (Document, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ArchiveName returns the zip file name used for sourcePath
func ArchiveName(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".zip"
}

// Process splits sourcePath into outputDir/{identifier}.pdf files and
// outputDir/{stem}.zip, returning one result per page in page order.
//
// The identifier is the first capture group of idPattern's first match in
// the page text, or page_{N} when the page has no match. Identifiers are
// not checked for uniqueness: a repeated identifier overwrites the earlier
// file on disk while both entries stay in the archive and the manifest.
// Nor are they checked as file names: an identifier with path separators,
// such as ../x, writes outside outputDir and is archived under its base
// name (x.pdf) while the manifest keeps ../x.pdf.
//
// Any failure aborts the run. A partially written archive may be left in
// outputDir; removing it is up to the caller.
func (s *Splitter) Process(sourcePath, outputDir, idPattern string) (models.Manifest, error) {
	doc, err := s.open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDocumentOpen, sourcePath, err)
	}
	defer doc.Close()

	totalPages := doc.PageCount()
	s.log.Debug("Splitting %s (%d pages)", sourcePath, totalPages)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create output directory: %w", ErrIO, err)
	}

	archivePath := filepath.Join(outputDir, ArchiveName(sourcePath))
	archive, err := createArchive(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: create archive: %w", ErrIO, err)
	}
	defer archive.abort()

	matcher := newIdentifierMatcher(idPattern)
	manifest := make(models.Manifest, 0, totalPages)

	for i := 0; i < totalPages; i++ {
		pageNumber := i + 1

		text, err := doc.PageText(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}

		identifier, err := matcher.identify(text, pageNumber)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNumber, err)
		}

		outputFileName := identifier + ".pdf"
		outputPath := filepath.Join(outputDir, outputFileName)
		if err := writePageFile(doc, i, outputPath); err != nil {
			return nil, fmt.Errorf("%w: page %d: %w", ErrIO, pageNumber, err)
		}

		if err := archive.add(outputPath); err != nil {
			return nil, fmt.Errorf("%w: archive page %d: %w", ErrIO, pageNumber, err)
		}

		manifest = append(manifest, models.PageResult{
			PageNumber:     pageNumber,
			Identifier:     identifier,
			OutputFileName: outputFileName,
		})
		s.log.Debug("Page %d of %d -> %s", pageNumber, totalPages, outputFileName)

		if s.progress != nil {
			s.progress(Progress{PageNumber: pageNumber, TotalPages: totalPages})
		}
	}

	if err := archive.finish(); err != nil {
		return nil, fmt.Errorf("%w: finalize archive: %w", ErrIO, err)
	}

	s.log.Info("Wrote %d pages to %s", len(manifest), archivePath)
	return manifest, nil
}

// writePageFile serializes one page to path, truncating any existing file
func writePageFile(doc Document, index int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := doc.WritePage(index, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
