package operations

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Epistemic-Technology/pdfsplit/internal/logger"
	"github.com/Epistemic-Technology/pdfsplit/internal/pdf"
	"github.com/Epistemic-Technology/pdfsplit/internal/splitter"
	"github.com/Epistemic-Technology/pdfsplit/models"
)

const defaultFileName = "document.pdf"

// SplitParams describes one split request coming from a shell
type SplitParams struct {
	// Source is used when RawData is empty
	Source  models.SourceInfo
	RawData []byte
	// FileName names the uploaded document; its stem names the archive
	FileName  string
	Pattern   string
	OutputDir string
	Progress  splitter.ProgressFunc
}

// RunSplit fetches the source PDF, splits it inside a private temporary
// working directory and moves the resulting archive into OutputDir. The
// per-page PDFs and the input copy are removed with the working directory.
//
// Parameters:
//   - ctx: Context for fetching remote sources
//   - params: Source, pattern and destination of the run
//   - log: Logger for progress and failures
//
// Returns:
//   - result: Manifest plus the delivered archive path
//   - error: Any error from fetching, splitting or delivering the archive
func RunSplit(ctx context.Context, params SplitParams, log logger.Logger) (*models.SplitResult, error) {
	if params.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	data := models.PdfData(params.RawData)
	if len(data) == 0 {
		var err error
		data, err = pdf.GetData(ctx, params.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch PDF data: %w", err)
		}
	}
	if !pdf.IsPDF(data) {
		return nil, fmt.Errorf("%w: input is not a PDF document", splitter.ErrDocumentOpen)
	}

	workDir, err := os.MkdirTemp("", "pdfsplit-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	inputDir := filepath.Join(workDir, "input")
	if err := os.MkdirAll(inputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create input directory: %w", err)
	}
	inputPath := filepath.Join(inputDir, inputFileName(params))
	if err := os.WriteFile(inputPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write input file: %w", err)
	}

	s := splitter.New(
		splitter.WithLogger(log),
		splitter.WithProgress(func(p splitter.Progress) {
			log.Info("Processed page %d of %d", p.PageNumber, p.TotalPages)
			if params.Progress != nil {
				params.Progress(p)
			}
		}),
	)

	workOutput := filepath.Join(workDir, "output")
	manifest, err := s.Process(inputPath, workOutput, params.Pattern)
	if err != nil {
		return nil, err
	}

	archiveName := splitter.ArchiveName(inputPath)
	archivePath := filepath.Join(params.OutputDir, archiveName)
	if err := os.MkdirAll(params.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := moveFile(filepath.Join(workOutput, archiveName), archivePath); err != nil {
		return nil, fmt.Errorf("failed to deliver archive: %w", err)
	}

	log.Info("All files saved to %s", archivePath)

	return &models.SplitResult{
		Manifest:    manifest,
		ArchivePath: archivePath,
		PageCount:   len(manifest),
		Pattern:     params.Pattern,
	}, nil
}

// inputFileName picks the name the document is stored under in the
// working directory, falling back to the source's own name.
func inputFileName(params SplitParams) string {
	name := params.FileName
	if name == "" {
		switch {
		case params.Source.Path != "":
			name = params.Source.Path
		case params.Source.URL != "":
			if u, err := url.Parse(params.Source.URL); err == nil {
				name = path.Base(u.Path)
			}
		case params.Source.ZoteroID != "":
			name = params.Source.ZoteroID + ".pdf"
		}
	}

	name = filepath.Base(name)
	if name == "." || name == "/" || strings.TrimSuffix(name, filepath.Ext(name)) == "" {
		return defaultFileName
	}
	return name
}

// moveFile renames src to dst, copying when they sit on different filesystems
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
