package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/pdfsplit/internal/logger"
	"github.com/Epistemic-Technology/pdfsplit/internal/operations"
	"github.com/Epistemic-Technology/pdfsplit/internal/presets"
	"github.com/Epistemic-Technology/pdfsplit/internal/splitter"
	"github.com/Epistemic-Technology/pdfsplit/models"
)

type PDFSplitQuery struct {
	Path      string `json:"path,omitempty"`
	ZoteroID  string `json:"zotero_id,omitempty"`
	URL       string `json:"url,omitempty"`
	RawData   []byte `json:"raw_data,omitempty"`
	FileName  string `json:"file_name,omitempty"`
	Preset    string `json:"preset,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	OutputDir string `json:"output_dir,omitempty"`
}

type PDFSplitResponse struct {
	ArchivePath string              `json:"archive_path"`
	PageCount   int                 `json:"page_count"`
	Pattern     string              `json:"pattern"`
	Pages       []models.PageResult `json:"pages"`
}

// SplitDeps carries what the pdf-split handler needs from the server
type SplitDeps struct {
	Catalog   *presets.Catalog
	OutputDir string
	Log       logger.Logger
}

func PDFSplitTool() *mcp.Tool {
	inputschema, err := jsonschema.For[PDFSplitQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "pdf-split",
		Description: "Split a multi-page PDF into one PDF per page, naming each page after the first capture group of a regular expression matched against the page text (page_N when nothing matches), and bundle the pages into a zip archive. Provide the PDF as raw_data, a local path, a URL or a Zotero attachment ID. Choose a named preset (see pattern-presets) or pass a custom pattern with one capture group.",
		InputSchema: inputschema,
	}
}

func PDFSplitToolHandler(ctx context.Context, req *mcp.CallToolRequest, query PDFSplitQuery, deps SplitDeps) (*mcp.CallToolResult, *PDFSplitResponse, error) {
	log := deps.Log
	log.Info("pdf-split tool called")

	pattern, err := deps.Catalog.Resolve(query.Preset, query.Pattern)
	if err != nil {
		log.Error("pdf-split tool failed: %v", err)
		return nil, nil, err
	}

	outputDir := query.OutputDir
	if outputDir == "" {
		outputDir = deps.OutputDir
	}

	result, err := operations.RunSplit(ctx, operations.SplitParams{
		Source: models.SourceInfo{
			Path:     query.Path,
			ZoteroID: query.ZoteroID,
			URL:      query.URL,
		},
		RawData:   query.RawData,
		FileName:  query.FileName,
		Pattern:   pattern,
		OutputDir: outputDir,
		Progress:  progressNotifier(ctx, req, log),
	}, log)
	if err != nil {
		log.Error("pdf-split tool failed: %v", err)
		return nil, nil, err
	}

	responseData := &PDFSplitResponse{
		ArchivePath: result.ArchivePath,
		PageCount:   result.PageCount,
		Pattern:     result.Pattern,
		Pages:       result.Manifest,
	}

	return nil, responseData, nil
}

// progressNotifier forwards page progress to the client when the call
// carries a progress token.
func progressNotifier(ctx context.Context, req *mcp.CallToolRequest, log logger.Logger) splitter.ProgressFunc {
	if req == nil || req.Session == nil || req.Params == nil {
		return nil
	}
	token := req.Params.GetProgressToken()
	if token == nil {
		return nil
	}
	return func(p splitter.Progress) {
		err := req.Session.NotifyProgress(ctx, &mcp.ProgressNotificationParams{
			ProgressToken: token,
			Progress:      float64(p.PageNumber),
			Total:         float64(p.TotalPages),
			Message:       fmt.Sprintf("Processing page %d of %d", p.PageNumber, p.TotalPages),
		})
		if err != nil {
			log.Warn("failed to send progress notification: %v", err)
		}
	}
}
