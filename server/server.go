package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/pdfsplit/internal/config"
	"github.com/Epistemic-Technology/pdfsplit/internal/logger"
	"github.com/Epistemic-Technology/pdfsplit/internal/presets"
	"github.com/Epistemic-Technology/pdfsplit/tools"
)

func CreateServer(log logger.Logger, cfg config.Config) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "pdfsplit", Version: "v0.1.0"}, nil)

	catalog, err := presets.Load(cfg.PresetsFile)
	if err != nil {
		log.Fatal("Failed to load pattern presets: %v", err)
	}
	log.Info("Loaded %d pattern presets; archives go to %s", len(catalog.List()), cfg.OutputDir)

	deps := tools.SplitDeps{
		Catalog:   catalog,
		OutputDir: cfg.OutputDir,
		Log:       log,
	}

	mcp.AddTool(server, tools.PDFSplitTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.PDFSplitQuery) (*mcp.CallToolResult, *tools.PDFSplitResponse, error) {
		return tools.PDFSplitToolHandler(ctx, req, query, deps)
	})

	mcp.AddTool(server, tools.PatternPresetsTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.PatternPresetsQuery) (*mcp.CallToolResult, *tools.PatternPresetsResponse, error) {
		return tools.PatternPresetsToolHandler(ctx, req, query, catalog)
	})

	return server
}
