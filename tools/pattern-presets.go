package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/pdfsplit/internal/presets"
)

type PatternPresetsQuery struct{}

type PatternPresetsResponse struct {
	Presets              []presets.Preset `json:"presets"`
	CustomOption         string           `json:"custom_option"`
	DefaultCustomPattern string           `json:"default_custom_pattern"`
}

func PatternPresetsTool() *mcp.Tool {
	inputschema, err := jsonschema.For[PatternPresetsQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "pattern-presets",
		Description: "List the named identifier patterns accepted by pdf-split's preset parameter, plus the option name for a custom pattern",
		InputSchema: inputschema,
	}
}

func PatternPresetsToolHandler(ctx context.Context, req *mcp.CallToolRequest, query PatternPresetsQuery, catalog *presets.Catalog) (*mcp.CallToolResult, *PatternPresetsResponse, error) {
	return nil, &PatternPresetsResponse{
		Presets:              catalog.List(),
		CustomOption:         presets.Custom,
		DefaultCustomPattern: presets.DefaultCustomPattern,
	}, nil
}
