package biliserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_bili/internal/engine"
	"github.com/anatolykoptev/go_bili/internal/engine/sources"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ResolveInput struct {
	Input string `json:"input" jsonschema:"A BV id, an av id, a b23.tv short link, or a full bilibili.com/video URL"`
}

type ResolveOutput struct {
	Resolved *sources.ResolvedID `json:"resolved"`
}

func registerResolveID(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "bili_resolve_id",
		Description: "Resolve a Bilibili BV id, b23.tv short link, or video URL to the numeric av id that bili_summary and bili_video_info accept. Returns the av id, BV id, and title.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ResolveInput) (*mcp.CallToolResult, ResolveOutput, error) {
		if input.Input == "" {
			return nil, ResolveOutput{}, fmt.Errorf("input is required")
		}

		cacheKey := engine.CacheKey("bili_resolve_id", input.Input)
		if out, ok := engine.CacheLoadJSON[ResolveOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		resolved, err := sources.ResolveVideoID(ctx, input.Input)
		if err != nil {
			slog.Warn("bili_resolve_id failed", slog.String("input", input.Input), slog.Any("error", err))
			return nil, ResolveOutput{}, fmt.Errorf("resolve failed: %w", err)
		}

		out := ResolveOutput{Resolved: resolved}
		engine.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
