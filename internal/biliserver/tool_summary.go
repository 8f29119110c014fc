package biliserver

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/anatolykoptev/go_bili/internal/engine"
	"github.com/anatolykoptev/go_bili/internal/engine/sources"
	"github.com/anatolykoptev/go_bili/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type SummaryInput struct {
	VideoID string `json:"video_id" jsonschema:"Numeric video id, bare or av-prefixed (e.g. 170001 or av170001). BV ids and b23.tv links must be resolved with bili_resolve_id first."`
	Page    int    `json:"page,omitempty" jsonschema:"1-based part number for multi-part videos (default 1)"`
}

type SummaryOutput struct {
	VideoID string `json:"video_id"`
	Page    int    `json:"page"`
	Text    string `json:"text"`
}

func registerSummary(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "bili_summary",
		Description: "Fetch Bilibili's AI-generated summary (and chapter outline, when available) for a video. Takes a numeric or av-prefixed video id plus an optional part number. Always returns text: either the summary or a plain-language explanation of what went wrong.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, summaryHandler)
}

// summaryHandler never returns a hard failure: agent callers expect a
// textual answer, so every error collapses into out.Text.
func summaryHandler(ctx context.Context, req *mcp.CallToolRequest, input SummaryInput) (*mcp.CallToolResult, SummaryOutput, error) {
	page := input.Page
	if page == 0 {
		page = 1
	}
	out := SummaryOutput{VideoID: input.VideoID, Page: page}

	if input.VideoID == "" {
		out.Text = "video_id is required: pass a numeric or av-prefixed Bilibili video id."
		return nil, out, nil
	}

	cacheKey := engine.CacheKey("bili_summary", input.VideoID, strconv.Itoa(page))
	if cached, ok := engine.CacheLoadJSON[SummaryOutput](ctx, cacheKey); ok {
		return nil, cached, nil
	}

	if t := engine.Cfg.ToolTimeout; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	text, err := sources.GetConclusion(ctx, input.VideoID, page)
	if err != nil {
		slog.Warn("bili_summary failed",
			slog.String("video_id", input.VideoID),
			slog.Int("page", page),
			slog.Any("error", err))
		out.Text = toolutil.ErrText(err)
		return nil, out, nil
	}

	out.Text = text
	// Fallback texts describe a state that can change upstream, so only
	// real summaries are cached.
	if !sources.FallbackText(text) {
		engine.CacheStoreJSON(ctx, cacheKey, out)
	}
	return nil, out, nil
}
