package biliserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_bili/internal/engine"
	"github.com/anatolykoptev/go_bili/internal/engine/sources"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type VideoInfoInput struct {
	VideoID string `json:"video_id" jsonschema:"Numeric video id, bare or av-prefixed (e.g. 170001 or av170001)"`
}

type VideoInfoOutput struct {
	Video *sources.VideoInfo `json:"video"`
}

func registerVideoInfo(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "bili_video_info",
		Description: "Look up Bilibili video metadata by av id: title, uploader, duration, stats, and the list of parts with their page numbers. Use this to find the right page number before calling bili_summary on a multi-part video.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input VideoInfoInput) (*mcp.CallToolResult, VideoInfoOutput, error) {
		if input.VideoID == "" {
			return nil, VideoInfoOutput{}, fmt.Errorf("video_id is required")
		}

		cacheKey := engine.CacheKey("bili_video_info", input.VideoID)
		if out, ok := engine.CacheLoadJSON[VideoInfoOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		info, err := sources.FetchVideoInfo(ctx, input.VideoID)
		if err != nil {
			slog.Warn("bili_video_info failed", slog.String("video_id", input.VideoID), slog.Any("error", err))
			return nil, VideoInfoOutput{}, fmt.Errorf("video info lookup failed: %w", err)
		}

		out := VideoInfoOutput{Video: info}
		engine.CacheStoreJSON(ctx, cacheKey, out)
		slog.Debug("bili_video_info ok",
			slog.String("video_id", input.VideoID),
			slog.Int("pages", len(info.Pages)))
		return nil, out, nil
	})
}
