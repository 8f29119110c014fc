// go_bili — Bilibili AI video summary MCP server.
//
// Exposes three MCP tools: bili_summary, bili_video_info, bili_resolve_id.
// Runs as HTTP MCP server or stdio transport.
//
// The summary tool wraps Bilibili's web "conclusion" endpoint, which serves
// the platform-generated AI summary/outline for a video. That endpoint is
// WBI-signed; see internal/engine/sources/bilibili_wbi.go.
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_bili/internal/biliserver"
	"github.com/anatolykoptev/go_bili/internal/engine"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	initEngine()

	mcpPort := env.Str("MCP_PORT", "8892")
	slog.Info("starting go_bili",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_bili",
		Version: version,
	}, nil)

	biliserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 3))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_bili",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		Cookie:               env.Str("BILIBILI_COOKIE", ""),
		APIBase:              env.Str("BILIBILI_API_BASE", "https://api.bilibili.com"),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 30*time.Second),
		ToolTimeout:          env.Duration("TOOL_TIMEOUT", 90*time.Second),
		WbiKeyTTL:            env.Duration("WBI_KEY_TTL", 10*time.Minute),
		RateLimit:            env.Float("BILI_RATE_LIMIT", 4),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
	if c.Cookie == "" {
		slog.Info("BILIBILI_COOKIE not set, using anonymous session")
	}
	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
