package engine

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	Cookie               string        // BILIBILI_COOKIE; empty = anonymous buvid3 session
	APIBase              string        // Bilibili API origin; overridden in tests
	FetchTimeout         time.Duration // bound on each outbound request
	ToolTimeout          time.Duration // bound on a whole tool invocation
	WbiKeyTTL            time.Duration // how long a WBI key pair stays cached
	RateLimit            float64       // outbound requests per second to Bilibili
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	HTTPClient           *http.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, biliserver).
// Always points to the current cfg value.
var Cfg = &cfg

var outbound *rate.Limiter

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg

	rl := c.RateLimit
	if rl <= 0 {
		rl = 4
	}
	outbound = rate.NewLimiter(rate.Limit(rl), int(rl)+1)
}

// WaitOutbound blocks until the shared outbound rate limiter grants a slot
// or ctx is done. All Bilibili API calls go through this.
func WaitOutbound(ctx context.Context) error {
	if outbound == nil {
		return nil
	}
	return outbound.Wait(ctx)
}
