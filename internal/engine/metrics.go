package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ViewRequests       atomic.Int64
	NavKeyRequests     atomic.Int64
	ConclusionRequests atomic.Int64
	ResolveRequests    atomic.Int64
	UpstreamErrors     atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"view_requests":       metrics.ViewRequests.Load(),
		"nav_key_requests":    metrics.NavKeyRequests.Load(),
		"conclusion_requests": metrics.ConclusionRequests.Load(),
		"resolve_requests":    metrics.ResolveRequests.Load(),
		"upstream_errors":     metrics.UpstreamErrors.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"view_requests", "nav_key_requests", "conclusion_requests",
		"resolve_requests", "upstream_errors",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the sources/ sub-package.
func IncrViewRequests()       { metrics.ViewRequests.Add(1) }
func IncrNavKeyRequests()     { metrics.NavKeyRequests.Add(1) }
func IncrConclusionRequests() { metrics.ConclusionRequests.Add(1) }
func IncrResolveRequests()    { metrics.ResolveRequests.Add(1) }
func IncrUpstreamErrors()     { metrics.UpstreamErrors.Add(1) }
