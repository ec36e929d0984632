package server

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Stats counts pipeline and cache events. It implements
// [observability.PipelineHooks] and [observability.CacheHooks] and logs
// each event at debug level.
type Stats struct {
	logger *log.Logger

	builds      atomic.Int64
	buildErrors atomic.Int64
	renders     atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
}

// NewStats creates event counters that log to logger.
func NewStats(logger *log.Logger) *Stats {
	if logger == nil {
		logger = log.Default()
	}
	return &Stats{logger: logger}
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Builds      int64 `json:"builds"`
	BuildErrors int64 `json:"build_errors"`
	Renders     int64 `json:"renders"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Builds:      s.builds.Load(),
		BuildErrors: s.buildErrors.Load(),
		Renders:     s.renders.Load(),
		CacheHits:   s.cacheHits.Load(),
		CacheMisses: s.cacheMisses.Load(),
	}
}

func (s *Stats) OnBuildStart(_ context.Context, kind string, rows int) {
	s.logger.Debug("build start", "kind", kind, "rows", rows)
}

func (s *Stats) OnBuildComplete(_ context.Context, kind string, shapes int, d time.Duration, err error) {
	s.builds.Add(1)
	if err != nil {
		s.buildErrors.Add(1)
	}
	s.logger.Debug("build complete", "kind", kind, "shapes", shapes, "duration", d, "error", err)
}

func (s *Stats) OnRenderStart(context.Context, []string) {}

func (s *Stats) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	s.renders.Add(1)
	s.logger.Debug("render complete", "formats", formats, "duration", d, "error", err)
}

func (s *Stats) OnCacheHit(_ context.Context, keyType string) {
	s.cacheHits.Add(1)
	s.logger.Debug("cache hit", "type", keyType)
}

func (s *Stats) OnCacheMiss(_ context.Context, keyType string) {
	s.cacheMisses.Add(1)
	s.logger.Debug("cache miss", "type", keyType)
}

func (s *Stats) OnCacheSet(_ context.Context, keyType string, size int) {
	s.logger.Debug("cache set", "type", keyType, "bytes", size)
}
