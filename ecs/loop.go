package ecs

import (
	"context"
	"time"
)

// LoopStats provides timing statistics about update passes.
type LoopStats struct {
	Passes        int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

// Loop drives the update passes of a World and records how long they take.
type Loop struct {
	world *World
	stats LoopStats
}

// NewLoop creates a loop for the given World.
func NewLoop(w *World) *Loop {
	return &Loop{
		world: w,
		stats: LoopStats{MinDuration: time.Duration(1<<63 - 1)},
	}
}

// Once runs a single update pass.
func (l *Loop) Once() {
	start := time.Now()
	l.world.Update()
	duration := time.Since(start)

	l.stats.Passes++
	l.stats.LastDuration = duration
	l.stats.TotalDuration += duration

	if duration < l.stats.MinDuration {
		l.stats.MinDuration = duration
	}
	if duration > l.stats.MaxDuration {
		l.stats.MaxDuration = duration
	}
}

// Run executes update passes at the given interval until the context is cancelled.
func (l *Loop) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Once()
		}
	}
}

// Stats returns statistics about the passes run so far.
func (l *Loop) Stats() LoopStats {
	stats := l.stats
	if stats.Passes == 0 {
		stats.MinDuration = 0
		return stats
	}
	stats.AvgDuration = stats.TotalDuration / time.Duration(stats.Passes)
	return stats
}
