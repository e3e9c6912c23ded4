package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/divvy/ecs"
)

func TestLoopOnce(t *testing.T) {
	w := newTestWorld()
	e := mustEntity(w)
	c, err := ecs.Add(e, Counter{})
	if err != nil {
		t.Fatal(err)
	}

	loop := ecs.NewLoop(w)
	loop.Once()
	loop.Once()

	if c.N != 2 {
		t.Errorf("Expected counter 2, got %d", c.N)
	}

	stats := loop.Stats()
	if stats.Passes != 2 {
		t.Errorf("Expected 2 passes, got %d", stats.Passes)
	}
	if stats.MinDuration > stats.MaxDuration {
		t.Errorf("Min duration %v exceeds max %v", stats.MinDuration, stats.MaxDuration)
	}
	if stats.AvgDuration != stats.TotalDuration/2 {
		t.Errorf("Expected average %v, got %v", stats.TotalDuration/2, stats.AvgDuration)
	}
}

func TestLoopStatsEmpty(t *testing.T) {
	loop := ecs.NewLoop(newTestWorld())
	stats := loop.Stats()

	if stats.Passes != 0 || stats.MinDuration != 0 || stats.AvgDuration != 0 {
		t.Errorf("Expected zero stats, got %+v", stats)
	}
}

func TestLoopRun(t *testing.T) {
	w := newTestWorld()
	e := mustEntity(w)
	c, err := ecs.Add(e, Counter{})
	if err != nil {
		t.Fatal(err)
	}

	loop := ecs.NewLoop(w)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	loop.Run(ctx, 5*time.Millisecond)

	passes := loop.Stats().Passes
	if passes == 0 {
		t.Fatal("Expected at least one pass")
	}
	if int64(c.N) != passes {
		t.Errorf("Expected counter %d to match passes, got %d", passes, c.N)
	}
}
