package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/divvy/ecs"
	"github.com/plus3/divvy/internal/config"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML or YAML config file.")
	duration := flag.Duration("duration", 0, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 0, "The initial number of entities to create.")
	churnRate := flag.Float64("churn", 0, "Fraction of entities released and recreated per pass.")
	seed := flag.Uint64("seed", 1, "Seed for the random entity layout.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			cfg.Stress.Duration = *duration
		case "entities":
			cfg.Stress.Entities = *entityCount
		case "churn":
			cfg.Stress.ChurnRate = *churnRate
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if cfg.World.Verbose {
		cfg.Logging.Level = "debug"
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		logger.Fatal("unknown profile mode", zap.String("profile", *profileMode))
	}

	report, err := run(cfg, logger, rand.New(rand.NewPCG(*seed, *seed)))
	if err != nil {
		logger.Error("stress test failed", zap.Error(err))
		return
	}
	report.GCPauseMetrics = *gcPauseMetrics

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("failed to generate report", zap.Error(err))
		return
	}
	fmt.Println("--- End of Report ---")
}

func run(cfg *config.Config, logger *zap.Logger, rng *rand.Rand) (*Report, error) {
	world := ecs.NewWorld(cfg.WorldOptions(logger)...)
	defer world.Close()
	if err := registerAll(world); err != nil {
		return nil, err
	}

	var mirror *ecs.World
	var mirrored []*ecs.Entity
	if cfg.Stress.MirrorWorld {
		opts := append(cfg.WorldOptions(logger), ecs.WithName(world.Name()+"-mirror"))
		mirror = ecs.NewWorld(opts...)
		defer mirror.Close()
		if err := registerMirror(mirror); err != nil {
			return nil, err
		}
	}

	logger.Info("populating world",
		zap.String("world", world.Name()),
		zap.Int("entities", cfg.Stress.Entities))

	entities := make([]*ecs.Entity, cfg.Stress.Entities)
	for i := range entities {
		e, err := ecs.NewEntity(world)
		if err != nil {
			return nil, err
		}
		if err := populate(e, rng); err != nil {
			return nil, err
		}
		entities[i] = e
	}

	report := &Report{
		Duration:   cfg.Stress.Duration,
		Entities:   cfg.Stress.Entities,
		Components: len(world.ComponentTypes()),
		ChurnRate:  cfg.Stress.ChurnRate,
		CloneRate:  cfg.Stress.CloneRate,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", zap.Duration("duration", cfg.Stress.Duration))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Stress.Duration)
	defer cancel()

	loop := ecs.NewLoop(world)
	var mirrorLoop *ecs.Loop
	if mirror != nil {
		mirrorLoop = ecs.NewLoop(mirror)
	}

	churn := int(float64(len(entities)) * cfg.Stress.ChurnRate)
	startTime := time.Now()

	for ctx.Err() == nil {
		loop.Once()
		if mirrorLoop != nil {
			mirrorLoop.Once()
		}

		for range churn {
			e := entities[rng.IntN(len(entities))]
			if err := e.ResetIn(world); err != nil {
				return nil, err
			}
			if err := populate(e, rng); err != nil {
				return nil, err
			}
			report.Respawned++

			if mirror == nil || rng.Float64() >= cfg.Stress.CloneRate {
				continue
			}
			if len(mirrored) < len(entities) {
				clone, err := ecs.CloneEntityInto(e, mirror)
				if err != nil {
					return nil, err
				}
				mirrored = append(mirrored, clone)
			} else if err := mirrored[rng.IntN(len(mirrored))].ResetCloneInto(e, mirror); err != nil {
				return nil, err
			}
			report.Clones++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime = loop.Stats()
	report.World = world.CollectStats()
	if mirror != nil {
		report.Mirror = mirror.CollectStats()
	}
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished",
		zap.Int64("passes", report.UpdateTime.Passes),
		zap.Int("alive", world.Len()))
	return report, nil
}
