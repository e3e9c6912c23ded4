package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/plus3/divvy/ecs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	World   WorldConfig   `toml:"world" yaml:"world"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Stress  StressConfig  `toml:"stress" yaml:"stress"`
}

type WorldConfig struct {
	Name        string `toml:"name" yaml:"name"`
	MaxEntities int    `toml:"max_entities" yaml:"max_entities"` // 0 = unbounded
	Verbose     bool   `toml:"verbose" yaml:"verbose"`
	Silent      bool   `toml:"silent" yaml:"silent"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

type StressConfig struct {
	Duration    time.Duration `toml:"duration" yaml:"duration"`
	Entities    int           `toml:"entities" yaml:"entities"`
	ChurnRate   float64       `toml:"churn_rate" yaml:"churn_rate"`     // fraction of entities released and recreated per pass
	CloneRate   float64       `toml:"clone_rate" yaml:"clone_rate"`     // fraction of recreated entities cloned into the mirror world
	MirrorWorld bool          `toml:"mirror_world" yaml:"mirror_world"` // run a second world receiving cross-world clones
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Name: "main",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Stress: StressConfig{
			Duration:    10 * time.Second,
			Entities:    10000,
			ChurnRate:   0.01,
			CloneRate:   0.5,
			MirrorWorld: true,
		},
	}
}

// Load reads a TOML or YAML file on top of the defaults. The format is chosen
// by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.World.Verbose && c.World.Silent {
		errs = append(errs, errors.New("world: verbose and silent are mutually exclusive"))
	}
	if c.World.MaxEntities < 0 {
		errs = append(errs, fmt.Errorf("world: max_entities must not be negative, got %d", c.World.MaxEntities))
	}
	if c.Stress.Entities < 0 {
		errs = append(errs, fmt.Errorf("stress: entities must not be negative, got %d", c.Stress.Entities))
	}
	if c.World.MaxEntities > 0 && c.Stress.Entities > c.World.MaxEntities {
		errs = append(errs, fmt.Errorf("stress: %d entities exceed max_entities %d", c.Stress.Entities, c.World.MaxEntities))
	}
	if c.Stress.ChurnRate < 0 || c.Stress.ChurnRate > 1 {
		errs = append(errs, fmt.Errorf("stress: churn_rate must be within [0, 1], got %g", c.Stress.ChurnRate))
	}
	if c.Stress.CloneRate < 0 || c.Stress.CloneRate > 1 {
		errs = append(errs, fmt.Errorf("stress: clone_rate must be within [0, 1], got %g", c.Stress.CloneRate))
	}
	return errors.Join(errs...)
}

// LogMode maps the verbose and silent switches onto an ecs.LogMode.
func (c WorldConfig) LogMode() ecs.LogMode {
	switch {
	case c.Silent:
		return ecs.LogSilent
	case c.Verbose:
		return ecs.LogVerbose
	default:
		return ecs.LogWarnings
	}
}

// WorldOptions returns the options for a World built from this configuration.
func (c *Config) WorldOptions(log *zap.Logger) []ecs.Option {
	return []ecs.Option{
		ecs.WithName(c.World.Name),
		ecs.WithLogger(log),
		ecs.WithLogMode(c.World.LogMode()),
		ecs.WithMaxEntities(c.World.MaxEntities),
	}
}

// NewLogger builds a zap logger. An unknown level falls back to info.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
