package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/hupe1980/mtree/scenario"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config validation errors
var (
	ErrInvalidCapacity    = errors.New("max_capacity must be at least 2 and min_capacity at most (max_capacity+1)/2")
	ErrInvalidParallelism = errors.New("parallelism must be positive")
	ErrInvalidLogFormat   = errors.New("log_format must be 'json' or 'text'")
	ErrInvalidLogLevel    = errors.New("log_level must be debug, info, warn, or error")
	ErrInvalidDimensions  = errors.New("dimensions must be positive")
	ErrInvalidActions     = errors.New("generate_actions must be positive")
	ErrNoFixtures         = errors.New("no fixtures given and generate is 0")
)

// Config holds the replay settings. Every field can be set through an
// MTREE_ environment variable, an optional dotenv file, or a flag.
type Config struct {
	Fixtures        []string `envconfig:"FIXTURES"`
	MaxCapacity     int      `envconfig:"MAX_CAPACITY" default:"2"`
	MinCapacity     int      `envconfig:"MIN_CAPACITY" default:"-1"`
	Promotion       string   `envconfig:"PROMOTION" default:"minmax"`
	Partition       string   `envconfig:"PARTITION" default:"balanced"`
	Seed            uint64   `envconfig:"SEED" default:"1"`
	Parallelism     int      `envconfig:"PARALLELISM" default:"4"`
	Generate        int      `envconfig:"GENERATE" default:"0"`
	GenerateActions int      `envconfig:"GENERATE_ACTIONS" default:"200"`
	Dimensions      int      `envconfig:"DIMENSIONS" default:"2"`
	MetricsFile     string   `envconfig:"METRICS_FILE"`
	LogFormat       string   `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel        string   `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads envFile (when it exists) into the environment without
// overriding variables that are already set, then processes MTREE_*.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("MTREE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}

// ValidateConfig validates the configuration and returns an error if invalid
func ValidateConfig(cfg *Config) error {
	minCap := cfg.MinCapacity
	if minCap < 0 {
		minCap = cfg.MaxCapacity / 2
	}
	if cfg.MaxCapacity < 2 || minCap < 1 || 2*minCap > cfg.MaxCapacity+1 {
		return ErrInvalidCapacity
	}
	if _, err := scenario.PolicyByName(cfg.Promotion, cfg.Partition, cfg.Seed); err != nil {
		return err
	}
	if cfg.Parallelism <= 0 {
		return ErrInvalidParallelism
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return ErrInvalidLogFormat
	}
	if cfg.LogLevel != "debug" && cfg.LogLevel != "info" && cfg.LogLevel != "warn" && cfg.LogLevel != "error" {
		return ErrInvalidLogLevel
	}
	if cfg.Generate > 0 {
		if cfg.Dimensions <= 0 {
			return ErrInvalidDimensions
		}
		if cfg.GenerateActions <= 0 {
			return ErrInvalidActions
		}
	}
	if len(cfg.Fixtures) == 0 && cfg.Generate <= 0 {
		return ErrNoFixtures
	}
	return nil
}
