package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/mtree/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Fixtures:        []string{"fixtures/*.yaml"},
		MaxCapacity:     2,
		MinCapacity:     -1,
		Promotion:       scenario.PromotionMinMax,
		Partition:       scenario.PartitionBalanced,
		Parallelism:     4,
		GenerateActions: 200,
		Dimensions:      2,
		LogFormat:       "text",
		LogLevel:        "info",
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.MaxCapacity)
	assert.Equal(t, -1, cfg.MinCapacity)
	assert.Equal(t, "minmax", cfg.Promotion)
	assert.Equal(t, "balanced", cfg.Partition)
	assert.Equal(t, uint64(1), cfg.Seed)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Fixtures)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("MTREE_MAX_CAPACITY", "8")
	t.Setenv("MTREE_MIN_CAPACITY", "3")
	t.Setenv("MTREE_FIXTURES", "a.yaml,b/*.yaml")
	t.Setenv("MTREE_PROMOTION", "random")
	t.Setenv("MTREE_LOG_FORMAT", "json")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.MaxCapacity)
	assert.Equal(t, 3, cfg.MinCapacity)
	assert.Equal(t, []string{"a.yaml", "b/*.yaml"}, cfg.Fixtures)
	assert.Equal(t, "random", cfg.Promotion)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigEnvFile(t *testing.T) {
	// Registered so that t.Setenv restores the variables that the dotenv
	// file is about to set.
	t.Setenv("MTREE_PARALLELISM", "")
	t.Setenv("MTREE_SEED", "")
	require.NoError(t, os.Unsetenv("MTREE_PARALLELISM"))
	require.NoError(t, os.Unsetenv("MTREE_SEED"))
	t.Setenv("MTREE_GENERATE", "5")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MTREE_PARALLELISM=2\nMTREE_SEED=42\nMTREE_GENERATE=9\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Parallelism)
	assert.Equal(t, uint64(42), cfg.Seed)
	// The environment wins over the dotenv file.
	assert.Equal(t, 5, cfg.Generate)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("MTREE_MAX_CAPACITY", "many")
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "Valid", mutate: func(*Config) {}},
		{name: "GenerateOnly", mutate: func(c *Config) { c.Fixtures = nil; c.Generate = 3 }},
		{name: "MaxTooSmall", mutate: func(c *Config) { c.MaxCapacity = 1 }, wantErr: ErrInvalidCapacity},
		{name: "MinTooLarge", mutate: func(c *Config) { c.MaxCapacity = 4; c.MinCapacity = 3 }, wantErr: ErrInvalidCapacity},
		{name: "MinZero", mutate: func(c *Config) { c.MinCapacity = 0 }, wantErr: ErrInvalidCapacity},
		{name: "Promotion", mutate: func(c *Config) { c.Promotion = "best" }, wantErr: scenario.ErrUnknownPolicy},
		{name: "Partition", mutate: func(c *Config) { c.Partition = "fair" }, wantErr: scenario.ErrUnknownPolicy},
		{name: "Parallelism", mutate: func(c *Config) { c.Parallelism = 0 }, wantErr: ErrInvalidParallelism},
		{name: "LogFormat", mutate: func(c *Config) { c.LogFormat = "console" }, wantErr: ErrInvalidLogFormat},
		{name: "LogLevel", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: ErrInvalidLogLevel},
		{name: "Dimensions", mutate: func(c *Config) { c.Generate = 1; c.Dimensions = 0 }, wantErr: ErrInvalidDimensions},
		{name: "Actions", mutate: func(c *Config) { c.Generate = 1; c.GenerateActions = 0 }, wantErr: ErrInvalidActions},
		{name: "NoFixtures", mutate: func(c *Config) { c.Fixtures = nil }, wantErr: ErrNoFixtures},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
