package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Commands understood by Replay.
const (
	CmdAdd    = "A"
	CmdRemove = "R"
)

var (
	ErrUnknownCommand    = errors.New("unknown command")
	ErrDimensionMismatch = errors.New("point dimension does not match fixture")
	ErrInvalidDimensions = errors.New("dimensions must be positive")
	ErrNegativeLimit     = errors.New("limit must not be negative")
)

// Action is one step of a fixture: a mutation followed by a range query and
// a limit query around Query.
type Action struct {
	Cmd    string  `yaml:"cmd"`
	Data   []int64 `yaml:"data,flow"`
	Query  []int64 `yaml:"query,flow"`
	Radius float64 `yaml:"radius"`
	Limit  int     `yaml:"limit"`
}

// Fixture is a named, replayable script.
type Fixture struct {
	Name       string   `yaml:"name"`
	Dimensions int      `yaml:"dimensions"`
	Actions    []Action `yaml:"actions"`
}

// Load reads and validates the fixture at path. A fixture without a name is
// named after its file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	fx, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if fx.Name == "" {
		fx.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return fx, nil
}

// Parse decodes and validates a fixture document.
func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// Save writes fx to path as YAML.
func Save(path string, fx *Fixture) error {
	data, err := yaml.Marshal(fx)
	if err != nil {
		return fmt.Errorf("failed to marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write fixture: %w", err)
	}
	return nil
}

// Validate checks commands and point dimensions.
func (fx *Fixture) Validate() error {
	if fx.Dimensions <= 0 {
		return ErrInvalidDimensions
	}
	for i, a := range fx.Actions {
		if a.Cmd != CmdAdd && a.Cmd != CmdRemove {
			return fmt.Errorf("action %d: %w %q", i, ErrUnknownCommand, a.Cmd)
		}
		if len(a.Data) != fx.Dimensions || len(a.Query) != fx.Dimensions {
			return fmt.Errorf("action %d: %w (%d)", i, ErrDimensionMismatch, fx.Dimensions)
		}
		if a.Limit < 0 {
			return fmt.Errorf("action %d: %w", i, ErrNegativeLimit)
		}
	}
	return nil
}
