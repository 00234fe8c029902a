// Package config handles loading and saving pathlab configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/pathlab/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/pathlab/pkg/pathfind"

	"gopkg.in/yaml.v3"
)

const appName = "pathlab"

// Speed bounds. Delay maps speed onto the per-frame pause.
const (
	MinSpeed = 1
	MaxSpeed = 100
)

// Grid bounds accepted by Validate.
const (
	MaxRows = 200
	MaxCols = 400
)

// GridConfig is the grid size used at start-up.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// MazeConfig controls random wall generation.
type MazeConfig struct {
	Density float64 `yaml:"density"`        // wall probability (0-1)
	Seed    int64   `yaml:"seed,omitempty"` // 0 = time-seeded
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	ShowHelp bool `yaml:"show_help"` // Keymap footer under the grid
}

// ExportConfig controls snapshot output.
type ExportConfig struct {
	Dir string `yaml:"dir,omitempty"` // Default directory for snapshots (~ expanded)
}

// Config is the top-level configuration for pathlab.
type Config struct {
	Grid      GridConfig   `yaml:"grid"`
	Algorithm string       `yaml:"algorithm"`
	Speed     int          `yaml:"speed"`
	Maze      MazeConfig   `yaml:"maze"`
	UI        UIConfig     `yaml:"ui"`
	Export    ExportConfig `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Grid:      GridConfig{Rows: 20, Cols: 50},
		Algorithm: string(pathfind.AlgoBFS),
		Speed:     80,
		Maze:      MazeConfig{Density: 0.25},
		UI:        UIConfig{ShowHelp: true},
	}
}

// ConfigDir returns the XDG config directory for pathlab.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path and validates it.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate normalizes the algorithm name and clamps numeric settings into
// range. Unknown algorithms and impossible grid sizes are errors.
func (c *Config) Validate() error {
	algo, err := pathfind.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return err
	}
	c.Algorithm = string(algo)

	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 || c.Grid.Rows*c.Grid.Cols < 2 {
		return fmt.Errorf("grid %dx%d must hold at least two cells", c.Grid.Rows, c.Grid.Cols)
	}
	c.Grid.Rows = min(c.Grid.Rows, MaxRows)
	c.Grid.Cols = min(c.Grid.Cols, MaxCols)

	c.Speed = ClampSpeed(c.Speed)
	c.Maze.Density = max(0, min(c.Maze.Density, 1))
	return nil
}

// AlgorithmID returns the configured algorithm. Call Validate first.
func (c Config) AlgorithmID() pathfind.Algorithm {
	return pathfind.Algorithm(c.Algorithm)
}

// Delay is the per-frame animation pause for the configured speed.
func (c Config) Delay() time.Duration {
	return SpeedDelay(c.Speed)
}

// SpeedDelay maps a speed in [MinSpeed, MaxSpeed] to a frame pause:
// max(10, 1010 - 10*speed) milliseconds.
func SpeedDelay(speed int) time.Duration {
	ms := max(10, 1010-10*ClampSpeed(speed))
	return time.Duration(ms) * time.Millisecond
}

// ClampSpeed limits speed to [MinSpeed, MaxSpeed].
func ClampSpeed(speed int) int {
	return max(MinSpeed, min(speed, MaxSpeed))
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
