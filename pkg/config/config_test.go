package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vanderheijden86/pathlab/pkg/pathfind"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Grid.Rows != 20 || cfg.Grid.Cols != 50 {
		t.Errorf("expected 20x50 grid, got %dx%d", cfg.Grid.Rows, cfg.Grid.Cols)
	}
	if cfg.AlgorithmID() != pathfind.AlgoBFS {
		t.Errorf("expected bfs, got %q", cfg.Algorithm)
	}
	if cfg.Speed != 80 {
		t.Errorf("expected speed 80, got %d", cfg.Speed)
	}
	if !cfg.UI.ShowHelp {
		t.Error("expected help footer on by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Speed != 80 {
		t.Errorf("expected default config, got speed %d", cfg.Speed)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
grid:
  rows: 25
  cols: 60
algorithm: A*
speed: 100
maze:
  density: 0.3
  seed: 7
ui:
  show_help: false
export:
  dir: ~/snapshots
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Grid.Rows != 25 || cfg.Grid.Cols != 60 {
		t.Errorf("expected 25x60, got %dx%d", cfg.Grid.Rows, cfg.Grid.Cols)
	}
	if cfg.AlgorithmID() != pathfind.AlgoAStar {
		t.Errorf("expected algorithm normalized to astar, got %q", cfg.Algorithm)
	}
	if cfg.Maze.Density != 0.3 || cfg.Maze.Seed != 7 {
		t.Errorf("unexpected maze config %+v", cfg.Maze)
	}
	if cfg.UI.ShowHelp {
		t.Error("expected show_help false")
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "snapshots"); cfg.Export.Dir != want {
		t.Errorf("expected expanded dir %q, got %q", want, cfg.Export.Dir)
	}
}

func TestLoadFrom_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("speed: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Speed != 10 {
		t.Errorf("expected speed 10, got %d", cfg.Speed)
	}
	if cfg.Grid.Rows != 20 {
		t.Errorf("unset fields should keep defaults, got rows %d", cfg.Grid.Rows)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("grid: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFrom_UnknownAlgorithm(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("algorithm: greedy\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFrom(path)
	if !errors.Is(err, pathfind.ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestValidate_Clamps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Speed = 500
	cfg.Maze.Density = 2
	cfg.Grid = GridConfig{Rows: 1000, Cols: 1000}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Speed != MaxSpeed {
		t.Errorf("speed = %d, want %d", cfg.Speed, MaxSpeed)
	}
	if cfg.Maze.Density != 1 {
		t.Errorf("density = %v, want 1", cfg.Maze.Density)
	}
	if cfg.Grid.Rows != MaxRows || cfg.Grid.Cols != MaxCols {
		t.Errorf("grid = %dx%d, want %dx%d", cfg.Grid.Rows, cfg.Grid.Cols, MaxRows, MaxCols)
	}

	cfg.Speed = -3
	cfg.Maze.Density = -1
	_ = cfg.Validate()
	if cfg.Speed != MinSpeed || cfg.Maze.Density != 0 {
		t.Errorf("lower clamp failed: speed %d density %v", cfg.Speed, cfg.Maze.Density)
	}
}

func TestValidate_RejectsTinyGrid(t *testing.T) {
	for _, g := range []GridConfig{{0, 5}, {5, -1}, {1, 1}} {
		cfg := DefaultConfig()
		cfg.Grid = g
		if err := cfg.Validate(); err == nil {
			t.Errorf("grid %+v should be rejected", g)
		}
	}
}

func TestSpeedDelay(t *testing.T) {
	tests := []struct {
		speed int
		want  time.Duration
	}{
		{1, 1000 * time.Millisecond},
		{50, 510 * time.Millisecond},
		{80, 210 * time.Millisecond},
		{100, 10 * time.Millisecond},
		{0, 1000 * time.Millisecond},
		{250, 10 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := SpeedDelay(tt.speed); got != tt.want {
			t.Errorf("SpeedDelay(%d) = %v, want %v", tt.speed, got, tt.want)
		}
	}
	if got := DefaultConfig().Delay(); got != 210*time.Millisecond {
		t.Errorf("default Delay = %v", got)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Algorithm = string(pathfind.AlgoDijkstra)
	cfg.Speed = 42
	cfg.Maze.Seed = 99

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.AlgorithmID() != pathfind.AlgoDijkstra || loaded.Speed != 42 || loaded.Maze.Seed != 99 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := ConfigDir(); got != "/tmp/xdg/pathlab" {
		t.Errorf("ConfigDir = %q", got)
	}
	if got := ConfigPath(); got != "/tmp/xdg/pathlab/config.yaml" {
		t.Errorf("ConfigPath = %q", got)
	}
}

func TestLoad_UsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := DefaultConfig()
	cfg.Speed = 33
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Speed != 33 {
		t.Errorf("speed = %d, want 33", loaded.Speed)
	}
}

func TestNextPreset(t *testing.T) {
	p := NextPreset(15, 35)
	if p.String() != "20x50" {
		t.Errorf("after 15x35 got %s", p)
	}
	if p := NextPreset(30, 70); p.String() != "15x35" {
		t.Errorf("presets should wrap, got %s", p)
	}
	if p := NextPreset(7, 7); p.String() != "15x35" {
		t.Errorf("unknown size should start over, got %s", p)
	}
	if len(Presets()) != 4 {
		t.Errorf("expected 4 presets")
	}
}
