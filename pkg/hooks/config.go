// Package hooks runs user commands around snapshot exports.
// Hooks are configured in hooks.yaml next to the pathlab config file and run
// before (pre-export) and after (post-export) the output is written.
package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Phase is when a hook runs.
type Phase string

const (
	// PreExport runs before the file is written. Failure cancels the export.
	PreExport Phase = "pre-export"
	// PostExport runs after the file is written. Failure is reported but the
	// file stays.
	PostExport Phase = "post-export"
)

// On-error policies.
const (
	OnErrorFail     = "fail"
	OnErrorContinue = "continue"
)

// DefaultTimeout bounds a hook that sets no timeout.
const DefaultTimeout = 30 * time.Second

// FileName is the hook file looked up in the config directory.
const FileName = "hooks.yaml"

// Hook is one configured command.
type Hook struct {
	Name    string            `yaml:"name" json:"name"`
	Command string            `yaml:"command" json:"command"` // run with sh -c
	Timeout time.Duration     `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Env     map[string]string `yaml:"env,omitempty" json:"env,omitempty"` // values may reference ${PATHLAB_*}
	OnError string            `yaml:"on_error,omitempty" json:"on_error,omitempty"`
}

// Config is the parsed hooks.yaml.
type Config struct {
	Hooks HooksByPhase `yaml:"hooks" json:"hooks"`
}

// HooksByPhase groups hooks by phase, in run order.
type HooksByPhase struct {
	PreExport  []Hook `yaml:"pre-export,omitempty" json:"pre-export,omitempty"`
	PostExport []Hook `yaml:"post-export,omitempty" json:"post-export,omitempty"`
}

// For returns the hooks of phase.
func (c *Config) For(phase Phase) []Hook {
	if c == nil {
		return nil
	}
	switch phase {
	case PreExport:
		return c.Hooks.PreExport
	case PostExport:
		return c.Hooks.PostExport
	}
	return nil
}

// Empty reports whether no hook is configured.
func (c *Config) Empty() bool {
	return c == nil || len(c.Hooks.PreExport)+len(c.Hooks.PostExport) == 0
}

// ExportContext describes the export and the run it came from. Hooks see it
// as environment variables.
type ExportContext struct {
	ExportPath   string    // PATHLAB_EXPORT_PATH
	ExportFormat string    // PATHLAB_EXPORT_FORMAT: svg or png
	Algorithm    string    // PATHLAB_ALGORITHM
	Found        bool      // PATHLAB_FOUND
	PathLength   int       // PATHLAB_PATH_LENGTH, -1 without a path
	Visited      int       // PATHLAB_VISITED
	Timestamp    time.Time // PATHLAB_TIMESTAMP (RFC3339)
}

// ToEnv renders the context as KEY=value pairs.
func (c ExportContext) ToEnv() []string {
	return []string{
		"PATHLAB_EXPORT_PATH=" + c.ExportPath,
		"PATHLAB_EXPORT_FORMAT=" + c.ExportFormat,
		"PATHLAB_ALGORITHM=" + c.Algorithm,
		"PATHLAB_FOUND=" + strconv.FormatBool(c.Found),
		"PATHLAB_PATH_LENGTH=" + strconv.Itoa(c.PathLength),
		"PATHLAB_VISITED=" + strconv.Itoa(c.Visited),
		"PATHLAB_TIMESTAMP=" + c.Timestamp.Format(time.RFC3339),
	}
}

// Load reads dir/hooks.yaml. A missing file yields an empty config. The
// returned warnings name hooks that were skipped.
func Load(dir string) (*Config, []string, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil, nil
		}
		return nil, nil, fmt.Errorf("reading hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var warnings []string
	cfg.Hooks.PreExport = normalize(cfg.Hooks.PreExport, PreExport, &warnings)
	cfg.Hooks.PostExport = normalize(cfg.Hooks.PostExport, PostExport, &warnings)
	return &cfg, warnings, nil
}

// normalize fills defaults and drops hooks without a command.
func normalize(in []Hook, phase Phase, warnings *[]string) []Hook {
	var out []Hook
	for i, h := range in {
		if strings.TrimSpace(h.Command) == "" {
			*warnings = append(*warnings, fmt.Sprintf("%s hook %d has empty command; skipping", phase, i+1))
			continue
		}
		if h.Timeout <= 0 {
			h.Timeout = DefaultTimeout
		}
		if h.OnError == "" {
			h.OnError = OnErrorContinue
			if phase == PreExport {
				h.OnError = OnErrorFail
			}
		}
		if h.Name == "" {
			h.Name = fmt.Sprintf("%s-%d", phase, i+1)
		}
		out = append(out, h)
	}
	return out
}

// UnmarshalYAML accepts the timeout as a Go duration ("5s") or a number of
// seconds.
func (h *Hook) UnmarshalYAML(node *yaml.Node) error {
	// Mirrors Hook except for Timeout.
	var raw struct {
		Name    string            `yaml:"name"`
		Command string            `yaml:"command"`
		Timeout string            `yaml:"timeout,omitempty"`
		Env     map[string]string `yaml:"env,omitempty"`
		OnError string            `yaml:"on_error,omitempty"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	timeout, err := parseTimeout(raw.Timeout)
	if err != nil {
		return err
	}
	*h = Hook{
		Name:    raw.Name,
		Command: raw.Command,
		Timeout: timeout,
		Env:     raw.Env,
		OnError: raw.OnError,
	}
	return nil
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q", s)
	}
	return time.Duration(secs * float64(time.Second)), nil
}
