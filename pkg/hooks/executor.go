package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/vanderheijden86/pathlab/pkg/debug"

	"go.uber.org/zap"
)

// maxSummaryOutput caps how much hook stderr Summary repeats.
const maxSummaryOutput = 200

// waitDelay bounds how long a cancelled hook may hold its output pipes open.
const waitDelay = 500 * time.Millisecond

// Result records one hook run.
type Result struct {
	Hook     Hook
	Phase    Phase
	Success  bool
	Error    error
	Stdout   string // trimmed
	Stderr   string // trimmed
	Duration time.Duration
}

// Executor runs a Config's hooks for one export.
type Executor struct {
	config  *Config
	export  ExportContext
	log     *zap.Logger
	results []Result
}

// NewExecutor returns an executor for config. A nil config runs nothing.
func NewExecutor(config *Config, export ExportContext) *Executor {
	if config == nil {
		config = &Config{}
	}
	return &Executor{
		config: config,
		export: export,
		log:    debug.Logger().Named("hooks"),
	}
}

// RunHooks loads dir/hooks.yaml and returns an executor for it, or nil when
// disabled or nothing is configured.
func RunHooks(dir string, export ExportContext, disabled bool) (*Executor, error) {
	if disabled {
		return nil, nil
	}
	cfg, warnings, err := Load(dir)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		debug.Log("hooks: %s", w)
	}
	if cfg.Empty() {
		return nil, nil
	}
	return NewExecutor(cfg, export), nil
}

// RunPreExport runs the pre-export hooks in order, stopping at the first
// failing hook whose policy is fail.
func (e *Executor) RunPreExport(ctx context.Context) error {
	for _, h := range e.config.For(PreExport) {
		r := e.run(ctx, h, PreExport)
		if !r.Success && h.OnError == OnErrorFail {
			return fmt.Errorf("pre-export hook %q failed: %w", h.Name, r.Error)
		}
	}
	return nil
}

// RunPostExport runs every post-export hook and joins the failures of those
// whose policy is fail.
func (e *Executor) RunPostExport(ctx context.Context) error {
	var errs []error
	for _, h := range e.config.For(PostExport) {
		r := e.run(ctx, h, PostExport)
		if !r.Success && h.OnError == OnErrorFail {
			errs = append(errs, fmt.Errorf("post-export hook %q failed: %w", h.Name, r.Error))
		}
	}
	return errors.Join(errs...)
}

// Results returns every hook run so far.
func (e *Executor) Results() []Result {
	return e.results
}

// Summary describes the hook runs, one line per failure.
func (e *Executor) Summary() string {
	if len(e.results) == 0 {
		return ""
	}
	var ok, failed int
	var sb strings.Builder
	for _, r := range e.results {
		if r.Success {
			ok++
			continue
		}
		failed++
		fmt.Fprintf(&sb, "  %s %s: %v\n", r.Phase, r.Hook.Name, r.Error)
		if r.Stderr != "" {
			fmt.Fprintf(&sb, "    stderr: %s\n", truncate(r.Stderr, maxSummaryOutput))
		}
	}
	return fmt.Sprintf("hooks: %d succeeded, %d failed\n", ok, failed) + sb.String()
}

func (e *Executor) run(ctx context.Context, h Hook, phase Phase) Result {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	env := append(os.Environ(), e.export.ToEnv()...)
	lookup := envLookup(env)
	for k, v := range h.Env {
		env = append(env, k+"="+os.Expand(v, lookup))
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "sh", "-c", h.Command)
	cmd.Env = env
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	killGroup(cmd)

	began := time.Now()
	err := cmd.Run()
	r := Result{
		Hook:     h,
		Phase:    phase,
		Success:  err == nil,
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		Duration: time.Since(began),
	}
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s", timeout)
		}
		r.Error = err
	}
	e.results = append(e.results, r)

	e.log.Debug("hook finished",
		zap.String("phase", string(phase)),
		zap.String("name", h.Name),
		zap.Bool("success", r.Success),
		zap.Duration("elapsed", r.Duration),
		zap.Error(r.Error))
	return r
}

// envLookup resolves names against a KEY=value list, later entries winning.
func envLookup(env []string) func(string) string {
	m := make(map[string]string, len(env))
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return func(k string) string { return m[k] }
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
