package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/clipforge/clipforge/internal/compile"
)

// Runner executes compiled plans with the ffmpeg binary.
type Runner struct {
	// binPath is the path to the ffmpeg binary. Defaults to "ffmpeg".
	binPath string
	// timeout bounds a single engine run; zero means no bound beyond the
	// caller's context.
	timeout time.Duration
	logger  *slog.Logger
}

// RunnerOption is a function that configures a Runner.
type RunnerOption func(*Runner)

// WithTimeout bounds every engine run with its own deadline.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithRunnerLogger sets the logger used for engine diagnostics.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a Runner. If binPath is empty, it defaults to
// "ffmpeg" (found via PATH).
func NewRunner(binPath string, opts ...RunnerOption) *Runner {
	if binPath == "" {
		binPath = "ffmpeg"
	}
	r := &Runner{
		binPath: binPath,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the plan and blocks until the engine exits. The engine's
// stderr is captured and carried in the returned error on failure.
func (r *Runner) Run(ctx context.Context, plan *compile.Plan) error {
	args := Args(plan)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.logger.Info("running engine",
		slog.Int("inputs", len(plan.Inputs)),
		slog.String("output", plan.OutputPath),
	)
	r.logger.Debug("engine command",
		slog.String("bin", r.binPath),
		slog.String("args", strings.Join(args, " ")),
	)

	// #nosec G204 - binPath is set by the application, not user input
	cmd := exec.CommandContext(ctx, r.binPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("engine cancelled: %w", ctx.Err())
		}
		return &Error{Args: args, Stderr: stderr.String(), Err: err}
	}

	return nil
}

// Error represents a failed engine run, including the captured stderr.
type Error struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("engine error: %v\nargs: %v\nstderr: %s", e.Err, e.Args, e.Stderr)
}

func (e *Error) Unwrap() error {
	return e.Err
}
