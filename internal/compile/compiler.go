// Package compile turns declarative edit requests into validated execution
// plans for the ffmpeg engine. Each Compile* method checks its request,
// resolves clip names to paths, builds a filter graph and stream maps, and
// returns a Plan that internal/engine can translate into an argument list.
//
// Compilation is stateless and safe for concurrent use. Probing a source
// duration is the only external call a compile makes, and it happens only
// when the plan arithmetic needs it (fade-out placement, replacement-track
// clamping). A failed probe aborts the compile; no partial plans are
// returned.
package compile

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Resolver locates a clip by its library name and returns a path usable as
// an engine input.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// Prober reports the container-level duration of a media file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Compiler builds execution plans from edit requests.
type Compiler struct {
	resolver Resolver
	prober   Prober
	validate *validator.Validate
	logger   *slog.Logger
}

// Option is a function that configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used for compilation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Compiler backed by the given clip resolver and prober.
func New(resolver Resolver, prober Prober, opts ...Option) *Compiler {
	c := &Compiler{
		resolver: resolver,
		prober:   prober,
		validate: validator.New(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// validateRequest runs struct-tag validation and converts the first
// failure into a ValidationError.
func (c *Compiler) validateRequest(req any) error {
	err := c.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		reason := "violates " + fe.Tag()
		if p := fe.Param(); p != "" {
			reason += "=" + p
		}
		return &ValidationError{Field: strings.ToLower(fe.Field()), Reason: reason}
	}
	return &ValidationError{Field: "request", Reason: err.Error()}
}

// resolveClip maps a clip name to an engine input path.
func (c *Compiler) resolveClip(ctx context.Context, name string) (string, error) {
	path, err := c.resolver.Resolve(ctx, name)
	if err != nil {
		return "", &ResolutionError{Name: name, Err: err}
	}
	return path, nil
}

// probeDuration reads the duration in seconds of a resolved clip. The name
// is carried into any error so callers see the library name, not the path.
func (c *Compiler) probeDuration(ctx context.Context, name, path string) (float64, error) {
	d, err := c.prober.Duration(ctx, path)
	if err != nil {
		return 0, &ProbeError{Source: name, Err: err}
	}
	c.logger.Debug("probed clip duration",
		slog.String("clip", name),
		slog.Float64("seconds", d),
	)
	return d, nil
}
