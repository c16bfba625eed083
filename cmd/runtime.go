package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/clipforge/clipforge/internal/bootstrap"
	"github.com/clipforge/clipforge/internal/compile"
	"github.com/clipforge/clipforge/internal/config"
	"github.com/clipforge/clipforge/internal/engine"
)

// defaultFormat is the container used for generated output names when the
// request does not force one.
const defaultFormat = "mp4"

// runtime bundles the loaded configuration and wired collaborators for one
// command invocation.
type runtime struct {
	cfg    *config.Config
	deps   *bootstrap.Dependencies
	logger *slog.Logger
}

func newRuntime() (*runtime, error) {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Create structured logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	// Initialize dependencies using bootstrap
	deps, err := bootstrap.NewDependencies(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize dependencies: %w", err)
	}

	return &runtime{cfg: cfg, deps: deps, logger: logger}, nil
}

// resolveOutput picks the plan's output path. The --output flag wins, then
// a spec document's own output field, then a generated unique name carrying
// the requested format's extension.
func (rt *runtime) resolveOutput(specOutput, format string) (string, error) {
	name := outputName
	if name == "" {
		name = specOutput
	}
	ext := format
	if ext == "" {
		ext = defaultFormat
	}
	return rt.deps.Library.OutputPath(name, ext)
}

// execute runs the compiled plan, or prints the engine command under
// --dry-run, and reports the finished artifact location on stdout.
func (rt *runtime) execute(ctx context.Context, plan *compile.Plan) error {
	if dryRun {
		fmt.Println(commandLine(rt.cfg.FFmpegPath, plan))
		return nil
	}

	if err := rt.deps.Runner.Run(ctx, plan); err != nil {
		// A failed run can leave a partial output file behind. Cleanup uses a
		// fresh context so removal still happens when ctx was cancelled.
		if cleanErr := rt.deps.Library.Cleanup(context.Background(), []string{plan.OutputPath}); cleanErr != nil {
			rt.logger.Warn("failed to remove partial output",
				slog.String("path", plan.OutputPath),
				slog.String("error", cleanErr.Error()))
		}
		return err
	}

	if upload {
		url, err := rt.deps.Library.Publish(ctx, plan.OutputPath)
		if err != nil {
			return fmt.Errorf("publish output: %w", err)
		}
		fmt.Println(url)
		return nil
	}

	fmt.Println(plan.OutputPath)
	return nil
}

// commandLine renders a plan as a copy-pasteable shell command.
func commandLine(bin string, plan *compile.Plan) string {
	parts := []string{bin}
	for _, arg := range engine.Args(plan) {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

// quoteArg single-quotes an argument when it contains characters a shell
// would interpret, such as the semicolons in a filter graph.
func quoteArg(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t;()[]{}*?$`\"'\\&|<>#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// loadSpec decodes a YAML request document into dst. Field validation
// happens later, in the compiler.
func loadSpec(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read spec file: %w", err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode spec file %s: %w", path, err)
	}
	return nil
}
