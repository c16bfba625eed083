// Package bootstrap provides dependency initialization for the clipforge CLI.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/clipforge/clipforge/internal/compile"
	"github.com/clipforge/clipforge/internal/config"
	"github.com/clipforge/clipforge/internal/engine"
	"github.com/clipforge/clipforge/internal/probe"
	"github.com/clipforge/clipforge/internal/storage"
)

// Dependencies holds all initialized collaborators for the CLI commands.
type Dependencies struct {
	Library  storage.Library
	Prober   *probe.FFProbe
	Compiler *compile.Compiler
	Runner   *engine.Runner
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	// Initialize the clip library
	library, err := initLibrary(cfg, logger)
	if err != nil {
		return nil, err
	}

	// Initialize the probe and the plan compiler on top of it
	prober := probe.New(cfg.FFprobePath)
	compiler := compile.New(library, prober, compile.WithLogger(logger))

	// Initialize the engine runner
	runner := engine.NewRunner(cfg.FFmpegPath,
		engine.WithTimeout(cfg.EngineTimeout()),
		engine.WithRunnerLogger(logger),
	)

	return &Dependencies{
		Library:  library,
		Prober:   prober,
		Compiler: compiler,
		Runner:   runner,
	}, nil
}

// initLibrary creates the appropriate library backend based on configuration.
func initLibrary(cfg *config.Config, logger *slog.Logger) (storage.Library, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Lib, err := storage.NewS3Library(cfg.MediaDir, cfg.OutputDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 library: %w", err)
		}
		logger.Info("S3 publication configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Lib, nil
	}

	lib, err := storage.NewLocalLibrary(cfg.MediaDir, cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("create local library: %w", err)
	}
	logger.Info("local library configured",
		slog.String("media_dir", lib.MediaDir()),
		slog.String("output_dir", lib.OutputDir()),
	)
	return lib, nil
}
