package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ppiankov/deserts/internal/model"
	"github.com/ppiankov/deserts/internal/pipeline"
)

// runEnv is what every analysis command needs: the effective config, a
// pipeline built from it and the loaded facility profiles.
type runEnv struct {
	cfg      *model.Config
	pipeline *pipeline.Pipeline
	profiles []model.FacilityProfile
	renderer *pipeline.Renderer
}

// commandContext returns a context cancelled on interrupt or after timeout
// (no deadline when timeout is zero)
func commandContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// prepare loads the config, builds the pipeline and reads paths
func prepare(ctx context.Context, paths []string) (*runEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return nil, err
	}

	profiles, err := pipeline.LoadFiles(ctx, paths, cfg.Concurrency.Workers)
	if err != nil {
		return nil, fmt.Errorf("load facilities: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d facilities from %d file(s)\n", len(profiles), len(paths))
	}

	return &runEnv{
		cfg:      cfg,
		pipeline: p,
		profiles: profiles,
		renderer: pipeline.NewRenderer(cfg.Output.Pretty),
	}, nil
}
