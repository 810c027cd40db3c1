package worker

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/deserts/internal/logging"
	"github.com/ppiankov/deserts/internal/model"
	"github.com/ppiankov/deserts/internal/score"
	"github.com/ppiankov/deserts/internal/validate"
)

// Result is the outcome of validating and scoring one batch
type Result struct {
	// Profiles are deep copies of the input carrying the flags added during
	// validation, in input order.
	Profiles   []model.FacilityProfile
	Validation model.BatchValidation
	Scoring    model.BatchScore
}

// BatchProcessor validates and scores facilities in parallel. Facilities are
// split into contiguous shards, one per worker; each worker owns a forked
// validator and scorer, and their counters are merged only once every shard
// has finished.
type BatchProcessor struct {
	validator *validate.Validator
	scorer    *score.Scorer
	workers   int
	logger    *slog.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(validator *validate.Validator, scorer *score.Scorer, workers int) *BatchProcessor {
	if workers <= 0 {
		workers = 1
	}
	return &BatchProcessor{
		validator: validator,
		scorer:    scorer,
		workers:   workers,
		logger:    logging.New("worker"),
	}
}

type shardStats struct {
	validation model.ValidationStats
	scoring    model.ScoringStats
}

// Process validates then scores every profile. Input profiles are not
// modified. If ctx is cancelled before the batch completes, the whole batch
// is discarded and no counters are merged.
func (b *BatchProcessor) Process(ctx context.Context, profiles []model.FacilityProfile) (Result, error) {
	n := len(profiles)
	work := make([]model.FacilityProfile, n)
	for i, p := range profiles {
		work[i] = p.Clone()
	}
	reports := make([]model.ValidationReport, n)
	scores := make([]model.FacilityScore, n)

	shards := Shards(n, b.workers)
	stats := make([]shardStats, len(shards))

	g, gctx := errgroup.WithContext(ctx)
	for i, sh := range shards {
		g.Go(func() error {
			v := b.validator.Fork()
			s := b.scorer.Fork()
			for j := sh.Start; j < sh.End; j++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				reports[j] = v.ValidateFacility(&work[j])
				scores[j] = s.ScoreFacility(work[j])
			}
			stats[i] = shardStats{validation: v.Stats(), scoring: s.Stats()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("process batch: %w", err)
	}
	// a shard may finish just as ctx is cancelled
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("process batch: %w", err)
	}

	for _, st := range stats {
		b.validator.Absorb(st.validation)
		b.scorer.Absorb(st.scoring)
	}

	b.logger.Debug("processed batch", "facilities", n, "shards", len(shards))

	return Result{
		Profiles:   work,
		Validation: b.validator.Aggregate(reports),
		Scoring:    b.scorer.Aggregate(scores),
	}, nil
}

// Shard is a half-open index range [Start, End)
type Shard struct {
	Start, End int
}

// Shards splits n items into at most k contiguous shards whose sizes differ
// by at most one
func Shards(n, k int) []Shard {
	if n <= 0 {
		return nil
	}
	if k <= 0 {
		k = 1
	}
	if k > n {
		k = n
	}

	out := make([]Shard, 0, k)
	size, extra := n/k, n%k
	start := 0
	for i := 0; i < k; i++ {
		end := start + size
		if i < extra {
			end++
		}
		out = append(out, Shard{Start: start, End: end})
		start = end
	}
	return out
}
