package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/deserts/internal/desert"
	"github.com/ppiankov/deserts/internal/logging"
	"github.com/ppiankov/deserts/internal/metrics"
	"github.com/ppiankov/deserts/internal/model"
	"github.com/ppiankov/deserts/internal/ontology"
	"github.com/ppiankov/deserts/internal/score"
	"github.com/ppiankov/deserts/internal/validate"
	"github.com/ppiankov/deserts/internal/worker"
)

// Pipeline wires the ontology, validator, scorer and detector together.
// Each run validates first so that the flags it adds are reflected in the
// trust scores used for desert detection.
type Pipeline struct {
	ontology  *ontology.Ontology
	validator *validate.Validator
	scorer    *score.Scorer
	detector  *desert.Detector
	batch     *worker.BatchProcessor
	metrics   *metrics.Recorder
	config    *model.Config
	logger    *slog.Logger

	now func() time.Time
}

// NewPipeline builds a pipeline from cfg. It fails when the ontology file or
// a configured pattern is invalid.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	ont, err := ontology.FromFile(cfg.Ontology.File)
	if err != nil {
		return nil, fmt.Errorf("load ontology: %w", err)
	}
	scorer, err := score.NewScorer(ont, cfg.Scoring)
	if err != nil {
		return nil, fmt.Errorf("scorer: %w", err)
	}
	validator, err := validate.NewValidator(ont, cfg.Validation)
	if err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}

	return &Pipeline{
		ontology:  ont,
		validator: validator,
		scorer:    scorer,
		detector:  desert.NewDetector(ont, scorer, cfg.Analysis.Thresholds),
		batch:     worker.NewBatchProcessor(validator, scorer, cfg.Concurrency.Workers),
		metrics:   metrics.NewRecorder(),
		config:    cfg,
		logger:    logging.New("pipeline"),
		now:       time.Now,
	}, nil
}

// Ontology returns the loaded ontology
func (p *Pipeline) Ontology() *ontology.Ontology { return p.ontology }

// Metrics returns the pipeline's metrics recorder
func (p *Pipeline) Metrics() *metrics.Recorder { return p.metrics }

// Process validates and scores profiles without running detection
func (p *Pipeline) Process(ctx context.Context, profiles []model.FacilityProfile) (worker.Result, error) {
	vBefore, sBefore := p.validator.Stats(), p.scorer.Stats()

	result, err := p.batch.Process(ctx, profiles)
	if err != nil {
		return worker.Result{}, err
	}

	p.metrics.ObserveValidation(p.validator.Stats().Since(vBefore))
	p.metrics.ObserveScoring(p.scorer.Stats().Since(sBefore))
	return result, nil
}

// Run performs a full analysis: validation, scoring, then region and
// district desert detection at the configured min_trust. The caller's
// profiles are not modified.
func (p *Pipeline) Run(ctx context.Context, profiles []model.FacilityProfile) (*model.Report, error) {
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)
	logger.Info("analysis started", "facilities", len(profiles))

	result, err := p.Process(ctx, profiles)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	minTrust := p.config.Analysis.MinTrust
	regions := p.detector.AnalyzeAllRegions(result.Profiles, minTrust)
	districts := p.detector.AnalyzeAllDistricts(result.Profiles, minTrust)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	p.metrics.ObserveRegions(regions.AllRegions)
	p.metrics.ObserveRegions(districts.AllDistricts)

	logger.Info("analysis finished",
		"regions", regions.TotalRegions,
		"desert_regions", regions.DesertRegionsCount,
		"districts", districts.TotalDistricts,
		"desert_districts", districts.DesertDistrictsCount,
	)

	return &model.Report{
		RunID:       runID,
		GeneratedAt: p.now().UTC(),
		MinTrust:    minTrust,
		Thresholds:  p.config.Analysis.Thresholds,
		Validation:  result.Validation,
		Scoring:     result.Scoring,
		Regions:     regions,
		Districts:   districts,
	}, nil
}

// Capability reports which regions have capability at the configured
// min_trust. Claims are validated first, as in Run.
func (p *Pipeline) Capability(ctx context.Context, profiles []model.FacilityProfile, capability string) (model.CapabilityDesertReport, error) {
	result, err := p.Process(ctx, profiles)
	if err != nil {
		return model.CapabilityDesertReport{}, err
	}
	return p.detector.IdentifyCapabilityDeserts(result.Profiles, capability, p.config.Analysis.MinTrust), nil
}

// Suspicious returns the facilities of an already validated batch with at
// least threshold warnings
func Suspicious(v model.BatchValidation, threshold int) []model.SuspiciousFacility {
	return validate.Suspicious(v.FacilityReports, threshold)
}
