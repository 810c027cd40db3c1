// Package metrics exposes the engine's counters as Prometheus collectors.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/ppiankov/deserts/internal/model"
)

// Recorder owns a private registry so several runs in one process never
// collide on the global one
type Recorder struct {
	registry *prometheus.Registry

	ClaimsScored     *prometheus.CounterVec // by trust tier
	ClaimsValidated  prometheus.Counter
	ValidationIssues *prometheus.CounterVec // by issue kind
	RegionsAnalyzed  prometheus.Counter
	DesertsDetected  *prometheus.CounterVec // by severity
}

// NewRecorder creates and registers all collectors
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()

	r := &Recorder{
		registry: reg,
		ClaimsScored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deserts_claims_scored_total",
			Help: "Capability claims scored, by trust tier",
		}, []string{"tier"}),
		ClaimsValidated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deserts_claims_validated_total",
			Help: "Capability claims validated",
		}),
		ValidationIssues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deserts_validation_issues_total",
			Help: "Validation issues found, by kind",
		}, []string{"kind"}),
		RegionsAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deserts_regions_analyzed_total",
			Help: "Regions and districts analyzed",
		}),
		DesertsDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deserts_deserts_detected_total",
			Help: "Areas classified as medical deserts, by severity",
		}, []string{"severity"}),
	}

	reg.MustRegister(r.ClaimsScored, r.ClaimsValidated, r.ValidationIssues, r.RegionsAnalyzed, r.DesertsDetected)
	return r
}

// Registry returns the recorder's registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveScoring adds one run's scoring counters
func (r *Recorder) ObserveScoring(s model.ScoringStats) {
	r.ClaimsScored.WithLabelValues("high").Add(float64(s.HighTrust))
	r.ClaimsScored.WithLabelValues("medium").Add(float64(s.MediumTrust))
	r.ClaimsScored.WithLabelValues("low").Add(float64(s.LowTrust))
}

// ObserveValidation adds one run's validation counters
func (r *Recorder) ObserveValidation(s model.ValidationStats) {
	r.ClaimsValidated.Add(float64(s.TotalValidated))
	r.ValidationIssues.WithLabelValues("dependency_violation").Add(float64(s.DependencyViolations))
	r.ValidationIssues.WithLabelValues("facility_type_mismatch").Add(float64(s.FacilityTypeMismatches))
	r.ValidationIssues.WithLabelValues("weak_evidence").Add(float64(s.WeakEvidence))
	r.ValidationIssues.WithLabelValues("low_confidence").Add(float64(s.LowConfidence))
	r.ValidationIssues.WithLabelValues("unverified").Add(float64(s.Unverified))
}

// ObserveRegions counts analyzed areas and the deserts among them
func (r *Recorder) ObserveRegions(analyses []model.RegionAnalysis) {
	r.RegionsAnalyzed.Add(float64(len(analyses)))
	for _, a := range analyses {
		if a.IsDesert {
			r.DesertsDetected.WithLabelValues(string(a.Severity)).Inc()
		}
	}
}

// WriteText writes every metric family in the Prometheus text format
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
