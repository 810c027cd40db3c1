package validate

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"sync"

	"github.com/ppiankov/deserts/internal/logging"
	"github.com/ppiankov/deserts/internal/model"
	"github.com/ppiankov/deserts/internal/ontology"
	"github.com/ppiankov/deserts/internal/score"
)

// Validator checks capability claims for internal consistency and
// plausibility, recording problems as warnings and claim flags
type Validator struct {
	ontology *ontology.Ontology
	cfg      model.ValidationConfig
	types    *TypeClassifier
	weak     []*regexp.Regexp
	strong   []*regexp.Regexp
	logger   *slog.Logger

	mu    sync.Mutex
	stats model.ValidationStats
}

// NewValidator creates a validator. It fails only when an evidence pattern does not compile.
func NewValidator(ont *ontology.Ontology, cfg model.ValidationConfig) (*Validator, error) {
	weak, err := compilePatterns(cfg.WeakPatterns)
	if err != nil {
		return nil, fmt.Errorf("weak patterns: %w", err)
	}
	strong, err := compilePatterns(cfg.StrongPatterns)
	if err != nil {
		return nil, fmt.Errorf("strong patterns: %w", err)
	}

	return &Validator{
		ontology: ont,
		cfg:      cfg,
		types:    NewTypeClassifier(cfg.FacilityConstraints),
		weak:     weak,
		strong:   strong,
		logger:   logging.New("validator"),
	}, nil
}

// NewDefaultValidator creates a validator with the built-in tables
func NewDefaultValidator(ont *ontology.Ontology) *Validator {
	v, err := NewValidator(ont, model.DefaultValidationConfig())
	if err != nil {
		panic(fmt.Sprintf("built-in validation config: %v", err))
	}
	return v
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// Fork returns a validator sharing this validator's tables with zeroed counters
func (v *Validator) Fork() *Validator {
	return &Validator{
		ontology: v.ontology,
		cfg:      v.cfg,
		types:    v.types,
		weak:     v.weak,
		strong:   v.strong,
		logger:   v.logger,
	}
}

// Absorb merges counters collected elsewhere
func (v *Validator) Absorb(stats model.ValidationStats) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stats.Merge(stats)
}

// Stats returns a snapshot of the counters
func (v *Validator) Stats() model.ValidationStats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stats
}

// Reset zeroes the counters
func (v *Validator) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stats = model.ValidationStats{}
}

// Validate runs every check against claim. Checks do not short-circuit.
// Only missing dependencies make a claim invalid; the other checks warn and
// flag. Flags are added to claim in place.
func (v *Validator) Validate(claim *model.CapabilityClaim, siblings []model.CapabilityClaim, facilityType string) (bool, []string) {
	var (
		warnings []string
		delta    model.ValidationStats
		valid    = true
	)

	canonical, matched := v.ontology.Resolve(claim.CapabilityText)

	// dependencies
	if deps := v.ontology.Dependencies(canonical); len(deps) > 0 {
		present := v.presentSet(siblings)
		for _, dep := range deps {
			if present[dep] {
				continue
			}
			warnings = append(warnings, fmt.Sprintf("Missing dependency: %s requires %s but it was not found", canonical, dep))
			claim.AddFlag(model.FlagMissingDependencies)
			delta.DependencyViolations++
			valid = false
		}
	}

	// facility-type plausibility; unknown vocabulary cannot be judged
	if matched {
		if _, unlikely := v.types.Unlikely(facilityType, canonical); unlikely {
			warnings = append(warnings, fmt.Sprintf("Unlikely for %s: %s is uncommon in this facility type", facilityType, canonical))
			claim.AddFlag(model.FlagUnlikelyForFacilityType)
			delta.FacilityTypeMismatches++
		}
	}

	// evidence quality
	text := claim.EvidenceText()
	if countMatches(v.weak, text) > countMatches(v.strong, text) {
		warnings = append(warnings, "Weak evidence: evidence contains vague language without specific details")
		claim.AddFlag(model.FlagWeakEvidence)
		delta.WeakEvidence++
	}

	// confidence
	confidence := score.Clamp(claim.Confidence)
	switch {
	case confidence < v.cfg.LowConfidence:
		warnings = append(warnings, fmt.Sprintf("Low confidence: confidence score %.2f is below threshold", confidence))
		claim.AddFlag(model.FlagLowConfidence)
		delta.LowConfidence++
	case confidence >= v.cfg.HighConfidence:
		delta.HighConfidence++
	}

	// availability
	switch a := claim.Availability.Normalized(); a {
	case model.AvailabilityUnavailable, model.AvailabilityUnknown:
		warnings = append(warnings, fmt.Sprintf("Availability issue: capability marked as %s", a))
	}

	if !matched {
		warnings = append(warnings, fmt.Sprintf("Unverified: %q does not match any known capability", claim.CapabilityText))
		claim.AddFlag(model.FlagUnverified)
		delta.Unverified++
	}

	delta.TotalValidated = 1
	v.Absorb(delta)

	if len(warnings) > 0 {
		v.logger.Debug("claim has warnings",
			"facility_id", claim.FacilityID,
			"capability", canonical,
			"warnings", len(warnings),
			"valid", valid,
		)
	}
	if warnings == nil {
		warnings = []string{}
	}
	return valid, warnings
}

func (v *Validator) presentSet(claims []model.CapabilityClaim) map[string]bool {
	present := make(map[string]bool, len(claims))
	for _, c := range claims {
		present[v.ontology.Normalize(c.CapabilityText)] = true
	}
	return present
}

func countMatches(patterns []*regexp.Regexp, text string) int {
	n := 0
	for _, re := range patterns {
		n += len(re.FindAllStringIndex(text, -1))
	}
	return n
}

// ValidateFacility validates every claim of profile and reports critical
// coverage ignoring trust. Claim flags are updated in place.
func (v *Validator) ValidateFacility(profile *model.FacilityProfile) model.ValidationReport {
	report := model.ValidationReport{
		FacilityID:                  profile.FacilityID,
		FacilityName:                profile.Name,
		FacilityType:                profile.FacilityType,
		TotalCapabilities:           len(profile.Capabilities),
		Warnings:                    []string{},
		CriticalCapabilitiesPresent: []string{},
		CriticalCapabilitiesMissing: []string{},
	}

	for i := range profile.Capabilities {
		claim := &profile.Capabilities[i]
		valid, warnings := v.Validate(claim, profile.Capabilities, profile.FacilityType)
		if valid {
			report.ValidCapabilities++
		} else {
			report.InvalidCapabilities++
		}
		for _, w := range warnings {
			report.Warnings = append(report.Warnings, claim.CapabilityText+": "+w)
		}
	}

	present := v.presentSet(profile.Capabilities)
	for _, critical := range v.ontology.Critical() {
		if present[critical] {
			report.CriticalCapabilitiesPresent = append(report.CriticalCapabilitiesPresent, critical)
		} else {
			report.CriticalCapabilitiesMissing = append(report.CriticalCapabilitiesMissing, critical)
		}
	}
	return report
}

// ValidateBatch validates every profile and aggregates the reports
func (v *Validator) ValidateBatch(profiles []model.FacilityProfile) model.BatchValidation {
	reports := make([]model.ValidationReport, 0, len(profiles))
	for i := range profiles {
		reports = append(reports, v.ValidateFacility(&profiles[i]))
	}
	return v.Aggregate(reports)
}

// Aggregate builds batch totals from already computed facility reports
func (v *Validator) Aggregate(reports []model.ValidationReport) model.BatchValidation {
	if reports == nil {
		reports = []model.ValidationReport{}
	}

	batch := model.BatchValidation{
		TotalFacilities: len(reports),
		FacilityReports: reports,
	}
	for _, r := range reports {
		batch.TotalCapabilities += r.TotalCapabilities
		batch.ValidCapabilities += r.ValidCapabilities
		batch.InvalidCapabilities += r.InvalidCapabilities
		if len(r.Warnings) > 0 {
			batch.FacilitiesWithWarnings++
		}
	}
	batch.ValidationStats = v.Stats()

	v.logger.Info("validated batch",
		"facilities", batch.TotalFacilities,
		"capabilities", batch.TotalCapabilities,
		"invalid", batch.InvalidCapabilities,
		"with_warnings", batch.FacilitiesWithWarnings,
	)
	return batch
}

// GetSuspicious validates profiles and returns those with at least threshold
// warnings, most warnings first. It runs on a fork so the receiver's
// counters are not inflated by re-validation.
func (v *Validator) GetSuspicious(profiles []model.FacilityProfile, threshold int) []model.SuspiciousFacility {
	fork := v.Fork()
	reports := make([]model.ValidationReport, 0, len(profiles))
	for i := range profiles {
		reports = append(reports, fork.ValidateFacility(&profiles[i]))
	}
	return Suspicious(reports, threshold)
}

// Suspicious selects reports with at least threshold warnings, most warnings
// first; equal counts keep input order
func Suspicious(reports []model.ValidationReport, threshold int) []model.SuspiciousFacility {
	out := []model.SuspiciousFacility{}
	for _, r := range reports {
		if len(r.Warnings) < threshold {
			continue
		}
		out = append(out, model.SuspiciousFacility{
			FacilityID:   r.FacilityID,
			FacilityName: r.FacilityName,
			WarningCount: len(r.Warnings),
			Warnings:     r.Warnings,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WarningCount > out[j].WarningCount
	})
	return out
}
