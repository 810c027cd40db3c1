package score

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/ppiankov/deserts/internal/logging"
	"github.com/ppiankov/deserts/internal/model"
	"github.com/ppiankov/deserts/internal/ontology"
)

// Scorer computes per-claim trust scores and keeps running tier counters.
// Counters belong to the instance; parallel callers Fork a scorer per worker
// and Absorb the worker counters afterwards.
type Scorer struct {
	ontology *ontology.Ontology
	cfg      model.ScoringConfig
	positive []indicator
	negative []indicator
	logger   *slog.Logger

	mu    sync.Mutex
	stats model.ScoringStats
}

type indicator struct {
	re     *regexp.Regexp
	weight float64
}

// NewScorer creates a scorer. It fails only when an evidence pattern does not compile.
func NewScorer(ont *ontology.Ontology, cfg model.ScoringConfig) (*Scorer, error) {
	positive, err := compileIndicators(cfg.PositiveIndicators)
	if err != nil {
		return nil, fmt.Errorf("positive indicators: %w", err)
	}
	negative, err := compileIndicators(cfg.NegativeIndicators)
	if err != nil {
		return nil, fmt.Errorf("negative indicators: %w", err)
	}

	return &Scorer{
		ontology: ont,
		cfg:      cfg,
		positive: positive,
		negative: negative,
		logger:   logging.New("scorer"),
	}, nil
}

// NewDefaultScorer creates a scorer with the built-in formula
func NewDefaultScorer(ont *ontology.Ontology) *Scorer {
	s, err := NewScorer(ont, model.DefaultScoringConfig())
	if err != nil {
		panic(fmt.Sprintf("built-in scoring config: %v", err))
	}
	return s
}

func compileIndicators(specs []model.Indicator) ([]indicator, error) {
	out := make([]indicator, 0, len(specs))
	for _, spec := range specs {
		re, err := regexp.Compile("(?i)" + spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", spec.Pattern, err)
		}
		out = append(out, indicator{re: re, weight: spec.Weight})
	}
	return out, nil
}

// Fork returns a scorer sharing this scorer's tables with zeroed counters
func (s *Scorer) Fork() *Scorer {
	return &Scorer{
		ontology: s.ontology,
		cfg:      s.cfg,
		positive: s.positive,
		negative: s.negative,
		logger:   s.logger,
	}
}

// Absorb merges counters collected elsewhere (typically by a Fork)
func (s *Scorer) Absorb(stats model.ScoringStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Merge(stats)
}

// Stats returns a snapshot of the counters
func (s *Scorer) Stats() model.ScoringStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Reset zeroes the counters
func (s *Scorer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = model.ScoringStats{}
}

// Score returns the trust score of claim given its facility's claims
func (s *Scorer) Score(claim model.CapabilityClaim, siblings []model.CapabilityClaim) float64 {
	return s.ScoreDetail(claim, siblings).TrustScore
}

// ScoreDetail returns every trust component of claim alongside the final score
func (s *Scorer) ScoreDetail(claim model.CapabilityClaim, siblings []model.CapabilityClaim) model.Breakdown {
	w := s.cfg.Weights

	b := model.Breakdown{
		Confidence:            Clamp(claim.Confidence),
		EvidenceQuality:       s.EvidenceQuality(claim.Evidence),
		DependencyConsistency: s.DependencyConsistency(claim, siblings),
		Availability:          s.AvailabilityScore(claim.Availability),
		FlagsPenalty:          s.FlagsPenalty(claim.Flags),
	}

	b.TrustScore = Clamp(w.Confidence*b.Confidence +
		w.EvidenceQuality*b.EvidenceQuality +
		w.DependencyConsistency*b.DependencyConsistency +
		w.Availability*b.Availability -
		w.FlagsPenalty*b.FlagsPenalty)

	s.record(b.TrustScore)
	s.logger.Debug("scored claim",
		"facility_id", claim.FacilityID,
		"capability", claim.CapabilityText,
		"trust_score", b.TrustScore,
	)
	return b
}

func (s *Scorer) record(trust float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.TotalScored++
	switch s.tier(trust) {
	case tierHigh:
		s.stats.HighTrust++
	case tierMedium:
		s.stats.MediumTrust++
	default:
		s.stats.LowTrust++
	}
}

type tier int

const (
	tierLow tier = iota
	tierMedium
	tierHigh
)

func (s *Scorer) tier(trust float64) tier {
	switch {
	case trust >= s.cfg.Tiers.High:
		return tierHigh
	case trust >= s.cfg.Tiers.Medium:
		return tierMedium
	default:
		return tierLow
	}
}

// EvidenceQuality scores how specific the evidence is, in [0,1].
// No evidence at all scores 0.
func (s *Scorer) EvidenceQuality(evidence []string) float64 {
	if len(evidence) == 0 {
		return 0.0
	}

	text := strings.Join(evidence, " ")

	adjustment := 0.0
	for _, ind := range s.positive {
		adjustment += float64(len(ind.re.FindAllStringIndex(text, -1))) * ind.weight
	}
	for _, ind := range s.negative {
		adjustment += float64(len(ind.re.FindAllStringIndex(text, -1))) * ind.weight
	}

	scale := s.cfg.EvidenceScale
	if scale == 0 {
		scale = 10
	}
	return Clamp(s.cfg.EvidenceBase + adjustment/scale)
}

// DependencyConsistency is the fraction of the claim's declared dependencies
// that appear among its facility's claims. A claim declaring none scores 1.
func (s *Scorer) DependencyConsistency(claim model.CapabilityClaim, siblings []model.CapabilityClaim) float64 {
	if len(claim.Dependencies) == 0 {
		return 1.0
	}

	present := make(map[string]bool, len(siblings))
	for _, sib := range siblings {
		present[s.ontology.Normalize(sib.CapabilityText)] = true
	}

	satisfied := 0
	for _, dep := range claim.Dependencies {
		if present[s.ontology.Normalize(dep)] {
			satisfied++
		}
	}
	return float64(satisfied) / float64(len(claim.Dependencies))
}

// AvailabilityScore looks the availability status up in the configured table
func (s *Scorer) AvailabilityScore(a model.Availability) float64 {
	if v, ok := s.cfg.Availability[string(a.Normalized())]; ok {
		return v
	}
	return s.cfg.AvailabilityDefault
}

// FlagsPenalty sums per-flag penalties, capped at 1
func (s *Scorer) FlagsPenalty(flags []model.Flag) float64 {
	total := 0.0
	seen := make(map[model.Flag]bool, len(flags))
	for _, f := range flags {
		if seen[f] {
			continue
		}
		seen[f] = true
		if p, ok := s.cfg.FlagPenalties[string(f)]; ok {
			total += p
		} else {
			total += s.cfg.FlagPenaltyDefault
		}
	}
	return math.Min(1.0, total)
}

// ScoreFacility scores every claim of a facility. Capabilities are sorted by
// descending trust; ties keep claim order.
func (s *Scorer) ScoreFacility(profile model.FacilityProfile) model.FacilityScore {
	scored := make([]model.ScoredCapability, 0, len(profile.Capabilities))

	for _, claim := range profile.Capabilities {
		b := s.ScoreDetail(claim, profile.Capabilities)
		scored = append(scored, model.ScoredCapability{
			FacilityID:          profile.FacilityID,
			Capability:          claim.CapabilityText,
			CanonicalCapability: s.ontology.Normalize(claim.CapabilityText),
			Confidence:          claim.Confidence,
			TrustScore:          b.TrustScore,
			Evidence:            nonNilStrings(claim.Evidence),
			Availability:        claim.Availability,
			Flags:               nonNilFlags(claim.Flags),
			Components:          b,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TrustScore > scored[j].TrustScore
	})

	trust := make([]float64, len(scored))
	for i, c := range scored {
		trust[i] = c.TrustScore
	}

	return model.FacilityScore{
		FacilityID:   profile.FacilityID,
		FacilityName: profile.Name,
		Capabilities: scored,
		Statistics:   s.Summarize(trust),
	}
}

// ScoreBatch scores many facilities and aggregates across all of their claims
func (s *Scorer) ScoreBatch(profiles []model.FacilityProfile) model.BatchScore {
	facilityScores := make([]model.FacilityScore, 0, len(profiles))
	for _, p := range profiles {
		facilityScores = append(facilityScores, s.ScoreFacility(p))
	}
	return s.Aggregate(facilityScores)
}

// Aggregate builds batch statistics from already computed facility scores
func (s *Scorer) Aggregate(facilityScores []model.FacilityScore) model.BatchScore {
	var all []float64
	for _, fs := range facilityScores {
		for _, c := range fs.Capabilities {
			all = append(all, c.TrustScore)
		}
	}
	if facilityScores == nil {
		facilityScores = []model.FacilityScore{}
	}

	return model.BatchScore{
		TotalFacilities:     len(facilityScores),
		TotalCapabilities:   len(all),
		AggregateStatistics: s.Summarize(all),
		ScoringStats:        s.Stats(),
		FacilityScores:      facilityScores,
	}
}

// FilterHighTrust returns the claims of a facility scoring at least minTrust.
// This is the gate every aggregation uses to decide whether a claim counts.
func (s *Scorer) FilterHighTrust(profile model.FacilityProfile, minTrust float64) []model.CapabilityClaim {
	high := []model.CapabilityClaim{}
	for _, claim := range profile.Capabilities {
		if s.Score(claim, profile.Capabilities) >= minTrust {
			high = append(high, claim)
		}
	}
	return high
}

// Summarize computes average, median and tier counts of trust scores.
// The median of an even-sized list is the upper middle element.
func (s *Scorer) Summarize(trust []float64) model.TrustStatistics {
	stats := model.TrustStatistics{TotalCapabilities: len(trust)}
	if len(trust) == 0 {
		return stats
	}

	sorted := append([]float64(nil), trust...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
		switch s.tier(v) {
		case tierHigh:
			stats.HighTrustCount++
		case tierMedium:
			stats.MediumTrustCount++
		default:
			stats.LowTrustCount++
		}
	}
	stats.AverageTrust = sum / float64(len(sorted))
	stats.MedianTrust = sorted[len(sorted)/2]
	return stats
}

// Clamp limits v to [0,1]; NaN becomes 0
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func nonNilStrings(v []string) []string {
	out := make([]string, len(v))
	copy(out, v)
	return out
}

func nonNilFlags(v []model.Flag) []model.Flag {
	out := make([]model.Flag, len(v))
	copy(out, v)
	return out
}
