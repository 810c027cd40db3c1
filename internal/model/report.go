package model

import "time"

// Report is the complete output of one analysis run
type Report struct {
	RunID       string           `json:"run_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	MinTrust    float64          `json:"min_trust"`
	Thresholds  DesertThresholds `json:"thresholds"`

	Validation BatchValidation  `json:"validation"`
	Scoring    BatchScore       `json:"scoring"`
	Regions    RegionOverview   `json:"regions"`
	Districts  DistrictOverview `json:"districts"`
}

// ScoredCapability is a claim together with its trust score.
// FacilityID, CanonicalCapability and TrustScore form the trusted-capability triple.
type ScoredCapability struct {
	FacilityID          string       `json:"facility_id"`
	Capability          string       `json:"capability"`
	CanonicalCapability string       `json:"canonical_capability"`
	Confidence          float64      `json:"confidence"`
	TrustScore          float64      `json:"trust_score"`
	Evidence            []string     `json:"evidence"`
	Availability        Availability `json:"availability"`
	Flags               []Flag       `json:"flags"`
	Components          Breakdown    `json:"components"`
}

// Breakdown holds the individual trust components of a claim
type Breakdown struct {
	Confidence            float64 `json:"confidence"`
	EvidenceQuality       float64 `json:"evidence_quality"`
	DependencyConsistency float64 `json:"dependency_consistency"`
	Availability          float64 `json:"availability"`
	FlagsPenalty          float64 `json:"flags_penalty"`
	TrustScore            float64 `json:"trust_score"`
}

// TrustStatistics summarizes a list of trust scores
type TrustStatistics struct {
	TotalCapabilities int     `json:"total_capabilities"`
	AverageTrust      float64 `json:"average_trust"`
	MedianTrust       float64 `json:"median_trust"`
	HighTrustCount    int     `json:"high_trust_count"`
	MediumTrustCount  int     `json:"medium_trust_count"`
	LowTrustCount     int     `json:"low_trust_count"`
}

// FacilityScore is the scored view of one facility
type FacilityScore struct {
	FacilityID   string             `json:"facility_id"`
	FacilityName string             `json:"facility_name"`
	Capabilities []ScoredCapability `json:"capabilities"`
	Statistics   TrustStatistics    `json:"statistics"`
}

// BatchScore aggregates facility scores across a batch
type BatchScore struct {
	TotalFacilities     int             `json:"total_facilities"`
	TotalCapabilities   int             `json:"total_capabilities"`
	AggregateStatistics TrustStatistics `json:"aggregate_statistics"`
	ScoringStats        ScoringStats    `json:"scoring_stats"`
	FacilityScores      []FacilityScore `json:"facility_scores"`
}

// ScoringStats are the cumulative counters of a scorer instance
type ScoringStats struct {
	TotalScored int `json:"total_scored" yaml:"total_scored"`
	HighTrust   int `json:"high_trust" yaml:"high_trust"`
	MediumTrust int `json:"medium_trust" yaml:"medium_trust"`
	LowTrust    int `json:"low_trust" yaml:"low_trust"`
}

// Merge adds other's counters to s
func (s *ScoringStats) Merge(other ScoringStats) {
	s.TotalScored += other.TotalScored
	s.HighTrust += other.HighTrust
	s.MediumTrust += other.MediumTrust
	s.LowTrust += other.LowTrust
}

// Since returns the counts added after before was taken
func (s ScoringStats) Since(before ScoringStats) ScoringStats {
	return ScoringStats{
		TotalScored: s.TotalScored - before.TotalScored,
		HighTrust:   s.HighTrust - before.HighTrust,
		MediumTrust: s.MediumTrust - before.MediumTrust,
		LowTrust:    s.LowTrust - before.LowTrust,
	}
}

// ValidationStats are the cumulative counters of a validator instance
type ValidationStats struct {
	TotalValidated         int `json:"total_validated" yaml:"total_validated"`
	DependencyViolations   int `json:"dependency_violations" yaml:"dependency_violations"`
	FacilityTypeMismatches int `json:"facility_type_mismatches" yaml:"facility_type_mismatches"`
	WeakEvidence           int `json:"weak_evidence" yaml:"weak_evidence"`
	LowConfidence          int `json:"low_confidence" yaml:"low_confidence"`
	HighConfidence         int `json:"high_confidence" yaml:"high_confidence"`
	Unverified             int `json:"unverified" yaml:"unverified"`
}

// Merge adds other's counters to s
func (s *ValidationStats) Merge(other ValidationStats) {
	s.TotalValidated += other.TotalValidated
	s.DependencyViolations += other.DependencyViolations
	s.FacilityTypeMismatches += other.FacilityTypeMismatches
	s.WeakEvidence += other.WeakEvidence
	s.LowConfidence += other.LowConfidence
	s.HighConfidence += other.HighConfidence
	s.Unverified += other.Unverified
}

// Since returns the counts added after before was taken
func (s ValidationStats) Since(before ValidationStats) ValidationStats {
	return ValidationStats{
		TotalValidated:         s.TotalValidated - before.TotalValidated,
		DependencyViolations:   s.DependencyViolations - before.DependencyViolations,
		FacilityTypeMismatches: s.FacilityTypeMismatches - before.FacilityTypeMismatches,
		WeakEvidence:           s.WeakEvidence - before.WeakEvidence,
		LowConfidence:          s.LowConfidence - before.LowConfidence,
		HighConfidence:         s.HighConfidence - before.HighConfidence,
		Unverified:             s.Unverified - before.Unverified,
	}
}

// ValidationReport is the validation result for one facility
type ValidationReport struct {
	FacilityID                  string   `json:"facility_id"`
	FacilityName                string   `json:"facility_name"`
	FacilityType                string   `json:"facility_type"`
	TotalCapabilities           int      `json:"total_capabilities"`
	ValidCapabilities           int      `json:"valid_capabilities"`
	InvalidCapabilities         int      `json:"invalid_capabilities"`
	Warnings                    []string `json:"warnings"`
	CriticalCapabilitiesPresent []string `json:"critical_capabilities_present"`
	CriticalCapabilitiesMissing []string `json:"critical_capabilities_missing"`
}

// BatchValidation aggregates validation reports across a batch
type BatchValidation struct {
	TotalFacilities        int                `json:"total_facilities"`
	TotalCapabilities      int                `json:"total_capabilities"`
	ValidCapabilities      int                `json:"valid_capabilities"`
	InvalidCapabilities    int                `json:"invalid_capabilities"`
	FacilitiesWithWarnings int                `json:"facilities_with_warnings"`
	ValidationStats        ValidationStats    `json:"validation_stats"`
	FacilityReports        []ValidationReport `json:"facility_reports"`
}

// SuspiciousFacility is a facility whose warning count reached a threshold
type SuspiciousFacility struct {
	FacilityID   string   `json:"facility_id"`
	FacilityName string   `json:"facility_name"`
	WarningCount int      `json:"warning_count"`
	Warnings     []string `json:"warnings"`
}

// Severity classifies how deep a medical desert is
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeveritySevere   Severity = "severe"
	SeverityModerate Severity = "moderate"
	SeverityMinimal  Severity = "minimal"
)

// Rank orders severities from most (0) to least severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeveritySevere:
		return 1
	case SeverityModerate:
		return 2
	default:
		return 3
	}
}

// RegionAnalysis is the desert classification of one region or district
type RegionAnalysis struct {
	Region               string            `json:"region"`
	District             string            `json:"district,omitempty"`
	IsDesert             bool              `json:"is_desert"`
	Severity             Severity          `json:"severity"`
	Reason               string            `json:"reason,omitempty"`
	FacilityCount        int               `json:"facility_count"`
	CapabilitiesPresent  []string          `json:"capabilities_present"`
	CapabilitiesMissing  []string          `json:"capabilities_missing"`
	CapabilitiesLowTrust []string          `json:"capabilities_low_trust"`
	CoveragePercentage   float64           `json:"coverage_percentage"`
	Facilities           []FacilitySummary `json:"facilities,omitempty"`
}

// FacilitySummary is the per-facility line of a region analysis
type FacilitySummary struct {
	FacilityID     string  `json:"facility_id"`
	Name           string  `json:"name"`
	FacilityType   string  `json:"facility_type,omitempty"`
	District       string  `json:"district,omitempty"`
	AverageTrust   float64 `json:"average_trust"`
	HighTrustCount int     `json:"high_trust_count"`
}

// DesertSummary is the short form of a desert used in overviews
type DesertSummary struct {
	Region              string   `json:"region"`
	District            string   `json:"district,omitempty"`
	Severity            Severity `json:"severity"`
	MissingCapabilities []string `json:"missing_capabilities"`
}

// CapabilityGap counts how many areas miss a capability
type CapabilityGap struct {
	Capability string `json:"capability"`
	Count      int    `json:"count"`
}

// RegionOverview is the result of analyzing every region
type RegionOverview struct {
	TotalRegions       int              `json:"total_regions"`
	DesertRegionsCount int              `json:"desert_regions_count"`
	DesertRegions      []DesertSummary  `json:"desert_regions"`
	AllRegions         []RegionAnalysis `json:"all_regions"`
	MostCommonGaps     []CapabilityGap  `json:"most_common_gaps"`
}

// DistrictOverview is the result of analyzing every (region, district) pair
type DistrictOverview struct {
	TotalDistricts       int              `json:"total_districts"`
	DesertDistrictsCount int              `json:"desert_districts_count"`
	DesertDistricts      []DesertSummary  `json:"desert_districts"`
	AllDistricts         []RegionAnalysis `json:"all_districts"`
	MostCommonGaps       []CapabilityGap  `json:"most_common_gaps"`
}

// CapabilityDesertReport lists regions with and without one capability
type CapabilityDesertReport struct {
	Capability               string   `json:"capability"`
	CanonicalCapability      string   `json:"canonical_capability"`
	RegionsWithCapability    []string `json:"regions_with_capability"`
	RegionsWithoutCapability []string `json:"regions_without_capability"`
	CoveragePercentage       float64  `json:"coverage_percentage"`
}
