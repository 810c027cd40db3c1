package model

// Config holds every tunable table and threshold. All of it is data:
// overriding a value never requires a code change.
type Config struct {
	Analysis    AnalysisConfig    `yaml:"analysis" mapstructure:"analysis"`
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Validation  ValidationConfig  `yaml:"validation" mapstructure:"validation"`
	Ontology    OntologyConfig    `yaml:"ontology" mapstructure:"ontology"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// AnalysisConfig controls desert classification
type AnalysisConfig struct {
	MinTrust   float64          `yaml:"min_trust" mapstructure:"min_trust"`
	Thresholds DesertThresholds `yaml:"thresholds" mapstructure:"thresholds"`
}

// DesertThresholds decide when an area counts as a desert
type DesertThresholds struct {
	CriticalMissing int `json:"critical_missing" yaml:"critical_missing" mapstructure:"critical_missing"`
	MinFacilities   int `json:"min_facilities" yaml:"min_facilities" mapstructure:"min_facilities"`
}

// Weights are the trust formula weights. The four positive weights sum to
// 0.9 and FlagsPenalty adds the remaining 0.1.
type Weights struct {
	Confidence            float64 `yaml:"confidence" mapstructure:"confidence"`
	EvidenceQuality       float64 `yaml:"evidence_quality" mapstructure:"evidence_quality"`
	DependencyConsistency float64 `yaml:"dependency_consistency" mapstructure:"dependency_consistency"`
	Availability          float64 `yaml:"availability" mapstructure:"availability"`
	FlagsPenalty          float64 `yaml:"flags_penalty" mapstructure:"flags_penalty"`
}

// Indicator is a weighted evidence pattern (RE2 syntax, matched case-insensitively)
type Indicator struct {
	Pattern string  `yaml:"pattern" mapstructure:"pattern"`
	Weight  float64 `yaml:"weight" mapstructure:"weight"`
}

// TrustTiers are the lower bounds of the high and medium tiers
type TrustTiers struct {
	High   float64 `yaml:"high" mapstructure:"high"`
	Medium float64 `yaml:"medium" mapstructure:"medium"`
}

// ScoringConfig configures the trust scorer
type ScoringConfig struct {
	Weights             Weights            `yaml:"weights" mapstructure:"weights"`
	Availability        map[string]float64 `yaml:"availability" mapstructure:"availability"`
	AvailabilityDefault float64            `yaml:"availability_default" mapstructure:"availability_default"`
	FlagPenalties       map[string]float64 `yaml:"flag_penalties" mapstructure:"flag_penalties"`
	FlagPenaltyDefault  float64            `yaml:"flag_penalty_default" mapstructure:"flag_penalty_default"`
	EvidenceBase        float64            `yaml:"evidence_base" mapstructure:"evidence_base"`
	EvidenceScale       float64            `yaml:"evidence_scale" mapstructure:"evidence_scale"`
	PositiveIndicators  []Indicator        `yaml:"positive_indicators" mapstructure:"positive_indicators"`
	NegativeIndicators  []Indicator        `yaml:"negative_indicators" mapstructure:"negative_indicators"`
	Tiers               TrustTiers         `yaml:"tiers" mapstructure:"tiers"`
}

// FacilityConstraint lists capabilities that are unlikely or typical for a facility category
type FacilityConstraint struct {
	Unlikely []string `yaml:"unlikely" mapstructure:"unlikely"`
	Typical  []string `yaml:"typical" mapstructure:"typical"`
}

// ValidationConfig configures the validator
type ValidationConfig struct {
	WeakPatterns        []string                      `yaml:"weak_patterns" mapstructure:"weak_patterns"`
	StrongPatterns      []string                      `yaml:"strong_patterns" mapstructure:"strong_patterns"`
	LowConfidence       float64                       `yaml:"low_confidence" mapstructure:"low_confidence"`
	HighConfidence      float64                       `yaml:"high_confidence" mapstructure:"high_confidence"`
	FacilityConstraints map[string]FacilityConstraint `yaml:"facility_constraints" mapstructure:"facility_constraints"`
}

// OntologyConfig points at an optional YAML file replacing the built-in tables
type OntologyConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LoggingConfig controls the slog handler
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Pretty  bool `yaml:"pretty" mapstructure:"pretty"`
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MinTrust:   0.7,
			Thresholds: DefaultThresholds(),
		},
		Scoring:    DefaultScoringConfig(),
		Validation: DefaultValidationConfig(),
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Pretty: true,
		},
	}
}

// DefaultThresholds returns the standard desert thresholds
func DefaultThresholds() DesertThresholds {
	return DesertThresholds{
		CriticalMissing: 3,
		MinFacilities:   2,
	}
}

// DefaultScoringConfig returns the standard trust formula
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: Weights{
			Confidence:            0.30,
			EvidenceQuality:       0.25,
			DependencyConsistency: 0.20,
			Availability:          0.15,
			FlagsPenalty:          0.10,
		},
		Availability: map[string]float64{
			string(AvailabilityAvailable):   1.0,
			string(AvailabilityLimited):     0.6,
			string(AvailabilityUnavailable): 0.2,
			string(AvailabilityUnknown):     0.3,
		},
		AvailabilityDefault: 0.5,
		FlagPenalties: map[string]float64{
			string(FlagContradiction):           0.6,
			string(FlagMissingDependencies):     0.5,
			string(FlagUnlikelyForFacilityType): 0.4,
			string(FlagWeakEvidence):            0.3,
			string(FlagLowConfidence):           0.2,
		},
		FlagPenaltyDefault: 0.1,
		EvidenceBase:       0.5,
		EvidenceScale:      10.0,
		PositiveIndicators: []Indicator{
			{Pattern: `\b\d+\s+(beds?|staff|doctors?|nurses?)\b`, Weight: 3.0},
			{Pattern: `\b(dr\.|doctor|specialist)\s+\w+\b`, Weight: 2.5},
			{Pattern: `\b24/7\b|\b24-hour\b|\bround-the-clock\b`, Weight: 2.0},
			{Pattern: `\b(equipped|certified|licensed|accredited)\b`, Weight: 2.0},
			{Pattern: `\b\d{4}\b`, Weight: 1.5},
			{Pattern: `\b(department|unit|ward|theatre)\b`, Weight: 1.5},
		},
		NegativeIndicators: []Indicator{
			{Pattern: `\b(may|might|possibly|perhaps|sometimes)\b`, Weight: -2.0},
			{Pattern: `\b(limited|minimal|basic|general)\b`, Weight: -1.5},
			{Pattern: `\b(no|none|not|lacking|absent)\b`, Weight: -1.0},
			{Pattern: `\bunknown\b`, Weight: -2.0},
		},
		Tiers: TrustTiers{
			High:   0.8,
			Medium: 0.5,
		},
	}
}

// DefaultValidationConfig returns the standard validation tables
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		WeakPatterns: []string{
			`\bmay\b`, `\bpossibly\b`, `\bperhaps\b`, `\bsometimes\b`,
			`\bgeneral\b`, `\bbasic\b`, `\blimited\b`, `\bminimal\b`,
		},
		StrongPatterns: []string{
			`\b\d+\b`,
			`\bspecialized\b`, `\bequipped\b`, `\bcertified\b`,
			`\b24/7\b`, `\b24-hour\b`, `\bround-the-clock\b`,
		},
		LowConfidence:  0.5,
		HighConfidence: 0.8,
		FacilityConstraints: map[string]FacilityConstraint{
			"chps": {
				Unlikely: []string{"intensive_care", "surgery", "ct_scan", "mri", "dialysis", "trauma_center", "blood_transfusion"},
				Typical:  []string{"consultation", "immunization", "family_planning", "prenatal_care"},
			},
			"clinic": {
				Unlikely: []string{"intensive_care", "cardiac_surgery", "neurosurgery", "trauma_center"},
				Typical:  []string{"consultation", "outpatient_care", "laboratory_services", "pharmacy"},
			},
			"health_centre": {
				Unlikely: []string{"intensive_care", "major_surgery", "cardiac_surgery", "neurosurgery", "dialysis"},
				Typical:  []string{"general_surgery", "laboratory_services", "xray", "maternity_delivery", "emergency_care"},
			},
			"health_center": {
				Unlikely: []string{"intensive_care", "major_surgery", "cardiac_surgery", "neurosurgery", "dialysis"},
				Typical:  []string{"general_surgery", "laboratory_services", "xray", "maternity_delivery", "emergency_care"},
			},
			"district_hospital": {
				Unlikely: []string{"cardiac_surgery", "neurosurgery"},
				Typical:  []string{"general_surgery", "intensive_care_unit", "laboratory_services", "xray", "ultrasound"},
			},
			"regional_hospital": {
				Unlikely: []string{},
				Typical:  []string{"major_surgery", "intensive_care_unit", "ct_scan", "emergency_care"},
			},
			"teaching_hospital": {
				Unlikely: []string{},
				Typical:  []string{"major_surgery", "intensive_care_unit", "cardiac_surgery", "neurosurgery", "oncology"},
			},
		},
	}
}
