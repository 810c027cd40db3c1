// Package desert aggregates trusted capability claims per region and
// district and classifies coverage gaps.
package desert

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ppiankov/deserts/internal/logging"
	"github.com/ppiankov/deserts/internal/model"
	"github.com/ppiankov/deserts/internal/ontology"
	"github.com/ppiankov/deserts/internal/score"
)

const reasonNoFacilities = "No facilities found"

// Detector classifies medical deserts. Whether a claim counts is always
// decided by its trust score against the caller's min_trust.
type Detector struct {
	ontology   *ontology.Ontology
	scorer     *score.Scorer
	thresholds model.DesertThresholds
	logger     *slog.Logger
}

// NewDetector creates a detector. It scores on a fork of scorer, so
// detection does not add to the scorer's counters.
func NewDetector(ont *ontology.Ontology, scorer *score.Scorer, thresholds model.DesertThresholds) *Detector {
	return &Detector{
		ontology:   ont,
		scorer:     scorer.Fork(),
		thresholds: thresholds,
		logger:     logging.New("detector"),
	}
}

// scope selects the facilities of one area
type scope struct {
	region     string
	district   string
	byDistrict bool
}

func (s scope) contains(p model.FacilityProfile) bool {
	if p.Region == "" || p.Region != s.region {
		return false
	}
	if !s.byDistrict {
		return true
	}
	return p.District != "" && p.District == s.district
}

// AnalyzeRegion classifies one region. An area with fewer than
// min_facilities facilities is a desert whatever its coverage.
func (d *Detector) AnalyzeRegion(profiles []model.FacilityProfile, region string, minTrust float64) model.RegionAnalysis {
	return d.analyze(profiles, scope{region: region}, minTrust)
}

// AnalyzeDistrict classifies one district of a region. Only the
// missing-capability threshold applies at district level.
func (d *Detector) AnalyzeDistrict(profiles []model.FacilityProfile, region, district string, minTrust float64) model.RegionAnalysis {
	return d.analyze(profiles, scope{region: region, district: district, byDistrict: true}, minTrust)
}

func (d *Detector) analyze(profiles []model.FacilityProfile, sc scope, minTrust float64) model.RegionAnalysis {
	critical := d.ontology.Critical()

	var members []model.FacilityProfile
	for _, p := range profiles {
		if sc.contains(p) {
			members = append(members, p)
		}
	}

	result := model.RegionAnalysis{
		Region:               sc.region,
		District:             sc.district,
		FacilityCount:        len(members),
		CapabilitiesPresent:  []string{},
		CapabilitiesMissing:  []string{},
		CapabilitiesLowTrust: []string{},
		Facilities:           []model.FacilitySummary{},
	}

	if len(members) == 0 {
		result.IsDesert = true
		result.Severity = model.SeverityCritical
		result.Reason = reasonNoFacilities
		result.CapabilitiesMissing = critical
		return result
	}

	trusted := make(map[string]bool)
	claimed := make(map[string]bool)
	for _, p := range members {
		fs := d.scorer.ScoreFacility(p)
		for _, c := range fs.Capabilities {
			if !d.ontology.IsCritical(c.CanonicalCapability) {
				continue
			}
			claimed[c.CanonicalCapability] = true
			if c.TrustScore >= minTrust {
				trusted[c.CanonicalCapability] = true
			}
		}
		result.Facilities = append(result.Facilities, model.FacilitySummary{
			FacilityID:     p.FacilityID,
			Name:           p.Name,
			FacilityType:   p.FacilityType,
			District:       p.District,
			AverageTrust:   fs.Statistics.AverageTrust,
			HighTrustCount: fs.Statistics.HighTrustCount,
		})
	}

	for _, name := range critical {
		switch {
		case trusted[name]:
			result.CapabilitiesPresent = append(result.CapabilitiesPresent, name)
		case claimed[name]:
			result.CapabilitiesLowTrust = append(result.CapabilitiesLowTrust, name)
			result.CapabilitiesMissing = append(result.CapabilitiesMissing, name)
		default:
			result.CapabilitiesMissing = append(result.CapabilitiesMissing, name)
		}
	}

	missing := len(result.CapabilitiesMissing)
	var reasons []string
	if missing >= d.thresholds.CriticalMissing {
		reasons = append(reasons, fmt.Sprintf("missing %d of %d critical capabilities", missing, len(critical)))
	}
	if !sc.byDistrict && len(members) < d.thresholds.MinFacilities {
		reasons = append(reasons, fmt.Sprintf("only %d facilities (minimum %d)", len(members), d.thresholds.MinFacilities))
	}

	result.IsDesert = len(reasons) > 0
	result.Reason = strings.Join(reasons, "; ")
	result.Severity = ClassifySeverity(missing)
	result.CoveragePercentage = percentage(len(result.CapabilitiesPresent), len(critical))
	return result
}

// AnalyzeAllRegions analyzes every distinct non-empty region in name order.
// Deserts are listed most severe first.
func (d *Detector) AnalyzeAllRegions(profiles []model.FacilityProfile, minTrust float64) model.RegionOverview {
	regions := distinct(profiles, func(p model.FacilityProfile) (string, bool) {
		return p.Region, p.Region != ""
	})

	overview := model.RegionOverview{
		TotalRegions:  len(regions),
		DesertRegions: []model.DesertSummary{},
		AllRegions:    make([]model.RegionAnalysis, 0, len(regions)),
	}
	for _, region := range regions {
		a := d.AnalyzeRegion(profiles, region, minTrust)
		overview.AllRegions = append(overview.AllRegions, a)
		if a.IsDesert {
			overview.DesertRegions = append(overview.DesertRegions, summarize(a))
		}
	}
	sortBySeverity(overview.DesertRegions)
	overview.DesertRegionsCount = len(overview.DesertRegions)
	overview.MostCommonGaps = commonGaps(overview.AllRegions)

	d.logger.Info("analyzed regions",
		"regions", overview.TotalRegions,
		"deserts", overview.DesertRegionsCount,
		"min_trust", minTrust,
	)
	return overview
}

// AnalyzeAllDistricts analyzes every (region, district) pair where both are
// non-empty, ordered by region then district
func (d *Detector) AnalyzeAllDistricts(profiles []model.FacilityProfile, minTrust float64) model.DistrictOverview {
	const sep = "\x00"
	pairs := distinct(profiles, func(p model.FacilityProfile) (string, bool) {
		return p.Region + sep + p.District, p.Region != "" && p.District != ""
	})

	overview := model.DistrictOverview{
		TotalDistricts:  len(pairs),
		DesertDistricts: []model.DesertSummary{},
		AllDistricts:    make([]model.RegionAnalysis, 0, len(pairs)),
	}
	for _, pair := range pairs {
		region, district, _ := strings.Cut(pair, sep)
		a := d.AnalyzeDistrict(profiles, region, district, minTrust)
		overview.AllDistricts = append(overview.AllDistricts, a)
		if a.IsDesert {
			overview.DesertDistricts = append(overview.DesertDistricts, summarize(a))
		}
	}
	sortBySeverity(overview.DesertDistricts)
	overview.DesertDistrictsCount = len(overview.DesertDistricts)
	overview.MostCommonGaps = commonGaps(overview.AllDistricts)

	d.logger.Info("analyzed districts",
		"districts", overview.TotalDistricts,
		"deserts", overview.DesertDistrictsCount,
	)
	return overview
}

// IdentifyCapabilityDeserts partitions regions by whether at least one of
// their facilities offers capability at min_trust. A region is only listed
// as lacking the capability when none of its facilities qualify.
func (d *Detector) IdentifyCapabilityDeserts(profiles []model.FacilityProfile, capability string, minTrust float64) model.CapabilityDesertReport {
	canonical := d.ontology.Normalize(capability)

	with := make(map[string]bool)
	without := make(map[string]bool)
	for _, p := range profiles {
		if p.Region == "" {
			continue
		}
		if d.offers(p, canonical, minTrust) {
			with[p.Region] = true
		} else {
			without[p.Region] = true
		}
	}
	for region := range with {
		delete(without, region)
	}

	report := model.CapabilityDesertReport{
		Capability:               capability,
		CanonicalCapability:      canonical,
		RegionsWithCapability:    sortedKeys(with),
		RegionsWithoutCapability: sortedKeys(without),
	}
	report.CoveragePercentage = percentage(len(with), len(with)+len(without))
	return report
}

func (d *Detector) offers(p model.FacilityProfile, canonical string, minTrust float64) bool {
	for _, c := range d.scorer.FilterHighTrust(p, minTrust) {
		if d.ontology.Normalize(c.CapabilityText) == canonical {
			return true
		}
	}
	return false
}

func summarize(a model.RegionAnalysis) model.DesertSummary {
	return model.DesertSummary{
		Region:              a.Region,
		District:            a.District,
		Severity:            a.Severity,
		MissingCapabilities: a.CapabilitiesMissing,
	}
}

func sortBySeverity(s []model.DesertSummary) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Severity.Rank() < s[j].Severity.Rank()
	})
}

// commonGaps counts missing capabilities across analyses, most frequent first
func commonGaps(analyses []model.RegionAnalysis) []model.CapabilityGap {
	counts := make(map[string]int)
	for _, a := range analyses {
		for _, c := range a.CapabilitiesMissing {
			counts[c]++
		}
	}

	gaps := make([]model.CapabilityGap, 0, len(counts))
	for c, n := range counts {
		gaps = append(gaps, model.CapabilityGap{Capability: c, Count: n})
	}
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Count != gaps[j].Count {
			return gaps[i].Count > gaps[j].Count
		}
		return gaps[i].Capability < gaps[j].Capability
	})
	return gaps
}

func distinct(profiles []model.FacilityProfile, key func(model.FacilityProfile) (string, bool)) []string {
	seen := make(map[string]bool)
	for _, p := range profiles {
		if k, ok := key(p); ok {
			seen[k] = true
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
