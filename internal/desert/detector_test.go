package desert

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ppiankov/deserts/internal/model"
	"github.com/ppiankov/deserts/internal/ontology"
	"github.com/ppiankov/deserts/internal/score"
)

const minTrust = 0.7

func newTestDetector(t *testing.T) (*Detector, *score.Scorer) {
	t.Helper()
	ont := ontology.Default()
	scorer := score.NewDefaultScorer(ont)
	return NewDetector(ont, scorer, model.DefaultThresholds()), scorer
}

// trusted scores about 0.9
func trusted(capability string) model.CapabilityClaim {
	return model.CapabilityClaim{
		CapabilityText: capability,
		Evidence:       []string{"24/7 unit with 10 staff certified"},
		Confidence:     1.0,
		Availability:   model.AvailabilityAvailable,
	}
}

// weak scores about 0.3
func weak(capability string) model.CapabilityClaim {
	return model.CapabilityClaim{
		CapabilityText: capability,
		Confidence:     0.2,
		Availability:   model.AvailabilityUnknown,
	}
}

func facility(id, region, district string, claims ...model.CapabilityClaim) model.FacilityProfile {
	return model.FacilityProfile{
		FacilityID:   id,
		Name:         "Facility " + id,
		Region:       region,
		District:     district,
		Capabilities: claims,
	}
}

func allCritical(claim func(string) model.CapabilityClaim) []model.CapabilityClaim {
	var out []model.CapabilityClaim
	for _, c := range ontology.Default().Critical() {
		out = append(out, claim(c))
	}
	return out
}

func TestAnalyzeRegion_TrustedCapabilityIsPresent(t *testing.T) {
	d, _ := newTestDetector(t)
	profiles := []model.FacilityProfile{
		facility("x1", "X", "", trusted("emergency_care")),
		facility("x2", "X", "", trusted("Emergency Department")),
		facility("x3", "X", "", trusted("pharmacy")),
	}

	a := d.AnalyzeRegion(profiles, "X", minTrust)

	if a.FacilityCount != 3 {
		t.Errorf("expected 3 facilities, got %d", a.FacilityCount)
	}
	if diff := cmp.Diff([]string{"emergency_care", "pharmacy"}, a.CapabilitiesPresent); diff != "" {
		t.Errorf("present mismatch (-want +got):\n%s", diff)
	}
	if len(a.CapabilitiesMissing) != 7 {
		t.Errorf("expected 7 missing, got %v", a.CapabilitiesMissing)
	}
	if !a.IsDesert || a.Severity != model.SeverityCritical {
		t.Errorf("expected critical desert, got desert=%v severity=%s", a.IsDesert, a.Severity)
	}
	if len(a.Facilities) != 3 {
		t.Errorf("expected 3 facility summaries, got %d", len(a.Facilities))
	}
}

func TestAnalyzeRegion_SingleFacilityIsAlwaysDesert(t *testing.T) {
	d, _ := newTestDetector(t)
	profiles := []model.FacilityProfile{
		facility("y1", "Y", "", allCritical(trusted)...),
	}

	a := d.AnalyzeRegion(profiles, "Y", minTrust)

	if !a.IsDesert {
		t.Error("a single-facility region must be a desert")
	}
	if len(a.CapabilitiesMissing) != 0 || a.CoveragePercentage != 100 {
		t.Errorf("expected full coverage, got missing=%v coverage=%.1f", a.CapabilitiesMissing, a.CoveragePercentage)
	}
	if a.Severity != model.SeverityMinimal {
		t.Errorf("expected minimal severity, got %s", a.Severity)
	}
	if !strings.Contains(a.Reason, "only 1 facilities (minimum 2)") {
		t.Errorf("expected facility-count reason, got %q", a.Reason)
	}
}

func TestAnalyzeRegion_NoFacilities(t *testing.T) {
	d, _ := newTestDetector(t)
	profiles := []model.FacilityProfile{facility("a", "Ashanti", "", trusted("pharmacy"))}

	for _, region := range []string{"Nowhere", ""} {
		a := d.AnalyzeRegion(profiles, region, minTrust)

		if !a.IsDesert || a.Severity != model.SeverityCritical || a.Reason != "No facilities found" {
			t.Errorf("%q: expected critical no-data result, got %+v", region, a)
		}
		if diff := cmp.Diff(ontology.Default().Critical(), a.CapabilitiesMissing); diff != "" {
			t.Errorf("%q: missing mismatch (-want +got):\n%s", region, diff)
		}
		if a.FacilityCount != 0 || a.CoveragePercentage != 0 {
			t.Errorf("%q: expected zero counts, got %+v", region, a)
		}
	}
}

func TestAnalyzeRegion_LowTrust(t *testing.T) {
	d, _ := newTestDetector(t)
	profiles := []model.FacilityProfile{
		facility("a1", "A", "", weak("pharmacy"), weak("lab")),
		facility("a2", "A", "", trusted("pharmacy")),
	}

	a := d.AnalyzeRegion(profiles, "A", minTrust)

	if diff := cmp.Diff([]string{"pharmacy"}, a.CapabilitiesPresent); diff != "" {
		t.Errorf("present mismatch (-want +got):\n%s", diff)
	}
	// pharmacy reached min_trust elsewhere, so only the lab claim is low trust
	if diff := cmp.Diff([]string{"laboratory_services"}, a.CapabilitiesLowTrust); diff != "" {
		t.Errorf("low trust mismatch (-want +got):\n%s", diff)
	}
	for _, m := range a.CapabilitiesMissing {
		if m == "pharmacy" {
			t.Error("present capability listed as missing")
		}
	}
}

func TestAnalyzeRegion_PresentAndMissingPartitionCriticalSet(t *testing.T) {
	d, _ := newTestDetector(t)
	profiles := []model.FacilityProfile{
		facility("p1", "P", "", trusted("A&E"), weak("icu"), trusted("maternity")),
		facility("p2", "P", "", weak("pharmacy"), trusted("Zzyzx Quokka")),
	}

	a := d.AnalyzeRegion(profiles, "P", minTrust)

	seen := map[string]int{}
	for _, c := range a.CapabilitiesPresent {
		seen[c]++
	}
	for _, c := range a.CapabilitiesMissing {
		seen[c]++
	}
	for _, c := range ontology.Default().Critical() {
		if seen[c] != 1 {
			t.Errorf("%s appears %d times across present and missing", c, seen[c])
		}
	}
	if len(seen) != 9 {
		t.Errorf("expected only critical capabilities, got %v", seen)
	}
	if want := 2.0 / 9.0 * 100; math.Abs(a.CoveragePercentage-want) > 1e-9 {
		t.Errorf("expected coverage %.4f, got %.4f", want, a.CoveragePercentage)
	}
}

func TestAnalyzeRegion_DoesNotTouchScorerCounters(t *testing.T) {
	d, scorer := newTestDetector(t)

	d.AnalyzeRegion([]model.FacilityProfile{facility("a", "A", "", trusted("pharmacy"))}, "A", minTrust)

	if got := scorer.Stats().TotalScored; got != 0 {
		t.Errorf("expected detection to score on a fork, parent counted %d", got)
	}
}

func TestClassifySeverity(t *testing.T) {
	tests := map[int]model.Severity{
		0: model.SeverityMinimal,
		1: model.SeverityMinimal,
		2: model.SeverityModerate,
		3: model.SeverityModerate,
		4: model.SeveritySevere,
		5: model.SeveritySevere,
		6: model.SeverityCritical,
		9: model.SeverityCritical,
	}
	for missing, want := range tests {
		if got := ClassifySeverity(missing); got != want {
			t.Errorf("ClassifySeverity(%d) = %s, want %s", missing, got, want)
		}
	}
}

func TestClassifySeverity_Monotone(t *testing.T) {
	for m := 0; m < 20; m++ {
		if ClassifySeverity(m).Rank() < ClassifySeverity(m+1).Rank() {
			t.Errorf("severity(%d)=%s is more severe than severity(%d)=%s",
				m, ClassifySeverity(m), m+1, ClassifySeverity(m+1))
		}
	}
}

func TestAnalyzeDistrict_NoFacilityCountRule(t *testing.T) {
	d, _ := newTestDetector(t)
	profiles := []model.FacilityProfile{
		facility("d1", "Northern", "Tamale", allCritical(trusted)...),
		facility("d2", "Northern", "Yendi", trusted("pharmacy")),
	}

	a := d.AnalyzeDistrict(profiles, "Northern", "Tamale", minTrust)
	if a.IsDesert {
		t.Errorf("single fully covered district should not be a desert: %+v", a)
	}
	if a.District != "Tamale" || a.FacilityCount != 1 {
		t.Errorf("unexpected scope: %s/%d", a.District, a.FacilityCount)
	}

	b := d.AnalyzeDistrict(profiles, "Northern", "Yendi", minTrust)
	if !b.IsDesert || b.Severity != model.SeverityCritical {
		t.Errorf("expected critical desert for Yendi, got %+v", b)
	}

	if c := d.AnalyzeDistrict(profiles, "Ashanti", "Tamale", minTrust); c.Reason != "No facilities found" {
		t.Errorf("district must match within its region, got %+v", c)
	}
}

func overviewFixtures() []model.FacilityProfile {
	firstFive := []model.CapabilityClaim{
		trusted("emergency_care"), trusted("maternity_delivery"), trusted("general_surgery"),
		trusted("blood_transfusion"), trusted("pediatric_care"),
	}
	return []model.FacilityProfile{
		facility("ue1", "Upper East", "Bawku West", weak("pharmacy")),
		facility("n1", "Northern", "Tamale", firstFive...),
		facility("n2", "Northern", "Savelugu", trusted("emergency_care")),
		facility("a1", "Ashanti", "Kumasi", allCritical(trusted)...),
		facility("a2", "Ashanti", "Kumasi", trusted("pharmacy")),
		facility("nr", "", "Nowhere", trusted("pharmacy")),
	}
}

func TestAnalyzeAllRegions(t *testing.T) {
	d, _ := newTestDetector(t)

	o := d.AnalyzeAllRegions(overviewFixtures(), minTrust)

	if o.TotalRegions != 3 {
		t.Fatalf("expected 3 regions, got %d", o.TotalRegions)
	}
	var order []string
	for _, a := range o.AllRegions {
		order = append(order, a.Region)
	}
	if diff := cmp.Diff([]string{"Ashanti", "Northern", "Upper East"}, order); diff != "" {
		t.Errorf("region order mismatch (-want +got):\n%s", diff)
	}

	want := []model.DesertSummary{
		{Region: "Upper East", Severity: model.SeverityCritical, MissingCapabilities: ontology.Default().Critical()},
		{Region: "Northern", Severity: model.SeveritySevere, MissingCapabilities: []string{
			"intensive_care_unit", "pharmacy", "laboratory_services", "ambulance_service",
		}},
	}
	if diff := cmp.Diff(want, o.DesertRegions); diff != "" {
		t.Errorf("desert regions mismatch (-want +got):\n%s", diff)
	}
	if o.DesertRegionsCount != 2 {
		t.Errorf("expected 2 deserts, got %d", o.DesertRegionsCount)
	}

	wantGaps := []model.CapabilityGap{
		{Capability: "ambulance_service", Count: 2},
		{Capability: "intensive_care_unit", Count: 2},
		{Capability: "laboratory_services", Count: 2},
		{Capability: "pharmacy", Count: 2},
		{Capability: "blood_transfusion", Count: 1},
		{Capability: "emergency_care", Count: 1},
		{Capability: "general_surgery", Count: 1},
		{Capability: "maternity_delivery", Count: 1},
		{Capability: "pediatric_care", Count: 1},
	}
	if diff := cmp.Diff(wantGaps, o.MostCommonGaps); diff != "" {
		t.Errorf("common gaps mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeAllRegions_Empty(t *testing.T) {
	d, _ := newTestDetector(t)

	o := d.AnalyzeAllRegions(nil, minTrust)

	if o.TotalRegions != 0 || len(o.AllRegions) != 0 || len(o.DesertRegions) != 0 || len(o.MostCommonGaps) != 0 {
		t.Errorf("expected empty overview, got %+v", o)
	}
	if o.AllRegions == nil || o.DesertRegions == nil || o.MostCommonGaps == nil {
		t.Error("expected non-nil lists")
	}
}

func TestAnalyzeAllDistricts(t *testing.T) {
	d, _ := newTestDetector(t)

	o := d.AnalyzeAllDistricts(overviewFixtures(), minTrust)

	type key struct{ region, district string }
	var got []key
	for _, a := range o.AllDistricts {
		got = append(got, key{a.Region, a.District})
	}
	want := []key{
		{"Ashanti", "Kumasi"},
		{"Northern", "Savelugu"},
		{"Northern", "Tamale"},
		{"Upper East", "Bawku West"},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(key{})); diff != "" {
		t.Errorf("district order mismatch (-want +got):\n%s", diff)
	}
	if o.TotalDistricts != 4 || o.DesertDistrictsCount != 3 {
		t.Errorf("expected 4 districts and 3 deserts, got %d/%d", o.TotalDistricts, o.DesertDistrictsCount)
	}
	for i := 1; i < len(o.DesertDistricts); i++ {
		if o.DesertDistricts[i-1].Severity.Rank() > o.DesertDistricts[i].Severity.Rank() {
			t.Errorf("desert districts not sorted by severity at %d", i)
		}
	}
}

func TestIdentifyCapabilityDeserts(t *testing.T) {
	d, _ := newTestDetector(t)
	profiles := []model.FacilityProfile{
		facility("m1", "Mixed", "", trusted("emergency_care")),
		facility("m2", "Mixed", "", weak("emergency_care")),
		facility("w1", "Weak", "", weak("A&E")),
		facility("n1", "None", "", trusted("pharmacy")),
		facility("x", "", "", trusted("emergency_care")),
	}

	r := d.IdentifyCapabilityDeserts(profiles, "A&E", minTrust)

	if r.Capability != "A&E" || r.CanonicalCapability != "emergency_care" {
		t.Errorf("unexpected capability names: %q/%q", r.Capability, r.CanonicalCapability)
	}
	if diff := cmp.Diff([]string{"Mixed"}, r.RegionsWithCapability); diff != "" {
		t.Errorf("with mismatch (-want +got):\n%s", diff)
	}
	// Mixed has one qualifying facility, so it is not a desert for the capability
	if diff := cmp.Diff([]string{"None", "Weak"}, r.RegionsWithoutCapability); diff != "" {
		t.Errorf("without mismatch (-want +got):\n%s", diff)
	}
	if want := 100.0 / 3.0; math.Abs(r.CoveragePercentage-want) > 1e-9 {
		t.Errorf("expected coverage %.4f, got %.4f", want, r.CoveragePercentage)
	}
}

func TestIdentifyCapabilityDeserts_Empty(t *testing.T) {
	d, _ := newTestDetector(t)

	r := d.IdentifyCapabilityDeserts(nil, "icu", minTrust)

	if r.CoveragePercentage != 0 {
		t.Errorf("expected 0 coverage, got %.2f", r.CoveragePercentage)
	}
	if r.RegionsWithCapability == nil || r.RegionsWithoutCapability == nil {
		t.Error("expected non-nil lists")
	}
}
