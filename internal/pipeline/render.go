package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ppiankov/deserts/internal/model"
)

// Renderer writes results as JSON and human-readable summaries
type Renderer struct {
	pretty bool
}

// NewRenderer creates a renderer; pretty indents JSON output
func NewRenderer(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// WriteJSON encodes v to w
func (r *Renderer) WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if r.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// RenderJSON writes v to path, or to stdout when path is "" or "-"
func (r *Renderer) RenderJSON(v any, path string) (err error) {
	if path == "" || path == "-" {
		return r.WriteJSON(os.Stdout, v)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	if err := r.WriteJSON(f, v); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints the region table, the deserts and the most common gaps
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) error {
	fmt.Fprintf(w, "Run %s (min_trust %.2f)\n", report.RunID, report.MinTrust)
	fmt.Fprintf(w, "Facilities: %d  Capabilities: %d  Invalid: %d  Average trust: %.2f\n\n",
		report.Validation.TotalFacilities,
		report.Validation.TotalCapabilities,
		report.Validation.InvalidCapabilities,
		report.Scoring.AggregateStatistics.AverageTrust,
	)

	if err := renderAreas(w, "REGION", report.Regions.AllRegions); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nDesert regions: %d of %d\n", report.Regions.DesertRegionsCount, report.Regions.TotalRegions)
	for _, d := range report.Regions.DesertRegions {
		fmt.Fprintf(w, "  [%s] %s: missing %s\n", strings.ToUpper(string(d.Severity)), d.Region, strings.Join(d.MissingCapabilities, ", "))
	}
	fmt.Fprintf(w, "Desert districts: %d of %d\n", report.Districts.DesertDistrictsCount, report.Districts.TotalDistricts)

	if len(report.Regions.MostCommonGaps) > 0 {
		fmt.Fprintf(w, "\nMost common gaps:\n")
		for _, g := range report.Regions.MostCommonGaps {
			fmt.Fprintf(w, "  %-22s %d\n", g.Capability, g.Count)
		}
	}
	return nil
}

// RenderDistricts prints the district table and the desert districts
func (r *Renderer) RenderDistricts(w io.Writer, overview model.DistrictOverview) error {
	if err := renderAreas(w, "REGION / DISTRICT", overview.AllDistricts); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nDesert districts: %d of %d\n", overview.DesertDistrictsCount, overview.TotalDistricts)
	for _, d := range overview.DesertDistricts {
		fmt.Fprintf(w, "  [%s] %s / %s: missing %s\n", strings.ToUpper(string(d.Severity)), d.Region, d.District, strings.Join(d.MissingCapabilities, ", "))
	}
	return nil
}

func renderAreas(w io.Writer, label string, areas []model.RegionAnalysis) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tFACILITIES\tCOVERAGE\tSEVERITY\tDESERT\n", label)
	for _, a := range areas {
		name := a.Region
		if a.District != "" {
			name += " / " + a.District
		}
		fmt.Fprintf(tw, "%s\t%d\t%.0f%%\t%s\t%s\n", name, a.FacilityCount, a.CoveragePercentage, a.Severity, yesNo(a.IsDesert))
	}
	return tw.Flush()
}

// RenderCapability prints a capability coverage report
func (r *Renderer) RenderCapability(w io.Writer, report model.CapabilityDesertReport) {
	fmt.Fprintf(w, "Capability: %s (%s)\n", report.Capability, report.CanonicalCapability)
	fmt.Fprintf(w, "Coverage:   %.1f%% of regions\n", report.CoveragePercentage)
	fmt.Fprintf(w, "With:       %s\n", listOrNone(report.RegionsWithCapability))
	fmt.Fprintf(w, "Without:    %s\n", listOrNone(report.RegionsWithoutCapability))
}

// RenderValidation prints batch validation totals and the suspicious facilities
func (r *Renderer) RenderValidation(w io.Writer, v model.BatchValidation, suspicious []model.SuspiciousFacility) {
	fmt.Fprintf(w, "Facilities: %d (%d with warnings)\n", v.TotalFacilities, v.FacilitiesWithWarnings)
	fmt.Fprintf(w, "Capabilities: %d valid, %d invalid\n", v.ValidCapabilities, v.InvalidCapabilities)
	st := v.ValidationStats
	fmt.Fprintf(w, "Dependency violations: %d  Type mismatches: %d  Weak evidence: %d  Low confidence: %d  Unverified: %d\n",
		st.DependencyViolations, st.FacilityTypeMismatches, st.WeakEvidence, st.LowConfidence, st.Unverified)

	for _, s := range suspicious {
		name := s.FacilityName
		if name == "" {
			name = s.FacilityID
		}
		fmt.Fprintf(w, "\n%s (%d warnings)\n", name, s.WarningCount)
		for _, warning := range s.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
}

// RenderScores prints one line per scored claim
func (r *Renderer) RenderScores(w io.Writer, b model.BatchScore) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "FACILITY\tCAPABILITY\tTRUST\tFLAGS\n")
	for _, fs := range b.FacilityScores {
		for _, c := range fs.Capabilities {
			flags := make([]string, len(c.Flags))
			for i, f := range c.Flags {
				flags[i] = string(f)
			}
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\n", fs.FacilityID, c.CanonicalCapability, c.TrustScore, strings.Join(flags, ","))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	st := b.AggregateStatistics
	fmt.Fprintf(w, "\n%d claims: average %.2f, median %.2f, high %d, medium %d, low %d\n",
		st.TotalCapabilities, st.AverageTrust, st.MedianTrust, st.HighTrustCount, st.MediumTrustCount, st.LowTrustCount)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func listOrNone(s []string) string {
	if len(s) == 0 {
		return "(none)"
	}
	return strings.Join(s, ", ")
}
