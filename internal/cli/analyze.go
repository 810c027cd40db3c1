package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	analyzeJSON      string
	analyzeDistricts bool
	analyzeMetrics   bool
	analyzeTimeout   time.Duration
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Detect medical deserts across regions and districts",
	Long: `Analyze reads facility records (JSON or YAML) and:
- Normalizes every claimed capability to the controlled vocabulary
- Validates dependencies, facility-type plausibility and evidence
- Scores each claim for trust
- Classifies every region and district by missing critical capabilities

Example:
  deserts analyze facilities.json
  deserts analyze north.yaml south.yaml --districts
  deserts analyze facilities.json --json report.json --min-trust 0.8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeJSON, "json", "", "write the full JSON report to this path (- for stdout)")
	analyzeCmd.Flags().BoolVar(&analyzeDistricts, "districts", false, "also print the district table")
	analyzeCmd.Flags().BoolVar(&analyzeMetrics, "metrics", false, "print run metrics in Prometheus text format to stderr")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 5*time.Minute, "overall analysis timeout (0 for none)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(analyzeTimeout)
	defer cancel()

	env, err := prepare(ctx, args)
	if err != nil {
		return err
	}

	report, err := env.pipeline.Run(ctx, env.profiles)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON != "" {
		if err := env.renderer.RenderJSON(report, analyzeJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if analyzeJSON != "-" {
			fmt.Fprintf(os.Stderr, "✓ Report written to %s\n", analyzeJSON)
		}
	}

	// a JSON report on stdout is the whole output
	if analyzeJSON != "-" {
		out := cmd.OutOrStdout()
		if err := env.renderer.RenderSummary(out, report); err != nil {
			return err
		}
		if analyzeDistricts {
			fmt.Fprintln(out)
			if err := env.renderer.RenderDistricts(out, report.Districts); err != nil {
				return err
			}
		}
	}

	if analyzeMetrics {
		if err := env.pipeline.Metrics().WriteText(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}
	return nil
}
