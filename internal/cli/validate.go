package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/deserts/internal/pipeline"
)

var (
	validateSuspicious int
	validateJSON       string
	validateTimeout    time.Duration
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate capability claims and list suspicious facilities",
	Long: `Validate checks every capability claim for missing dependencies,
facility-type plausibility, weak evidence, low confidence, availability
and unknown vocabulary, then lists the facilities with the most warnings.

Example:
  deserts validate facilities.json
  deserts validate facilities.json --suspicious 5 --json validation.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().IntVar(&validateSuspicious, "suspicious", 3, "warning count at which a facility is listed")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "write the JSON batch validation to this path (- for stdout)")
	validateCmd.Flags().DurationVar(&validateTimeout, "timeout", 5*time.Minute, "overall timeout (0 for none)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(validateTimeout)
	defer cancel()

	env, err := prepare(ctx, args)
	if err != nil {
		return err
	}

	result, err := env.pipeline.Process(ctx, env.profiles)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if validateJSON != "" {
		return env.renderer.RenderJSON(result.Validation, validateJSON)
	}
	suspicious := pipeline.Suspicious(result.Validation, validateSuspicious)
	env.renderer.RenderValidation(cmd.OutOrStdout(), result.Validation, suspicious)
	return nil
}
