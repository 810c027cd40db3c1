package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	scoreJSON    string
	scoreTimeout time.Duration
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score <file>...",
	Short: "Print the trust score of every capability claim",
	Long: `Score validates and scores every claim and prints one line per claim
with its canonical capability, trust score and quality flags.

The JSON output carries the full component breakdown of each score.

Example:
  deserts score facilities.json
  deserts score facilities.json --json scores.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&scoreJSON, "json", "", "write the JSON batch scores to this path (- for stdout)")
	scoreCmd.Flags().DurationVar(&scoreTimeout, "timeout", 5*time.Minute, "overall timeout (0 for none)")
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(scoreTimeout)
	defer cancel()

	env, err := prepare(ctx, args)
	if err != nil {
		return err
	}

	result, err := env.pipeline.Process(ctx, env.profiles)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}

	if scoreJSON != "" {
		return env.renderer.RenderJSON(result.Scoring, scoreJSON)
	}
	return env.renderer.RenderScores(cmd.OutOrStdout(), result.Scoring)
}
