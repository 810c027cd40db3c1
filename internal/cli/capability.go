package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	capabilityName    string
	capabilityJSON    string
	capabilityTimeout time.Duration
)

// capabilityCmd represents the capability command
var capabilityCmd = &cobra.Command{
	Use:   "capability <file>...",
	Short: "Show which regions have a trusted capability",
	Long: `Capability lists the regions with and without at least one facility
offering the capability at or above the trust threshold.

The capability may be given as free text; it is normalized first.

Example:
  deserts capability facilities.json --capability "C-section"
  deserts capability facilities.json --capability icu --json icu.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCapability,
}

func init() {
	rootCmd.AddCommand(capabilityCmd)

	capabilityCmd.Flags().StringVarP(&capabilityName, "capability", "c", "", "capability to look for (free text)")
	capabilityCmd.Flags().StringVar(&capabilityJSON, "json", "", "write the JSON result to this path (- for stdout)")
	capabilityCmd.Flags().DurationVar(&capabilityTimeout, "timeout", 5*time.Minute, "overall timeout (0 for none)")
	_ = capabilityCmd.MarkFlagRequired("capability")
}

func runCapability(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(capabilityTimeout)
	defer cancel()

	env, err := prepare(ctx, args)
	if err != nil {
		return err
	}

	report, err := env.pipeline.Capability(ctx, env.profiles, capabilityName)
	if err != nil {
		return fmt.Errorf("capability analysis failed: %w", err)
	}

	if capabilityJSON != "" {
		return env.renderer.RenderJSON(report, capabilityJSON)
	}
	env.renderer.RenderCapability(cmd.OutOrStdout(), report)
	return nil
}
