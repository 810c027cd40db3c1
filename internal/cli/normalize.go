package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ppiankov/deserts/internal/ontology"
)

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize <text>...",
	Short: "Map free-text capability names to canonical capabilities",
	Long: `Normalize resolves each argument against the ontology and prints the
canonical capability, whether it is critical and what it depends on.

Example:
  deserts normalize "C-section" "X-Ray" "dermatology clinic"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ont, err := ontology.FromFile(cfg.Ontology.File)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "TEXT\tCANONICAL\tMATCHED\tCRITICAL\tDEPENDS ON\n")
		for _, text := range args {
			canonical, matched := ont.Resolve(text)
			deps := strings.Join(ont.Dependencies(canonical), ",")
			if deps == "" {
				deps = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", text, canonical, yesNo(matched), yesNo(ont.IsCritical(canonical)), deps)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
