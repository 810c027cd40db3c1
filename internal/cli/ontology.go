package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ppiankov/deserts/internal/ontology"
)

var ontologyFile string

// ontologyCmd represents the ontology command
var ontologyCmd = &cobra.Command{
	Use:   "ontology",
	Short: "Inspect and check the capability ontology",
}

var ontologyCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check an ontology file for consistency",
	Long: `Check loads an ontology and verifies that every dependency and critical
capability refers to a catalog entry, that no synonym maps to two
capabilities and that the dependency graph has no cycles.

Without --file the configured ontology (or the built-in one) is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ont, source, err := resolveOntology()
		if err != nil {
			return err
		}
		if err := ont.Check(); err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d capabilities, %d critical\n", source, len(ont.Entries()), len(ont.Critical()))
		return nil
	},
}

var ontologyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List canonical capabilities",
	RunE: func(cmd *cobra.Command, args []string) error {
		ont, _, err := resolveOntology()
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "CAPABILITY\tCRITICAL\tDESCRIPTION\n")
		for _, e := range ont.Entries() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.CanonicalName, yesNo(e.IsCritical), e.Description)
		}
		return tw.Flush()
	},
}

var ontologyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the built-in ontology as YAML",
	Long:  `Export prints the built-in ontology in the format accepted by ontology.file and --ontology.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return ontology.Encode(cmd.OutOrStdout(), ontology.DefaultDocument())
	},
}

// resolveOntology loads --file, else the configured ontology file, else the
// built-in ontology. The second result names the source.
func resolveOntology() (*ontology.Ontology, string, error) {
	path := ontologyFile
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, "", err
		}
		path = cfg.Ontology.File
	}

	ont, err := ontology.FromFile(path)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		path = "built-in ontology"
	}
	return ont, path, nil
}

func init() {
	rootCmd.AddCommand(ontologyCmd)
	ontologyCmd.AddCommand(ontologyCheckCmd)
	ontologyCmd.AddCommand(ontologyListCmd)
	ontologyCmd.AddCommand(ontologyExportCmd)

	ontologyCheckCmd.Flags().StringVarP(&ontologyFile, "file", "f", "", "ontology YAML file to check")
	ontologyListCmd.Flags().StringVarP(&ontologyFile, "file", "f", "", "ontology YAML file to list")
}
