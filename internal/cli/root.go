package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/deserts/internal/logging"
	"github.com/ppiankov/deserts/internal/model"
)

const version = "deserts v0.3.0"

var (
	cfgFile string
	verbose bool
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// envKeys are the settings that can be overridden from DESERTS_* variables
var envKeys = []string{
	"analysis.min_trust",
	"analysis.thresholds.critical_missing",
	"analysis.thresholds.min_facilities",
	"ontology.file",
	"concurrency.workers",
	"logging.level",
	"logging.format",
	"output.pretty",
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "deserts",
	Short: "Deserts - medical desert detection from facility capability claims",
	Long: `Deserts analyzes healthcare facility records and finds medical deserts:
regions and districts where critical capabilities are missing or only
weakly evidenced.

Each claimed capability is normalized against a controlled vocabulary,
validated for dependencies and plausibility, and given a transparent
trust score. Only capabilities at or above the trust threshold count as
present when areas are classified.

Deserts reports what the records support. It does not verify facilities.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		level := logging.ParseLevel(cfg.Logging.Level)
		if verbose {
			level = logging.ParseLevel("debug")
		}
		logging.Init(level, cfg.Logging.Format, cmd.ErrOrStderr())
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.deserts/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	flags.String("ontology", "", "ontology YAML file (default: built-in)")
	flags.Float64("min-trust", 0.7, "trust score a capability needs to count as present")
	flags.Int("workers", 4, "number of parallel workers")

	_ = viper.BindPFlag("output.verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("ontology.file", flags.Lookup("ontology"))
	_ = viper.BindPFlag("analysis.min_trust", flags.Lookup("min-trust"))
	_ = viper.BindPFlag("concurrency.workers", flags.Lookup("workers"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".deserts"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// DESERTS_ANALYSIS_MIN_TRUST overrides analysis.min_trust
	viper.SetEnvPrefix("DESERTS")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	for _, key := range envKeys {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig overlays the config file, environment and bound flags on the
// built-in defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
