package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/greensynth/internal/export"
	"github.com/ppiankov/greensynth/internal/llm"
	"github.com/ppiankov/greensynth/internal/logging"
	"github.com/ppiankov/greensynth/internal/model"
)

const version = "greensynth v0.1.0"

var (
	cfgFile string
	verbose bool

	// Populated by PersistentPreRunE before any subcommand runs.
	cfg    = model.DefaultConfig()
	logger = zap.NewNop()

	// newProvider is swapped in tests.
	newProvider = llm.NewProvider
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "greensynth",
	Short: "greensynth - synthetic greenwashing training data generator",
	Long: `greensynth generates labeled examples of corporate environmental claims
(greenwashing, greenhushing, greenwishing and legitimate) with a language
model, validates them against a fixed technique taxonomy, and exports the
result as JSON Lines for classifier training.

Every record is checked for schema and range errors before export;
duplicates are removed and taxonomy mismatches are reported.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
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

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.greensynth/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	flags.String("model", "", "OpenAI model name")
	flags.String("api-key", "", "OpenAI API key (default: $OPENAI_API_KEY)")
	flags.String("log-format", "", "log format: console or json")
	flags.Bool("history", false, "skip claims already present in earlier exports")

	// Bind flags to viper
	_ = viper.BindPFlag("llm.model", flags.Lookup("model"))
	_ = viper.BindPFlag("llm.api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("history.enabled", flags.Lookup("history"))

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
		viper.AddConfigPath(filepath.Join(home, ".greensynth"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// GREENSYNTH_LLM_MODEL overrides llm.model, and so on.
	viper.SetEnvPrefix("GREENSYNTH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults(model.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so that environment overrides are seen by
// Unmarshal even when the config file does not mention them.
func setDefaults(d *model.Config) {
	viper.SetDefault("llm.provider", d.LLM.Provider)
	viper.SetDefault("llm.model", d.LLM.Model)
	viper.SetDefault("llm.api_key", d.LLM.APIKey)
	viper.SetDefault("llm.base_url", d.LLM.BaseURL)
	viper.SetDefault("llm.temperature", d.LLM.Temperature)
	viper.SetDefault("llm.max_tokens", d.LLM.MaxTokens)
	viper.SetDefault("llm.timeout", d.LLM.Timeout)
	viper.SetDefault("llm.http_proxy", d.LLM.HTTPProxy)
	viper.SetDefault("llm.https_proxy", d.LLM.HTTPSProxy)

	viper.SetDefault("generation.count", d.Generation.Count)
	viper.SetDefault("generation.industry", d.Generation.Industry)
	viper.SetDefault("generation.classification", d.Generation.Classification)
	viper.SetDefault("generation.source_type", d.Generation.SourceType)

	viper.SetDefault("output.dir", d.Output.Dir)
	viper.SetDefault("output.prefix", d.Output.Prefix)
	viper.SetDefault("output.show_claims", d.Output.ShowClaims)
	viper.SetDefault("output.max_errors", d.Output.MaxErrors)

	viper.SetDefault("history.enabled", d.History.Enabled)
	viper.SetDefault("history.pattern", d.History.Pattern)

	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.format", d.Logging.Format)
}

// loadConfig merges defaults, config file, environment and flags.
func loadConfig() (*model.Config, error) {
	c := model.DefaultConfig()
	if err := viper.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if c.History.Pattern == "" {
		prefix := c.Output.Prefix
		if prefix == "" {
			prefix = export.DefaultPrefix
		}
		c.History.Pattern = filepath.Join(c.Output.Dir, prefix+"_*.jsonl")
	}
	return c, nil
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	if verbose {
		c.Logging.Level = "debug"
	}

	l, err := logging.New(c.Logging.Level, c.Logging.Format)
	if err != nil {
		return err
	}

	cfg = c
	logger = l.With(zap.String("run_id", uuid.NewString()))
	return nil
}
