package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/greensynth/internal/llm"
)

var checkTimeout time.Duration

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the API credential and endpoint",
	Long: `Check resolves the API key (config, GREENSYNTH_LLM_API_KEY, OPENAI_API_KEY,
OPENAI_API_KEY_STAGING) and lists models on the configured endpoint. No
completion is requested.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := newProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
		defer cancel()

		if err := provider.Ping(ctx); err != nil {
			logger.Warn("api check failed", zap.String("provider", provider.Name()), zap.Error(err))
			return fmt.Errorf("%s endpoint not reachable or credential rejected: %w", provider.Name(), err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s reachable (model: %s)\n", provider.Name(), cfg.LLM.Model)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 15*time.Second, "request timeout")
}
