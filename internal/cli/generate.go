package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/greensynth/internal/cache"
	"github.com/ppiankov/greensynth/internal/export"
	"github.com/ppiankov/greensynth/internal/llm"
	"github.com/ppiankov/greensynth/internal/model"
	"github.com/ppiankov/greensynth/internal/pipeline"
	"github.com/ppiankov/greensynth/internal/prompt"
)

var outFile string

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one batch of labeled claims and export it",
	Long: `Generate asks the model for a batch of claims for one industry,
classification and source type, validates every record, removes duplicates,
prints statistics and taxonomy mismatches, and writes the result as JSONL.

Example:
  greensynth generate -n 5 --industry Energy --classification Greenhushing
  greensynth generate --source-type "Social Ad" --out ads.jsonl
  greensynth generate --history --model gpt-4o`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.IntP("count", "n", 0, "number of claims to request")
	flags.String("industry", "", "industry: Fashion, Energy, Finance, FMCG")
	flags.String("classification", "", "classification: Greenwashing, Greenhushing, Greenwishing, Legitimate")
	flags.String("source-type", "", "source type: Annual Report, Social Ad, Press Release, Packaging")
	flags.StringVarP(&outFile, "out", "o", "", "output JSONL path (default: <output.dir>/<prefix>_YYYYMMDD_HHMMSS.jsonl)")

	_ = viper.BindPFlag("generation.count", flags.Lookup("count"))
	_ = viper.BindPFlag("generation.industry", flags.Lookup("industry"))
	_ = viper.BindPFlag("generation.classification", flags.Lookup("classification"))
	_ = viper.BindPFlag("generation.source_type", flags.Lookup("source-type"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req, err := requestFromConfig(cfg.Generation)
	if err != nil {
		return err
	}

	gen, err := newGenerator()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⚙️  Generating %s...\n", req)

	res, err := gen.GenerateBatch(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	r := pipeline.NewRenderer(cmd.OutOrStdout(), cfg.Output.MaxErrors)
	if cfg.Output.ShowClaims {
		r.Section("Generated Claims")
		r.Claims(res.Claims)
	}
	r.Section("Batch")
	r.Batch(res.Summary, res.Rejected)

	return exportAndReport(r, res.Claims, outputPath(outFile, time.Now()))
}

// exportAndReport writes claims and prints the statistics of what was written.
func exportAndReport(r *pipeline.Renderer, claims []model.Claim, path string) error {
	exp, err := newExporter()
	if err != nil {
		return err
	}

	out, err := exp.Export(claims, path)
	if err != nil {
		return err
	}

	r.Section("Validation Statistics")
	r.Stats(out.Stats)
	fmt.Fprintln(r.Writer())
	r.Export(out.Summary)
	return nil
}

func newGenerator() (*pipeline.Generator, error) {
	provider, err := newProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, err
	}
	return pipeline.NewGenerator(provider, logger), nil
}

func newExporter() (*pipeline.Exporter, error) {
	var history *cache.History
	if cfg.History.Enabled {
		history = cache.NewHistory(logger)
		n, err := history.LoadGlob(cfg.History.Pattern)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "✓ Loaded %d previously exported snippets (%s)\n", n, cfg.History.Pattern)
	}
	return pipeline.NewExporter(history, logger), nil
}

// requestFromConfig validates the configured batch request.
func requestFromConfig(g model.GenerationConfig) (prompt.Request, error) {
	industry, err := model.ParseIndustry(g.Industry)
	if err != nil {
		return prompt.Request{}, err
	}
	class, err := model.ParseClassification(g.Classification)
	if err != nil {
		return prompt.Request{}, err
	}
	source, err := model.ParseSourceType(g.SourceType)
	if err != nil {
		return prompt.Request{}, err
	}

	req := prompt.Request{
		Count:          g.Count,
		Industry:       industry,
		Classification: class,
		SourceType:     source,
	}
	if err := req.Validate(); err != nil {
		return prompt.Request{}, err
	}
	return req, nil
}

// outputPath returns explicit when set, otherwise a timestamped name in the
// configured output directory.
func outputPath(explicit string, now time.Time) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(cfg.Output.Dir, export.DefaultFilename(cfg.Output.Prefix, now))
}
