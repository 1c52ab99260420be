package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/greensynth/internal/export"
	"github.com/ppiankov/greensynth/internal/model"
	"github.com/ppiankov/greensynth/internal/pipeline"
	"github.com/ppiankov/greensynth/internal/stats"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats <file.jsonl>",
	Short: "Print statistics and taxonomy mismatches for an exported dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print statistics as JSON")
}

// datasetReport is the --json output of the stats command.
type datasetReport struct {
	Path         string      `json:"path"`
	Stats        model.Stats `json:"stats"`
	InvalidLines []string    `json:"invalid_lines"`
}

func runStats(cmd *cobra.Command, args []string) error {
	path := args[0]

	claims, invalid, err := export.ReadJSONL(path)
	if err != nil {
		return err
	}
	for _, e := range invalid {
		logger.Warn("invalid record in dataset", zap.Int("line", e.Line), zap.Error(e.Err))
	}

	st := stats.Calculate(claims)

	if statsJSON {
		report := datasetReport{Path: path, Stats: st, InvalidLines: []string{}}
		for _, e := range invalid {
			report.InvalidLines = append(report.InvalidLines, e.Error())
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	r := pipeline.NewRenderer(cmd.OutOrStdout(), cfg.Output.MaxErrors)
	r.Section("Dataset: " + path)
	r.Stats(st)
	if len(invalid) > 0 {
		fmt.Fprintf(os.Stderr, "\n✗ %d invalid lines skipped\n", len(invalid))
	}
	return nil
}
