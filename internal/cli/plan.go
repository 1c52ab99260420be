package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/greensynth/internal/model"
	"github.com/ppiankov/greensynth/internal/pipeline"
	"github.com/ppiankov/greensynth/internal/prompt"
)

// Plan is a YAML file listing batch requests to run in order.
//
//	output: dataset.jsonl
//	batches:
//	  - count: 5
//	    industry: Energy
//	    classification: Greenhushing
//	    source_type: Annual Report
type Plan struct {
	Output  string      `yaml:"output"`
	Batches []PlanBatch `yaml:"batches"`
}

// PlanBatch is one request. Empty fields take the configured generation
// defaults.
type PlanBatch struct {
	Count          int    `yaml:"count"`
	Industry       string `yaml:"industry"`
	Classification string `yaml:"classification"`
	SourceType     string `yaml:"source_type"`
}

var planCmd = &cobra.Command{
	Use:   "plan <file.yaml>",
	Short: "Run a sequence of batches from a YAML plan and export them together",
	Long: `Plan runs every batch listed in a YAML plan, one model call per batch,
and exports all accepted claims to a single JSONL file. Any transport or
parse failure aborts the run before anything is written.

Example plan:
  output: mixed.jsonl
  batches:
    - {count: 5, industry: Energy, classification: Greenhushing, source_type: Annual Report}
    - {count: 3, industry: Fashion, classification: Greenwashing, source_type: Social Ad}`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

// loadPlan reads and validates a plan file.
func loadPlan(path string, defaults model.GenerationConfig) (*Plan, []prompt.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open plan: %w", err)
	}
	defer f.Close()

	var plan Plan
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&plan); err != nil {
		return nil, nil, fmt.Errorf("parse plan %s: %w", path, err)
	}
	if len(plan.Batches) == 0 {
		return nil, nil, errors.New("plan has no batches")
	}

	reqs := make([]prompt.Request, len(plan.Batches))
	for i, b := range plan.Batches {
		g := defaults
		if b.Count != 0 {
			g.Count = b.Count
		}
		if b.Industry != "" {
			g.Industry = b.Industry
		}
		if b.Classification != "" {
			g.Classification = b.Classification
		}
		if b.SourceType != "" {
			g.SourceType = b.SourceType
		}

		req, err := requestFromConfig(g)
		if err != nil {
			return nil, nil, fmt.Errorf("batch %d: %w", i+1, err)
		}
		reqs[i] = req
	}

	return &plan, reqs, nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	plan, reqs, err := loadPlan(args[0], cfg.Generation)
	if err != nil {
		return err
	}

	gen, err := newGenerator()
	if err != nil {
		return err
	}

	r := pipeline.NewRenderer(cmd.OutOrStdout(), cfg.Output.MaxErrors)

	var claims []model.Claim
	for i, req := range reqs {
		fmt.Fprintf(os.Stderr, "⚙️  [%d/%d] Generating %s...\n", i+1, len(reqs), req)

		res, err := gen.GenerateBatch(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("batch %d (%s): %w", i+1, req, err)
		}

		r.Section(fmt.Sprintf("Batch %d/%d", i+1, len(reqs)))
		r.Batch(res.Summary, res.Rejected)
		claims = append(claims, res.Claims...)
	}

	if cfg.Output.ShowClaims {
		r.Section("Generated Claims")
		r.Claims(claims)
	}

	path := outputPath(plan.Output, time.Now())
	return exportAndReport(r, claims, path)
}
