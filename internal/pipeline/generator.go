// Package pipeline wires prompt construction, the model call, parsing,
// validation and export into the generate and export operations.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/greensynth/internal/extract"
	"github.com/ppiankov/greensynth/internal/llm"
	"github.com/ppiankov/greensynth/internal/model"
	"github.com/ppiankov/greensynth/internal/prompt"
	"github.com/ppiankov/greensynth/internal/validate"
)

// Generator runs one generation request end to end: prompt, model call,
// parse and per-record validation.
type Generator struct {
	provider  llm.Provider
	builder   *prompt.Builder
	parser    *extract.Parser
	validator *validate.Validator
	logger    *zap.Logger
}

// NewGenerator creates a generator that calls provider.
func NewGenerator(provider llm.Provider, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		provider:  provider,
		builder:   prompt.NewBuilder(),
		parser:    extract.NewParser(logger),
		validator: validate.NewValidator(logger),
		logger:    logger,
	}
}

// BatchResult is the outcome of one generation request.
type BatchResult struct {
	Claims   []model.Claim
	Rejected []*validate.RecordError
	Summary  model.BatchSummary
	Strategy string // parse strategy that recovered the payload
	Model    string
}

// GenerateBatch asks the model for req.Count claims. Transport and parse
// failures abort the batch and are returned as *llm.TransportError and
// *extract.ParseError. Individual bad records are dropped and reported in
// the result. At most req.Count claims are returned.
func (g *Generator) GenerateBatch(ctx context.Context, req prompt.Request) (*BatchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	p := g.builder.Build(req)

	g.logger.Info("requesting claims",
		zap.String("provider", g.provider.Name()),
		zap.Stringer("request", req))

	resp, err := g.provider.Generate(ctx, llm.GenerateRequest{
		System:     p.System,
		User:       p.User,
		JSONObject: req.Count == 1,
	})
	if err != nil {
		g.logger.Error("model call failed", zap.Error(err))
		return nil, err
	}

	parsed, err := g.parser.Parse(resp.Content, req.Count)
	if err != nil {
		g.logger.Error("could not parse model response", zap.Error(err))
		return nil, err
	}

	claims, rejected := g.validator.Validate(parsed.Candidates)

	result := &BatchResult{
		Claims:   claims,
		Rejected: rejected,
		Strategy: parsed.Strategy,
		Model:    resp.Model,
		Summary: model.BatchSummary{
			Request:   req.String(),
			Received:  len(parsed.Candidates),
			Truncated: parsed.Truncated,
			Accepted:  len(claims),
			Rejected:  len(rejected),
		},
	}

	g.logger.Info("batch complete",
		zap.String("model", resp.Model),
		zap.String("strategy", parsed.Strategy),
		zap.Int("tokens", resp.TokensUsed),
		zap.Int("accepted", result.Summary.Accepted),
		zap.Int("rejected", result.Summary.Rejected),
		zap.Int("truncated", result.Summary.Truncated))

	return result, nil
}
