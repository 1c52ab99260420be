// Package extract turns raw model output into candidate claim records.
package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// ExcerptLength is the number of characters of raw output kept on a ParseError.
const ExcerptLength = 200

// Candidate is one untyped record taken from the model output, in the order
// the model produced it.
type Candidate struct {
	Index int
	Raw   json.RawMessage
}

// Fields decodes the candidate as a JSON object.
// Numbers are kept as json.Number so range problems surface per field.
func (c Candidate) Fields() (map[string]any, error) {
	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(c.Raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("record is not a JSON object: %w", err)
	}
	if fields == nil {
		return nil, errors.New("record is not a JSON object: null")
	}
	return fields, nil
}

// Result is the outcome of a successful parse.
type Result struct {
	Candidates []Candidate
	Strategy   string // name of the strategy that succeeded
	Truncated  int    // records dropped beyond the requested count
}

// ParseError means no strategy could recover a structured payload. The whole
// batch is lost.
type ParseError struct {
	Excerpt  string
	Attempts []error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse JSON from response: %s", e.Excerpt)
}

func (e *ParseError) Unwrap() []error {
	return e.Attempts
}

// Parser applies its strategies in order until one yields records.
type Parser struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewParser creates a parser. Without explicit strategies it uses
// DefaultStrategies.
func NewParser(logger *zap.Logger, strategies ...Strategy) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Parser{strategies: strategies, logger: logger}
}

// Parse extracts at most n candidates from raw (n <= 0 means no limit).
// Extra records are dropped; the drop is logged and counted in the result.
func (p *Parser) Parse(raw string, n int) (*Result, error) {
	var attempts []error

	for _, s := range p.strategies {
		records, err := s.Extract(raw)
		if err != nil {
			attempts = append(attempts, fmt.Errorf("%s: %w", s.Name(), err))
			p.logger.Debug("parse strategy failed", zap.String("strategy", s.Name()), zap.Error(err))
			continue
		}

		result := &Result{Strategy: s.Name()}
		if n > 0 && len(records) > n {
			result.Truncated = len(records) - n
			p.logger.Warn("model returned more records than requested; extra records dropped",
				zap.Int("requested", n),
				zap.Int("received", len(records)),
				zap.Int("dropped", result.Truncated))
			records = records[:n]
		}

		result.Candidates = make([]Candidate, len(records))
		for i, r := range records {
			result.Candidates[i] = Candidate{Index: i, Raw: r}
		}
		return result, nil
	}

	return nil, &ParseError{Excerpt: Excerpt(raw, ExcerptLength), Attempts: attempts}
}

// Excerpt returns the first max characters of s, never splitting a rune.
func Excerpt(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	var b strings.Builder
	count := 0
	for _, r := range s {
		if count == max {
			break
		}
		b.WriteRune(r)
		count++
	}
	return b.String()
}
