package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/greensynth/internal/extract"
	"github.com/ppiankov/greensynth/internal/model"
	"go.uber.org/zap"
)

// recordExcerptLength bounds the raw record text carried on a RecordError.
const recordExcerptLength = 120

// RecordError explains why one candidate was dropped.
type RecordError struct {
	Index   int    // candidate position in the parsed response
	Field   string // empty when the record as a whole is unusable
	Reason  string
	Excerpt string
}

func (e *RecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("record %d: %s: %s", e.Index, e.Field, e.Reason)
}

// Validator converts parsed candidates into Claims, dropping the ones that
// fail schema or range checks.
type Validator struct {
	logger *zap.Logger
}

// NewValidator creates a validator that reports dropped records to logger.
func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger}
}

// Validate returns the candidates that form valid claims, in original order,
// and one RecordError per dropped candidate. It never aborts the batch.
func (v *Validator) Validate(candidates []extract.Candidate) ([]model.Claim, []*RecordError) {
	claims := make([]model.Claim, 0, len(candidates))
	var rejected []*RecordError

	for _, c := range candidates {
		claim, err := ToClaim(c)
		if err != nil {
			rejected = append(rejected, err)
			v.logger.Warn("skipping invalid claim",
				zap.Int("index", err.Index),
				zap.String("field", err.Field),
				zap.String("reason", err.Reason),
				zap.String("data", err.Excerpt))
			continue
		}
		claims = append(claims, claim)
	}

	return claims, rejected
}

// ToClaim builds a Claim from a single candidate.
func ToClaim(c extract.Candidate) (model.Claim, *RecordError) {
	fail := func(field, reason string) (model.Claim, *RecordError) {
		return model.Claim{}, &RecordError{
			Index:   c.Index,
			Field:   field,
			Reason:  reason,
			Excerpt: extract.Excerpt(string(c.Raw), recordExcerptLength),
		}
	}

	fields, err := c.Fields()
	if err != nil {
		return fail("", err.Error())
	}

	text, err := stringField(fields, "text_snippet")
	if err != nil {
		return fail("text_snippet", err.Error())
	}
	rawSource, err := stringField(fields, "source_type")
	if err != nil {
		return fail("source_type", err.Error())
	}
	rawIndustry, err := stringField(fields, "industry")
	if err != nil {
		return fail("industry", err.Error())
	}
	rawClass, err := stringField(fields, "classification")
	if err != nil {
		return fail("classification", err.Error())
	}
	technique, err := stringField(fields, "technique_id")
	if err != nil {
		return fail("technique_id", err.Error())
	}
	severity, err := numberField(fields, "severity_score")
	if err != nil {
		return fail("severity_score", err.Error())
	}
	explanation, err := stringField(fields, "explanation")
	if err != nil {
		return fail("explanation", err.Error())
	}

	source, err := model.ParseSourceType(rawSource)
	if err != nil {
		return fail("source_type", err.Error())
	}
	industry, err := model.ParseIndustry(rawIndustry)
	if err != nil {
		return fail("industry", err.Error())
	}
	class, err := model.ParseClassification(rawClass)
	if err != nil {
		return fail("classification", err.Error())
	}

	claim, err := model.NewClaim(text, source, industry, class, technique, severity, explanation)
	if err != nil {
		var fe *model.FieldError
		if errors.As(err, &fe) {
			return fail(fe.Field, fe.Reason)
		}
		return fail("", err.Error())
	}
	return claim, nil
}

func stringField(fields map[string]any, name string) (string, error) {
	raw, ok := fields[name]
	if !ok || raw == nil {
		return "", errors.New("missing required field")
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("must be a string, got %T", raw)
	}
	return s, nil
}

// numberField accepts JSON numbers and numeric strings ("0.7").
func numberField(fields map[string]any, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok || raw == nil {
		return 0, errors.New("missing required field")
	}
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("must be a finite number, got %s", v.String())
		}
		return f, nil
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("must be a number, got %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("must be a number, got %T", raw)
	}
}
