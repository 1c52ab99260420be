package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Claim is one labeled training example. Values are built through NewClaim
// (or decoded and checked with Validate) and are not modified afterwards.
type Claim struct {
	TextSnippet    string         `json:"text_snippet"`
	SourceType     SourceType     `json:"source_type"`
	Industry       Industry       `json:"industry"`
	Classification Classification `json:"classification"`
	TechniqueID    string         `json:"technique_id"`
	SeverityScore  float64        `json:"severity_score"`
	Explanation    string         `json:"explanation"`
}

// NewClaim builds a Claim and rejects it if any field is outside its domain.
func NewClaim(text string, source SourceType, industry Industry, class Classification, techniqueID string, severity float64, explanation string) (Claim, error) {
	c := Claim{
		TextSnippet:    text,
		SourceType:     source,
		Industry:       industry,
		Classification: class,
		TechniqueID:    techniqueID,
		SeverityScore:  severity,
		Explanation:    explanation,
	}
	if err := c.Validate(); err != nil {
		return Claim{}, err
	}
	return c, nil
}

// Validate checks field presence, enum membership and the severity range.
// Taxonomy consistency is deliberately not checked here; mismatches are
// reported by the stats package instead.
func (c Claim) Validate() error {
	if strings.TrimSpace(c.TextSnippet) == "" {
		return &FieldError{Field: "text_snippet", Reason: "must not be empty"}
	}
	if !c.SourceType.Valid() {
		return &FieldError{Field: "source_type", Reason: fmt.Sprintf("unknown value %q", string(c.SourceType))}
	}
	if !c.Industry.Valid() {
		return &FieldError{Field: "industry", Reason: fmt.Sprintf("unknown value %q", string(c.Industry))}
	}
	if !c.Classification.Valid() {
		return &FieldError{Field: "classification", Reason: fmt.Sprintf("unknown value %q", string(c.Classification))}
	}
	if strings.TrimSpace(c.TechniqueID) == "" {
		return &FieldError{Field: "technique_id", Reason: "must not be empty"}
	}
	if !SeverityInRange(c.SeverityScore) {
		return &FieldError{Field: "severity_score", Reason: fmt.Sprintf("%v is outside [0.0, 1.0]", c.SeverityScore)}
	}
	return nil
}

// SeverityInRange reports whether s lies in the closed interval [0, 1].
func SeverityInRange(s float64) bool {
	return !math.IsNaN(s) && s >= 0.0 && s <= 1.0
}

// requiredFields lists the JSON keys every encoded claim must carry.
var requiredFields = []string{
	"text_snippet",
	"source_type",
	"industry",
	"classification",
	"technique_id",
	"severity_score",
	"explanation",
}

// UnmarshalJSON decodes a claim and validates it, so a Claim obtained from
// JSON always satisfies Validate. Absent or null keys are rejected rather
// than left at their zero value.
func (c *Claim) UnmarshalJSON(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	for _, name := range requiredFields {
		raw, ok := keys[name]
		if !ok || string(raw) == "null" {
			return &FieldError{Field: name, Reason: "missing required field"}
		}
	}

	type plain Claim
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	claim := Claim(p)
	if err := claim.Validate(); err != nil {
		return err
	}
	*c = claim
	return nil
}

// FieldError describes a single field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// SourceType is the kind of document a claim was taken from.
type SourceType string

const (
	SourceAnnualReport SourceType = "Annual Report"
	SourceSocialAd     SourceType = "Social Ad"
	SourcePressRelease SourceType = "Press Release"
	SourcePackaging    SourceType = "Packaging"
)

// SourceTypes lists every valid source type in canonical order.
var SourceTypes = []SourceType{SourceAnnualReport, SourceSocialAd, SourcePressRelease, SourcePackaging}

func (s SourceType) Valid() bool {
	for _, v := range SourceTypes {
		if s == v {
			return true
		}
	}
	return false
}

func (s *SourceType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "source_type", s, ParseSourceType)
}

// ParseSourceType returns the SourceType named by raw.
func ParseSourceType(raw string) (SourceType, error) {
	s := SourceType(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid source type %q (valid: %s)", raw, joinValues(SourceTypes))
	}
	return s, nil
}

// Industry is the sector the claim is attributed to.
type Industry string

const (
	IndustryFashion Industry = "Fashion"
	IndustryEnergy  Industry = "Energy"
	IndustryFinance Industry = "Finance"
	IndustryFMCG    Industry = "FMCG"
)

// Industries lists every valid industry in canonical order.
var Industries = []Industry{IndustryFashion, IndustryEnergy, IndustryFinance, IndustryFMCG}

func (i Industry) Valid() bool {
	for _, v := range Industries {
		if i == v {
			return true
		}
	}
	return false
}

func (i *Industry) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "industry", i, ParseIndustry)
}

// ParseIndustry returns the Industry named by raw.
func ParseIndustry(raw string) (Industry, error) {
	i := Industry(raw)
	if !i.Valid() {
		return "", fmt.Errorf("invalid industry %q (valid: %s)", raw, joinValues(Industries))
	}
	return i, nil
}

// Classification is the primary label of a claim.
type Classification string

const (
	Greenwashing Classification = "Greenwashing"
	Greenhushing Classification = "Greenhushing"
	Greenwishing Classification = "Greenwishing"
	Legitimate   Classification = "Legitimate"
)

// Classifications lists every valid classification in canonical order.
var Classifications = []Classification{Greenwashing, Greenhushing, Greenwishing, Legitimate}

func (c Classification) Valid() bool {
	for _, v := range Classifications {
		if c == v {
			return true
		}
	}
	return false
}

func (c *Classification) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "classification", c, ParseClassification)
}

// ParseClassification returns the Classification named by raw.
func ParseClassification(raw string) (Classification, error) {
	c := Classification(raw)
	if !c.Valid() {
		return "", fmt.Errorf("invalid classification %q (valid: %s)", raw, joinValues(Classifications))
	}
	return c, nil
}

func unmarshalEnum[T ~string](data []byte, field string, dst *T, parse func(string) (T, error)) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &FieldError{Field: field, Reason: "must be a string"}
	}
	v, err := parse(raw)
	if err != nil {
		return &FieldError{Field: field, Reason: err.Error()}
	}
	*dst = v
	return nil
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
