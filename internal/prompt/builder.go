// Package prompt composes the instructions sent to the model for one batch.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ppiankov/greensynth/internal/model"
)

// Request describes one batch of synthetic claims.
type Request struct {
	Count          int
	Industry       model.Industry
	Classification model.Classification
	SourceType     model.SourceType
}

// Validate rejects requests the builder cannot express. Build itself never fails.
func (r Request) Validate() error {
	if r.Count <= 0 {
		return fmt.Errorf("count must be a positive integer, got %d", r.Count)
	}
	if !r.Industry.Valid() {
		return fmt.Errorf("invalid industry %q", string(r.Industry))
	}
	if !r.Classification.Valid() {
		return fmt.Errorf("invalid classification %q", string(r.Classification))
	}
	if !r.SourceType.Valid() {
		return fmt.Errorf("invalid source type %q", string(r.SourceType))
	}
	return nil
}

func (r Request) String() string {
	return fmt.Sprintf("%d x %s/%s/%s", r.Count, r.Industry, r.Classification, r.SourceType)
}

// Prompt is the system and user instruction pair for a single model call.
type Prompt struct {
	System string
	User   string
}

// Builder renders prompts. The system instruction is rendered once from the
// taxonomy and reused for every request.
type Builder struct {
	system string
}

// NewBuilder creates a Builder for the fixed taxonomy.
func NewBuilder() *Builder {
	return &Builder{system: renderSystem(model.Taxonomy)}
}

// Build produces the prompt pair for req.
func (b *Builder) Build(req Request) Prompt {
	out := new(strings.Builder)
	// The template only references fields of userPromptFields; Execute cannot fail.
	_ = userPromptTmpl.Execute(out, userPromptFields{
		Count:          req.Count,
		Industry:       string(req.Industry),
		Classification: string(req.Classification),
		SourceType:     string(req.SourceType),
	})

	return Prompt{
		System: b.system,
		User:   out.String(),
	}
}

// System returns the static system instruction.
func (b *Builder) System() string {
	return b.system
}

func renderSystem(taxonomy []model.TaxonomyEntry) string {
	out := new(strings.Builder)
	_ = systemPromptTmpl.Execute(out, taxonomy)
	return out.String()
}
