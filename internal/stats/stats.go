// Package stats aggregates a claim set and reports consistency problems.
package stats

import (
	"fmt"

	"github.com/ppiankov/greensynth/internal/model"
)

// Calculate computes distribution tables, mean severity and consistency
// violations for claims. It never fails; an empty input yields zero counts
// and an average severity of 0.
func Calculate(claims []model.Claim) model.Stats {
	st := model.Stats{
		Total:            len(claims),
		ByClassification: make(map[string]int),
		ByTechnique:      make(map[string]int),
		ByIndustry:       make(map[string]int),
		BySource:         make(map[string]int),
		Errors:           []model.Violation{},
	}

	var severitySum float64
	for i, c := range claims {
		// 1. Frequency tables
		st.ByClassification[string(c.Classification)]++
		st.ByTechnique[c.TechniqueID]++
		st.ByIndustry[string(c.Industry)]++
		st.BySource[string(c.SourceType)]++
		severitySum += c.SeverityScore

		// 2. Severity range, re-checked for claims assembled in code
		if !model.SeverityInRange(c.SeverityScore) {
			st.Errors = append(st.Errors, model.Violation{
				Kind:    model.ViolationSeverityRange,
				Index:   i,
				Message: fmt.Sprintf("severity %v out of range", c.SeverityScore),
			})
		}

		// 3. Taxonomy prefix rule
		if err := model.CheckTechnique(c.Classification, c.TechniqueID); err != nil {
			st.Errors = append(st.Errors, model.Violation{
				Kind:    model.ViolationTechniqueMismatch,
				Index:   i,
				Message: err.Error(),
			})
		}
	}

	if st.Total > 0 {
		st.AvgSeverity = severitySum / float64(st.Total)
	}

	return st
}

// Consistent reports whether Calculate found no violations.
func Consistent(st model.Stats) bool {
	return len(st.Errors) == 0
}
