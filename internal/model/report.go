package model

import "fmt"

// Stats is the aggregate view of a claim set, used for the console report
// and the stats command.
type Stats struct {
	Total            int            `json:"total" yaml:"total"`
	ByClassification map[string]int `json:"by_classification" yaml:"by_classification"`
	ByTechnique      map[string]int `json:"by_technique" yaml:"by_technique"`
	ByIndustry       map[string]int `json:"by_industry" yaml:"by_industry"`
	BySource         map[string]int `json:"by_source" yaml:"by_source"`
	AvgSeverity      float64        `json:"avg_severity" yaml:"avg_severity"`
	Errors           []Violation    `json:"errors" yaml:"errors"`
}

// Violation is a consistency problem found after claims were constructed.
// Violations never block export.
type Violation struct {
	Kind    ViolationKind `json:"kind" yaml:"kind"`
	Index   int           `json:"index" yaml:"index"`     // position in the analysed sequence
	Message string        `json:"message" yaml:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("#%d %s", v.Index, v.Message)
}

// ViolationKind classifies a Violation.
type ViolationKind string

const (
	ViolationSeverityRange     ViolationKind = "severity_out_of_range"
	ViolationTechniqueMismatch ViolationKind = "technique_mismatch"
)

// BatchSummary records what happened to one generation request.
type BatchSummary struct {
	Request   string `json:"request" yaml:"request"`
	Received  int    `json:"received" yaml:"received"`   // candidates after truncation
	Truncated int    `json:"truncated" yaml:"truncated"` // extra candidates dropped
	Accepted  int    `json:"accepted" yaml:"accepted"`
	Rejected  int    `json:"rejected" yaml:"rejected"`
}

// ExportSummary records the outcome of one export.
type ExportSummary struct {
	Path              string `json:"path" yaml:"path"`
	Input             int    `json:"input" yaml:"input"`
	DuplicatesRemoved int    `json:"duplicates_removed" yaml:"duplicates_removed"`
	PreviouslySeen    int    `json:"previously_seen" yaml:"previously_seen"` // dropped by export history
	Written           int    `json:"written" yaml:"written"`
}
