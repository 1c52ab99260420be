package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/ppiankov/greensynth/internal/model"
)

func claim(class model.Classification, technique string, severity float64) model.Claim {
	return model.Claim{
		TextSnippet:    "We aim to be carbon neutral.",
		SourceType:     model.SourceAnnualReport,
		Industry:       model.IndustryEnergy,
		Classification: class,
		TechniqueID:    technique,
		SeverityScore:  severity,
		Explanation:    "test",
	}
}

func TestCalculate_Empty(t *testing.T) {
	st := Calculate(nil)

	if st.Total != 0 {
		t.Errorf("Expected total 0, got %d", st.Total)
	}
	if st.AvgSeverity != 0 {
		t.Errorf("Expected avg severity 0 on empty input, got %v", st.AvgSeverity)
	}
	if math.IsNaN(st.AvgSeverity) {
		t.Error("Avg severity must not be NaN")
	}
	if st.ByClassification == nil || st.ByTechnique == nil || st.ByIndustry == nil || st.BySource == nil {
		t.Error("Expected frequency tables to be initialized")
	}
	if !Consistent(st) {
		t.Errorf("Expected no violations, got %v", st.Errors)
	}
}

func TestCalculate_FrequencyTables(t *testing.T) {
	claims := []model.Claim{
		claim(model.Greenwashing, "GW_VAGUE_PROMISE", 0.8),
		claim(model.Greenwashing, "GW_FLUFF", 0.6),
		claim(model.Greenhushing, "GH_DATA_MASKING", 0.5),
		claim(model.Legitimate, "LEGIT_SCIENCE_BASED", 0.1),
	}
	claims[3].Industry = model.IndustryFinance
	claims[3].SourceType = model.SourcePressRelease

	st := Calculate(claims)

	if st.Total != 4 {
		t.Fatalf("Expected total 4, got %d", st.Total)
	}
	if st.ByClassification["Greenwashing"] != 2 || st.ByClassification["Greenhushing"] != 1 || st.ByClassification["Legitimate"] != 1 {
		t.Errorf("Unexpected classification table: %v", st.ByClassification)
	}
	if st.ByTechnique["GW_FLUFF"] != 1 || len(st.ByTechnique) != 4 {
		t.Errorf("Unexpected technique table: %v", st.ByTechnique)
	}
	if st.ByIndustry["Energy"] != 3 || st.ByIndustry["Finance"] != 1 {
		t.Errorf("Unexpected industry table: %v", st.ByIndustry)
	}
	if st.BySource["Annual Report"] != 3 || st.BySource["Press Release"] != 1 {
		t.Errorf("Unexpected source table: %v", st.BySource)
	}

	sum := 0
	for _, n := range st.ByClassification {
		sum += n
	}
	if sum != st.Total {
		t.Errorf("Classification counts sum to %d, want %d", sum, st.Total)
	}

	if math.Abs(st.AvgSeverity-0.5) > 1e-9 {
		t.Errorf("Expected avg severity 0.5, got %v", st.AvgSeverity)
	}
	if !Consistent(st) {
		t.Errorf("Expected no violations, got %v", st.Errors)
	}
}

func TestCalculate_TechniqueMismatch(t *testing.T) {
	tests := []struct {
		name      string
		class     model.Classification
		technique string
		wantError bool
	}{
		{"greenwashing ok", model.Greenwashing, "GW_HIDDEN_TRADEOFF", false},
		{"greenwashing with GH technique", model.Greenwashing, "GH_SELECTIVE_SILENCE", true},
		{"greenhushing ok", model.Greenhushing, "GH_GOAL_RETRACTION", false},
		{"greenhushing with legit technique", model.Greenhushing, "LEGIT_SCIENCE_BASED", true},
		{"greenwishing ok", model.Greenwishing, "GW_NO_PATHWAY", false},
		{"greenwishing with other GW technique", model.Greenwishing, "GW_VAGUE_PROMISE", true},
		{"legitimate ok", model.Legitimate, "LEGIT_THIRD_PARTY_VERIFIED", false},
		{"legitimate with GW technique", model.Legitimate, "GW_FALSE_LABEL", true},
		// Unknown techniques pass as long as the prefix matches.
		{"unlisted GW technique", model.Greenwashing, "GW_SOMETHING_NEW", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Calculate([]model.Claim{claim(tt.class, tt.technique, 0.5)})
			if got := len(st.Errors) > 0; got != tt.wantError {
				t.Fatalf("Expected violation=%v, got %v", tt.wantError, st.Errors)
			}
			if tt.wantError {
				v := st.Errors[0]
				if v.Kind != model.ViolationTechniqueMismatch {
					t.Errorf("Expected kind %s, got %s", model.ViolationTechniqueMismatch, v.Kind)
				}
				if !strings.Contains(v.Message, "mismatch") || !strings.Contains(v.Message, tt.technique) {
					t.Errorf("Unexpected message %q", v.Message)
				}
			}
		})
	}
}

func TestCalculate_SeverityOutOfRange(t *testing.T) {
	claims := []model.Claim{
		claim(model.Greenwashing, "GW_FLUFF", 0.5),
		claim(model.Greenwashing, "GW_FLUFF", 1.2),
	}

	st := Calculate(claims)

	if len(st.Errors) != 1 {
		t.Fatalf("Expected 1 violation, got %v", st.Errors)
	}
	if st.Errors[0].Kind != model.ViolationSeverityRange || st.Errors[0].Index != 1 {
		t.Errorf("Unexpected violation %+v", st.Errors[0])
	}
	if st.Errors[0].String() != "#1 severity 1.2 out of range" {
		t.Errorf("Unexpected rendering %q", st.Errors[0].String())
	}
}

func TestCalculate_ViolationsDoNotChangeTotals(t *testing.T) {
	st := Calculate([]model.Claim{
		claim(model.Greenwishing, "GH_DATA_MASKING", 0.4),
		claim(model.Legitimate, "LEGIT_SCIENCE_BASED", 0.2),
	})
	if st.Total != 2 || len(st.Errors) != 1 {
		t.Errorf("Expected total 2 with 1 violation, got total %d, %v", st.Total, st.Errors)
	}
	if st.Errors[0].Index != 0 {
		t.Errorf("Expected violation on claim 0, got %d", st.Errors[0].Index)
	}
}
