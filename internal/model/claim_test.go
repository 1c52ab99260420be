package model

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validClaim(t *testing.T) Claim {
	t.Helper()
	c, err := NewClaim(
		"Our denim line now uses 40% recycled cotton, verified by Textile Exchange.",
		SourcePackaging,
		IndustryFashion,
		Legitimate,
		"LEGIT_THIRD_PARTY_VERIFIED",
		0.15,
		"Specific metric with a named certifier.",
	)
	require.NoError(t, err)
	return c
}

func TestNewClaim_AllEnumCombinationsRoundTrip(t *testing.T) {
	for _, src := range SourceTypes {
		for _, ind := range Industries {
			for _, class := range Classifications {
				technique := TechniquesFor(class)[0].ID
				for _, severity := range []float64{0.0, 0.5, 1.0} {
					c, err := NewClaim("Net zero by 2050.", src, ind, class, technique, severity, "aspirational")
					require.NoError(t, err)

					data, err := json.Marshal(c)
					require.NoError(t, err)

					var decoded Claim
					require.NoError(t, json.Unmarshal(data, &decoded))
					assert.Equal(t, c, decoded)
				}
			}
		}
	}
}

func TestNewClaim_SeverityOutOfRange(t *testing.T) {
	for _, severity := range []float64{-0.0001, -1, 1.0001, 2, math.Inf(1), math.Inf(-1), math.NaN()} {
		_, err := NewClaim("text", SourceSocialAd, IndustryEnergy, Greenwashing, "GW_FLUFF", severity, "x")
		require.Error(t, err, "severity %v", severity)

		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "severity_score", fe.Field)
	}
}

func TestNewClaim_RejectsUnknownEnums(t *testing.T) {
	tests := []struct {
		name  string
		build func() (Claim, error)
		field string
	}{
		{"source", func() (Claim, error) {
			return NewClaim("t", SourceType("Blog"), IndustryFMCG, Greenwashing, "GW_FLUFF", 0.3, "")
		}, "source_type"},
		{"industry", func() (Claim, error) {
			return NewClaim("t", SourcePackaging, Industry("Mining"), Greenwashing, "GW_FLUFF", 0.3, "")
		}, "industry"},
		{"classification", func() (Claim, error) {
			return NewClaim("t", SourcePackaging, IndustryFMCG, Classification("Bluewashing"), "GW_FLUFF", 0.3, "")
		}, "classification"},
		{"blank text", func() (Claim, error) {
			return NewClaim("   ", SourcePackaging, IndustryFMCG, Greenwashing, "GW_FLUFF", 0.3, "")
		}, "text_snippet"},
		{"blank technique", func() (Claim, error) {
			return NewClaim("t", SourcePackaging, IndustryFMCG, Greenwashing, "", 0.3, "")
		}, "technique_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			var fe *FieldError
			require.True(t, errors.As(err, &fe), "expected FieldError, got %v", err)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestClaim_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(validClaim(t))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, key := range []string{"text_snippet", "source_type", "industry", "classification", "technique_id", "severity_score", "explanation"} {
		assert.Contains(t, fields, key)
	}
	assert.Len(t, fields, 7)
}

func TestClaim_UnmarshalRejectsInvalid(t *testing.T) {
	inputs := []string{
		`{"text_snippet":"a","source_type":"Billboard","industry":"Energy","classification":"Legitimate","technique_id":"LEGIT_SCIENCE_BASED","severity_score":0.2,"explanation":""}`,
		`{"text_snippet":"a","source_type":"Packaging","industry":"Energy","classification":"Legitimate","technique_id":"LEGIT_SCIENCE_BASED","severity_score":1.2,"explanation":""}`,
		`{"text_snippet":"a","source_type":"Packaging","industry":"Energy","classification":"Legitimate","severity_score":0.2}`,
		`{"text_snippet":"a","source_type":3,"industry":"Energy","classification":"Legitimate","technique_id":"LEGIT_SCIENCE_BASED","severity_score":0.2}`,
	}
	for _, in := range inputs {
		var c Claim
		assert.Error(t, json.Unmarshal([]byte(in), &c), in)
	}
}

func TestClaim_UnmarshalRequiresEveryField(t *testing.T) {
	full := map[string]any{
		"text_snippet":   "We plant a tree for every order.",
		"source_type":    "Social Ad",
		"industry":       "FMCG",
		"classification": "Greenwashing",
		"technique_id":   "GW_HIDDEN_TRADEOFF",
		"severity_score": 0.4,
		"explanation":    "Offsetting distracts from packaging waste.",
	}

	for key := range full {
		t.Run(key, func(t *testing.T) {
			for _, missing := range []bool{true, false} {
				rec := make(map[string]any, len(full))
				for k, v := range full {
					rec[k] = v
				}
				if missing {
					delete(rec, key)
				} else {
					rec[key] = nil
				}
				data, err := json.Marshal(rec)
				require.NoError(t, err)

				var c Claim
				err = json.Unmarshal(data, &c)
				var fe *FieldError
				require.True(t, errors.As(err, &fe), "got %v", err)
				assert.Equal(t, key, fe.Field)
				assert.Equal(t, "missing required field", fe.Reason)
			}
		})
	}
}

func TestParseEnums(t *testing.T) {
	s, err := ParseSourceType("Press Release")
	require.NoError(t, err)
	assert.Equal(t, SourcePressRelease, s)

	_, err = ParseSourceType("press release")
	assert.Error(t, err)

	i, err := ParseIndustry("FMCG")
	require.NoError(t, err)
	assert.Equal(t, IndustryFMCG, i)

	c, err := ParseClassification("Greenwishing")
	require.NoError(t, err)
	assert.Equal(t, Greenwishing, c)

	_, err = ParseClassification("")
	assert.ErrorContains(t, err, "Greenwashing, Greenhushing, Greenwishing, Legitimate")
}
