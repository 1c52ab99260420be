package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomy_TechniquesMatchTheirClassification(t *testing.T) {
	for _, entry := range Taxonomy {
		assert.NotEmpty(t, entry.Techniques, entry.Classification)
		for _, tech := range entry.Techniques {
			assert.NoError(t, CheckTechnique(entry.Classification, tech.ID), tech.ID)
			assert.True(t, IsKnownTechnique(tech.ID))
			assert.NotEmpty(t, tech.Description)
		}
	}
}

func TestCheckTechnique(t *testing.T) {
	tests := []struct {
		class     Classification
		technique string
		ok        bool
	}{
		{Greenwashing, "GW_FLUFF", true},
		{Greenwashing, "GH_DATA_MASKING", false},
		{Greenhushing, "GH_GOAL_RETRACTION", true},
		{Greenhushing, "LEGIT_SCIENCE_BASED", false},
		{Greenwishing, "GW_NO_PATHWAY", true},
		{Greenwishing, "GW_VAGUE_PROMISE", false},
		{Greenwishing, "GW_NO_PATHWAY_2030", false},
		{Legitimate, "LEGIT_CUSTOM", true},
		{Legitimate, "GW_FALSE_LABEL", false},
	}

	for _, tt := range tests {
		err := CheckTechnique(tt.class, tt.technique)
		if tt.ok {
			assert.NoError(t, err, "%s/%s", tt.class, tt.technique)
			continue
		}
		if assert.Error(t, err, "%s/%s", tt.class, tt.technique) {
			assert.True(t, strings.HasPrefix(err.Error(), "mismatch:"))
		}
	}
}

func TestIsKnownTechnique(t *testing.T) {
	assert.True(t, IsKnownTechnique("GH_SELECTIVE_SILENCE"))
	assert.False(t, IsKnownTechnique("GW_MADE_UP"))
	assert.Nil(t, TechniquesFor(Classification("Other")))
}
