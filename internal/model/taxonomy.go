package model

import (
	"fmt"
	"strings"
)

// Technique is a named deception (or legitimacy) pattern within a classification.
type Technique struct {
	ID          string
	Description string
}

// TaxonomyEntry groups the techniques belonging to one classification.
type TaxonomyEntry struct {
	Classification Classification
	Label          string
	Techniques     []Technique
}

// Taxonomy is the fixed classification → technique mapping, in prompt order.
var Taxonomy = []TaxonomyEntry{
	{
		Classification: Greenwashing,
		Label:          "Greenwashing Techniques",
		Techniques: []Technique{
			{ID: "GW_VAGUE_PROMISE", Description: "Vague, unsubstantiated environmental promises without proof"},
			{ID: "GW_FALSE_LABEL", Description: "Misleading certifications, labels, or third-party endorsements"},
			{ID: "GW_HIDDEN_TRADEOFF", Description: "Highlighting one green aspect while ignoring negative impacts"},
			{ID: "GW_FLUFF", Description: "Meaningless or irrelevant environmental claims"},
		},
	},
	{
		Classification: Greenhushing,
		Label:          "Greenhushing Techniques",
		Techniques: []Technique{
			{ID: "GH_SELECTIVE_SILENCE", Description: "Deliberately omitting negative environmental data or impacts"},
			{ID: "GH_GOAL_RETRACTION", Description: "Quietly removing or reducing previously stated sustainability goals"},
			{ID: "GH_DATA_MASKING", Description: "Hiding or obscuring environmental impact data (e.g., Scope 3 emissions)"},
		},
	},
	{
		Classification: Greenwishing,
		Label:          "Greenwishing Techniques",
		Techniques: []Technique{
			{ID: GreenwishingTechnique, Description: "Aspirational goals without clear implementation plan or timeline"},
		},
	},
	{
		Classification: Legitimate,
		Label:          "Legitimate Techniques",
		Techniques: []Technique{
			{ID: "LEGIT_SCIENCE_BASED", Description: "Claims backed by peer-reviewed scientific evidence"},
			{ID: "LEGIT_THIRD_PARTY_VERIFIED", Description: "Claims verified by independent third-party auditors"},
		},
	},
}

// GreenwishingTechnique is the only technique valid for Greenwishing.
const GreenwishingTechnique = "GW_NO_PATHWAY"

// TechniquesFor returns the techniques listed under a classification.
func TechniquesFor(c Classification) []Technique {
	for _, entry := range Taxonomy {
		if entry.Classification == c {
			return entry.Techniques
		}
	}
	return nil
}

// IsKnownTechnique reports whether id appears anywhere in the taxonomy.
func IsKnownTechnique(id string) bool {
	for _, entry := range Taxonomy {
		for _, t := range entry.Techniques {
			if t.ID == id {
				return true
			}
		}
	}
	return false
}

// CheckTechnique verifies that techniqueID is allowed for the classification
// under the taxonomy prefix rule. It returns nil when consistent.
func CheckTechnique(c Classification, techniqueID string) error {
	var ok bool
	switch c {
	case Greenwashing:
		ok = strings.HasPrefix(techniqueID, "GW_")
	case Greenhushing:
		ok = strings.HasPrefix(techniqueID, "GH_")
	case Greenwishing:
		ok = techniqueID == GreenwishingTechnique
	case Legitimate:
		ok = strings.HasPrefix(techniqueID, "LEGIT_")
	default:
		return fmt.Errorf("unknown classification %q", string(c))
	}
	if !ok {
		return fmt.Errorf("mismatch: %s but technique %s", c, techniqueID)
	}
	return nil
}
