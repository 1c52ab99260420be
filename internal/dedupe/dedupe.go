// Package dedupe removes claims whose text repeats an earlier claim.
package dedupe

import (
	"strings"

	"github.com/ppiankov/greensynth/internal/model"
)

// Key is the identity used for duplicate detection: the snippet trimmed and
// lower-cased. Interior whitespace and punctuation are significant.
func Key(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Claims keeps the first claim for every Key and preserves input order.
// It returns the surviving claims and how many were removed.
func Claims(claims []model.Claim) ([]model.Claim, int) {
	seen := make(map[string]struct{}, len(claims))
	unique := make([]model.Claim, 0, len(claims))

	for _, c := range claims {
		k := Key(c.TextSnippet)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, c)
	}

	return unique, len(claims) - len(unique)
}
