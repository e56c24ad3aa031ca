// Package partition groups the components of a SIFU into colour-keyed
// cross-lane subgroups and determines the ungrouped remainder per lane.
//
// Colour is the sole grouping key and is lane-independent: two components
// in different lanes tagged with the same colour land in the same
// subgroup. Matching is exact on the normalized key - "Red" and "#ff0000"
// are never merged, "#FF0000" and "#ff0000" always are.
package partition

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeColour derives the canonical subgroup key for a raw colour tag:
// NFC unicode normalization, surrounding whitespace trimmed, lowercased.
// Beyond that the match is an exact string comparison by design - no named
// colour to hex resolution, no fuzzy matching. An empty tag normalizes to
// the empty key, meaning ungrouped.
func NormalizeColour(raw string) string {
	key := norm.NFC.String(raw)
	key = strings.TrimSpace(key)
	return strings.ToLower(key)
}
