package classification

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// SuggestWasteType returns the known waste type closest to an unmapped one, or
// an empty string when nothing is close enough. Candidates must be sorted so
// ties resolve the same way on every call.
func SuggestWasteType(wasteType string, known []string) string {
	subject := strings.ToUpper(strings.TrimSpace(wasteType))
	if subject == "" {
		return ""
	}

	best := ""
	bestDistance := -1
	for _, candidate := range known {
		d := levenshtein.ComputeDistance(subject, candidate)
		if bestDistance == -1 || d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}

	if best == "" || bestDistance > maxSuggestionDistance(best) {
		return ""
	}
	return best
}

// Typos and stray accents only; anything further off goes to manual review.
func maxSuggestionDistance(candidate string) int {
	limit := len([]rune(candidate)) / 4
	if limit < 2 {
		limit = 2
	}
	return limit
}
