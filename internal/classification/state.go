package classification

import "github.com/Veraticus/segregate/internal/model"

// StateNormalizer canonicalizes container fill-level labels.
type StateNormalizer struct {
	aliases map[string]string
}

// NewStateNormalizer creates a normalizer for the given aliases.
func NewStateNormalizer(aliases []StateAlias) *StateNormalizer {
	m := make(map[string]string, len(aliases))
	for _, a := range aliases {
		m[a.Raw] = a.Canonical
	}
	return &StateNormalizer{aliases: m}
}

// Normalize maps an absent state to NO REGISTRADO and rewrites known legacy
// labels. Unknown labels are returned unchanged.
func (n *StateNormalizer) Normalize(raw string) string {
	if raw == "" {
		return model.StateNotRecorded
	}
	if canonical, ok := n.aliases[raw]; ok {
		return canonical
	}
	return raw
}
