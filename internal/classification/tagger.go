package classification

import (
	"strings"

	"github.com/Veraticus/segregate/internal/model"
)

type compiledIncidentRule struct {
	needle string
	kind   model.IncidentKind
}

// Tagger derives the incident kind of a record from its observations.
type Tagger struct {
	rules []compiledIncidentRule
}

// NewTagger creates a tagger for the given ordered rules.
func NewTagger(rules []IncidentRule) *Tagger {
	compiled := make([]compiledIncidentRule, 0, len(rules))
	for _, r := range rules {
		compiled = append(compiled, compiledIncidentRule{
			needle: strings.ToUpper(r.Pattern),
			kind:   r.Kind,
		})
	}
	return &Tagger{rules: compiled}
}

// Tag returns the incident kind for an observation text. Every rule is
// evaluated; the last one whose pattern occurs in the text wins.
func (t *Tagger) Tag(observations string) model.IncidentKind {
	kind := model.IncidentNone
	if observations == "" {
		return kind
	}

	text := strings.ToUpper(observations)
	for _, r := range t.rules {
		if strings.Contains(text, r.needle) {
			kind = r.kind
		}
	}
	return kind
}
