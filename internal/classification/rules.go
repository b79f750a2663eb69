// Package classification tags incidents, normalizes container states and predicts
// the expected container for each waste log record.
package classification

import (
	"fmt"
	"strings"

	"github.com/Veraticus/segregate/internal/common"
	"github.com/Veraticus/segregate/internal/model"
)

// IncidentRule maps an observation substring to an incident kind.
type IncidentRule struct {
	Pattern string             `yaml:"pattern"`
	Kind    model.IncidentKind `yaml:"kind"`
}

// ContainerRule maps a waste type to the container color it must be disposed in.
type ContainerRule struct {
	WasteType string `yaml:"waste_type"`
	Container string `yaml:"container"`
}

// StateAlias rewrites a raw fill-level label into a canonical one.
type StateAlias struct {
	Raw       string `yaml:"raw"`
	Canonical string `yaml:"canonical"`
}

// RuleSet is the declarative configuration of the classification engine.
//
// Incident rules are evaluated in order and every rule is tried; when several
// patterns match the same observation the LAST matching rule wins.
type RuleSet struct {
	Incidents    []IncidentRule  `yaml:"incidents"`
	Containers   []ContainerRule `yaml:"containers"`
	StateAliases []StateAlias    `yaml:"state_aliases"`
}

// Validate checks that the rule set is usable.
func (rs RuleSet) Validate() error {
	if len(rs.Containers) == 0 {
		return fmt.Errorf("%w: classification table is empty", common.ErrInvalidRules)
	}

	for i, r := range rs.Incidents {
		if strings.TrimSpace(r.Pattern) == "" {
			return fmt.Errorf("%w: incident rule %d has an empty pattern", common.ErrInvalidRules, i+1)
		}
		if !r.Kind.IsIncident() {
			return fmt.Errorf("%w: incident rule %d has invalid kind %q", common.ErrInvalidRules, i+1, r.Kind)
		}
	}

	seen := make(map[string]bool, len(rs.Containers))
	for i, c := range rs.Containers {
		if c.WasteType == "" || c.Container == "" {
			return fmt.Errorf("%w: container rule %d is incomplete", common.ErrInvalidRules, i+1)
		}
		if strings.EqualFold(c.Container, model.ColorReview) {
			return fmt.Errorf("%w: %s is reserved for unknown waste types", common.ErrInvalidRules, model.ColorReview)
		}
		if seen[c.WasteType] {
			return fmt.Errorf("%w: waste type %q listed twice", common.ErrInvalidRules, c.WasteType)
		}
		seen[c.WasteType] = true
	}

	for i, a := range rs.StateAliases {
		if a.Raw == "" || a.Canonical == "" {
			return fmt.Errorf("%w: state alias %d is incomplete", common.ErrInvalidRules, i+1)
		}
	}

	return nil
}

// DefaultRuleSet returns the built-in rules.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Incidents: []IncidentRule{
			{Pattern: "MAL SEGREGADO", Kind: model.IncidentSegregation},
			{Pattern: "FALTA DE BOLSA", Kind: model.IncidentMissingBag},
			{Pattern: "DERRAME", Kind: model.IncidentSpill},
			{Pattern: "RECIPIENTE ROTO", Kind: model.IncidentBrokenContainer},
		},
		Containers: []ContainerRule{
			{WasteType: model.WasteBiosanitary, Container: model.ColorRed},
			{WasteType: model.WastePathological, Container: model.ColorRed},
			{WasteType: model.WasteSharps, Container: model.ColorGuardian},
			{WasteType: model.WasteLabChemical, Container: model.ColorRed},
			{WasteType: model.WasteDentalChemical, Container: model.ColorRed},
			{WasteType: model.WasteRecyclable, Container: model.ColorWhite},
			{WasteType: model.WasteNonRecyclable, Container: model.ColorBlack},
		},
		StateAliases: []StateAlias{
			{Raw: "VACIO (<25%)", Canonical: model.StateEmpty},
			{Raw: "MEDIO (25% - 75%)", Canonical: model.StateHalf},
			{Raw: "LLENO (>75%)", Canonical: model.StateFull},
		},
	}
}
