package classification

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/segregate/internal/common"
	"gopkg.in/yaml.v3"
)

// LoadRuleSet reads a rule set from a YAML file. Sections left out of the file
// keep their built-in defaults.
func LoadRuleSet(path string) (RuleSet, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the operator's config
	if err != nil {
		return RuleSet{}, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeRuleSet(f)
}

// DecodeRuleSet parses a YAML rule set and validates it.
func DecodeRuleSet(r io.Reader) (RuleSet, error) {
	var file RuleSet
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return RuleSet{}, fmt.Errorf("%w: %v", common.ErrInvalidRules, err)
	}

	rules := DefaultRuleSet()
	if file.Incidents != nil {
		rules.Incidents = file.Incidents
	}
	if file.Containers != nil {
		rules.Containers = file.Containers
	}
	if file.StateAliases != nil {
		rules.StateAliases = file.StateAliases
	}

	if err := rules.Validate(); err != nil {
		return RuleSet{}, err
	}
	return rules, nil
}

// EncodeRuleSet renders a rule set as YAML.
func EncodeRuleSet(rules RuleSet) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rules); err != nil {
		return nil, fmt.Errorf("failed to encode rules: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode rules: %w", err)
	}
	return buf.Bytes(), nil
}
