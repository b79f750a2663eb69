package classification

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/segregate/internal/common"
	"github.com/Veraticus/segregate/internal/model"
)

// ContainerPredictor evaluates the expected container of a record.
type ContainerPredictor interface {
	Evaluate(wasteType, observedColor string) model.Prediction
}

// Engine runs the cleaning and enrichment passes over a table.
type Engine struct {
	tagger    *Tagger
	states    *StateNormalizer
	predictor ContainerPredictor
	rules     RuleSet
}

// Option configures an Engine.
type Option func(*Engine)

// WithPredictor replaces the table-driven predictor.
func WithPredictor(p ContainerPredictor) Option {
	return func(e *Engine) {
		e.predictor = p
	}
}

// NewEngine validates the rules and builds an engine.
func NewEngine(rules RuleSet, opts ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		rules:     rules,
		tagger:    NewTagger(rules.Incidents),
		states:    NewStateNormalizer(rules.StateAliases),
		predictor: NewPredictor(rules.Containers),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Rules returns the rule set the engine was built with.
func (e *Engine) Rules() RuleSet {
	return e.rules
}

// Process returns a copy of the table with incidents tagged and container
// states normalized. The input is left untouched.
func (e *Engine) Process(t model.Table) model.Table {
	out := t.Clone()
	for i := range out.Records {
		r := &out.Records[i]
		r.IncidentKind = e.tagger.Tag(r.Observations)
		r.ContainerState = e.states.Normalize(r.ContainerState)
	}
	return out
}

// Predict returns a copy of the table with container predictions attached.
// If the pass fails for any row the whole enrichment is dropped: the original
// table is returned together with ErrEnrichmentUnavailable.
func (e *Engine) Predict(t model.Table) (out model.Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Container prediction failed, continuing without predictions", "panic", r)
			out = t
			err = fmt.Errorf("%w: %v", common.ErrEnrichmentUnavailable, r)
		}
	}()

	out = t.Clone()
	for i := range out.Records {
		r := &out.Records[i]
		pred := e.predictor.Evaluate(r.WasteType, r.ContainerColor)
		r.Prediction = &pred
	}
	return out, nil
}
