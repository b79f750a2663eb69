package classification

import (
	"sort"
	"strings"

	"github.com/Veraticus/segregate/internal/model"
)

// Predictor maps a waste type to the container it belongs in.
// It holds no state beyond its lookup table.
type Predictor struct {
	table map[string]string
	known []string
}

// NewPredictor creates a predictor from the classification table.
func NewPredictor(rules []ContainerRule) *Predictor {
	table := make(map[string]string, len(rules))
	known := make([]string, 0, len(rules))
	for _, r := range rules {
		table[r.WasteType] = r.Container
		known = append(known, r.WasteType)
	}
	sort.Strings(known)
	return &Predictor{table: table, known: known}
}

// Predict returns the expected container for wasteType, or REVISAR when the
// waste type is not in the table.
func (p *Predictor) Predict(wasteType string) string {
	if container, ok := p.table[wasteType]; ok {
		return container
	}
	return model.ColorReview
}

// KnownWasteTypes returns the mapped waste types in sorted order.
func (p *Predictor) KnownWasteTypes() []string {
	return append([]string(nil), p.known...)
}

// Evaluate builds the prediction for a single record.
func (p *Predictor) Evaluate(wasteType, observedColor string) model.Prediction {
	predicted := p.Predict(wasteType)
	pred := model.Prediction{
		Container: predicted,
		Mismatch:  IsMismatch(observedColor, predicted),
	}
	if predicted == model.ColorReview {
		pred.SuggestedWasteType = SuggestWasteType(wasteType, p.known)
	}
	return pred
}

// IsMismatch compares the observed container color against the predicted one,
// ignoring case. A REVISAR prediction never matches.
func IsMismatch(observed, predicted string) bool {
	if strings.EqualFold(predicted, model.ColorReview) {
		return true
	}
	return strings.ToUpper(observed) != strings.ToUpper(predicted)
}
