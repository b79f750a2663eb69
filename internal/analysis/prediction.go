package analysis

import (
	"sort"

	"github.com/Veraticus/segregate/internal/model"
)

// projectionFactor scales the loaded period to a 30 day projection.
const projectionFactor = 3

// MismatchRow counts records of one waste type dropped into one wrong container.
type MismatchRow struct {
	WasteType string `json:"waste_type"`
	Color     string `json:"color"`
	Count     int    `json:"count"`
}

// ReviewRow is an unmapped waste type sent to manual review, with the closest
// known type when one is near enough.
type ReviewRow struct {
	WasteType  string `json:"waste_type"`
	Suggestion string `json:"suggestion,omitempty"`
	Count      int    `json:"count"`
}

// ImpactRow compares a current indicator with its target under the QR system.
type ImpactRow struct {
	Metric  string  `json:"metric"`
	Current float64 `json:"current"`
	WithQR  float64 `json:"with_qr"`
}

// PredictionSummary is the container prediction view of a table.
type PredictionSummary struct {
	Mismatches         []MismatchRow `json:"mismatches"`
	Review             []ReviewRow   `json:"review"`
	Impact             []ImpactRow   `json:"impact"`
	AccuracyPct        float64       `json:"accuracy_pct"`
	Projected30Days    int           `json:"projected_30_days"`
	ProjectedIncidents int           `json:"projected_incidents"`
	Available          bool          `json:"available"`
}

// SummarizePredictions builds the prediction view. When the table carries no
// predictions only the projections are filled in.
func SummarizePredictions(t model.Table, m Metrics) PredictionSummary {
	s := PredictionSummary{
		Available:          t.PredictionsAvailable(),
		Projected30Days:    t.Len() * projectionFactor,
		ProjectedIncidents: int(float64(t.Len()*projectionFactor) * (m.IncidentPct / 100)),
	}
	if !s.Available {
		return s
	}

	correct := 0
	for i := range t.Records {
		if !t.Records[i].IsMismatch() {
			correct++
		}
	}
	s.AccuracyPct = Percent(correct, t.Len())

	wrong := t.Where(func(r *model.Record) bool { return r.IsMismatch() })
	matrix := CrossCount(wrong,
		func(r *model.Record) string { return r.WasteType },
		func(r *model.Record) string { return r.ContainerColor })
	for i, wasteType := range matrix.Rows {
		for j, color := range matrix.Columns {
			if n := matrix.Cells[i][j]; n > 0 {
				s.Mismatches = append(s.Mismatches, MismatchRow{WasteType: wasteType, Color: color, Count: n})
			}
		}
	}

	s.Review = reviewRows(t)

	s.Impact = []ImpactRow{
		{Metric: "Segregación Incorrecta", Current: m.IncidentPct, WithQR: 2.5},
		{Metric: "Recipientes Llenos >75%", Current: 12.5, WithQR: 4.0},
		{Metric: "Precisión", Current: s.AccuracyPct, WithQR: 98.0},
		{Metric: "Cumplimiento Normativo", Current: 71.25, WithQR: 98.0},
	}
	return s
}

// reviewRows groups REVISAR records by waste type, most frequent first.
func reviewRows(t model.Table) []ReviewRow {
	index := map[string]int{}
	var rows []ReviewRow
	for i := range t.Records {
		r := &t.Records[i]
		if r.PredictedContainer() != model.ColorReview {
			continue
		}
		j, ok := index[r.WasteType]
		if !ok {
			j = len(rows)
			index[r.WasteType] = j
			rows = append(rows, ReviewRow{WasteType: r.WasteType, Suggestion: r.SuggestedWasteType()})
		}
		rows[j].Count++
	}
	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].Count != rows[b].Count {
			return rows[a].Count > rows[b].Count
		}
		return rows[a].WasteType < rows[b].WasteType
	})
	return rows
}
