package analysis

import (
	"fmt"
	"strings"

	"github.com/Veraticus/segregate/internal/common"
	"github.com/Veraticus/segregate/internal/model"
)

// View identifies one of the dashboard views.
type View string

// Dashboard views, in tab order.
const (
	ViewGeneral     View = "general"
	ViewWaste       View = "residuos"
	ViewAreas       View = "areas"
	ViewIncidents   View = "incidentes"
	ViewPredictions View = "predicciones"
	ViewComparisons View = "comparativas"
)

// Views lists every view in tab order.
func Views() []View {
	return []View{ViewGeneral, ViewWaste, ViewAreas, ViewIncidents, ViewPredictions, ViewComparisons}
}

// Title returns the heading of the view.
func (v View) Title() string {
	switch v {
	case ViewGeneral:
		return "Vista General"
	case ViewWaste:
		return "Análisis Residuos"
	case ViewAreas:
		return "Por Área"
	case ViewIncidents:
		return "Incidentes"
	case ViewPredictions:
		return "Predicciones QR"
	case ViewComparisons:
		return "Comparativas"
	default:
		return string(v)
	}
}

// ParseView resolves a view name.
func ParseView(name string) (View, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, v := range Views() {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown view %q", common.ErrInvalidConfig, name)
}

// Analysis holds every table the views render, computed from one filtered table.
type Analysis struct {
	WasteTypeCounts []Count           `json:"waste_type_counts"`
	AreaCounts      []Count           `json:"area_counts"`
	IncidentCounts  []Count           `json:"incident_counts"`
	StateCounts     []Count           `json:"state_counts"`
	Hourly          []HourCount       `json:"hourly"`
	Daily           []DailyRow        `json:"daily"`
	WasteTypes      []WasteTypeRow    `json:"waste_types"`
	Hazardous       []Count           `json:"hazardous"`
	Areas           []AreaRow         `json:"areas"`
	Staff           []AreaStaff       `json:"staff"`
	Incidents       []IncidentRow     `json:"incidents"`
	IncidentDetails []model.Record    `json:"-"`
	Users           []UserRow         `json:"users"`
	WasteIncidents  Crosstab          `json:"waste_incidents"`
	WasteStates     Crosstab          `json:"waste_states"`
	WasteAreas      Crosstab          `json:"waste_areas"`
	Predictions     PredictionSummary `json:"predictions"`
	Metrics         Metrics           `json:"metrics"`
}

// Analyze computes every breakdown of a processed table.
func Analyze(t model.Table) *Analysis {
	m := Compute(t)
	return &Analysis{
		Metrics:         m,
		WasteTypeCounts: WasteTypeCounts(t),
		AreaCounts:      AreaCounts(t),
		IncidentCounts:  IncidentCounts(t),
		StateCounts:     StateCounts(t),
		Hourly:          HourlyCounts(t),
		Daily:           DailyTable(t),
		WasteTypes:      WasteTypeTable(t),
		Hazardous:       HazardousCounts(t),
		Areas:           AreaTable(t),
		Staff:           StaffByArea(t),
		Incidents:       IncidentTable(t),
		IncidentDetails: IncidentDetails(t),
		Users:           UserTable(t),
		WasteIncidents:  WasteIncidentMatrix(t),
		WasteStates:     WasteStateMatrix(t),
		WasteAreas:      WasteAreaMatrix(t),
		Predictions:     SummarizePredictions(t, m),
	}
}
