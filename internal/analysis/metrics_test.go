package analysis

import (
	"testing"
	"time"

	"github.com/Veraticus/segregate/internal/classification"
	"github.com/Veraticus/segregate/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour int) *time.Time {
	t := time.Date(2025, 3, day, hour, 15, 0, 0, time.UTC)
	return &t
}

// sampleTable returns a processed and predicted table of six entries.
func sampleTable(t *testing.T) model.Table {
	t.Helper()

	raw := model.Table{Records: []model.Record{
		{Timestamp: at(3, 8), User: "ana", Area: "ODONTOLOGIA", WasteType: model.WasteBiosanitary,
			ContainerColor: "ROJO", ContainerState: "VACIO (<25%)"},
		{Timestamp: at(3, 9), User: "ana", Area: "ODONTOLOGIA", WasteType: model.WasteBiosanitary,
			ContainerColor: "ROJO", ContainerState: "LLENO (>75%)", Observations: "mal segregado"},
		{Timestamp: at(4, 9), User: "luis", Area: "URGENCIAS", WasteType: model.WasteSharps,
			ContainerColor: "GUARDIAN", ContainerState: "MEDIO (25% - 75%)"},
		{Timestamp: at(4, 14), User: "luis", Area: "URGENCIAS", WasteType: model.WasteRecyclable,
			ContainerColor: "NEGRO", Observations: "FALTA DE BOLSA"},
		{Timestamp: nil, User: "marta", Area: "", WasteType: model.WasteLabChemical,
			ContainerColor: "ROJO", ContainerState: "VACIO (<25%)", Observations: "derrame"},
		{Timestamp: at(5, 10), User: "marta", Area: "LABORATORIO", WasteType: "PAPEL",
			ContainerColor: "BLANCO", ContainerState: "VACIO (<25%)"},
	}}

	engine, err := classification.NewEngine(classification.DefaultRuleSet())
	require.NoError(t, err)
	processed, err := engine.Predict(engine.Process(raw))
	require.NoError(t, err)
	return processed
}

func TestCompute(t *testing.T) {
	m := Compute(sampleTable(t))

	assert.Equal(t, Metrics{
		Total:         6,
		UniqueUsers:   3,
		UniqueAreas:   3,
		IncidentCount: 3,
		IncidentPct:   50,
		Biosanitarios: 2,
		Quimicos:      1,
	}, m)
	assert.InDelta(t, 33.33, m.BiosanitariosPct(), 0.01)
	assert.InDelta(t, 16.67, m.QuimicosPct(), 0.01)
}

func TestCompute_EmptyTable(t *testing.T) {
	m := Compute(model.Table{})

	assert.Equal(t, 0, m.Total)
	assert.Zero(t, m.IncidentPct)
	assert.Zero(t, m.BiosanitariosPct())
	assert.Zero(t, m.QuimicosPct())
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name        string
		part, total int
		want        float64
	}{
		{name: "zero total", part: 0, total: 0, want: 0},
		{name: "half", part: 1, total: 2, want: 50},
		{name: "all", part: 7, total: 7, want: 100},
		{name: "third", part: 1, total: 3, want: 100.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percent(tt.part, tt.total), 1e-9)
		})
	}
}

func TestValueCounts(t *testing.T) {
	got := ValueCounts([]string{"B", "A", "", "A", "C", "B", "A"})
	assert.Equal(t, []Count{
		{Label: "A", Count: 3},
		{Label: "B", Count: 2},
		{Label: "C", Count: 1},
	}, got)

	tie := ValueCounts([]string{"Y", "X", "X", "Y"})
	assert.Equal(t, []Count{{Label: "Y", Count: 2}, {Label: "X", Count: 2}}, tie, "ties keep first appearance")

	assert.Empty(t, ValueCounts(nil))
}

func TestWasteTypeTable(t *testing.T) {
	rows := WasteTypeTable(sampleTable(t))
	require.Len(t, rows, 5)

	assert.Equal(t, WasteTypeRow{
		WasteType: model.WasteBiosanitary,
		Color:     "ROJO",
		Count:     2,
		Incidents: 1,
		PctTotal:  33.33,
	}, rows[0])

	// Single-record types follow in name order.
	assert.Equal(t, "CORTOPUNZANTES", rows[1].WasteType)
	assert.Equal(t, "PAPEL", rows[2].WasteType)
}

func TestMostCommon(t *testing.T) {
	records := []*model.Record{
		{ContainerColor: "ROJO"}, {ContainerColor: "NEGRO"}, {ContainerColor: "NEGRO"}, {ContainerColor: "ROJO"},
	}
	color := func(r *model.Record) string { return r.ContainerColor }

	assert.Equal(t, "NEGRO", mostCommon(records, color), "ties pick the smallest value")
	assert.Equal(t, NotAvailable, mostCommon([]*model.Record{{}}, color))
}

func TestHazardousCounts(t *testing.T) {
	assert.Equal(t, []Count{
		{Label: model.WasteSharps, Count: 1},
		{Label: model.WasteLabChemical, Count: 1},
	}, HazardousCounts(sampleTable(t)))
}

func TestAreaTable(t *testing.T) {
	table := sampleTable(t)
	rows := AreaTable(table)

	assert.Equal(t, []AreaRow{
		{Area: "LABORATORIO", Records: 1, Users: 1, Incidents: 0, PctIncidents: 0},
		{Area: "ODONTOLOGIA", Records: 2, Users: 1, Incidents: 1, PctIncidents: 50},
		{Area: "URGENCIAS", Records: 2, Users: 1, Incidents: 1, PctIncidents: 50},
	}, rows)

	assert.Equal(t, []AreaStaff{
		{Area: "ODONTOLOGIA", Users: []string{"ana"}},
		{Area: "URGENCIAS", Users: []string{"luis"}},
		{Area: "LABORATORIO", Users: []string{"marta"}},
	}, StaffByArea(table))
}

func TestIncidentTableAndDetails(t *testing.T) {
	table := sampleTable(t)

	rows := IncidentTable(table)
	require.Len(t, rows, 3)
	var total float64
	for _, r := range rows {
		assert.Equal(t, 1, r.Count)
		assert.True(t, r.Kind.IsIncident())
		total += r.Pct
	}
	assert.InDelta(t, 100, total, 0.02)

	details := IncidentDetails(table)
	require.Len(t, details, 3)
	assert.Equal(t, model.IncidentMissingBag, details[0].IncidentKind, "newest first")
	assert.Equal(t, model.IncidentSegregation, details[1].IncidentKind)
	assert.Nil(t, details[2].Timestamp, "undated incidents last")
}

func TestUserTable(t *testing.T) {
	rows := UserTable(sampleTable(t))
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, 2, r.Records)
	}
	assert.Equal(t, "ana", rows[0].User, "equal counts keep name order")
	assert.Equal(t, 50.0, rows[2].PctIncidents)
}

func TestCrosstabs(t *testing.T) {
	table := sampleTable(t)

	states := WasteStateMatrix(table)
	assert.Equal(t, 2, states.Get(model.WasteRecyclable, model.StateNotRecorded)+states.Get(model.WasteBiosanitary, model.StateEmpty))
	assert.Equal(t, 1, states.Get(model.WasteBiosanitary, model.StateFull))
	assert.Equal(t, 0, states.Get("UNKNOWN", model.StateFull))
	assert.IsIncreasing(t, states.Columns)

	incidents := WasteIncidentMatrix(table)
	assert.Contains(t, incidents.Columns, string(model.IncidentNone))
	assert.Equal(t, 1, incidents.Get(model.WasteLabChemical, string(model.IncidentSpill)))

	areas := WasteAreaMatrix(table)
	assert.Equal(t, []string{"LABORATORIO", "ODONTOLOGIA", "URGENCIAS"}, areas.Columns)
	assert.Equal(t, 2, areas.Get(model.WasteBiosanitary, "ODONTOLOGIA"))
	assert.Equal(t, 1, areas.Get(model.WasteRecyclable, "URGENCIAS"))
	assert.NotContains(t, areas.Rows, model.WasteLabChemical, "its only record has no area")
}

func TestTimeBuckets(t *testing.T) {
	table := sampleTable(t)

	daily := DailyTable(table)
	require.Len(t, daily, 3)
	assert.Equal(t, 3, daily[0].Date.Day())
	assert.Equal(t, 2, daily[0].Records)
	assert.Equal(t, 1, daily[0].Incidents)
	assert.Equal(t, 50.0, daily[0].PctIncidents)

	assert.Equal(t, []HourCount{
		{Hour: 8, Count: 1},
		{Hour: 9, Count: 2},
		{Hour: 10, Count: 1},
		{Hour: 14, Count: 1},
	}, HourlyCounts(table))
}

func TestDailyTable_CountsRecordsWithoutArea(t *testing.T) {
	table := model.Table{Records: []model.Record{
		{Timestamp: at(7, 8), Area: "URGENCIAS"},
		{Timestamp: at(7, 9), Area: "", IncidentKind: model.IncidentSpill},
	}}

	rows := DailyTable(table)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Records)
	assert.Equal(t, 1, rows[0].Incidents)
	assert.Equal(t, 50.0, rows[0].PctIncidents)
}

func TestSummarizePredictions(t *testing.T) {
	table := sampleTable(t)
	m := Compute(table)
	s := SummarizePredictions(table, m)

	require.True(t, s.Available)
	// NEGRO for recyclables and PAPEL (REVISAR) are wrong.
	assert.InDelta(t, 66.67, s.AccuracyPct, 0.01)
	assert.Equal(t, 18, s.Projected30Days)
	assert.Equal(t, 9, s.ProjectedIncidents)
	assert.Equal(t, []MismatchRow{
		{WasteType: "PAPEL", Color: "BLANCO", Count: 1},
		{WasteType: model.WasteRecyclable, Color: "NEGRO", Count: 1},
	}, s.Mismatches)

	assert.Equal(t, []ReviewRow{{WasteType: "PAPEL", Count: 1}}, s.Review)

	require.Len(t, s.Impact, 4)
	assert.Equal(t, m.IncidentPct, s.Impact[0].Current)
	assert.Equal(t, s.AccuracyPct, s.Impact[2].Current)
	assert.Equal(t, 98.0, s.Impact[3].WithQR)
}

func TestSummarizePredictions_Review(t *testing.T) {
	engine, err := classification.NewEngine(classification.DefaultRuleSet())
	require.NoError(t, err)
	table, err := engine.Predict(engine.Process(model.Table{Records: []model.Record{
		{User: "ana", WasteType: "CORTOPUNSANTES", ContainerColor: "GUARDIAN"},
		{User: "ana", WasteType: "CORTOPUNSANTES", ContainerColor: "GUARDIAN"},
		{User: "luis", WasteType: "FARMACOS VENCIDOS", ContainerColor: "ROJO"},
		{User: "luis", WasteType: model.WasteSharps, ContainerColor: "GUARDIAN"},
	}}))
	require.NoError(t, err)

	s := SummarizePredictions(table, Compute(table))
	assert.Equal(t, []ReviewRow{
		{WasteType: "CORTOPUNSANTES", Suggestion: model.WasteSharps, Count: 2},
		{WasteType: "FARMACOS VENCIDOS", Count: 1},
	}, s.Review)

	out := NewCLIFormatter().WithMarkdown(NewMarkdownRenderer(80, "notty")).FormatView(ViewPredictions, Analyze(table))
	assert.Contains(t, out, "Tipos a Revisar")
	assert.Contains(t, out, "CORTOPUNZANTES")
	assert.Contains(t, out, "Sin sugerencia")
}

func TestSummarizePredictions_Unavailable(t *testing.T) {
	table := model.Table{Records: []model.Record{{User: "ana", WasteType: model.WasteSharps}}}
	s := SummarizePredictions(table, Compute(table))

	assert.False(t, s.Available)
	assert.Zero(t, s.AccuracyPct)
	assert.Empty(t, s.Mismatches)
	assert.Equal(t, 3, s.Projected30Days)
}

func TestAnalyze(t *testing.T) {
	a := Analyze(sampleTable(t))
	assert.Equal(t, 6, a.Metrics.Total)
	assert.Len(t, a.WasteTypes, 5)
	assert.Len(t, a.IncidentDetails, 3)
	assert.True(t, a.Predictions.Available)

	empty := Analyze(model.Table{})
	assert.Zero(t, empty.Metrics.Total)
	assert.Empty(t, empty.Daily)
	assert.False(t, empty.Predictions.Available)
}

func TestParseView(t *testing.T) {
	for _, v := range Views() {
		got, err := ParseView(string(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.NotEmpty(t, v.Title())
	}

	got, err := ParseView(" Incidentes ")
	require.NoError(t, err)
	assert.Equal(t, ViewIncidents, got)

	_, err = ParseView("charts")
	assert.Error(t, err)
}
