// Package analysis aggregates waste log tables into metrics, breakdown tables and reports.
package analysis

import (
	"math"
	"strings"

	"github.com/Veraticus/segregate/internal/model"
)

// Metrics is the summary record shown at the top of every view and report.
type Metrics struct {
	Total         int     `json:"total"`
	UniqueUsers   int     `json:"unique_users"`
	UniqueAreas   int     `json:"unique_areas"`
	IncidentCount int     `json:"incident_count"`
	IncidentPct   float64 `json:"incident_pct"`
	Biosanitarios int     `json:"biosanitarios"`
	Quimicos      int     `json:"quimicos"`
}

// Compute derives the summary metrics of a processed table.
func Compute(t model.Table) Metrics {
	m := Metrics{Total: t.Len()}

	users := make(map[string]struct{})
	areas := make(map[string]struct{})
	for i := range t.Records {
		r := &t.Records[i]
		if r.User != "" {
			users[r.User] = struct{}{}
		}
		if r.Area != "" {
			areas[r.Area] = struct{}{}
		}
		if r.HasIncident() {
			m.IncidentCount++
		}
		if r.WasteType == model.WasteBiosanitary {
			m.Biosanitarios++
		}
		if strings.Contains(strings.ToUpper(r.WasteType), "QUIMICO") {
			m.Quimicos++
		}
	}

	m.UniqueUsers = len(users)
	m.UniqueAreas = len(areas)
	m.IncidentPct = Percent(m.IncidentCount, m.Total)
	return m
}

// BiosanitariosPct returns the biosanitary share of all records.
func (m Metrics) BiosanitariosPct() float64 {
	return Percent(m.Biosanitarios, m.Total)
}

// QuimicosPct returns the chemical share of all records.
func (m Metrics) QuimicosPct() float64 {
	return Percent(m.Quimicos, m.Total)
}

// Percent returns part as a percentage of total, or 0 when total is 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// round2 rounds to two decimals, as the breakdown tables display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
