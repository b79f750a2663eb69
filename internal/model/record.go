// Package model defines the core domain models used throughout the application.
package model

import "time"

// IncidentKind is the incident category derived from a record's observations.
type IncidentKind string

// Incident kinds. IncidentNone is the default when no rule matches.
const (
	IncidentNone            IncidentKind = "NO"
	IncidentSegregation     IncidentKind = "SEGREGACIÓN"
	IncidentMissingBag      IncidentKind = "FALTA BOLSA"
	IncidentSpill           IncidentKind = "DERRAME"
	IncidentBrokenContainer IncidentKind = "RECIPIENTE ROTO"
)

// IncidentKinds lists every incident kind in rule order, IncidentNone first.
func IncidentKinds() []IncidentKind {
	return []IncidentKind{
		IncidentNone,
		IncidentSegregation,
		IncidentMissingBag,
		IncidentSpill,
		IncidentBrokenContainer,
	}
}

// IsIncident reports whether the kind denotes an actual incident.
func (k IncidentKind) IsIncident() bool {
	return k != "" && k != IncidentNone
}

// Canonical container fill levels.
const (
	StateEmpty       = "VACÍO"
	StateHalf        = "MEDIO"
	StateFull        = "LLENO"
	StateNotRecorded = "NO REGISTRADO"
)

// Container colors of the controlled palette, plus the review sentinel.
const (
	ColorRed      = "ROJO"
	ColorGuardian = "GUARDIAN"
	ColorWhite    = "BLANCO"
	ColorBlack    = "NEGRO"
	ColorReview   = "REVISAR"
)

// Known waste types.
const (
	WasteBiosanitary    = "BIOSANITARIOS"
	WasteSharps         = "CORTOPUNZANTES"
	WastePathological   = "ANATOMOPATOLOGICOS"
	WasteLabChemical    = "RESIDUOS QUIMICOS DE LABORATORIO CLINICO"
	WasteDentalChemical = "RESIDUOS QUIMICOS DE ODONTOLOGIA E HIGIENE ORAL"
	WasteRecyclable     = "RESIDUOS APROVECHABLES"
	WasteNonRecyclable  = "RESIDUOS NO APROVECHABLES"
)

// HazardousWasteTypes are the waste types reported in the hazardous subset.
func HazardousWasteTypes() []string {
	return []string{WasteSharps, WasteLabChemical, WasteDentalChemical}
}

// Record is a single waste segregation log entry.
// Empty strings stand for absent values.
type Record struct {
	Timestamp      *time.Time
	Prediction     *Prediction
	Extra          map[string]string // Passthrough columns keyed by source header
	User           string
	Area           string
	WasteType      string
	ContainerColor string
	ContainerState string
	Observations   string
	IncidentKind   IncidentKind
	Line           int // Source row number, 1-based including the header
}

// Prediction is the expected-container enrichment of a record.
type Prediction struct {
	Container          string
	SuggestedWasteType string // Closest known waste type when Container is ColorReview
	Mismatch           bool
}

// Date returns the calendar date of the timestamp.
func (r *Record) Date() (time.Time, bool) {
	if r.Timestamp == nil {
		return time.Time{}, false
	}
	t := *r.Timestamp
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), true
}

// Hour returns the hour of day of the timestamp.
func (r *Record) Hour() (int, bool) {
	if r.Timestamp == nil {
		return 0, false
	}
	return r.Timestamp.Hour(), true
}

// HasIncident reports whether the record was tagged with an incident.
func (r *Record) HasIncident() bool {
	return r.IncidentKind.IsIncident()
}

// IsMismatch reports whether the observed container differs from the predicted one.
// It is false when the prediction pass has not run.
func (r *Record) IsMismatch() bool {
	return r.Prediction != nil && r.Prediction.Mismatch
}

// SuggestedWasteType returns the closest known waste type of a record sent to
// review, or an empty string.
func (r *Record) SuggestedWasteType() string {
	if r.Prediction == nil {
		return ""
	}
	return r.Prediction.SuggestedWasteType
}

// PredictedContainer returns the predicted container or an empty string.
func (r *Record) PredictedContainer() string {
	if r.Prediction == nil {
		return ""
	}
	return r.Prediction.Container
}
