package ingest

// Canonical column names of a normalized table.
const (
	ColumnTimestamp      = "timestamp"
	ColumnUser           = "usuario"
	ColumnArea           = "area"
	ColumnWasteType      = "tipo_residuo"
	ColumnContainerColor = "color_recipiente"
	ColumnContainerState = "estado_recipiente"
	ColumnObservations   = "observaciones"

	// Derived columns written on export and recomputed on ingestion.
	ColumnDate               = "fecha"
	ColumnHour               = "hora"
	ColumnIncident           = "incidente"
	ColumnPredictedContainer = "recipiente_predicho"
	ColumnMismatch           = "es_incorrecto"
	ColumnSuggestedWasteType = "tipo_sugerido"
)

// TimestampLayout is the layout of the form's "Marca temporal" column.
const TimestampLayout = "1/2/2006 15:04:05"

// legacyHeaders maps the form's spreadsheet headers to canonical names.
// Matching is exact; the waste type header really does end in a space.
var legacyHeaders = map[string]string{
	"Marca temporal":       ColumnTimestamp,
	"1. USUARIO":           ColumnUser,
	"2. ÁREA":              ColumnArea,
	"3. TIPO DE RESIDUOS ": ColumnWasteType,
	"COLOR DEL RECIPIENTE": ColumnContainerColor,
	"Columna 12":           ColumnContainerState,
	"Columna 13":           ColumnObservations,
}

// CanonicalColumns lists the canonical columns in export order.
func CanonicalColumns() []string {
	return []string{
		ColumnTimestamp,
		ColumnUser,
		ColumnArea,
		ColumnWasteType,
		ColumnContainerColor,
		ColumnContainerState,
		ColumnObservations,
	}
}

// DerivedColumns lists the derived columns in export order.
func DerivedColumns() []string {
	return []string{
		ColumnDate,
		ColumnHour,
		ColumnIncident,
		ColumnPredictedContainer,
		ColumnMismatch,
		ColumnSuggestedWasteType,
	}
}

// RequiredColumns must be present after renaming for a table to load.
func RequiredColumns() []string {
	return []string{ColumnTimestamp, ColumnUser, ColumnWasteType}
}

// RenameColumn maps a raw header to its canonical name. Unmapped headers are
// returned unchanged.
func RenameColumn(header string) string {
	if canonical, ok := legacyHeaders[header]; ok {
		return canonical
	}
	return header
}

func isCanonical(name string) bool {
	for _, c := range CanonicalColumns() {
		if c == name {
			return true
		}
	}
	return false
}

func isDerived(name string) bool {
	for _, c := range DerivedColumns() {
		if c == name {
			return true
		}
	}
	return false
}
