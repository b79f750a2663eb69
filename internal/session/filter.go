package session

import (
	"slices"

	"github.com/Veraticus/segregate/internal/model"
)

// Filter restricts a view by area and waste type. An empty list places no
// restriction on its field. When areas are selected, records without an area
// are excluded.
type Filter struct {
	Areas      []string
	WasteTypes []string
}

// IsEmpty reports whether the filter accepts every record.
func (f Filter) IsEmpty() bool {
	return len(f.Areas) == 0 && len(f.WasteTypes) == 0
}

// Matches reports whether a record passes the filter.
func (f Filter) Matches(r *model.Record) bool {
	if len(f.Areas) > 0 && !slices.Contains(f.Areas, r.Area) {
		return false
	}
	if len(f.WasteTypes) > 0 && !slices.Contains(f.WasteTypes, r.WasteType) {
		return false
	}
	return true
}

// Toggle returns a copy of values with v added, or removed when present.
func Toggle(values []string, v string) []string {
	if i := slices.Index(values, v); i >= 0 {
		return slices.Delete(slices.Clone(values), i, i+1)
	}
	return append(slices.Clone(values), v)
}

// FilterOptions lists the distinct areas and waste types of a table, in order
// of first appearance.
type FilterOptions struct {
	Areas      []string
	WasteTypes []string
}

// OptionsFor collects the filter options of a table. Empty values are skipped.
func OptionsFor(t model.Table) FilterOptions {
	var opts FilterOptions
	seenArea := make(map[string]struct{})
	seenType := make(map[string]struct{})
	for i := range t.Records {
		r := &t.Records[i]
		if _, ok := seenArea[r.Area]; !ok && r.Area != "" {
			seenArea[r.Area] = struct{}{}
			opts.Areas = append(opts.Areas, r.Area)
		}
		if _, ok := seenType[r.WasteType]; !ok && r.WasteType != "" {
			seenType[r.WasteType] = struct{}{}
			opts.WasteTypes = append(opts.WasteTypes, r.WasteType)
		}
	}
	return opts
}
