package analysis

import (
	"sort"
	"time"

	"github.com/Veraticus/segregate/internal/model"
)

// NotAvailable fills cells that have no value to show.
const NotAvailable = "N/A"

// Count is one entry of a frequency table.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// WasteTypeRow summarizes one waste type.
type WasteTypeRow struct {
	WasteType string  `json:"waste_type"`
	Color     string  `json:"most_common_color"`
	Count     int     `json:"count"`
	Incidents int     `json:"incidents"`
	PctTotal  float64 `json:"pct_total"`
}

// AreaRow summarizes one area.
type AreaRow struct {
	Area         string  `json:"area"`
	Records      int     `json:"records"`
	Users        int     `json:"users"`
	Incidents    int     `json:"incidents"`
	PctIncidents float64 `json:"pct_incidents"`
}

// AreaStaff lists the users that logged entries for an area.
type AreaStaff struct {
	Area  string   `json:"area"`
	Users []string `json:"users"`
}

// IncidentRow summarizes one incident kind.
type IncidentRow struct {
	Kind  model.IncidentKind `json:"kind"`
	Count int                `json:"count"`
	Pct   float64            `json:"pct"`
}

// UserRow summarizes one user.
type UserRow struct {
	User         string  `json:"user"`
	Records      int     `json:"records"`
	Incidents    int     `json:"incidents"`
	PctIncidents float64 `json:"pct_incidents"`
}

// DailyRow is one day of the timeline.
type DailyRow struct {
	Date         time.Time `json:"date"`
	Records      int       `json:"records"`
	Incidents    int       `json:"incidents"`
	PctIncidents float64   `json:"pct_incidents"`
}

// HourCount is the number of records logged in one hour of the day.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// Crosstab counts record pairs. Rows and Columns are sorted; Cells[i][j]
// counts records with Rows[i] and Columns[j].
type Crosstab struct {
	Rows    []string `json:"rows"`
	Columns []string `json:"columns"`
	Cells   [][]int  `json:"cells"`
}

// ValueCounts counts each non-empty value, most frequent first. Ties keep the
// order in which values first appear.
func ValueCounts(values []string) []Count {
	index := make(map[string]int)
	var counts []Count
	for _, v := range values {
		if v == "" {
			continue
		}
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, Count{Label: v, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

func column(t model.Table, get func(*model.Record) string) []string {
	values := make([]string, len(t.Records))
	for i := range t.Records {
		values[i] = get(&t.Records[i])
	}
	return values
}

// WasteTypeCounts counts records per waste type.
func WasteTypeCounts(t model.Table) []Count {
	return ValueCounts(column(t, func(r *model.Record) string { return r.WasteType }))
}

// AreaCounts counts records per area; records without an area are skipped.
func AreaCounts(t model.Table) []Count {
	return ValueCounts(column(t, func(r *model.Record) string { return r.Area }))
}

// StateCounts counts records per container state.
func StateCounts(t model.Table) []Count {
	return ValueCounts(column(t, func(r *model.Record) string { return r.ContainerState }))
}

// IncidentCounts counts records per incident kind, excluding records without one.
func IncidentCounts(t model.Table) []Count {
	return ValueCounts(column(t, func(r *model.Record) string {
		if !r.HasIncident() {
			return ""
		}
		return string(r.IncidentKind)
	}))
}

type group struct {
	key     string
	records []*model.Record
}

// groupBy buckets records by key in ascending key order. Empty keys are dropped.
func groupBy(t model.Table, key func(*model.Record) string) []group {
	index := make(map[string]int)
	var groups []group
	for i := range t.Records {
		r := &t.Records[i]
		k := key(r)
		if k == "" {
			continue
		}
		gi, ok := index[k]
		if !ok {
			gi = len(groups)
			index[k] = gi
			groups = append(groups, group{key: k})
		}
		groups[gi].records = append(groups[gi].records, r)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].key < groups[j].key })
	return groups
}

func countIncidents(records []*model.Record) int {
	n := 0
	for _, r := range records {
		if r.HasIncident() {
			n++
		}
	}
	return n
}

func countDistinct(records []*model.Record, get func(*model.Record) string) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		if v := get(r); v != "" {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

// mostCommon returns the most frequent non-empty value, preferring the
// smallest value on ties, or NotAvailable.
func mostCommon(records []*model.Record, get func(*model.Record) string) string {
	freq := make(map[string]int)
	for _, r := range records {
		if v := get(r); v != "" {
			freq[v]++
		}
	}

	best, bestCount := NotAvailable, 0
	for v, n := range freq {
		if n > bestCount || (n == bestCount && v < best) {
			best, bestCount = v, n
		}
	}
	return best
}

// WasteTypeTable summarizes each waste type, largest first.
func WasteTypeTable(t model.Table) []WasteTypeRow {
	groups := groupBy(t, func(r *model.Record) string { return r.WasteType })

	total := 0
	for _, g := range groups {
		total += len(g.records)
	}

	rows := make([]WasteTypeRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, WasteTypeRow{
			WasteType: g.key,
			Count:     len(g.records),
			Incidents: countIncidents(g.records),
			Color:     mostCommon(g.records, func(r *model.Record) string { return r.ContainerColor }),
			PctTotal:  round2(Percent(len(g.records), total)),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	return rows
}

// HazardousCounts counts records of the hazardous waste types, by waste type.
func HazardousCounts(t model.Table) []Count {
	hazardous := make(map[string]struct{})
	for _, w := range model.HazardousWasteTypes() {
		hazardous[w] = struct{}{}
	}

	groups := groupBy(t, func(r *model.Record) string {
		if _, ok := hazardous[r.WasteType]; ok {
			return r.WasteType
		}
		return ""
	})

	counts := make([]Count, 0, len(groups))
	for _, g := range groups {
		counts = append(counts, Count{Label: g.key, Count: len(g.records)})
	}
	return counts
}

// AreaTable summarizes each area in name order.
func AreaTable(t model.Table) []AreaRow {
	groups := groupBy(t, func(r *model.Record) string { return r.Area })

	rows := make([]AreaRow, 0, len(groups))
	for _, g := range groups {
		incidents := countIncidents(g.records)
		rows = append(rows, AreaRow{
			Area:         g.key,
			Records:      len(g.records),
			Users:        countDistinct(g.records, func(r *model.Record) string { return r.User }),
			Incidents:    incidents,
			PctIncidents: round2(Percent(incidents, len(g.records))),
		})
	}
	return rows
}

// StaffByArea lists the users of each area, both in order of first appearance.
func StaffByArea(t model.Table) []AreaStaff {
	index := make(map[string]int)
	seen := make(map[string]map[string]struct{})
	var staff []AreaStaff
	for i := range t.Records {
		r := &t.Records[i]
		if r.Area == "" {
			continue
		}
		ai, ok := index[r.Area]
		if !ok {
			ai = len(staff)
			index[r.Area] = ai
			seen[r.Area] = make(map[string]struct{})
			staff = append(staff, AreaStaff{Area: r.Area})
		}
		if r.User == "" {
			continue
		}
		if _, dup := seen[r.Area][r.User]; dup {
			continue
		}
		seen[r.Area][r.User] = struct{}{}
		staff[ai].Users = append(staff[ai].Users, r.User)
	}
	return staff
}

// IncidentTable summarizes each incident kind as a share of all incidents.
func IncidentTable(t model.Table) []IncidentRow {
	counts := IncidentCounts(t)

	total := 0
	for _, c := range counts {
		total += c.Count
	}

	rows := make([]IncidentRow, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, IncidentRow{
			Kind:  model.IncidentKind(c.Label),
			Count: c.Count,
			Pct:   round2(Percent(c.Count, total)),
		})
	}
	return rows
}

// IncidentDetails returns the records with an incident, newest first.
// Records without a timestamp come last.
func IncidentDetails(t model.Table) []model.Record {
	details := t.Where(func(r *model.Record) bool { return r.HasIncident() }).Records

	sort.SliceStable(details, func(i, j int) bool {
		a, b := details[i].Timestamp, details[j].Timestamp
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return details
}

// UserTable summarizes each user, most active first.
func UserTable(t model.Table) []UserRow {
	groups := groupBy(t, func(r *model.Record) string { return r.User })

	rows := make([]UserRow, 0, len(groups))
	for _, g := range groups {
		incidents := countIncidents(g.records)
		rows = append(rows, UserRow{
			User:         g.key,
			Records:      len(g.records),
			Incidents:    incidents,
			PctIncidents: round2(Percent(incidents, len(g.records))),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Records > rows[j].Records })
	return rows
}

// CrossCount tabulates every pair of non-empty row and column values.
func CrossCount(t model.Table, row, col func(*model.Record) string) Crosstab {
	rowIndex := make(map[string]int)
	colIndex := make(map[string]int)
	for i := range t.Records {
		r := &t.Records[i]
		rv, cv := row(r), col(r)
		if rv == "" || cv == "" {
			continue
		}
		rowIndex[rv] = 0
		colIndex[cv] = 0
	}

	ct := Crosstab{
		Rows:    sortedKeys(rowIndex),
		Columns: sortedKeys(colIndex),
	}
	for i, v := range ct.Rows {
		rowIndex[v] = i
	}
	for i, v := range ct.Columns {
		colIndex[v] = i
	}

	ct.Cells = make([][]int, len(ct.Rows))
	for i := range ct.Cells {
		ct.Cells[i] = make([]int, len(ct.Columns))
	}
	for i := range t.Records {
		r := &t.Records[i]
		rv, cv := row(r), col(r)
		if rv == "" || cv == "" {
			continue
		}
		ct.Cells[rowIndex[rv]][colIndex[cv]]++
	}
	return ct
}

// WasteStateMatrix crosses waste types with container states.
func WasteStateMatrix(t model.Table) Crosstab {
	return CrossCount(t,
		func(r *model.Record) string { return r.WasteType },
		func(r *model.Record) string { return r.ContainerState })
}

// WasteAreaMatrix crosses waste types with areas. Records without an area are
// left out.
func WasteAreaMatrix(t model.Table) Crosstab {
	return CrossCount(t,
		func(r *model.Record) string { return r.WasteType },
		func(r *model.Record) string { return r.Area })
}

// WasteIncidentMatrix crosses waste types with incident kinds, NO included.
func WasteIncidentMatrix(t model.Table) Crosstab {
	return CrossCount(t,
		func(r *model.Record) string { return r.WasteType },
		func(r *model.Record) string { return string(r.IncidentKind) })
}

// Get returns the count for a row and column, 0 when either is absent.
func (c Crosstab) Get(row, col string) int {
	for i, r := range c.Rows {
		if r != row {
			continue
		}
		for j, cl := range c.Columns {
			if cl == col {
				return c.Cells[i][j]
			}
		}
	}
	return 0
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DailyTable returns per-day totals in date order. Records without a
// timestamp are not counted; records without an area still are.
func DailyTable(t model.Table) []DailyRow {
	byDay := make(map[time.Time]*DailyRow)
	for i := range t.Records {
		r := &t.Records[i]
		day, ok := r.Date()
		if !ok {
			continue
		}
		row, ok := byDay[day]
		if !ok {
			row = &DailyRow{Date: day}
			byDay[day] = row
		}
		row.Records++
		if r.HasIncident() {
			row.Incidents++
		}
	}

	rows := make([]DailyRow, 0, len(byDay))
	for _, row := range byDay {
		row.PctIncidents = round2(Percent(row.Incidents, row.Records))
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}

// HourlyCounts returns the number of records per hour of day, for the hours
// that have any.
func HourlyCounts(t model.Table) []HourCount {
	var perHour [24]int
	for i := range t.Records {
		if h, ok := t.Records[i].Hour(); ok {
			perHour[h]++
		}
	}

	var counts []HourCount
	for h, n := range perHour {
		if n > 0 {
			counts = append(counts, HourCount{Hour: h, Count: n})
		}
	}
	return counts
}
