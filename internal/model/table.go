package model

// Table is an ordered collection of records plus the passthrough column layout.
type Table struct {
	ExtraColumns []string
	Records      []Record
}

// Len returns the number of records.
func (t Table) Len() int {
	return len(t.Records)
}

// Clone returns a deep copy of the table. Predictions and extra maps are copied
// so enrichment passes on the clone never reach back into the source.
func (t Table) Clone() Table {
	out := Table{
		ExtraColumns: append([]string(nil), t.ExtraColumns...),
		Records:      make([]Record, len(t.Records)),
	}
	for i, r := range t.Records {
		out.Records[i] = r.clone()
	}
	return out
}

// Where returns a new table with the records accepted by keep.
func (t Table) Where(keep func(*Record) bool) Table {
	out := Table{
		ExtraColumns: t.ExtraColumns,
		Records:      make([]Record, 0, len(t.Records)),
	}
	for i := range t.Records {
		if keep(&t.Records[i]) {
			out.Records = append(out.Records, t.Records[i])
		}
	}
	return out
}

// PredictionsAvailable reports whether every record carries a prediction.
func (t Table) PredictionsAvailable() bool {
	for i := range t.Records {
		if t.Records[i].Prediction == nil {
			return false
		}
	}
	return len(t.Records) > 0
}

func (r Record) clone() Record {
	if r.Timestamp != nil {
		ts := *r.Timestamp
		r.Timestamp = &ts
	}
	if r.Prediction != nil {
		p := *r.Prediction
		r.Prediction = &p
	}
	if r.Extra != nil {
		extra := make(map[string]string, len(r.Extra))
		for k, v := range r.Extra {
			extra[k] = v
		}
		r.Extra = extra
	}
	return r
}
