package domain

// Row is one raw tabular row, keyed by column name. Values are
// uninterpreted strings until validation coerces them.
type Row map[string]string

// Table is a raw tabular dataset as delivered by a loader, before
// validation. Columns preserves source column order.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn returns true if the table declares the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnMapping names the source columns that carry the four core record
// fields. Each domain defines its own mapping (city datasets key on
// "city", company datasets on "company").
type ColumnMapping struct {
	Entity   string
	Date     string
	Category string
	Value    string
}
