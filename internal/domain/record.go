package domain

// Record represents a single tabular data point as delivered by a dataset
// loader. The four core fields are shared by every domain; anything else
// the source carries is preserved in Extra.
type Record struct {
	// Entity is the primary subject (city name, company name, ...).
	Entity string

	// Date is the observation date, normalized to the configured layout.
	Date string

	// Category is the sector or classification of the observation.
	Category string

	// Value is the numeric measurement.
	Value float64

	// Extra holds domain-specific columns that survive validation
	// untouched.
	Extra map[string]string
}

// Canonical field names accepted by Record.Field and by grouping keys.
const (
	FieldEntity   = "entity"
	FieldDate     = "date"
	FieldCategory = "category"
)

// Key identifies a record for duplicate detection. Two records with the
// same key describe the same observation.
type Key struct {
	Entity   string
	Date     string
	Category string
}

// Key returns the identity tuple of the record.
func (r Record) Key() Key {
	return Key{Entity: r.Entity, Date: r.Date, Category: r.Category}
}

// Field returns the named field as a string. Canonical names resolve to
// the core fields; anything else is looked up in Extra.
func (r Record) Field(name string) string {
	switch name {
	case FieldEntity:
		return r.Entity
	case FieldDate:
		return r.Date
	case FieldCategory:
		return r.Category
	default:
		return r.Extra[name]
	}
}

// Dataset is an ordered sequence of records.
type Dataset []Record

// TotalValue returns the sum of all record values.
func (d Dataset) TotalValue() float64 {
	var total float64
	for _, r := range d {
		total += r.Value
	}
	return total
}

// AggregatedRecord is one record per distinct grouping-key tuple, with its
// value reduced by the configured method. Input records are consumed by
// aggregation; only aggregated records flow downstream.
type AggregatedRecord struct {
	Record

	// SourceCount is the number of input records reduced into this one.
	SourceCount int
}
