package pipeline

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
)

// RangePolicy selects how out-of-range values are handled.
type RangePolicy string

const (
	// RangeDrop removes out-of-range records from the dataset.
	RangeDrop RangePolicy = "drop"

	// RangeClamp keeps out-of-range records with their value clamped
	// to zero.
	RangeClamp RangePolicy = "clamp"
)

// Rules configures the validator for one domain.
type Rules struct {
	// RequiredColumns must all be declared by the input table.
	RequiredColumns []string

	// Mapping names the source columns carrying the core record
	// fields.
	Mapping domain.ColumnMapping

	// MinValue and MaxValue bound the accepted value range,
	// inclusive.
	MinValue float64
	MaxValue float64

	// DateLayout is the Go reference layout for the date column.
	DateLayout string

	// OnOutOfRange selects the range policy. Empty means RangeDrop.
	OnOutOfRange RangePolicy
}

// Report collects validation diagnostics. The input is never mutated;
// cleaning is limited to the documented dropping and clamping.
type Report struct {
	// Messages are human-readable diagnostics, one per violation
	// class observed.
	Messages []string

	// RowsIn and RowsOut count records before and after cleaning.
	RowsIn  int
	RowsOut int

	// DroppedBadValue counts records whose value column could not be
	// coerced to a number.
	DroppedBadValue int

	// DroppedBadDate counts records whose date failed to parse.
	DroppedBadDate int

	// OutOfRange counts records outside [MinValue, MaxValue],
	// whether dropped or clamped.
	OutOfRange int
}

// Clean returns true if no record was dropped, clamped, or coerced.
func (r Report) Clean() bool {
	return r.DroppedBadValue == 0 && r.DroppedBadDate == 0 && r.OutOfRange == 0
}

func (r *Report) addf(format string, args ...interface{}) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

// Validator enforces schema rules and coerces raw rows into typed
// records.
//
// Value coercion is strict: a record whose value cannot be parsed as a
// number is dropped and counted, never zero-filled.
type Validator struct {
	rules Rules
}

// NewValidator creates a validator for the given rule set.
func NewValidator(rules Rules) *Validator {
	if rules.OnOutOfRange == "" {
		rules.OnOutOfRange = RangeDrop
	}
	return &Validator{rules: rules}
}

// Validate checks the table against the rules and returns the cleaned,
// typed dataset plus a diagnostic report.
//
// A required column missing from the table is fatal and returns
// domain.ErrSchema; everything else is non-fatal cleaning reported
// through the Report. Validating an already-valid dataset returns it
// unchanged apart from informational counts.
func (v *Validator) Validate(table domain.Table) (domain.Dataset, Report, error) {
	report := Report{RowsIn: len(table.Rows)}

	var missing []string
	for _, col := range v.rules.RequiredColumns {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, report, fmt.Errorf("%w: missing columns %v", domain.ErrSchema, missing)
	}

	m := v.rules.Mapping
	dataset := make(domain.Dataset, 0, len(table.Rows))
	for _, row := range table.Rows {
		value, err := strconv.ParseFloat(row[m.Value], 64)
		if err != nil {
			report.DroppedBadValue++
			continue
		}

		date := row[m.Date]
		if v.rules.DateLayout != "" {
			parsed, err := time.Parse(v.rules.DateLayout, date)
			if err != nil {
				report.DroppedBadDate++
				continue
			}
			date = parsed.Format(v.rules.DateLayout)
		}

		if value < v.rules.MinValue || value > v.rules.MaxValue {
			report.OutOfRange++
			if v.rules.OnOutOfRange == RangeDrop {
				continue
			}
			value = 0
		}

		dataset = append(dataset, domain.Record{
			Entity:   row[m.Entity],
			Date:     date,
			Category: row[m.Category],
			Value:    value,
			Extra:    extraColumns(table.Columns, row, m),
		})
	}

	if report.DroppedBadValue > 0 {
		report.addf("dropped %d records with non-numeric values", report.DroppedBadValue)
	}
	if report.DroppedBadDate > 0 {
		report.addf("dropped %d records with unparseable dates", report.DroppedBadDate)
	}
	if report.OutOfRange > 0 {
		switch v.rules.OnOutOfRange {
		case RangeClamp:
			report.addf("clamped %d records outside [%v, %v] to zero", report.OutOfRange, v.rules.MinValue, v.rules.MaxValue)
		default:
			report.addf("dropped %d records outside [%v, %v]", report.OutOfRange, v.rules.MinValue, v.rules.MaxValue)
		}
	}

	report.RowsOut = len(dataset)
	return dataset, report, nil
}

// extraColumns copies the columns not consumed by the core mapping.
func extraColumns(columns []string, row domain.Row, m domain.ColumnMapping) map[string]string {
	var extra map[string]string
	for _, col := range columns {
		if col == m.Entity || col == m.Date || col == m.Category || col == m.Value {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[col] = row[col]
	}
	return extra
}
