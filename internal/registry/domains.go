package registry

import (
	"fmt"
	"strconv"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
	"github.com/ArthurBonsu/ledgerflow/internal/pipeline"
)

// Domain names accepted by Lookup.
const (
	DomainCity      = "city"
	DomainCompany   = "company"
	DomainEmissions = "emissions"
	DomainHealth    = "health"
	DomainRenewal   = "renewal"
)

// DateLayout is the date format shared by all domain datasets
// (day/month/year).
const DateLayout = "02/01/2006"

// Definition binds one data domain to its ledger operation, schema
// rules, and aggregation strategy.
type Definition struct {
	// Name is the registry key and the audit log domain.
	Name string

	// Operation is the ledger write operation invoked per record.
	Operation string

	// LogFile is the audit log filename for this domain.
	LogFile string

	// Rules validate this domain's datasets.
	Rules pipeline.Rules

	// GroupBy lists the canonical fields the aggregation groups on.
	GroupBy []string

	// Method is the value reduction applied per group.
	Method pipeline.Reduction

	// Args maps an aggregated record to the operation's argument
	// list.
	Args func(domain.AggregatedRecord) []string
}

// defs is the registry table, one definition per ledger contract.
var defs = map[string]Definition{
	DomainCity: {
		Name:      DomainCity,
		Operation: "registerCity",
		LogFile:   "city_register_logs.json",
		Rules: pipeline.Rules{
			RequiredColumns: []string{"city", "date", "sector", "value"},
			Mapping:         domain.ColumnMapping{Entity: "city", Date: "date", Category: "sector", Value: "value"},
			MinValue:        0,
			MaxValue:        100,
			DateLayout:      DateLayout,
		},
		// One registration per city; max keeps the reduction
		// deterministic over the input multiset.
		GroupBy: []string{domain.FieldEntity},
		Method:  pipeline.ReduceMax,
		Args: func(r domain.AggregatedRecord) []string {
			return []string{r.Entity, r.Date, r.Category, formatValue(r.Value)}
		},
	},
	DomainCompany: {
		Name:      DomainCompany,
		Operation: "registerCompany",
		LogFile:   "company_register_logs.json",
		Rules: pipeline.Rules{
			RequiredColumns: []string{"company_name", "registration_date", "sector", "emissions_baseline"},
			Mapping:         domain.ColumnMapping{Entity: "company_name", Date: "registration_date", Category: "sector", Value: "emissions_baseline"},
			MinValue:        0,
			MaxValue:        1e9,
			DateLayout:      DateLayout,
		},
		GroupBy: []string{domain.FieldEntity, domain.FieldCategory},
		Method:  pipeline.ReduceSum,
		Args: func(r domain.AggregatedRecord) []string {
			return []string{r.Entity, r.Date, r.Category, formatValue(r.Value)}
		},
	},
	DomainEmissions: {
		Name:      DomainEmissions,
		Operation: "processEmissions",
		LogFile:   "emissions_processing_logs.json",
		Rules: pipeline.Rules{
			RequiredColumns: []string{"city", "date", "sector", "value"},
			Mapping:         domain.ColumnMapping{Entity: "city", Date: "date", Category: "sector", Value: "value"},
			MinValue:        0,
			MaxValue:        100,
			DateLayout:      DateLayout,
		},
		// Daily totals per city.
		GroupBy: []string{domain.FieldEntity, domain.FieldDate},
		Method:  pipeline.ReduceSum,
		Args: func(r domain.AggregatedRecord) []string {
			// The contract takes the value scaled to an integer.
			return []string{r.Entity, r.Date, strconv.FormatInt(int64(r.Value*1000), 10)}
		},
	},
	DomainHealth: {
		Name:      DomainHealth,
		Operation: "calculateCityHealth",
		LogFile:   "city_health_logs.json",
		Rules: pipeline.Rules{
			RequiredColumns: []string{"city", "date", "sector", "value"},
			Mapping:         domain.ColumnMapping{Entity: "city", Date: "date", Category: "sector", Value: "value"},
			MinValue:        0,
			MaxValue:        100,
			DateLayout:      DateLayout,
		},
		GroupBy: []string{domain.FieldEntity},
		Method:  pipeline.ReduceSum,
		Args: func(r domain.AggregatedRecord) []string {
			return []string{r.Entity, formatValue(r.Value)}
		},
	},
	DomainRenewal: {
		Name:      DomainRenewal,
		Operation: "calculateRenewalMetrics",
		LogFile:   "renewal_metrics_logs.json",
		Rules: pipeline.Rules{
			RequiredColumns: []string{"city", "date", "sector", "value"},
			Mapping:         domain.ColumnMapping{Entity: "city", Date: "date", Category: "sector", Value: "value"},
			MinValue:        0,
			MaxValue:        100,
			DateLayout:      DateLayout,
		},
		GroupBy: []string{domain.FieldEntity},
		Method:  pipeline.ReduceSum,
		Args: func(r domain.AggregatedRecord) []string {
			return []string{r.Entity, formatValue(r.Value)}
		},
	},
}

// Lookup returns the definition for the named domain.
func Lookup(name string) (Definition, error) {
	def, ok := defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, name)
	}
	return def, nil
}

// Names returns the registered domain names, for CLI help and
// validation.
func Names() []string {
	return []string{DomainCity, DomainCompany, DomainEmissions, DomainHealth, DomainRenewal}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
