package pipeline

import (
	"fmt"
	"strings"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
)

// Reduction names a supported value reduction method.
type Reduction string

const (
	ReduceSum  Reduction = "sum"
	ReduceMean Reduction = "mean"
	ReduceMax  Reduction = "max"
)

// Aggregator reduces a validated dataset to one record per distinct
// grouping-key tuple.
type Aggregator struct {
	groupBy []string
	method  Reduction
}

// NewAggregator creates an aggregator grouping by the given canonical
// field names. Returns domain.ErrUnsupportedReduction for an unknown
// method.
func NewAggregator(groupBy []string, method Reduction) (*Aggregator, error) {
	switch method {
	case ReduceSum, ReduceMean, ReduceMax:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedReduction, method)
	}
	return &Aggregator{groupBy: groupBy, method: method}, nil
}

type group struct {
	first domain.Record
	sum   float64
	max   float64
	count int
}

// Aggregate reduces the dataset. The result is a pure function of the
// input multiset; output order follows first appearance of each key,
// which callers must not rely on.
func (a *Aggregator) Aggregate(dataset domain.Dataset) []domain.AggregatedRecord {
	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, rec := range dataset {
		key := a.keyOf(rec)
		g, ok := groups[key]
		if !ok {
			g = &group{first: rec, max: rec.Value}
			groups[key] = g
			order = append(order, key)
		}
		g.sum += rec.Value
		if rec.Value > g.max {
			g.max = rec.Value
		}
		g.count++
	}

	out := make([]domain.AggregatedRecord, 0, len(order))
	for _, key := range order {
		g := groups[key]
		rec := g.first
		switch a.method {
		case ReduceSum:
			rec.Value = g.sum
		case ReduceMean:
			rec.Value = g.sum / float64(g.count)
		case ReduceMax:
			rec.Value = g.max
		}
		out = append(out, domain.AggregatedRecord{Record: rec, SourceCount: g.count})
	}
	return out
}

// keyOf builds the grouping key string for a record.
// \x1f separates components so adjacent fields cannot collide.
func (a *Aggregator) keyOf(rec domain.Record) string {
	parts := make([]string, len(a.groupBy))
	for i, field := range a.groupBy {
		parts[i] = rec.Field(field)
	}
	return strings.Join(parts, "\x1f")
}
