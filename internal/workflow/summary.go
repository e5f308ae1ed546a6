package workflow

import (
	"github.com/ArthurBonsu/ledgerflow/internal/engine"
	"github.com/ArthurBonsu/ledgerflow/internal/pipeline"
)

// Summary is the per-run result returned by the coordinator. It always
// distinguishes attempted, succeeded, and failed records, even when
// whole batches were aborted.
type Summary struct {
	// RunID uniquely identifies this workflow run.
	RunID string `json:"run_id"`

	// Domain is the registry domain the run served.
	Domain string `json:"domain"`

	// Source is the dataset the run processed.
	Source string `json:"source"`

	// Attempted, Succeeded, and Failed count record submissions.
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`

	// TotalValue is the summed value of all confirmed records.
	TotalValue float64 `json:"total_value"`

	// Batches is the number of batches the run partitioned into.
	Batches int `json:"batches"`

	// BatchErrors holds the message of each aborted batch.
	BatchErrors []string `json:"batch_errors,omitempty"`

	// ValueByEntity totals confirmed values per entity.
	ValueByEntity map[string]float64 `json:"value_by_entity,omitempty"`

	// Validation carries the validator's diagnostics for the run.
	Validation pipeline.Report `json:"validation"`
}

// summarize folds batch results into the run summary.
func summarize(summary *Summary, results []engine.BatchResult) {
	summary.Batches = len(results)
	for _, res := range results {
		if res.Err != nil {
			summary.BatchErrors = append(summary.BatchErrors, res.Err.Error())
		}
		for _, outcome := range res.Outcomes {
			summary.Attempted++
			if outcome.Succeeded() {
				summary.Succeeded++
				summary.TotalValue += outcome.Record.Value
				if summary.ValueByEntity == nil {
					summary.ValueByEntity = make(map[string]float64)
				}
				summary.ValueByEntity[outcome.Record.Entity] += outcome.Record.Value
			} else {
				summary.Failed++
			}
		}
	}
}
