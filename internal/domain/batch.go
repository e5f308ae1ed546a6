package domain

// Batch is a bounded, ordered partition of aggregated records submitted as
// one unit of concurrency.
type Batch struct {
	// Number is the zero-based position of this batch in the partition.
	Number int

	// Records are the aggregated records in this batch, in partition
	// order.
	Records []AggregatedRecord
}

// Size returns the number of records in the batch.
func (b Batch) Size() int {
	return len(b.Records)
}

// Empty returns true if the batch has no records.
func (b Batch) Empty() bool {
	return len(b.Records) == 0
}

// TotalValue returns the sum of the batch's record values.
func (b Batch) TotalValue() float64 {
	var total float64
	for _, r := range b.Records {
		total += r.Value
	}
	return total
}

// Partition slices records into contiguous batches of at most size
// records. Every record appears in exactly one batch and batch order
// preserves record order. Returns ErrInvalidBatchSize for size <= 0.
func Partition(records []AggregatedRecord, size int) ([]Batch, error) {
	if size <= 0 {
		return nil, ErrInvalidBatchSize
	}

	batches := make([]Batch, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, Batch{
			Number:  len(batches),
			Records: records[start:end],
		})
	}
	return batches, nil
}
