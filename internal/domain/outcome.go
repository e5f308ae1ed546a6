package domain

// SubmissionState tracks a record through its submission lifecycle.
// Transitions are Pending -> Submitted -> {Confirmed | Failed}; the two
// terminal states never transition back.
type SubmissionState string

const (
	StatePending   SubmissionState = "pending"
	StateSubmitted SubmissionState = "submitted"
	StateConfirmed SubmissionState = "confirmed"
	StateFailed    SubmissionState = "failed"
)

// TxHandle is an opaque reference to an in-flight ledger operation,
// returned by Submit and redeemed by AwaitConfirmation.
type TxHandle string

// Confirmation is proof that a submitted write was durably accepted by
// the ledger.
type Confirmation struct {
	// TxID is the ledger-assigned operation identifier.
	TxID string `json:"transaction_id"`

	// ResourceCost is the resource figure charged for the write,
	// gas used on chain-backed ledgers.
	ResourceCost uint64 `json:"resource_cost"`

	// BlockMarker is the ledger sequence position that includes the
	// write.
	BlockMarker uint64 `json:"block_marker"`
}

// SubmissionOutcome records the result of one record's submission
// attempt. Exactly one of Confirmation and Err is meaningful, selected
// by State.
type SubmissionOutcome struct {
	Record       AggregatedRecord
	State        SubmissionState
	Confirmation Confirmation
	Err          error
}

// Succeeded returns true if the record reached the Confirmed state.
func (o SubmissionOutcome) Succeeded() bool {
	return o.State == StateConfirmed
}

// ConfirmedOutcome builds a terminal success outcome.
func ConfirmedOutcome(rec AggregatedRecord, conf Confirmation) SubmissionOutcome {
	return SubmissionOutcome{Record: rec, State: StateConfirmed, Confirmation: conf}
}

// FailedOutcome builds a terminal failure outcome.
func FailedOutcome(rec AggregatedRecord, err error) SubmissionOutcome {
	return SubmissionOutcome{Record: rec, State: StateFailed, Err: err}
}
