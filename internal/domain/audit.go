package domain

import "time"

// AuditEntry is the durable trace of one submission attempt. Entries are
// append-only: once written they are never updated or deleted.
// Each entry carries a timestamp, a record snapshot, and the receipt
// fields of the submission it traces.
type AuditEntry struct {
	Timestamp time.Time         `json:"timestamp"`
	Domain    string            `json:"domain"`
	Data      AuditRecord       `json:"data"`
	Success   bool              `json:"success"`
	TxID      string            `json:"transaction_hash,omitempty"`
	GasUsed   uint64            `json:"gas_used,omitempty"`
	Block     uint64            `json:"block_number,omitempty"`
	Error     string            `json:"error,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// AuditRecord is the snapshot of the submitted record embedded in an
// audit entry.
type AuditRecord struct {
	Entity   string  `json:"entity"`
	Date     string  `json:"date"`
	Category string  `json:"category,omitempty"`
	Value    float64 `json:"value"`
}

// NewAuditEntry builds the audit entry for a submission outcome.
func NewAuditEntry(domainName string, outcome SubmissionOutcome, at time.Time) AuditEntry {
	entry := AuditEntry{
		Timestamp: at,
		Domain:    domainName,
		Data: AuditRecord{
			Entity:   outcome.Record.Entity,
			Date:     outcome.Record.Date,
			Category: outcome.Record.Category,
			Value:    outcome.Record.Value,
		},
		Success: outcome.Succeeded(),
		Extra:   outcome.Record.Extra,
	}
	if outcome.Succeeded() {
		entry.TxID = outcome.Confirmation.TxID
		entry.GasUsed = outcome.Confirmation.ResourceCost
		entry.Block = outcome.Confirmation.BlockMarker
	} else if outcome.Err != nil {
		entry.Error = outcome.Err.Error()
	}
	return entry
}
