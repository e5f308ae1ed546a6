package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
	"github.com/ArthurBonsu/ledgerflow/pkg/log"
)

const (
	submitEndpoint  = "/v1/ledger/transactions"
	receiptEndpoint = "/v1/ledger/transactions/%s/receipt"
)

// HTTPClient abstracts HTTP operations for dependency injection.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures an HTTPLedger.
type Options struct {
	// ServiceURL is the base URL of the ledger gateway, without a
	// trailing slash.
	ServiceURL string

	// AuthKey is sent as a bearer token on every request.
	AuthKey string

	// Account is the ledger account submitting the writes.
	Account string

	// PollInterval is the delay between receipt polls while a
	// transaction is unconfirmed.
	PollInterval time.Duration
}

// HTTPLedger implements LedgerClient against a JSON ledger gateway.
// Submit posts the operation; AwaitConfirmation polls for the receipt
// until the gateway confirms or the context expires.
type HTTPLedger struct {
	opts   Options
	client HTTPClient
	logger log.Logger
}

// NewHTTPLedger creates a ledger client for the given gateway.
func NewHTTPLedger(opts Options, client HTTPClient, logger log.Logger) *HTTPLedger {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 500 * time.Millisecond
	}
	return &HTTPLedger{opts: opts, client: client, logger: logger}
}

type submitRequest struct {
	Operation string   `json:"operation"`
	Args      []string `json:"args"`
	Account   string   `json:"account,omitempty"`
}

type submitResponse struct {
	Handle string `json:"handle"`
}

type receiptResponse struct {
	TransactionID string `json:"transaction_id"`
	ResourceCost  uint64 `json:"resource_cost"`
	BlockMarker   uint64 `json:"block_marker"`
	Status        string `json:"status"`
	Reason        string `json:"reason,omitempty"`
}

// Submit posts one write operation to the gateway.
func (h *HTTPLedger) Submit(ctx context.Context, operation string, args []string) (domain.TxHandle, error) {
	body, err := json.Marshal(submitRequest{Operation: operation, Args: args, Account: h.opts.Account})
	if err != nil {
		return "", fmt.Errorf("marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.opts.ServiceURL+submitEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.opts.AuthKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		// Transport-level failure: the gateway itself is unreachable.
		return "", fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", readError("submit", resp)
	}

	var sr submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("decode submit response: %w", err)
	}
	if sr.Handle == "" {
		return "", fmt.Errorf("submit response missing handle")
	}
	return domain.TxHandle(sr.Handle), nil
}

// AwaitConfirmation polls the receipt endpoint until the transaction is
// confirmed, rejected, or ctx expires.
func (h *HTTPLedger) AwaitConfirmation(ctx context.Context, handle domain.TxHandle) (domain.Confirmation, error) {
	url := h.opts.ServiceURL + fmt.Sprintf(receiptEndpoint, handle)

	for {
		receipt, pending, err := h.fetchReceipt(ctx, url)
		if err != nil {
			return domain.Confirmation{}, err
		}
		if !pending {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return domain.Confirmation{}, ctx.Err()
		case <-time.After(h.opts.PollInterval):
		}
	}
}

func (h *HTTPLedger) fetchReceipt(ctx context.Context, url string) (domain.Confirmation, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Confirmation{}, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.opts.AuthKey)

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return domain.Confirmation{}, false, ctx.Err()
		}
		return domain.Confirmation{}, false, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusAccepted:
		// Still pending on the ledger.
		io.Copy(io.Discard, resp.Body)
		return domain.Confirmation{}, true, nil
	case resp.StatusCode/100 != 2:
		return domain.Confirmation{}, false, readError("receipt", resp)
	}

	var rr receiptResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return domain.Confirmation{}, false, fmt.Errorf("decode receipt: %w", err)
	}
	if rr.Status == "rejected" {
		return domain.Confirmation{}, false, fmt.Errorf("transaction rejected: %s", rr.Reason)
	}
	return domain.Confirmation{
		TxID:         rr.TransactionID,
		ResourceCost: rr.ResourceCost,
		BlockMarker:  rr.BlockMarker,
	}, false, nil
}

func readError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%s: gateway returned status=%d body=%s", op, resp.StatusCode, string(body))
}
