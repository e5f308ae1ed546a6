package ports

import (
	"context"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
)

// DatasetLoader supplies an in-memory raw tabular dataset. The core is
// agnostic to the dataset's origin (CSV file, API export, test
// fixture); typing and cleaning happen in validation.
type DatasetLoader interface {
	// Load reads the named source into a raw table.
	Load(ctx context.Context, source string) (domain.Table, error)
}
