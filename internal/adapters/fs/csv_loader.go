package fs

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
)

// CSVLoader implements ports.DatasetLoader for header-mapped CSV files.
type CSVLoader struct{}

// NewCSVLoader creates a CSV dataset loader.
func NewCSVLoader() *CSVLoader {
	return &CSVLoader{}
}

// Load reads the CSV file at path into a raw table. The first row is
// the header; subsequent rows are keyed by it. Short rows leave their
// trailing columns empty rather than failing the whole file.
func (l *CSVLoader) Load(ctx context.Context, path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(rows) == 0 {
		return domain.Table{}, fmt.Errorf("dataset %s is empty", path)
	}

	table := domain.Table{
		Columns: rows[0],
		Rows:    make([]domain.Row, 0, len(rows)-1),
	}
	for _, raw := range rows[1:] {
		row := make(domain.Row, len(table.Columns))
		for i, col := range table.Columns {
			if i < len(raw) {
				row[col] = raw[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
