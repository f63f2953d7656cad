package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/KMuszynski/dxly/internal/domain/entities"
	"github.com/KMuszynski/dxly/internal/domain/repositories"
)

// CaseTableAdapter loads the disease/symptom case table from a CSV file.
// The first header column names the disease field; every other header
// column is a symptom. Cells are 1 for present, anything else counts as
// absent. The table is parsed once and the snapshot reused, since the
// file can run to hundreds of thousands of rows.
type CaseTableAdapter struct {
	path string

	once  sync.Once
	table *entities.CaseTable
	err   error
}

var _ repositories.CaseTableRepository = (*CaseTableAdapter)(nil)

// NewCaseTableAdapter creates a case table adapter for the given CSV path.
func NewCaseTableAdapter(path string) *CaseTableAdapter {
	return &CaseTableAdapter{path: path}
}

// Load returns the case table, reading the CSV on first use.
func (a *CaseTableAdapter) Load(ctx context.Context) (*entities.CaseTable, error) {
	a.once.Do(func() {
		a.table, a.err = parseCaseTable(a.path)
	})
	return a.table, a.err
}

func parseCaseTable(path string) (*entities.CaseTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open case table file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Rows shorter or longer than the header are tolerated, not rejected.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read case table header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("case table header needs a disease column and at least one symptom column, got %d columns", len(header))
	}
	symptomColumns := header[1:]

	var rows []entities.CaseRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed rows are dropped, not fatal.
			continue
		}
		if len(record) == 0 {
			continue
		}

		symptoms := make([]uint8, len(record)-1)
		for i, cell := range record[1:] {
			if cell == "1" {
				symptoms[i] = 1
			}
		}
		rows = append(rows, entities.CaseRow{Disease: record[0], Symptoms: symptoms})
	}

	return entities.NewCaseTable(symptomColumns, rows), nil
}
