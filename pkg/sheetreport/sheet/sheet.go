package sheet

import (
	"context"
	"fmt"

	"github.com/komsit37/sheetreport/pkg/sheetreport/a1"
)

// Value input modes understood by Service.Update.
const (
	InputUserEntered = "USER_ENTERED"
	InputRaw         = "RAW"
)

// Service is the spreadsheet boundary: read a range, overwrite a range.
type Service interface {
	Get(ctx context.Context, spreadsheetID, rng string) ([][]any, error)
	Update(ctx context.Context, spreadsheetID, rng, valueInputOption string, values [][]any) error
}

// Reader reads one fixed input range.
type Reader struct {
	Service       Service
	SpreadsheetID string
	Range         a1.Range
}

// Read returns the rows of the input range in sheet order. Rows may be
// shorter than the range when trailing cells are empty.
func (r *Reader) Read(ctx context.Context) ([][]any, error) {
	rows, err := r.Service.Get(ctx, r.SpreadsheetID, r.Range.String())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.Range, err)
	}
	return rows, nil
}

// Writer writes report rows as one block starting at Anchor's first row.
type Writer struct {
	Service          Service
	SpreadsheetID    string
	Anchor           a1.Range
	ValueInputOption string
}

// Write overwrites Anchor.Rows(len(rows)) and returns the range written.
// Rows below the block are left untouched. No rows means no call.
func (w *Writer) Write(ctx context.Context, rows [][]any) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}
	rng := w.Anchor.Rows(len(rows)).String()
	mode := w.ValueInputOption
	if mode == "" {
		mode = InputUserEntered
	}
	if err := w.Service.Update(ctx, w.SpreadsheetID, rng, mode, rows); err != nil {
		return "", fmt.Errorf("write %s: %w", rng, err)
	}
	return rng, nil
}
