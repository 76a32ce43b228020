package columns

import (
	"fmt"

	"github.com/komsit37/sheetreport/pkg/sheetreport/types"
)

// Layout maps input fields to column offsets within a row of the input range.
type Layout struct {
	Name     int
	Ticker   int
	Fallback int
	Average  int
}

// Default is the layout of the input block: name, ticker, one spare column,
// fallback price, two spare columns, then the 10-period average.
var Default = Layout{Name: 0, Ticker: 1, Fallback: 3, Average: 6}

// Output lists the report's column headers in write order.
var Output = []string{"stock", "price", "above avg", "below avg", "risk%", "sentiment", "action"}

// Width is the number of cells a row must carry for every field to be present.
func (l Layout) Width() int {
	w := 0
	for _, i := range []int{l.Name, l.Ticker, l.Fallback, l.Average} {
		if i+1 > w {
			w = i + 1
		}
	}
	return w
}

// RowError reports an input row that does not reach the layout's last column.
type RowError struct {
	Row  int // 0-based position within the input range
	Have int
	Need int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("input row %d: has %d cells, need %d", e.Row+1, e.Have, e.Need)
}

// Keep reports whether a raw row names both a stock and a ticker.
// Whitespace-only cells count as present; names are carried through unchanged.
func (l Layout) Keep(cells []any) bool {
	return text(cells, l.Name) != "" && text(cells, l.Ticker) != ""
}

// Parse converts a raw row into a StockRow. idx is only used for error messages.
func (l Layout) Parse(idx int, cells []any) (types.StockRow, error) {
	if need := l.Width(); len(cells) < need {
		return types.StockRow{}, &RowError{Row: idx, Have: len(cells), Need: need}
	}
	return types.StockRow{
		Name:     text(cells, l.Name),
		Ticker:   text(cells, l.Ticker),
		Fallback: cells[l.Fallback],
		Average:  cells[l.Average],
	}, nil
}

func text(cells []any, i int) string {
	if i < 0 || i >= len(cells) || cells[i] == nil {
		return ""
	}
	return fmt.Sprint(cells[i])
}
