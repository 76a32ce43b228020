package sheet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/komsit37/sheetreport/pkg/sheetreport/a1"
)

// DefaultSheet is used when a range does not name a sheet.
const DefaultSheet = "Sheet1"

// YAMLService implements Service on a local YAML workbook, for offline runs
// and tests. The spreadsheet ID is ignored: one file is one spreadsheet.
//
// File layout, rows starting at row 1 and cells at column A:
//
//	sheets:
//	  Sheet1:
//	    - [Stock, Ticker]
//	    - [Acme, ACM]
type YAMLService struct {
	Path string

	mu sync.Mutex
}

type workbook struct {
	Sheets map[string][][]any `yaml:"sheets"`
}

func NewYAMLService(path string) *YAMLService {
	return &YAMLService{Path: path}
}

func (s *YAMLService) Get(_ context.Context, _ string, rng string) ([][]any, error) {
	r, err := a1.Parse(rng)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	wb, err := s.load()
	if err != nil {
		return nil, err
	}
	grid, ok := wb.Sheets[sheetName(r)]
	if !ok {
		return nil, fmt.Errorf("unknown sheet %q", sheetName(r))
	}

	last := len(grid)
	if r.EndRow > 0 && r.EndRow < last {
		last = r.EndRow
	}
	var out [][]any
	for i := r.StartRow - 1; i < last; i++ {
		row := grid[i]
		var cells []any
		for j := r.StartCol - 1; j < r.EndCol && j < len(row); j++ {
			cells = append(cells, row[j])
		}
		out = append(out, trimRow(cells))
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (s *YAMLService) Update(_ context.Context, _ string, rng, _ string, values [][]any) error {
	r, err := a1.Parse(rng)
	if err != nil {
		return err
	}
	if h := r.Height(); h > 0 && len(values) > h {
		return fmt.Errorf("%d rows do not fit %s", len(values), rng)
	}
	for i, row := range values {
		if len(row) > r.Width() {
			return fmt.Errorf("row %d has %d cells, %s is %d wide", i+1, len(row), rng, r.Width())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wb, err := s.load()
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if wb.Sheets == nil {
		wb.Sheets = map[string][][]any{}
	}
	name := sheetName(r)
	grid := wb.Sheets[name]
	for i, row := range values {
		ri := r.StartRow - 1 + i
		for len(grid) <= ri {
			grid = append(grid, nil)
		}
		for j, v := range row {
			cj := r.StartCol - 1 + j
			for len(grid[ri]) <= cj {
				grid[ri] = append(grid[ri], "")
			}
			grid[ri][cj] = v
		}
	}
	wb.Sheets[name] = grid
	return s.save(wb)
}

func (s *YAMLService) load() (*workbook, error) {
	wb := &workbook{}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return wb, err
	}
	if err := yaml.Unmarshal(data, wb); err != nil {
		return wb, fmt.Errorf("%s: %w", s.Path, err)
	}
	return wb, nil
}

func (s *YAMLService) save(wb *workbook) error {
	data, err := yaml.Marshal(wb)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".workbook-*.yaml")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}

func sheetName(r a1.Range) string {
	if r.Sheet == "" {
		return DefaultSheet
	}
	return r.Sheet
}

func trimRow(cells []any) []any {
	for len(cells) > 0 && isBlank(cells[len(cells)-1]) {
		cells = cells[:len(cells)-1]
	}
	for i, c := range cells {
		if c == nil {
			cells[i] = ""
		}
	}
	if cells == nil {
		return []any{}
	}
	return cells
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
