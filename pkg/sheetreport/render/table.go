package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/sheetreport/pkg/sheetreport/columns"
	"github.com/komsit37/sheetreport/pkg/sheetreport/report"
	"github.com/komsit37/sheetreport/pkg/sheetreport/types"
)

type TableRenderer struct{}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, rep *report.Report, opts RenderOptions) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	if !opts.Color {
		tw.SetStyle(table.StyleLight)
	}
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false

	hdr := make(table.Row, len(columns.Output))
	for i, c := range columns.Output {
		hdr[i] = strings.ToUpper(c)
	}
	tw.AppendHeader(hdr)

	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	cfgs := make([]table.ColumnConfig, 0, len(columns.Output))
	for i, c := range columns.Output {
		cfg := table.ColumnConfig{Number: i + 1, WidthMax: maxWidth}
		switch c {
		case "price", "risk%":
			cfg.Align = text.AlignRight
			cfg.AlignHeader = text.AlignRight
		}
		cfgs = append(cfgs, cfg)
	}
	tw.SetColumnConfigs(cfgs)

	for _, o := range rep.Output {
		cells := o.Cells()
		row := make(table.Row, len(cells))
		for i, c := range cells {
			row[i] = formatCell(c)
		}
		if opts.Color {
			colors := text.Colors{text.FgRed}
			if o.Result.Sentiment == types.Positive {
				colors = text.Colors{text.FgGreen}
			}
			row[5] = colors.Sprint(row[5])
			row[6] = colors.Sprint(row[6])
		}
		tw.AppendRow(row)
	}

	tw.Render()
	if rep.Range != "" {
		fmt.Fprintf(w, "%s %s\n", rep.Message, rep.Range)
	}
	return nil
}

func formatCell(v any) string {
	if f, ok := v.(float64); ok {
		return types.FormatNumber(f, 2)
	}
	return fmt.Sprint(v)
}
