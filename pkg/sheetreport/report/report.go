package report

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/komsit37/sheetreport/pkg/sheetreport/analyze"
	"github.com/komsit37/sheetreport/pkg/sheetreport/columns"
	"github.com/komsit37/sheetreport/pkg/sheetreport/quote"
	"github.com/komsit37/sheetreport/pkg/sheetreport/types"
)

// Message is the summary returned after a successful run.
const Message = "Output report updated!"

// RowSource supplies the raw input rows.
type RowSource interface {
	Read(ctx context.Context) ([][]any, error)
}

// RowSink stores the report rows and returns the range it wrote.
type RowSink interface {
	Write(ctx context.Context, rows [][]any) (string, error)
}

// Runner reads the input block, prices and analyzes each stock, and writes
// the report block.
type Runner struct {
	Source RowSource
	Sink   RowSink
	Quotes quote.Fetcher
	Layout columns.Layout
	Log    zerolog.Logger
}

type RunOptions struct {
	// DryRun skips the write.
	DryRun bool
}

// Report is the outcome of one run.
type Report struct {
	Message string            `json:"message"`
	Output  []types.OutputRow `json:"output"`
	Range   string            `json:"-"`
}

// Run executes the job. Read, parse and write failures abort the run; a
// failed quote falls back to the row's sheet price.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	raw, err := r.Source.Read(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]types.OutputRow, 0, len(raw))
	for i, cells := range raw {
		if !r.Layout.Keep(cells) {
			continue
		}
		row, err := r.Layout.Parse(i, cells)
		if err != nil {
			return nil, err
		}
		out = append(out, r.analyzeRow(ctx, row))
	}

	rep := &Report{Message: Message, Output: out}
	if opts.DryRun {
		r.Log.Info().Int("rows", len(out)).Msg("dry run, report not written")
		return rep, nil
	}

	cells := make([][]any, len(out))
	for i, o := range out {
		cells[i] = o.Cells()
	}
	rng, err := r.Sink.Write(ctx, cells)
	if err != nil {
		return nil, err
	}
	rep.Range = rng
	r.Log.Info().Int("rows", len(out)).Str("range", rng).Msg("report written")
	return rep, nil
}

func (r *Runner) analyzeRow(ctx context.Context, row types.StockRow) types.OutputRow {
	price, err := r.Quotes.Price(ctx, row.Ticker)
	if err != nil {
		price = analyze.ParseNumber(row.Fallback)
		r.Log.Warn().Err(err).
			Str("ticker", row.Ticker).
			Str("fallback", fmt.Sprint(row.Fallback)).
			Msg("quote failed, using sheet price")
	}
	return types.OutputRow{
		Name:   row.Name,
		Price:  price,
		Result: analyze.Analyze(price, analyze.ParseNumber(row.Average)),
	}
}
