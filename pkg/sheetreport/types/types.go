package types

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Sentiment is the direction of the current price relative to the average.
type Sentiment string

const (
	Positive Sentiment = "Positive"
	Negative Sentiment = "Negative"
)

// Recommendation is the action suggested for a position.
type Recommendation string

const (
	Hold Recommendation = "Hold"
	Sell Recommendation = "Sell"
)

// StockRow is one input row, parsed by column position.
// Fallback and Average keep the raw cell values; they are coerced to numbers
// only when the row is analyzed.
type StockRow struct {
	Name     string
	Ticker   string
	Fallback any
	Average  any
}

// AnalysisResult holds the metrics derived from a price and its reference average.
type AnalysisResult struct {
	MatchesThreshold bool
	BelowThreshold   bool
	RiskPercent      string
	Sentiment        Sentiment
	Recommendation   Recommendation
}

// OutputRow is one line of the output report.
type OutputRow struct {
	Name   string
	Price  float64
	Result AnalysisResult
}

// Cells returns the row in output column order, as written to the sheet.
// Booleans become "Yes"/"No"; a non-finite price is written as text.
func (r OutputRow) Cells() []any {
	return []any{
		r.Name,
		priceCell(r.Price),
		YesNo(r.Result.MatchesThreshold),
		YesNo(r.Result.BelowThreshold),
		r.Result.RiskPercent,
		string(r.Result.Sentiment),
		string(r.Result.Recommendation),
	}
}

// MarshalJSON encodes the row as a positional array matching Cells.
func (r OutputRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Cells())
}

// YesNo renders a flag the way the report sheet expects it.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// FormatNumber renders f with the given fraction digits, rounding the exact
// binary value half away from zero (3.125 -> "3.13"). NaN and infinities use
// the spreadsheet-friendly spellings "NaN", "Infinity" and "-Infinity".
func FormatNumber(f float64, digits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if digits < 0 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	// 40 places keep the binary value exact enough that only true ties round up.
	d, err := decimal.NewFromString(strconv.FormatFloat(f, 'f', 40, 64))
	if err != nil {
		return strconv.FormatFloat(f, 'f', digits, 64)
	}
	return d.StringFixed(int32(digits))
}

func priceCell(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return FormatNumber(f, -1)
	}
	return f
}
