package analyze

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/komsit37/sheetreport/pkg/sheetreport/types"
)

// Analyze compares a current price with its reference average.
//
// A price equal to the average is neither above nor below it, and is still
// reported as Negative/Sell. A zero average yields an "Infinity" or "NaN"
// risk rather than an error.
func Analyze(current, avg10 float64) types.AnalysisResult {
	above := current > avg10
	res := types.AnalysisResult{
		MatchesThreshold: above,
		BelowThreshold:   current < avg10,
		RiskPercent:      types.FormatNumber(RiskPercent(current, avg10), 2),
		Sentiment:        types.Negative,
		Recommendation:   types.Sell,
	}
	if above {
		res.Sentiment = types.Positive
		res.Recommendation = types.Hold
	}
	return res
}

// RiskPercent is the distance of current from avg10 as a percentage of avg10.
func RiskPercent(current, avg10 float64) float64 {
	return math.Abs((current - avg10) / avg10 * 100)
}

// ParseNumber coerces a raw cell value to a number. Blank text counts as
// zero; anything unparsable becomes NaN so it surfaces in the report.
func ParseNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		return parseText(n)
	default:
		return math.NaN()
	}
}

var decimalText = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parseText accepts plain decimals, "Infinity" with an optional sign, and
// unsigned 0x/0o/0b integers. Other spellings ("inf", "nan", hex floats) are NaN.
func parseText(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			if strings.Contains(s, "_") {
				return math.NaN()
			}
			u, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(u)
		}
	}
	if !decimalText.MatchString(s) {
		return math.NaN()
	}
	// Out-of-range text parses to ±Inf or 0 alongside ErrRange, as wanted.
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
