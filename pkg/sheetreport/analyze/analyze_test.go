package analyze

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/sheetreport/pkg/sheetreport/types"
)

func TestAnalyzeAbove(t *testing.T) {
	for _, tc := range [][2]float64{{110, 100}, {100.01, 100}, {5, 0.5}} {
		res := Analyze(tc[0], tc[1])
		assert.True(t, res.MatchesThreshold)
		assert.False(t, res.BelowThreshold)
		assert.Equal(t, types.Positive, res.Sentiment)
		assert.Equal(t, types.Hold, res.Recommendation)
	}
}

func TestAnalyzeBelow(t *testing.T) {
	for _, tc := range [][2]float64{{75, 80}, {0, 100}, {99.99, 100}} {
		res := Analyze(tc[0], tc[1])
		assert.False(t, res.MatchesThreshold)
		assert.True(t, res.BelowThreshold)
		assert.Equal(t, types.Negative, res.Sentiment)
		assert.Equal(t, types.Sell, res.Recommendation)
	}
}

func TestAnalyzeEqual(t *testing.T) {
	res := Analyze(42.5, 42.5)
	assert.Equal(t, types.AnalysisResult{
		MatchesThreshold: false,
		BelowThreshold:   false,
		RiskPercent:      "0.00",
		Sentiment:        types.Negative,
		Recommendation:   types.Sell,
	}, res)
}

func TestRiskPercentFormatting(t *testing.T) {
	assert.Equal(t, "10.00", Analyze(110, 100).RiskPercent)
	assert.Equal(t, "6.25", Analyze(75, 80).RiskPercent)
	assert.Equal(t, "33.33", Analyze(2, 3).RiskPercent)
	assert.Equal(t, "100.00", Analyze(0, 50).RiskPercent)

	// Exact halves round up.
	assert.Equal(t, "3.13", Analyze(33, 32).RiskPercent)
	assert.Equal(t, "3.13", Analyze(16.5, 16).RiskPercent)
	assert.Equal(t, "1.13", Analyze(101.125, 100).RiskPercent)
	// Near-halves below the tie stay down.
	assert.Equal(t, "1.00", types.FormatNumber(1.005, 2))

	for _, tc := range [][2]float64{{1, 3}, {-5, 7}, {12, -4}, {0.001, 1000}} {
		risk := Analyze(tc[0], tc[1]).RiskPercent
		f, err := strconv.ParseFloat(risk, 64)
		require.NoError(t, err, risk)
		assert.GreaterOrEqual(t, f, 0.0, risk)
		assert.Regexp(t, `^\d+\.\d{2}$`, risk)
	}
}

func TestAnalyzeZeroAverage(t *testing.T) {
	assert.Equal(t, "Infinity", Analyze(10, 0).RiskPercent)
	assert.Equal(t, "NaN", Analyze(0, 0).RiskPercent)
	assert.Equal(t, "NaN", Analyze(math.NaN(), 10).RiskPercent)
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 75.0, ParseNumber("75"))
	assert.Equal(t, 80.5, ParseNumber(" 80.5 "))
	assert.Equal(t, 0.0, ParseNumber(""))
	assert.Equal(t, 0.0, ParseNumber(nil))
	assert.Equal(t, 110.0, ParseNumber(110.0))
	assert.Equal(t, 3.0, ParseNumber(3))
	assert.True(t, math.IsNaN(ParseNumber("n/a")))
	assert.True(t, math.IsNaN(ParseNumber([]int{1})))
}

func TestParseNumberText(t *testing.T) {
	for in, want := range map[string]float64{
		".5":        0.5,
		"5.":        5,
		"-1e3":      -1000,
		"+2.5E-1":   0.25,
		"0x1A":      26,
		"0b101":     5,
		"0o17":      15,
		"Infinity":  math.Inf(1),
		"-Infinity": math.Inf(-1),
		"1e999":     math.Inf(1),
	} {
		assert.Equal(t, want, ParseNumber(in), in)
	}
	for _, in := range []string{"inf", "-inf", "nan", "NaN", "infinity", "0x1p-2", "-0x10", "1_000", "1,234", "$5", "1.2.3", "e5", "."} {
		assert.True(t, math.IsNaN(ParseNumber(in)), in)
	}
}
