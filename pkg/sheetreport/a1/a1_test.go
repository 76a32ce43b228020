package a1

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Range
	}{
		{"Sheet1!E5:K9", Range{Sheet: "Sheet1", StartCol: 5, StartRow: 5, EndCol: 11, EndRow: 9}},
		{"Sheet1!E15:K", Range{Sheet: "Sheet1", StartCol: 5, StartRow: 15, EndCol: 11}},
		{"'My Sheet'!A1:AA3", Range{Sheet: "My Sheet", StartCol: 1, StartRow: 1, EndCol: 27, EndRow: 3}},
		{"'Bob''s'!b2", Range{Sheet: "Bob's", StartCol: 2, StartRow: 2, EndCol: 2, EndRow: 2}},
		{"C3:D4", Range{StartCol: 3, StartRow: 3, EndCol: 4, EndRow: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "Sheet1!", "Sheet1!5:K9", "Sheet1!E:K9", "Sheet1!K5:E9", "Sheet1!E9:K5", "'Open!A1", "E0"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			var pe *ParseError
			assert.True(t, errors.As(err, &pe))
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, in := range []string{"Sheet1!E5:K9", "Sheet1!E15:K", "'My Sheet'!A1:AA3", "'Bob''s'!B2"} {
		r, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, in, r.String())
	}
}

func TestRows(t *testing.T) {
	anchor := MustParse("Sheet1!E15:K15")

	assert.Equal(t, "Sheet1!E15:K15", anchor.Rows(1).String())
	assert.Equal(t, "Sheet1!E15:K16", anchor.Rows(2).String())
	assert.Equal(t, 5, anchor.Rows(5).Height())
	assert.Equal(t, 7, anchor.Width())
}

func TestColumns(t *testing.T) {
	for idx, name := range map[int]string{1: "A", 5: "E", 11: "K", 26: "Z", 27: "AA", 52: "AZ", 703: "AAA"} {
		assert.Equal(t, name, ColumnName(idx))
		assert.Equal(t, idx, ColumnIndex(name))
	}
	assert.Equal(t, "", ColumnName(0))
	assert.Equal(t, 0, ColumnIndex("A1"))
}
