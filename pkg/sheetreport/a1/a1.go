package a1

import (
	"errors"
	"strconv"
	"strings"
)

// Range is a rectangular block on a named sheet in A1 notation.
// Rows and columns are 1-based. EndRow 0 means the range is open-ended
// downwards (e.g. "Sheet1!E15:K").
type Range struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// ParseError reports a malformed A1 range.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return "invalid range " + strconv.Quote(e.Input) + ": " + e.Reason
}

// Parse reads ranges such as "Sheet1!E5:K9", "'My Sheet'!A1:C" or "B2".
func Parse(s string) (Range, error) {
	in := s
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, &ParseError{Input: in, Reason: "empty"}
	}

	var r Range
	if i := strings.LastIndex(s, "!"); i >= 0 {
		sheet, err := unquoteSheet(s[:i])
		if err != nil {
			return Range{}, &ParseError{Input: in, Reason: err.Error()}
		}
		r.Sheet = sheet
		s = s[i+1:]
	}

	start, end, hasEnd := strings.Cut(s, ":")
	col, row, err := splitCell(start)
	if err != nil {
		return Range{}, &ParseError{Input: in, Reason: err.Error()}
	}
	if row == 0 {
		return Range{}, &ParseError{Input: in, Reason: "start cell needs a row"}
	}
	r.StartCol, r.StartRow = col, row
	r.EndCol, r.EndRow = col, row

	if hasEnd {
		col, row, err = splitCell(end)
		if err != nil {
			return Range{}, &ParseError{Input: in, Reason: err.Error()}
		}
		r.EndCol, r.EndRow = col, row
	}
	if r.EndCol < r.StartCol {
		return Range{}, &ParseError{Input: in, Reason: "end column before start column"}
	}
	if r.EndRow != 0 && r.EndRow < r.StartRow {
		return Range{}, &ParseError{Input: in, Reason: "end row before start row"}
	}
	return r, nil
}

// MustParse is Parse for package-level defaults; it panics on bad input.
func MustParse(s string) Range {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String formats r back into A1 notation.
func (r Range) String() string {
	var b strings.Builder
	if r.Sheet != "" {
		b.WriteString(quoteSheet(r.Sheet))
		b.WriteByte('!')
	}
	b.WriteString(ColumnName(r.StartCol))
	b.WriteString(strconv.Itoa(r.StartRow))
	if r.EndCol == r.StartCol && r.EndRow == r.StartRow {
		return b.String()
	}
	b.WriteByte(':')
	b.WriteString(ColumnName(r.EndCol))
	if r.EndRow > 0 {
		b.WriteString(strconv.Itoa(r.EndRow))
	}
	return b.String()
}

// Width is the number of columns spanned by r.
func (r Range) Width() int { return r.EndCol - r.StartCol + 1 }

// Height is the number of rows spanned by r, or 0 when open-ended.
func (r Range) Height() int {
	if r.EndRow == 0 {
		return 0
	}
	return r.EndRow - r.StartRow + 1
}

// Rows anchors a block of n rows at r's start row, keeping r's columns.
// The last row is StartRow+n-1.
func (r Range) Rows(n int) Range {
	out := r
	out.EndRow = r.StartRow + n - 1
	return out
}

// ColumnName converts a 1-based column index to letters (1 -> A, 27 -> AA).
func ColumnName(col int) string {
	if col <= 0 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	for col > 0 {
		col--
		i--
		buf[i] = byte('A' + col%26)
		col /= 26
	}
	return string(buf[i:])
}

// ColumnIndex converts column letters to a 1-based index (A -> 1).
// It returns 0 for anything that is not a run of ASCII letters.
func ColumnIndex(letters string) int {
	if letters == "" {
		return 0
	}
	n := 0
	for _, c := range strings.ToUpper(letters) {
		if c < 'A' || c > 'Z' {
			return 0
		}
		n = n*26 + int(c-'A'+1)
	}
	return n
}

func splitCell(cell string) (col, row int, err error) {
	i := 0
	for i < len(cell) && isLetter(cell[i]) {
		i++
	}
	col = ColumnIndex(cell[:i])
	if col == 0 {
		return 0, 0, errors.New("missing column in " + strconv.Quote(cell))
	}
	if i == len(cell) {
		return col, 0, nil
	}
	row, err = strconv.Atoi(cell[i:])
	if err != nil || row <= 0 {
		return 0, 0, errors.New("bad row in " + strconv.Quote(cell))
	}
	return col, row, nil
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func unquoteSheet(s string) (string, error) {
	if s == "" {
		return "", errors.New("empty sheet name")
	}
	if !strings.HasPrefix(s, "'") {
		return s, nil
	}
	if len(s) < 2 || !strings.HasSuffix(s, "'") {
		return "", errors.New("unterminated sheet quote")
	}
	return strings.ReplaceAll(s[1:len(s)-1], "''", "'"), nil
}

func quoteSheet(name string) string {
	for _, c := range name {
		if !(c == '_' || (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}
