// Package sheet holds the in-memory form of an uploaded cost breakdown: an
// ordered list of rows, each an ordered list of loosely typed cells.
package sheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Row is an ordered sequence of cells. A cell is nil (absent or blank),
// a string, or a float64.
type Row []any

// Sheet is the first worksheet of an uploaded workbook.
type Sheet struct {
	Name string
	Rows []Row
}

// CellAt returns the cell at the zero-based column index, or nil when the
// row is shorter than index or index is negative.
func CellAt(row Row, index int) any {
	if index < 0 || index >= len(row) {
		return nil
	}
	return row[index]
}

// Cell returns the cell at the zero-based row and column, or nil.
func (s *Sheet) Cell(rowIdx, colIdx int) any {
	if s == nil || rowIdx < 0 || rowIdx >= len(s.Rows) {
		return nil
	}
	return CellAt(s.Rows[rowIdx], colIdx)
}

// AsTrimmedString converts any cell value to a trimmed string. nil yields "".
func AsTrimmedString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// AsNumber parses a cell as a number. Values that are not entirely numeric
// (e.g. "5%" or "$12") yield NaN; callers strip symbols first with
// StripNumeric where they expect them.
func AsNumber(v any) float64 {
	switch val := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		return val
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return math.NaN()
		}
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		f, err := cast.ToFloat64E(val)
		if err != nil {
			return math.NaN()
		}
		return f
	}
}

// StripNumeric removes currency symbols, thousands separators, percent signs
// and whitespace so that "$1,250.00" and " 5 %" parse as numbers.
func StripNumeric(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', '%', ' ', '\t', '\n', '\r', '\u00a0':
			return -1
		}
		return r
	}, s)
}

// IsBlank reports whether a cell holds no visible value.
func IsBlank(v any) bool {
	return AsTrimmedString(v) == ""
}
