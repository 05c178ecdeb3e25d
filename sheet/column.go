package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnIndex converts a spreadsheet column letter to a zero-based index
// using bijective base-26: A=0, Z=25, AA=26.
func ColumnIndex(letters string) (int, error) {
	letters = strings.ToUpper(strings.TrimSpace(letters))
	if letters == "" {
		return 0, fmt.Errorf("empty column reference")
	}
	n := 0
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column reference %q", letters)
		}
		n = n*26 + int(r-'A'+1)
		if n > 16384 {
			return 0, fmt.Errorf("column %q is beyond the sheet limit", letters)
		}
	}
	return n - 1, nil
}

// MustColumnIndex is ColumnIndex for compile-time constants.
func MustColumnIndex(letters string) int {
	idx, err := ColumnIndex(letters)
	if err != nil {
		panic(err)
	}
	return idx
}

// ColumnName is the inverse of ColumnIndex.
func ColumnName(index int) string {
	if index < 0 {
		return ""
	}
	var buf []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		buf = append([]byte{byte('A' + (n-1)%26)}, buf...)
	}
	return string(buf)
}

// CellRef formats a 1-based row and zero-based column as "H2".
func CellRef(rowNumber, colIndex int) string {
	return ColumnName(colIndex) + strconv.Itoa(rowNumber)
}
