package engine

import (
	"strings"

	"bcbdcheck/rules"
	"bcbdcheck/sheet"
)

// matchMarker scans MarkerCol top to bottom and validates CheckCol on the
// first row whose label equals Marker. Later duplicates are ignored.
func matchMarker(s *sheet.Sheet, r rules.Rule) CheckResult {
	res := CheckResult{
		Name:         r.Name,
		Kind:         r.Kind,
		Expected:     r.Expect.Describe(),
		MarkerColumn: r.MarkerCol,
		CheckColumn:  r.CheckCol,
		Range:        rangeOf(r.Expect),
	}

	target := strings.ToLower(strings.TrimSpace(r.Marker))
	for i, row := range s.Rows {
		if strings.ToLower(sheet.AsTrimmedString(sheet.CellAt(row, r.MarkerCol))) != target {
			continue
		}

		out := Evaluate(sheet.CellAt(row, r.CheckCol), r.Expect)
		res.Found = true
		res.RowNumber = i + 1
		res.Location = sheet.CellRef(i+1, r.CheckCol)
		res.Actual = out.Actual
		res.Valid = out.Valid
		res.Numeric = out.Numeric
		return res
	}

	res.Actual = r.Marker + " not found"
	return res
}

func rangeOf(exp rules.Expectation) *rules.Range {
	if exp.Mode != rules.ModeRange || exp.Range == nil {
		return nil
	}
	r := *exp.Range
	return &r
}
