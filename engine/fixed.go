package engine

import (
	"bcbdcheck/rules"
	"bcbdcheck/sheet"
)

// matchFixed reads the single cell at r.Row (1-based) / r.FixedCol. The check
// is found iff the cell holds a value.
func matchFixed(s *sheet.Sheet, r rules.Rule) CheckResult {
	ref := sheet.CellRef(r.Row, r.FixedCol)
	res := CheckResult{
		Name:         r.Name,
		Kind:         r.Kind,
		RowNumber:    r.Row,
		Expected:     r.Expect.Describe(),
		MarkerColumn: -1,
		CheckColumn:  r.FixedCol,
		Location:     ref,
		Range:        rangeOf(r.Expect),
	}

	raw := s.Cell(r.Row-1, r.FixedCol)
	if sheet.IsBlank(raw) {
		res.Actual = ref + " not found"
		return res
	}

	out := Evaluate(raw, r.Expect)
	res.Found = true
	res.Actual = out.Actual
	res.Valid = out.Valid
	res.Numeric = out.Numeric
	return res
}
