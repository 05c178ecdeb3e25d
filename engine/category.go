package engine

import (
	"fmt"
	"strings"

	"bcbdcheck/rules"
	"bcbdcheck/sheet"
)

// matchCategory validates CheckCol on every row labelled r.Category. A
// category with no rows is reported as not found, never as an empty group.
func matchCategory(s *sheet.Sheet, r rules.Rule) CheckResult {
	return scanCategory(s, r, func(row sheet.Row) GroupEntry {
		out := Evaluate(sheet.CellAt(row, r.CheckCol), r.Expect)
		return GroupEntry{Value: out.Actual, Valid: out.Valid}
	})
}

// scanCategory collects one entry per matching row in sheet order and folds
// them into a group result.
func scanCategory(s *sheet.Sheet, r rules.Rule, check func(sheet.Row) GroupEntry) CheckResult {
	res := CheckResult{
		Name:         r.Name,
		Kind:         r.Kind,
		Expected:     r.Expect.Describe(),
		MarkerColumn: r.CategoryCol,
		CheckColumn:  r.CheckCol,
	}
	if r.Kind == rules.KindSpecial {
		res.Expected = describeSpecial(r)
	}

	target := strings.ToUpper(strings.TrimSpace(r.Category))
	var entries []GroupEntry
	for i, row := range s.Rows {
		if strings.ToUpper(sheet.AsTrimmedString(sheet.CellAt(row, r.CategoryCol))) != target {
			continue
		}
		entry := check(row)
		entry.Sequence = sheet.AsTrimmedString(sheet.CellAt(row, r.SequenceCol))
		entry.RowNumber = i + 1
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		res.Actual = r.Category + " not found"
		return res
	}

	valid := 0
	for _, e := range entries {
		if e.Valid {
			valid++
		}
	}
	res.Found = true
	res.RowNumber = entries[0].RowNumber
	res.Entries = entries
	res.Valid = valid == len(entries)
	res.Actual = fmt.Sprintf("%d of %d rows valid", valid, len(entries))
	return res
}
