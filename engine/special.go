package engine

import (
	"fmt"
	"strings"

	"bcbdcheck/rules"
	"bcbdcheck/sheet"
)

// matchSpecial is a category scan whose rows branch on r.Condition. Rows
// meeting the condition validate every r.Matched cell; the others validate
// r.Expect at CheckCol. Both branches land in the same group.
func matchSpecial(s *sheet.Sheet, r rules.Rule) CheckResult {
	needle := strings.ToLower(strings.TrimSpace(r.Condition.Contains))

	return scanCategory(s, r, func(row sheet.Row) GroupEntry {
		desc := strings.ToLower(sheet.AsTrimmedString(sheet.CellAt(row, r.Condition.Col)))
		if !strings.Contains(desc, needle) {
			out := Evaluate(sheet.CellAt(row, r.CheckCol), r.Expect)
			return GroupEntry{Branch: r.OtherwiseLabel, Value: out.Actual, Valid: out.Valid}
		}

		entry := GroupEntry{Branch: r.Condition.Label, Valid: true}
		values := make([]string, 0, len(r.Matched))
		for _, cr := range r.Matched {
			out := Evaluate(sheet.CellAt(row, cr.Col), cr.Expect)
			entry.Cells = append(entry.Cells, CellCheck{
				Column:   cr.Column,
				Label:    cr.Label,
				Actual:   out.Actual,
				Expected: cr.Expect.Describe(),
				Valid:    out.Valid,
			})
			entry.Valid = entry.Valid && out.Valid
			values = append(values, cr.Column+": "+out.Actual)
		}
		entry.Value = strings.Join(values, ", ")
		return entry
	})
}

// describeSpecial renders both branches, e.g.
// "Generic Packaging: G=m88, J=pc, L=1; otherwise 3%".
func describeSpecial(r rules.Rule) string {
	parts := make([]string, 0, len(r.Matched))
	for _, cr := range r.Matched {
		parts = append(parts, cr.Column+"="+cr.Expect.Describe())
	}
	label := r.Condition.Contains
	return fmt.Sprintf("%s: %s; otherwise %s", label, strings.Join(parts, ", "), r.Expect.Describe())
}
