package engine

import "bcbdcheck/rules"

// EmptyValue is the actual value reported for a located but blank cell.
const EmptyValue = "Empty"

// CheckResult is the outcome of one rule against one sheet. Category and
// special-case rules carry their per-row findings in Entries; Valid is then
// the AND over all entries.
type CheckResult struct {
	Name      string     `json:"name"`
	Kind      rules.Kind `json:"kind"`
	Found     bool       `json:"found"`
	RowNumber int        `json:"rowNumber"`
	Actual    string     `json:"actual"`
	Expected  string     `json:"expected"`
	Valid     bool       `json:"isValid"`
	// MarkerColumn and CheckColumn are zero-based; -1 when not applicable.
	MarkerColumn int `json:"markerColumn"`
	CheckColumn  int `json:"checkColumn"`
	// Location is the A1 reference of the checked cell, when there is one.
	Location string `json:"location,omitempty"`

	// Numeric and Range are set for range checks so the report layer can
	// grade near misses. Numeric is the decimal fraction (0.12 for 12%).
	Numeric *float64     `json:"numeric,omitempty"`
	Range   *rules.Range `json:"range,omitempty"`

	Entries []GroupEntry `json:"entries,omitempty"`
}

// IsGroup reports whether the result holds per-row entries.
func (c CheckResult) IsGroup() bool {
	return len(c.Entries) > 0
}

// GroupEntry is one matched row of a category group.
type GroupEntry struct {
	Sequence  string `json:"sequence"`
	Value     string `json:"value"`
	Valid     bool   `json:"isValid"`
	RowNumber int    `json:"rowNumber"`
	// Branch and Cells are set for special-case rows.
	Branch string      `json:"branch,omitempty"`
	Cells  []CellCheck `json:"cells,omitempty"`
}

// CellCheck is one cell validated on a special-case row.
type CellCheck struct {
	Column   string `json:"column"`
	Label    string `json:"label"`
	Actual   string `json:"actual"`
	Expected string `json:"expected"`
	Valid    bool   `json:"isValid"`
}

// FileResult is the validation of one uploaded file. Error is set, and
// Checks is empty, when the file could not be read.
type FileResult struct {
	FileName  string        `json:"fileName"`
	SheetName string        `json:"sheetName"`
	Size      int64         `json:"size"`
	Checks    []CheckResult `json:"checks"`
	Error     string        `json:"error,omitempty"`
}

// Failed reports whether the file could not be read.
func (f FileResult) Failed() bool {
	return f.Error != ""
}

// Passed reports whether every rule was found and valid.
func (f FileResult) Passed() bool {
	if f.Failed() {
		return false
	}
	for _, c := range f.Checks {
		if !c.Valid {
			return false
		}
	}
	return true
}
