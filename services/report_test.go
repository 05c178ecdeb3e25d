package services

import (
	"strings"
	"testing"
	"time"

	"bcbdcheck/engine"
	"bcbdcheck/rules"
)

func f64(v float64) *float64 { return &v }

// sampleFiles covers every result variant: single valid, not found, plain
// invalid, a category group and a special-case group, plus a failed file.
func sampleFiles() []engine.FileResult {
	return []engine.FileResult{
		{
			FileName:  "vendor.xlsx",
			SheetName: "BCBD",
			Size:      18432,
			Checks: []engine.CheckResult{
				{Name: "Vendor Name", Kind: rules.KindMarker, Found: true, Valid: true, RowNumber: 3, Location: "E3", Actual: "Madison 88", Expected: "Madison 88", CheckColumn: 4},
				{Name: "Currency", Kind: rules.KindMarker, Actual: "CURRENCY not found", Expected: "USD", CheckColumn: 4},
				{
					Name: "Agent Commission", Kind: rules.KindFixed, Found: true, RowNumber: 2, Location: "H2",
					Actual: "12.00%", Expected: "5% - 10%", CheckColumn: 7,
					Numeric: f64(0.12), Range: &rules.Range{Min: 0.05, Max: 0.10},
				},
				{
					Name: "Fabric Wastage", Kind: rules.KindCategory, Found: true, RowNumber: 6,
					Actual: "1 of 2 rows valid", Expected: "5%", CheckColumn: 11,
					Entries: []engine.GroupEntry{
						{Sequence: "1", Value: "5%", Valid: true, RowNumber: 6},
						{Sequence: "2", Value: "6%", RowNumber: 7},
					},
				},
				{
					Name: "Packaging", Kind: rules.KindSpecial, Found: true, Valid: true, RowNumber: 9,
					Actual: "1 of 1 rows valid", Expected: "Generic Packaging: G=m88; otherwise 3%", CheckColumn: 11,
					Entries: []engine.GroupEntry{
						{
							Sequence: "1", Value: "G: M88", Valid: true, RowNumber: 9, Branch: "Generic Packaging",
							Cells: []engine.CellCheck{{Column: "G", Label: "Material Code", Actual: "M88", Expected: "m88", Valid: true}},
						},
					},
				},
			},
		},
		{FileName: "broken.xlsx", Size: 12, Checks: []engine.CheckResult{}, Error: "broken.xlsx: file is empty"},
	}
}

func testLayout() rules.Layout {
	return rules.Layout{
		Title:          "Acme BCBD Validation Report",
		FilenamePrefix: "Acme_BCBD_Report",
		Columns:        rules.DefaultColumns(),
	}
}

func TestProject_Header(t *testing.T) {
	model := Project(testLayout(), sampleFiles())

	if model.Title != "Acme BCBD Validation Report" || model.FilenamePrefix != "Acme_BCBD_Report" {
		t.Errorf("title/prefix = %q/%q", model.Title, model.FilenamePrefix)
	}
	if strings.Join(model.Headers, ",") != "Check,Row,Actual,Expected,Status" {
		t.Errorf("headers = %v", model.Headers)
	}
	sum := 0
	for _, w := range model.Widths {
		sum += w
	}
	if sum != 12 {
		t.Errorf("widths sum to %d, want 12", sum)
	}
	if len(model.Files) != 2 {
		t.Fatalf("got %d files, want 2", len(model.Files))
	}
}

func TestProject_RowsAreTotal(t *testing.T) {
	model := Project(testLayout(), sampleFiles())
	f := model.Files[0]

	// 3 single checks + (1+2) category + (1+1+1) special.
	if len(f.Rows) != 9 {
		t.Fatalf("got %d rows, want 9", len(f.Rows))
	}

	wantLevels := []int{LevelCheck, LevelCheck, LevelCheck, LevelCheck, LevelEntry, LevelEntry, LevelCheck, LevelEntry, LevelCell}
	for i, want := range wantLevels {
		if f.Rows[i].Level != want {
			t.Errorf("row %d level = %d, want %d", i, f.Rows[i].Level, want)
		}
		if len(f.Rows[i].Cells) != 5 || len(f.Rows[i].Statuses) != 5 {
			t.Errorf("row %d has %d cells / %d statuses", i, len(f.Rows[i].Cells), len(f.Rows[i].Statuses))
		}
	}

	tests := []struct {
		row        int
		wantCells  []string
		wantStatus Status
	}{
		{0, []string{"Vendor Name", "3", "Madison 88", "Madison 88", "Valid"}, StatusValid},
		{1, []string{"Currency", "-", "CURRENCY not found", "USD", "Not Found"}, StatusInvalid},
		{2, []string{"Agent Commission", "2", "12.00%", "5% - 10%", "Invalid"}, StatusInvalid},
		{5, []string{"Seq 2", "7", "6%", "5%", "Invalid"}, StatusInvalid},
		{7, []string{"Seq 1 (Generic Packaging)", "9", "G: M88", "", "Valid"}, StatusValid},
		{8, []string{"Material Code", "9", "M88", "m88", "Valid"}, StatusValid},
	}
	for _, tt := range tests {
		got := f.Rows[tt.row]
		if strings.Join(got.Cells, "|") != strings.Join(tt.wantCells, "|") {
			t.Errorf("row %d cells = %q, want %q", tt.row, got.Cells, tt.wantCells)
		}
		if got.Status != tt.wantStatus {
			t.Errorf("row %d status = %s, want %s", tt.row, got.Status, tt.wantStatus)
		}
	}
}

func TestProject_CellStatuses(t *testing.T) {
	model := Project(testLayout(), sampleFiles())
	row := model.Files[0].Rows[1]

	want := []Status{StatusNormal, StatusNormal, StatusInvalid, StatusNormal, StatusInvalid}
	for i, s := range want {
		if row.Statuses[i] != s {
			t.Errorf("column %d status = %s, want %s", i, row.Statuses[i], s)
		}
	}
}

func TestProject_Summary(t *testing.T) {
	model := Project(testLayout(), sampleFiles())

	ok := model.Files[0]
	if ok.SummaryLine != "2 out of 4 found checks are valid (5 total rules)" {
		t.Errorf("SummaryLine = %q", ok.SummaryLine)
	}
	if ok.Passed() {
		t.Error("file with invalid checks must not pass")
	}

	failed := model.Files[1]
	if failed.Rows != nil {
		t.Errorf("failed file has %d rows", len(failed.Rows))
	}
	if !strings.Contains(failed.SummaryLine, "file is empty") {
		t.Errorf("failed SummaryLine = %q", failed.SummaryLine)
	}
	if failed.Passed() {
		t.Error("failed file must not pass")
	}
}

func TestProject_WarningBand(t *testing.T) {
	layout := testLayout()
	layout.WarningBands = map[string]float64{"Agent Commission": 0.03}

	tests := []struct {
		name  string
		value float64
		want  Status
	}{
		{"inside band above max", 0.12, StatusWarning},
		{"just outside band", 0.14, StatusInvalid},
		{"inside band below min", 0.03, StatusWarning},
		{"outside band", 0.2, StatusInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := []engine.FileResult{{FileName: "a.xlsx", Checks: []engine.CheckResult{{
				Name: "Agent Commission", Found: true,
				Numeric: f64(tt.value), Range: &rules.Range{Min: 0.05, Max: 0.10},
			}}}}
			got := Project(layout, files).Files[0].Rows[0]
			if got.Status != tt.want {
				t.Errorf("status = %s, want %s", got.Status, tt.want)
			}
		})
	}
}

func TestProject_WarningNeverOverridesValidOrMissing(t *testing.T) {
	layout := testLayout()
	layout.WarningBands = map[string]float64{"Agent Commission": 1}

	files := []engine.FileResult{{FileName: "a.xlsx", Checks: []engine.CheckResult{
		{Name: "Agent Commission", Found: true, Valid: true, Numeric: f64(0.07), Range: &rules.Range{Min: 0.05, Max: 0.10}},
		{Name: "Agent Commission", Range: &rules.Range{Min: 0.05, Max: 0.10}},
	}}}
	rows := Project(layout, files).Files[0].Rows
	if rows[0].Status != StatusValid || rows[1].Status != StatusInvalid {
		t.Errorf("statuses = %s/%s", rows[0].Status, rows[1].Status)
	}
}

func TestProject_LocationColumn(t *testing.T) {
	layout := testLayout()
	layout.Columns = []rules.Column{
		{Field: rules.FieldCheck, Header: "Rule", Width: 4},
		{Field: rules.FieldLocation, Header: "Cell", Width: 2},
		{Field: rules.FieldActual, Header: "Found", Width: 3},
		{Field: rules.FieldStatus, Header: "Result", Width: 3},
	}

	rows := Project(layout, sampleFiles()).Files[0].Rows
	if rows[0].Cells[1] != "E3" {
		t.Errorf("marker location = %q", rows[0].Cells[1])
	}
	if rows[4].Cells[1] != "L6" {
		t.Errorf("entry location = %q, want L6", rows[4].Cells[1])
	}
	if rows[8].Cells[1] != "G9" {
		t.Errorf("cell check location = %q, want G9", rows[8].Cells[1])
	}
}

func TestProject_EmptyLayoutUsesDefaults(t *testing.T) {
	model := Project(rules.Layout{}, nil)
	if len(model.Headers) != len(rules.DefaultColumns()) {
		t.Errorf("headers = %v", model.Headers)
	}
	if model.Files == nil || len(model.Files) != 0 {
		t.Errorf("Files = %#v, want empty", model.Files)
	}
}

func TestProjectBatch_Date(t *testing.T) {
	b := &engine.Batch{CreatedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), Files: sampleFiles()}
	model := ProjectBatch(testLayout(), b)
	if model.CreatedDate != "2026-03-14" {
		t.Errorf("CreatedDate = %q", model.CreatedDate)
	}
}
