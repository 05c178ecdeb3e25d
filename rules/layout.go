package rules

// Field names one column of a brand report.
type Field string

const (
	FieldCheck    Field = "check"
	FieldRow      Field = "row"
	FieldLocation Field = "location"
	FieldActual   Field = "actual"
	FieldExpected Field = "expected"
	FieldStatus   Field = "status"
)

// Column is one report column. Widths are maroto grid units; a layout's
// widths sum to 12.
type Column struct {
	Field  Field  `yaml:"field" json:"field"`
	Header string `yaml:"header" json:"header"`
	Width  int    `yaml:"width" json:"width"`
}

// Layout is brand display metadata for the HTML report and exports.
type Layout struct {
	Title          string   `yaml:"title" json:"title"`
	FilenamePrefix string   `yaml:"filenamePrefix" json:"filenamePrefix"`
	Columns        []Column `yaml:"columns" json:"columns"`
	// WarningBands maps a check name to a distance (in decimal fraction
	// units) outside its range within which a failing value is shown as a
	// warning rather than invalid.
	WarningBands map[string]float64 `yaml:"warningBands,omitempty" json:"warningBands,omitempty"`
}

// DefaultColumns is the layout used when a catalog does not declare one.
func DefaultColumns() []Column {
	return []Column{
		{Field: FieldCheck, Header: "Check", Width: 3},
		{Field: FieldRow, Header: "Row", Width: 1},
		{Field: FieldActual, Header: "Actual", Width: 3},
		{Field: FieldExpected, Header: "Expected", Width: 3},
		{Field: FieldStatus, Header: "Status", Width: 2},
	}
}

func (l *Layout) applyDefaults(brandName string) {
	if l.Title == "" {
		l.Title = brandName + " BCBD Validation Report"
	}
	if l.FilenamePrefix == "" {
		l.FilenamePrefix = "BCBD_Report"
	}
	if len(l.Columns) == 0 {
		l.Columns = DefaultColumns()
	}
}
