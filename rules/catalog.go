// Package rules defines brand rule catalogs: declarative descriptions of which
// cells of a cost breakdown must hold which values. Catalogs are data; the
// engine package interprets them.
package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"bcbdcheck/sheet"
)

// Kind tags the scan strategy of a rule.
type Kind string

const (
	// KindMarker scans MarkerColumn for Marker and reads CheckColumn on the
	// first matching row.
	KindMarker Kind = "marker"
	// KindFixed reads a single cell at Row/Column.
	KindFixed Kind = "fixed"
	// KindCategory validates CheckColumn on every row whose CategoryColumn
	// equals Category.
	KindCategory Kind = "category"
	// KindSpecial is a category rule whose rows branch on Condition: matching
	// rows validate the Matched cells, the rest validate Expect.
	KindSpecial Kind = "special"
)

// Defaults for category rows.
const (
	DefaultCategoryColumn = "A"
	DefaultSequenceColumn = "B"
	DefaultCheckColumn    = "L"
)

// Condition is the secondary test of a special-case row.
type Condition struct {
	Column   string `yaml:"column" json:"column"`
	Contains string `yaml:"contains" json:"contains"`
	// Label names the branch taken when the condition holds.
	Label string `yaml:"label,omitempty" json:"label,omitempty"`

	Col int `yaml:"-" json:"-"`
}

// CellRule checks one additional cell on a matched special-case row.
type CellRule struct {
	Column string      `yaml:"column" json:"column"`
	Label  string      `yaml:"label,omitempty" json:"label,omitempty"`
	Expect Expectation `yaml:"expect" json:"expect"`

	Col int `yaml:"-" json:"-"`
}

// Rule is one declarative check. Which fields apply depends on Kind.
type Rule struct {
	Name string `yaml:"name" json:"name"`
	Kind Kind   `yaml:"kind" json:"kind"`

	MarkerColumn string `yaml:"markerColumn,omitempty" json:"markerColumn,omitempty"`
	Marker       string `yaml:"marker,omitempty" json:"marker,omitempty"`

	Row    int    `yaml:"row,omitempty" json:"row,omitempty"`
	Column string `yaml:"column,omitempty" json:"column,omitempty"`

	Category       string `yaml:"category,omitempty" json:"category,omitempty"`
	CategoryColumn string `yaml:"categoryColumn,omitempty" json:"categoryColumn,omitempty"`
	SequenceColumn string `yaml:"sequenceColumn,omitempty" json:"sequenceColumn,omitempty"`

	CheckColumn string      `yaml:"checkColumn,omitempty" json:"checkColumn,omitempty"`
	Expect      Expectation `yaml:"expect" json:"expect"`

	Condition *Condition `yaml:"condition,omitempty" json:"condition,omitempty"`
	Matched   []CellRule `yaml:"matched,omitempty" json:"matched,omitempty"`
	// OtherwiseLabel names the default branch of a special-case rule.
	OtherwiseLabel string `yaml:"otherwiseLabel,omitempty" json:"otherwiseLabel,omitempty"`

	// Zero-based indices resolved by Compile.
	MarkerCol   int `yaml:"-" json:"-"`
	CheckCol    int `yaml:"-" json:"-"`
	FixedCol    int `yaml:"-" json:"-"`
	CategoryCol int `yaml:"-" json:"-"`
	SequenceCol int `yaml:"-" json:"-"`
}

// Catalog is the full rule set and report layout of one brand.
type Catalog struct {
	Brand  string `yaml:"brand" json:"brand"`
	Name   string `yaml:"name" json:"name"`
	Rules  []Rule `yaml:"rules" json:"rules"`
	Layout Layout `yaml:"layout" json:"layout"`
}

// Parse decodes, validates and compiles a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Compile(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Compile applies defaults, validates the catalog and resolves column
// letters to indices. It is idempotent.
func (c *Catalog) Compile() error {
	for i := range c.Rules {
		c.Rules[i].applyDefaults()
	}
	c.Layout.applyDefaults(c.Name)

	if err := c.Validate(); err != nil {
		return fmt.Errorf("catalog %q: %w", c.Brand, err)
	}

	for i := range c.Rules {
		if err := c.Rules[i].resolve(); err != nil {
			return fmt.Errorf("catalog %q rule %q: %w", c.Brand, c.Rules[i].Name, err)
		}
	}
	return nil
}

func (r *Rule) applyDefaults() {
	if r.Kind == KindCategory || r.Kind == KindSpecial {
		if r.CategoryColumn == "" {
			r.CategoryColumn = DefaultCategoryColumn
		}
		if r.SequenceColumn == "" {
			r.SequenceColumn = DefaultSequenceColumn
		}
		if r.CheckColumn == "" {
			r.CheckColumn = DefaultCheckColumn
		}
		if r.Name == "" {
			r.Name = r.Category
		}
	}
	if r.Kind == KindMarker && r.Name == "" {
		r.Name = r.Marker
	}
	r.Expect.applyDefaults()
	for i := range r.Matched {
		r.Matched[i].Expect.applyDefaults()
		if r.Matched[i].Label == "" {
			r.Matched[i].Label = r.Matched[i].Column
		}
	}
	if r.Kind == KindSpecial && r.OtherwiseLabel == "" {
		r.OtherwiseLabel = "Standard"
	}
	if r.Condition != nil && r.Condition.Label == "" {
		r.Condition.Label = r.Condition.Contains
	}
}

func (r *Rule) resolve() error {
	var err error
	col := func(letters string) int {
		if err != nil || letters == "" {
			return -1
		}
		var idx int
		idx, err = sheet.ColumnIndex(letters)
		return idx
	}

	r.MarkerCol = col(r.MarkerColumn)
	r.CheckCol = col(r.CheckColumn)
	r.FixedCol = col(r.Column)
	r.CategoryCol = col(r.CategoryColumn)
	r.SequenceCol = col(r.SequenceColumn)
	if r.Condition != nil {
		r.Condition.Col = col(r.Condition.Column)
	}
	for i := range r.Matched {
		r.Matched[i].Col = col(r.Matched[i].Column)
	}
	return err
}
