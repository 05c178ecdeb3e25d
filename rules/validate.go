package rules

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bcbdcheck/sheet"
)

// columnRef checks a spreadsheet column letter such as "L" or "AA".
var columnRef = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := sheet.ColumnIndex(s); err != nil {
		return errors.New("must be a column letter such as A or AA")
	}
	return nil
})

// Validate checks the catalog for structural errors before compilation.
func (c Catalog) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Brand, validation.Required),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Rules, validation.Required, validation.By(uniqueRuleNames)),
		validation.Field(&c.Layout),
	)
}

// Validate checks that the fields required by the rule's Kind are present.
func (r Rule) Validate() error {
	isMarker := r.Kind == KindMarker
	isFixed := r.Kind == KindFixed
	isCategory := r.Kind == KindCategory || r.Kind == KindSpecial
	isSpecial := r.Kind == KindSpecial

	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Kind, validation.Required, validation.In(KindMarker, KindFixed, KindCategory, KindSpecial)),
		validation.Field(&r.MarkerColumn, validation.When(isMarker, validation.Required), columnRef),
		validation.Field(&r.Marker, validation.When(isMarker, validation.Required)),
		validation.Field(&r.Row, validation.When(isFixed, validation.Required, validation.Min(1))),
		validation.Field(&r.Column, validation.When(isFixed, validation.Required), columnRef),
		validation.Field(&r.Category, validation.When(isCategory, validation.Required)),
		validation.Field(&r.CategoryColumn, columnRef),
		validation.Field(&r.SequenceColumn, columnRef),
		validation.Field(&r.CheckColumn, validation.When(isMarker || isCategory, validation.Required), columnRef),
		validation.Field(&r.Expect),
		validation.Field(&r.Condition, validation.When(isSpecial, validation.Required)),
		validation.Field(&r.Matched, validation.When(isSpecial, validation.Required)),
	)
}

// Validate checks a special-case condition.
func (c Condition) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Column, validation.Required, columnRef),
		validation.Field(&c.Contains, validation.Required),
	)
}

// Validate checks an additional special-case cell.
func (c CellRule) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Column, validation.Required, columnRef),
		validation.Field(&c.Expect),
	)
}

// Validate checks that the expectation carries the value its Mode needs.
func (e Expectation) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Mode, validation.Required, validation.In(ModeExact, ModeNumber, ModeRange, ModePercentage, ModePresent)),
		validation.Field(&e.Text, validation.When(e.Mode == ModeExact, validation.Required)),
		validation.Field(&e.Number, validation.When(e.Mode == ModeNumber, validation.NotNil)),
		validation.Field(&e.Percent, validation.When(e.Mode == ModePercentage, validation.NotNil)),
		validation.Field(&e.Range, validation.When(e.Mode == ModeRange, validation.NotNil)),
		validation.Field(&e.Tolerance, validation.Min(0.0)),
		validation.Field(&e.WholeTolerance, validation.Min(0.0)),
	)
}

// Validate checks that a range is ordered.
func (r Range) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("min %v exceeds max %v", r.Min, r.Max)
	}
	return nil
}

// Validate checks the report layout.
func (l Layout) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Columns, validation.Required, validation.By(gridWidth)),
	)
}

// Validate checks one report column.
func (c Column) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Field, validation.Required, validation.In(FieldCheck, FieldRow, FieldLocation, FieldActual, FieldExpected, FieldStatus)),
		validation.Field(&c.Header, validation.Required),
		validation.Field(&c.Width, validation.Required, validation.Min(1), validation.Max(12)),
	)
}

func uniqueRuleNames(value interface{}) error {
	list, _ := value.([]Rule)
	seen := make(map[string]bool, len(list))
	for _, r := range list {
		if seen[r.Name] {
			return fmt.Errorf("duplicate rule name %q", r.Name)
		}
		seen[r.Name] = true
	}
	return nil
}

func gridWidth(value interface{}) error {
	cols, _ := value.([]Column)
	total := 0
	for _, c := range cols {
		total += c.Width
	}
	if total != 12 {
		return fmt.Errorf("column widths must sum to 12, got %d", total)
	}
	return nil
}
