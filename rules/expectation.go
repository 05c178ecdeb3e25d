package rules

import (
	"fmt"
	"math"
	"strconv"
)

// Mode selects how a cell value is compared with its expectation.
type Mode string

const (
	// ModeExact is case-insensitive string equality after trimming.
	ModeExact Mode = "exact"
	// ModeNumber is numeric equality within Tolerance.
	ModeNumber Mode = "number"
	// ModeRange accepts an inclusive [min, max] percentage range. Values <= 1
	// are decimals, larger values are whole percentage points.
	ModeRange Mode = "range"
	// ModePercentage accepts a single percentage, stored either as a decimal
	// (0.05) or as whole points (5).
	ModePercentage Mode = "percentage"
	// ModePresent accepts any non-blank value.
	ModePresent Mode = "present"
)

// Default tolerances for ModePercentage. Individual brands override them.
const (
	DefaultTolerance      = 0.0001
	DefaultWholeTolerance = 0.01
)

// Range is an inclusive range of decimal fractions (0.05 = 5%).
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Expectation is the declarative expected value of one cell.
type Expectation struct {
	Mode Mode `yaml:"mode" json:"mode"`
	// Text is the expected string for ModeExact.
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
	// Number is the expected value for ModeNumber.
	Number *float64 `yaml:"number,omitempty" json:"number,omitempty"`
	// Percent is the expected decimal fraction for ModePercentage.
	Percent *float64 `yaml:"percent,omitempty" json:"percent,omitempty"`
	// Range bounds ModeRange.
	Range *Range `yaml:"range,omitempty" json:"range,omitempty"`
	// Tolerance applies to decimal percentages and to ModeNumber.
	Tolerance float64 `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
	// WholeTolerance applies when a percentage is stored as whole points.
	WholeTolerance float64 `yaml:"wholeTolerance,omitempty" json:"wholeTolerance,omitempty"`
}

// Describe renders the expectation for the "Expected" report column.
func (e Expectation) Describe() string {
	switch e.Mode {
	case ModeExact:
		return e.Text
	case ModeNumber:
		if e.Number == nil {
			return ""
		}
		return strconv.FormatFloat(*e.Number, 'f', -1, 64)
	case ModePercentage:
		if e.Percent == nil {
			return ""
		}
		return formatWholePercent(*e.Percent)
	case ModeRange:
		if e.Range == nil {
			return ""
		}
		return fmt.Sprintf("%s - %s", formatWholePercent(e.Range.Min), formatWholePercent(e.Range.Max))
	case ModePresent:
		return "Any value"
	}
	return ""
}

func (e *Expectation) applyDefaults() {
	if e.Mode == ModePercentage {
		if e.Tolerance == 0 {
			e.Tolerance = DefaultTolerance
		}
		if e.WholeTolerance == 0 {
			e.WholeTolerance = DefaultWholeTolerance
		}
	}
	if e.Mode == ModeNumber && e.Tolerance == 0 {
		e.Tolerance = DefaultTolerance
	}
}

// formatWholePercent renders 0.05 as "5%" and 0.125 as "12.5%".
func formatWholePercent(d float64) string {
	return strconv.FormatFloat(math.Round(d*100*1e6)/1e6, 'f', -1, 64) + "%"
}
