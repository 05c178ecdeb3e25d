package engine

import (
	"fmt"
	"math"
	"strings"

	"bcbdcheck/rules"
	"bcbdcheck/sheet"
)

// rangeEpsilon absorbs float noise at inclusive range bounds.
const rangeEpsilon = 1e-9

// PercentCheck is the display form and validity of a percentage cell.
type PercentCheck struct {
	Display string
	Valid   bool
}

// AsPercentage interprets value as a decimal fraction when it is <= 1 and as
// whole percentage points otherwise, so 0.05 and 5 both mean 5%.
func AsPercentage(value, expectedDecimal, tolerance, wholeTolerance float64) PercentCheck {
	if value <= 1 {
		return PercentCheck{
			Display: fmt.Sprintf("%.0f%%", math.Round(value*100)),
			Valid:   math.Abs(value-expectedDecimal) < tolerance,
		}
	}
	return PercentCheck{
		Display: fmt.Sprintf("%.0f%%", math.Round(value)),
		Valid:   math.Abs(value-expectedDecimal*100) < wholeTolerance,
	}
}

// InRange checks value against an inclusive range of decimals, using the same
// decimal/whole-point interpretation as AsPercentage. The display keeps two
// decimals ("12.00%").
func InRange(value float64, r rules.Range) PercentCheck {
	return decimalInRange(ToDecimal(value), r)
}

// ToDecimal reads values above 1 as whole percentage points.
func ToDecimal(value float64) float64 {
	if value > 1 {
		return value / 100
	}
	return value
}

// decimalPercentage compares a value already known to be a decimal fraction,
// such as text written with a "%" sign.
func decimalPercentage(d, expectedDecimal, tolerance float64) PercentCheck {
	return PercentCheck{
		Display: fmt.Sprintf("%.0f%%", math.Round(d*100)),
		Valid:   math.Abs(d-expectedDecimal) < tolerance,
	}
}

func decimalInRange(d float64, r rules.Range) PercentCheck {
	return PercentCheck{
		Display: fmt.Sprintf("%.2f%%", d*100),
		Valid:   d >= r.Min-rangeEpsilon && d <= r.Max+rangeEpsilon,
	}
}

// Outcome is the evaluation of one raw cell against an expectation.
type Outcome struct {
	Actual  string
	Valid   bool
	Numeric *float64
}

// Evaluate compares a raw cell with exp. Blank cells are reported as
// EmptyValue and are never valid.
func Evaluate(raw any, exp rules.Expectation) Outcome {
	text := sheet.AsTrimmedString(raw)
	if text == "" {
		return Outcome{Actual: EmptyValue}
	}

	switch exp.Mode {
	case rules.ModeExact:
		return Outcome{Actual: text, Valid: strings.EqualFold(text, strings.TrimSpace(exp.Text))}

	case rules.ModePresent:
		return Outcome{Actual: text, Valid: true}

	case rules.ModeNumber:
		n, _, ok := numericValue(raw)
		if !ok || exp.Number == nil {
			return Outcome{Actual: text}
		}
		return Outcome{Actual: text, Valid: math.Abs(n-*exp.Number) <= exp.Tolerance, Numeric: &n}

	case rules.ModePercentage:
		n, percent, ok := numericValue(raw)
		if !ok || exp.Percent == nil {
			return Outcome{Actual: text}
		}
		var pc PercentCheck
		if percent {
			pc = decimalPercentage(n, *exp.Percent, exp.Tolerance)
		} else {
			pc = AsPercentage(n, *exp.Percent, exp.Tolerance, exp.WholeTolerance)
			n = ToDecimal(n)
		}
		return Outcome{Actual: pc.Display, Valid: pc.Valid, Numeric: &n}

	case rules.ModeRange:
		n, percent, ok := numericValue(raw)
		if !ok || exp.Range == nil {
			return Outcome{Actual: text}
		}
		if !percent {
			n = ToDecimal(n)
		}
		pc := decimalInRange(n, *exp.Range)
		return Outcome{Actual: pc.Display, Valid: pc.Valid, Numeric: &n}
	}

	return Outcome{Actual: text}
}

// numericValue reads a cell as a number. Text carrying an explicit "%" is
// converted to a decimal fraction and reported with percent set, so "150%"
// is 1.5 and never goes through the whole-points heuristic.
func numericValue(raw any) (n float64, percent bool, ok bool) {
	if f, isFloat := raw.(float64); isFloat {
		return f, false, !math.IsNaN(f)
	}
	text := sheet.AsTrimmedString(raw)
	n = sheet.AsNumber(sheet.StripNumeric(text))
	if math.IsNaN(n) {
		return 0, false, false
	}
	if strings.Contains(text, "%") {
		return n / 100, true, true
	}
	return n, false, true
}
