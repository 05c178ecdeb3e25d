package sheet

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates the upload is neither an OOXML workbook nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported file format: must be .xlsx, .xlsm or .csv")

// ErrNoSheets indicates a workbook without any worksheet.
var ErrNoSheets = errors.New("workbook has no sheets")

// ParseError reports that one uploaded file could not be decoded into a
// Sheet. It is scoped to that file; sibling files in a batch are unaffected.
type ParseError struct {
	FileName string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not read %q: %v", e.FileName, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(fileName string, err error) *ParseError {
	return &ParseError{FileName: fileName, Err: err}
}
