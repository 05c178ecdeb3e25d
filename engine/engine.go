// Package engine validates a parsed cost breakdown against a brand rule
// catalog. Validation is synchronous and pure: the same sheet and catalog
// always yield the same results, and nothing is shared between files.
package engine

import (
	"bcbdcheck/rules"
	"bcbdcheck/sheet"
)

// Engine applies one brand catalog to sheets.
type Engine struct {
	catalog *rules.Catalog
}

// New returns an engine for a compiled catalog.
func New(catalog *rules.Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Catalog returns the catalog the engine was built with.
func (e *Engine) Catalog() *rules.Catalog {
	return e.catalog
}

// Check runs every rule of the catalog, in catalog order. Missing markers or
// categories are reported in the results, never as errors.
func (e *Engine) Check(s *sheet.Sheet) []CheckResult {
	results := make([]CheckResult, 0, len(e.catalog.Rules))
	for _, r := range e.catalog.Rules {
		switch r.Kind {
		case rules.KindMarker:
			results = append(results, matchMarker(s, r))
		case rules.KindFixed:
			results = append(results, matchFixed(s, r))
		case rules.KindCategory:
			results = append(results, matchCategory(s, r))
		case rules.KindSpecial:
			results = append(results, matchSpecial(s, r))
		}
	}
	return results
}

// ValidateSheet builds the FileResult for an already parsed sheet.
func (e *Engine) ValidateSheet(fileName string, s *sheet.Sheet) FileResult {
	return FileResult{
		FileName:  fileName,
		SheetName: s.Name,
		Checks:    e.Check(s),
	}
}

// ValidateFile parses and validates one upload. A parse failure is recorded
// on the result instead of being returned.
func (e *Engine) ValidateFile(fileName string, data []byte) FileResult {
	s, err := sheet.Read(fileName, data)
	if err != nil {
		return FileResult{
			FileName: fileName,
			Size:     int64(len(data)),
			Checks:   []CheckResult{},
			Error:    err.Error(),
		}
	}
	res := e.ValidateSheet(fileName, s)
	res.Size = int64(len(data))
	return res
}
