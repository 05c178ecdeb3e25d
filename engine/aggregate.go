package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Upload is one file submitted for validation.
type Upload struct {
	Name string
	Data []byte
}

// Summary counts the checks of one file.
type Summary struct {
	Total int `json:"total"`
	Found int `json:"found"`
	Valid int `json:"valid"`
}

// Percent is the share of found checks that are valid, 0 when nothing was found.
func (s Summary) Percent() float64 {
	if s.Found == 0 {
		return 0
	}
	return float64(s.Valid) / float64(s.Found) * 100
}

// Summarize counts total, found and valid checks of a file.
func Summarize(f FileResult) Summary {
	s := Summary{Total: len(f.Checks)}
	for _, c := range f.Checks {
		if c.Found {
			s.Found++
		}
		if c.Valid {
			s.Valid++
		}
	}
	return s
}

// Batch is the result of one Generate action: every uploaded file, in upload
// order, validated against one brand.
type Batch struct {
	ID        string       `json:"id"`
	Brand     string       `json:"brand"`
	BrandName string       `json:"brandName"`
	CreatedAt time.Time    `json:"createdAt"`
	Files     []FileResult `json:"files"`
}

// BatchSummary aggregates a batch. Files that failed to parse are counted in
// Errored and excluded from the check totals.
type BatchSummary struct {
	Summary
	Files   int `json:"files"`
	Errored int `json:"errored"`
}

// Run validates uploads one after another in order. The context is consulted
// once, before the batch starts; a started batch always completes.
func Run(ctx context.Context, eng *Engine, uploads []Upload) (*Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := &Batch{
		ID:        uuid.NewString(),
		Brand:     eng.Catalog().Brand,
		BrandName: eng.Catalog().Name,
		CreatedAt: time.Now(),
		Files:     make([]FileResult, 0, len(uploads)),
	}
	for _, u := range uploads {
		b.Files = append(b.Files, eng.ValidateFile(u.Name, u.Data))
	}
	return b, nil
}

// Summary aggregates the batch.
func (b *Batch) Summary() BatchSummary {
	out := BatchSummary{Files: len(b.Files)}
	for _, f := range b.Files {
		if f.Failed() {
			out.Errored++
			continue
		}
		s := Summarize(f)
		out.Total += s.Total
		out.Found += s.Found
		out.Valid += s.Valid
	}
	return out
}

// Passed reports whether every file was read and passed every check.
func (b *Batch) Passed() bool {
	for _, f := range b.Files {
		if !f.Passed() {
			return false
		}
	}
	return true
}
