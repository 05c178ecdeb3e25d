package services

import (
	"testing"
)

func TestGeneratePDF_Report(t *testing.T) {
	model := Project(testLayout(), sampleFiles())
	model.CreatedDate = "2026-03-14"

	result, err := GeneratePDF(model)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGeneratePDF_NoFiles(t *testing.T) {
	model := Project(testLayout(), nil)

	result, err := GeneratePDF(model)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestGeneratePDF_WarningRows(t *testing.T) {
	layout := testLayout()
	layout.WarningBands = map[string]float64{"Agent Commission": 0.05}

	result, err := GeneratePDF(Project(layout, sampleFiles()))
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestGeneratePDF_NoColumns(t *testing.T) {
	if _, err := GeneratePDF(BrandReportModel{}); err == nil {
		t.Fatal("expected error for a model without columns")
	}
}
