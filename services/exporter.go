package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrRendererUnavailable is returned when no renderer is registered for the
// requested export format. Nothing is written in that case.
var ErrRendererUnavailable = errors.New("report renderer unavailable")

// Exporter renders a report model into a downloadable file.
type Exporter struct {
	Format      string
	Extension   string
	ContentType string
	Render      func(BrandReportModel) ([]byte, error)
}

// Exporters maps export formats to renderers.
type Exporters map[string]Exporter

// DefaultExporters returns the PDF and Excel renderers.
func DefaultExporters() Exporters {
	return Exporters{
		"pdf": {
			Format:      "pdf",
			Extension:   "pdf",
			ContentType: "application/pdf",
			Render:      GeneratePDF,
		},
		"excel": {
			Format:      "excel",
			Extension:   "xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Render:      GenerateExcel,
		},
	}
}

// Lookup returns the exporter for format.
func (e Exporters) Lookup(format string) (Exporter, error) {
	ex, ok := e[strings.ToLower(strings.TrimSpace(format))]
	if !ok || ex.Render == nil {
		return Exporter{}, fmt.Errorf("%w: %q", ErrRendererUnavailable, format)
	}
	return ex, nil
}

// Formats lists the registered formats in sorted order.
func (e Exporters) Formats() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Export renders the model and names the resulting file.
func (e Exporters) Export(format string, model BrandReportModel) (filename string, ex Exporter, data []byte, err error) {
	ex, err = e.Lookup(format)
	if err != nil {
		return "", Exporter{}, nil, err
	}
	data, err = ex.Render(model)
	if err != nil {
		return "", Exporter{}, nil, fmt.Errorf("render %s: %w", ex.Format, err)
	}
	return ExportFilename(model.FilenamePrefix, model.CreatedDate, ex.Extension), ex, data, nil
}
