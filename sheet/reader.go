package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// Format is the decoded container type of an upload.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DetectFormat sniffs the upload content and falls back to the file extension
// when the content is ambiguous (short CSVs often sniff as text/plain or
// octet-stream).
func DetectFormat(fileName string, data []byte) (Format, error) {
	mt := mimetype.Detect(data)
	ext := strings.ToLower(filepath.Ext(fileName))

	switch {
	case mt.Is(xlsxMIME), mt.Is("application/vnd.ms-excel.sheet.macroEnabled.12"):
		return FormatXLSX, nil
	case mt.Is("application/zip"):
		if ext == ".xlsx" || ext == ".xlsm" {
			return FormatXLSX, nil
		}
	case mt.Is("text/csv"), mt.Is("text/plain"), mt.Is("text/tab-separated-values"):
		return FormatCSV, nil
	case mt.Is("application/octet-stream"):
		if ext == ".csv" {
			return FormatCSV, nil
		}
	}
	return "", fmt.Errorf("%w (detected %s)", ErrUnsupportedFormat, mt.String())
}

// Read decodes the first worksheet of an uploaded file. Every failure is a
// *ParseError naming the file.
func Read(fileName string, data []byte) (*Sheet, error) {
	if len(data) == 0 {
		return nil, newParseError(fileName, fmt.Errorf("file is empty"))
	}

	format, err := DetectFormat(fileName, data)
	if err != nil {
		return nil, newParseError(fileName, err)
	}

	var s *Sheet
	switch format {
	case FormatXLSX:
		s, err = readExcel(data)
	case FormatCSV:
		s, err = readCSV(fileName, data)
	}
	if err != nil {
		return nil, newParseError(fileName, err)
	}
	return s, nil
}

// ReadFile reads and decodes a workbook from disk.
func ReadFile(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newParseError(filepath.Base(path), err)
	}
	return Read(filepath.Base(path), data)
}

// readExcel returns the first sheet with raw (unformatted) cell values, so a
// cell displayed as "5%" arrives as 0.05.
func readExcel(data []byte) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	return &Sheet{Name: sheetName, Rows: toRows(rows)}, nil
}

// readCSV decodes UTF-8 CSV, falling back to Windows-1252 for exports from
// older Excel installs.
func readCSV(fileName string, data []byte) (*Sheet, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode Windows-1252 text: %w", err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	return &Sheet{Name: name, Rows: toRows(records)}, nil
}

func toRows(raw [][]string) []Row {
	rows := make([]Row, len(raw))
	for i, r := range raw {
		row := make(Row, len(r))
		for j, v := range r {
			row[j] = parseValue(v)
		}
		rows[i] = row
	}
	return rows
}

// plainNumber matches numbers in the form spreadsheets write them. Codes
// such as "001" or "+5" do not match and stay text.
var plainNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][-+]?[0-9]+)?$`)

// parseValue returns nil for blank cells, float64 for plain numbers and the
// original string otherwise.
func parseValue(s string) any {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if !plainNumber.MatchString(trimmed) {
		return s
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}
