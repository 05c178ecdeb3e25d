package services

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// StatusLabel is the text shown in a report's status column. Checks whose
// marker or category is missing read "Not Found" rather than "Invalid".
func StatusLabel(s Status, missing bool) string {
	switch s {
	case StatusValid:
		return "Valid"
	case StatusWarning:
		return "Warning"
	case StatusInvalid:
		if missing {
			return "Not Found"
		}
		return "Invalid"
	}
	return ""
}

// FormatSize renders an upload size for report headers, e.g. "18 kB".
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// FileHeading is the per-file title used by every renderer.
func FileHeading(f FileReport) string {
	if f.Size <= 0 {
		return f.FileName
	}
	return f.FileName + " (" + FormatSize(f.Size) + ")"
}

// ExportFilename builds "<prefix>_<date>.<ext>". Characters that are unsafe in
// a Content-Disposition filename are replaced with underscores.
func ExportFilename(prefix, date, ext string) string {
	if prefix == "" {
		prefix = "BCBD_Report"
	}
	name := prefix
	if date != "" {
		name += "_" + date
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', ':', '*', '?', '<', '>', '|', ';':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, name) + "." + ext
}
