package domain

import (
	"path/filepath"
	"strings"
)

// Format is the kind of uploaded document, resolved from the file name suffix.
type Format string

const (
	FormatPDF         Format = "pdf"
	FormatDOCX        Format = "docx"
	FormatTXT         Format = "txt"
	FormatUnsupported Format = "unsupported"
)

// UnsupportedFileMarker is the single page produced for a file of unknown format.
const UnsupportedFileMarker = "Unsupported file type."

// FormatFromName maps a file name to its Format. Matching is case-insensitive.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".txt":
		return FormatTXT
	default:
		return FormatUnsupported
	}
}

// Supported reports whether the format has a real extractor behind it.
func (f Format) Supported() bool {
	return f != FormatUnsupported
}

// ChatRole identifies the author of a conversation turn.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ExportFormat selects the transcript export encoding.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ParseExportFormat validates a user supplied export format, defaulting to CSV.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", ExportCSV:
		return ExportCSV, nil
	case ExportXLSX:
		return ExportXLSX, nil
	default:
		return "", ErrUnsupportedExport
	}
}

// SupportedCurrencies is the list offered to clients for conversion.
var SupportedCurrencies = []string{"USD", "EUR", "GBP", "PKR", "INR", "CAD", "AUD", "JPY", "CNY", "SAR"}
