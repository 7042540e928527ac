package export

import (
	"fmt"
	"strings"
)

// Format identifies a supported download format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

var invalidSheetChars = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ")

// Renderer turns a dataset into file bytes.
type Renderer interface {
	Render(data Dataset, title string) ([]byte, error)
}

// ParseFormat validates a user supplied format, defaulting to CSV.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

// Registry maps formats to renderers.
type Registry map[Format]Renderer

// NewRegistry wires every built-in renderer.
func NewRegistry() Registry {
	return Registry{
		FormatCSV:  NewCSVExporter(),
		FormatPDF:  NewPDFExporter(),
		FormatXLSX: NewXLSXExporter(),
	}
}
