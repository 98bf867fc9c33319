package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-time-diff/internal/core/chapter"
	"github.com/penwyp/go-time-diff/internal/core/severity"
	"github.com/penwyp/go-time-diff/internal/util"
)

// Output formats for the end-of-stream summary
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Formatter writes the end-of-stream summary of a run
type Formatter interface {
	Format(w io.Writer, chapters []*chapter.Chapter) error
}

// ValidateFormat checks a summary format name
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatText, FormatJSON, FormatCSV:
		return nil
	default:
		return fmt.Errorf("invalid summary format %q (valid: text, json, csv)", format)
	}
}

// New returns the formatter for format
func New(format string, thresholds severity.Thresholds, palette util.Palette) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatText:
		return NewSummaryFormatter(thresholds, palette), nil
	case FormatJSON:
		return NewJSONFormatter(thresholds), nil
	case FormatCSV:
		return NewCSVFormatter(thresholds), nil
	default:
		return nil, ValidateFormat(format)
	}
}
