package formatter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/penwyp/go-time-diff/internal/core/chapter"
	"github.com/penwyp/go-time-diff/internal/core/severity"
	"github.com/penwyp/go-time-diff/internal/util"
)

type CSVFormatter struct {
	thresholds severity.Thresholds
}

func NewCSVFormatter(thresholds severity.Thresholds) *CSVFormatter {
	return &CSVFormatter{thresholds: thresholds}
}

// Format writes one row per offender of every chapter and pass. Chapters
// without offenders get a single row with empty offender columns.
func (f *CSVFormatter) Format(w io.Writer, chapters []*chapter.Chapter) error {
	cw := csv.NewWriter(w)

	headers := []string{
		"Order", "Chapter", "Chapter Seconds",
		"Rank", "Seconds", "At", "Severity", "Line",
	}
	if err := cw.Write(headers); err != nil {
		return err
	}

	for _, pass := range BuildPasses(chapters) {
		for _, c := range pass.Chapters {
			base := []string{pass.Order, c.Name, util.FormatSeconds(c.Duration)}
			if len(c.Offenders) == 0 {
				if err := cw.Write(append(base, "", "", "", "", "")); err != nil {
					return err
				}
				continue
			}
			for i, o := range c.Offenders {
				record := append(append([]string{}, base...),
					strconv.Itoa(i+1),
					util.FormatSeconds(o.Duration),
					util.FormatClock(o.Timestamp),
					f.thresholds.Classify(o.Duration).String(),
					o.Line,
				)
				if err := cw.Write(record); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
