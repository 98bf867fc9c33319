package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-time-diff/internal/core/chapter"
	"github.com/penwyp/go-time-diff/internal/core/severity"
	"github.com/penwyp/go-time-diff/internal/presentation/display"
	"github.com/penwyp/go-time-diff/internal/util"
)

const (
	bannerWidth    = 72
	totalColumn    = 6
	offenderColumn = 15
	noEventsText   = "           (No significant events)"
)

// SummaryFormatter writes the colored text summary: every chapter ordered
// by timestamp, then every chapter ordered by duration.
type SummaryFormatter struct {
	thresholds severity.Thresholds
	palette    util.Palette
}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter(thresholds severity.Thresholds, palette util.Palette) *SummaryFormatter {
	return &SummaryFormatter{thresholds: thresholds, palette: palette}
}

// Format writes both summary passes to w.
func (f *SummaryFormatter) Format(w io.Writer, chapters []*chapter.Chapter) error {
	var b strings.Builder

	for i, pass := range BuildPasses(chapters) {
		lead := "\n"
		if i == 0 {
			lead = "\n\n"
		}
		title := util.CenterText(" Summary by "+pass.Order+" ", bannerWidth, "=")
		fmt.Fprintf(&b, "%s%s%s%s\n\n", lead, f.palette.Color(util.ColorCyan), title, f.palette.Reset())

		for _, c := range pass.Chapters {
			f.writeChapter(&b, c)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *SummaryFormatter) writeChapter(b *strings.Builder, c ChapterSummary) {
	p := f.palette

	// An open-ended chapter counts as zero seconds
	fmt.Fprintf(b, "%s%s seconds in total %s# %s%s\n",
		p.Color(util.ColorGrey),
		util.PadLeft(util.FormatSeconds(c.Duration), totalColumn),
		p.Color(util.ColorCyan),
		p.Reset(),
		c.Name)

	for _, o := range c.Offenders {
		fmt.Fprintf(b, "%s%s seconds %s  %s%s\n",
			p.Color(display.BandColor(f.thresholds.Classify(o.Duration))),
			util.PadLeft(util.FormatSeconds(o.Duration), offenderColumn),
			p.Color(util.ColorCyan),
			p.Reset(),
			o.Line)
	}
	if len(c.Offenders) == 0 {
		fmt.Fprintf(b, "%s%s%s\n%s",
			p.Color(util.ColorGrey),
			strings.Repeat(" ", offenderColumn),
			noEventsText,
			p.Reset())
	}
	b.WriteString("\n")
}
