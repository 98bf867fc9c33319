package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-time-diff/internal/core/severity"
	"github.com/penwyp/go-time-diff/internal/util"
)

const (
	resetBanner = "Resetting timer ---------------- "
	deltaWidth  = 7
	totalWidth  = 5
)

// plainIndent lines up untimed lines with the text of annotated ones
var plainIndent = strings.Repeat(" ", 32)

// BandColor maps a severity band to its color sequence
func BandColor(band severity.Band) string {
	switch band {
	case severity.Critical:
		return util.ColorRed
	case severity.Warning:
		return util.ColorOrange
	case severity.Caution:
		return util.ColorYellow
	default:
		return util.ColorGrey
	}
}

// Annotator writes each input line prefixed with its timing. Every call
// writes straight to the underlying writer so output keeps up with input.
type Annotator struct {
	out        io.Writer
	thresholds severity.Thresholds
	palette    util.Palette
}

// NewAnnotator creates an annotator writing to out
func NewAnnotator(out io.Writer, thresholds severity.Thresholds, palette util.Palette) *Annotator {
	return &Annotator{
		out:        out,
		thresholds: thresholds,
		palette:    palette,
	}
}

// Delta writes "+ N seconds =  T seconds line", colored by the gap's band
func (a *Annotator) Delta(lastDiff, chapterDiff time.Duration, line string) error {
	p := a.palette
	_, err := fmt.Fprintf(a.out, "%s%s seconds%s = %s seconds %s%s\n",
		p.Color(BandColor(a.thresholds.Classify(lastDiff))),
		util.PadLeft("+ "+util.FormatSeconds(lastDiff), deltaWidth),
		p.Color(util.ColorGrey),
		util.PadLeft(util.FormatSeconds(chapterDiff), totalWidth),
		p.Reset(),
		line)
	return err
}

// Reset writes the banner for a line that opened a chapter
func (a *Annotator) Reset(line string) error {
	p := a.palette
	_, err := fmt.Fprintf(a.out, "%s%s%s%s\n", p.Color(util.ColorCyan), resetBanner, p.Reset(), line)
	return err
}

// Plain writes a line that has no timestamp
func (a *Annotator) Plain(line string) error {
	_, err := fmt.Fprintf(a.out, "%s%s\n", plainIndent, line)
	return err
}
