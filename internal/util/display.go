package util

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Terminal color sequences
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[38;5;160m"
	ColorOrange = "\033[38;5;202m"
	ColorYellow = "\033[38;5;220m"
	ColorGreen  = "\033[0;32m"
	ColorCyan   = "\033[0;36m"
	ColorGrey   = "\033[38;5;237m"
)

// ColorMode controls when output is colored
type ColorMode string

const (
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
	ColorAuto   ColorMode = "auto"
)

// Palette hands out color sequences, or empty strings when disabled
type Palette struct {
	enabled bool
}

// NewPalette creates a palette that colors when enabled is true
func NewPalette(enabled bool) Palette {
	return Palette{enabled: enabled}
}

// PaletteFor resolves a color mode against the given output file
func PaletteFor(mode ColorMode, out *os.File) Palette {
	switch mode {
	case ColorNever:
		return NewPalette(false)
	case ColorAuto:
		return NewPalette(out != nil && term.IsTerminal(int(out.Fd())))
	default:
		return NewPalette(true)
	}
}

// Enabled reports whether the palette emits color
func (p Palette) Enabled() bool { return p.enabled }

// Color returns code when enabled
func (p Palette) Color(code string) string {
	if !p.enabled {
		return ""
	}
	return code
}

// Reset returns the reset sequence when enabled
func (p Palette) Reset() string { return p.Color(ColorReset) }

// GetDisplayWidth calculates the display width of a string, accounting for wide characters
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadLeft right-aligns s in a field of width display columns
func PadLeft(s string, width int) string {
	actual := GetDisplayWidth(s)
	if actual >= width {
		return s
	}
	return strings.Repeat(" ", width-actual) + s
}

// CenterText centers text within the given width, filling both sides with fill
func CenterText(text string, width int, fill string) string {
	textWidth := GetDisplayWidth(text)
	if textWidth >= width || fill == "" {
		return text
	}
	left := (width - textWidth) / 2
	right := width - textWidth - left
	return strings.Repeat(fill, left) + text + strings.Repeat(fill, right)
}
