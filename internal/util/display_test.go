package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPalette(t *testing.T) {
	on := NewPalette(true)
	assert.True(t, on.Enabled())
	assert.Equal(t, ColorRed, on.Color(ColorRed))
	assert.Equal(t, ColorReset, on.Reset())

	off := NewPalette(false)
	assert.False(t, off.Enabled())
	assert.Empty(t, off.Color(ColorRed))
	assert.Empty(t, off.Reset())
}

func TestPaletteFor(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, PaletteFor(ColorAlways, f).Enabled())
	assert.False(t, PaletteFor(ColorNever, f).Enabled())
	// A regular file is not a terminal
	assert.False(t, PaletteFor(ColorAuto, f).Enabled())
	assert.False(t, PaletteFor(ColorAuto, nil).Enabled())
}

func TestPadLeft(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{name: "pads", input: "+ 6", width: 7, expected: "    + 6"},
		{name: "exact", input: "12345", width: 5, expected: "12345"},
		{name: "too long", input: "123456", width: 5, expected: "123456"},
		{name: "wide runes", input: "时间", width: 6, expected: "  时间"},
		{name: "empty", input: "", width: 3, expected: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PadLeft(tt.input, tt.width))
		})
	}
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "== ab ===", CenterText(" ab ", 9, "="))
	assert.Equal(t, "toolong", CenterText("toolong", 3, "="))
	assert.Equal(t, "x", CenterText("x", 5, ""))
}
