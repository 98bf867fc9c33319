package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{
			name:     "zero",
			input:    0,
			expected: "0",
		},
		{
			name:     "whole seconds",
			input:    6 * time.Second,
			expected: "6",
		},
		{
			name:     "rounds down",
			input:    2400 * time.Millisecond,
			expected: "2",
		},
		{
			name:     "rounds up",
			input:    2600 * time.Millisecond,
			expected: "3",
		},
		{
			name:     "minutes",
			input:    2 * time.Minute,
			expected: "120",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSeconds(tt.input))
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{
			name:     "midnight",
			input:    0,
			expected: "00:00:00",
		},
		{
			name:     "afternoon",
			input:    14*time.Hour + 3*time.Minute + 27*time.Second,
			expected: "14:03:27",
		},
		{
			name:     "drops fractions",
			input:    8*time.Second + 900*time.Millisecond,
			expected: "00:00:08",
		},
		{
			name:     "past a day",
			input:    25 * time.Hour,
			expected: "25:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatClock(tt.input))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{
			name:     "seconds only",
			input:    42 * time.Second,
			expected: "42s",
		},
		{
			name:     "minutes and seconds",
			input:    3*time.Minute + 5*time.Second,
			expected: "3m 5s",
		},
		{
			name:     "hours and minutes",
			input:    2*time.Hour + 30*time.Minute + 10*time.Second,
			expected: "2h 30m",
		},
		{
			name:     "zero",
			input:    0,
			expected: "0s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.input))
		})
	}
}
