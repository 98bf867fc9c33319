// Package ansi provides helpers for asserting on colored terminal output.
package ansi

import (
	"regexp"
	"strings"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// Strip removes all ANSI escape codes from a string
func Strip(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// Lines strips escape codes and splits the output into lines, dropping the
// empty element after a trailing newline.
func Lines(s string) []string {
	stripped := Strip(s)
	stripped = strings.TrimSuffix(stripped, "\n")
	if stripped == "" {
		return nil
	}
	return strings.Split(stripped, "\n")
}

// Contains reports whether the stripped output contains substr
func Contains(s, substr string) bool {
	return strings.Contains(Strip(s), substr)
}
