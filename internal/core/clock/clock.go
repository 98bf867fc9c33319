package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp is a point in time measured from the origin of its Source.
// Differences between two timestamps of the same source are durations.
type Timestamp = time.Duration

// Source produces the timestamp of an input line
type Source interface {
	// Next returns the timestamp for line, or false when none is available
	Next(line string) (Timestamp, bool)
}

// Mode selects how timestamps are obtained
type Mode string

const (
	ModeLive     Mode = "live"
	ModeFastlane Mode = "fastlane"
)

// ParseMode parses a mode name, ignoring case
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLive:
		return ModeLive, nil
	case ModeFastlane:
		return ModeFastlane, nil
	default:
		return "", fmt.Errorf("invalid diff mode %q (valid: live, fastlane)", s)
	}
}

// New returns the source for mode
func New(mode Mode) (Source, error) {
	switch mode {
	case ModeLive:
		return NewLive(time.Now), nil
	case ModeFastlane:
		return NewFastlane(), nil
	default:
		return nil, fmt.Errorf("unsupported diff mode %q", mode)
	}
}

// Live stamps every line with its wall-clock arrival time
type Live struct {
	now    func() time.Time
	origin time.Time
}

// NewLive creates a live source whose origin is the current time of now
func NewLive(now func() time.Time) *Live {
	return &Live{now: now, origin: now()}
}

// Next ignores the line and returns the time elapsed since the origin
func (l *Live) Next(string) (Timestamp, bool) {
	return l.now().Sub(l.origin), true
}

// Fastlane reads the HH:MM:SS clock fastlane prints at the start of each
// line, e.g. "[14:03:27]: Step: build".
type Fastlane struct {
	offset int
	width  int
}

// NewFastlane creates a source reading the clock at column 1
func NewFastlane() *Fastlane {
	return &Fastlane{offset: 1, width: 8}
}

// Next parses the embedded clock. Day wraparound is not handled.
func (f *Fastlane) Next(line string) (Timestamp, bool) {
	if len(line) <= f.offset {
		return 0, false
	}
	end := f.offset + f.width
	if end > len(line) {
		end = len(line)
	}
	return ParseClock(line[f.offset:end])
}

// ParseClock parses "H:M:S" into seconds + minutes*60 + hours*3600
func ParseClock(s string) (Timestamp, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, false
	}

	var values [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 {
			return 0, false
		}
		values[i] = v
	}

	hours, minutes, seconds := values[0], values[1], values[2]
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second, true
}
