package severity

import (
	"fmt"
	"time"
)

// Band classifies how slow a duration is
type Band int

const (
	Neutral Band = iota
	Caution
	Warning
	Critical
)

// String returns the lowercase band name
func (b Band) String() string {
	switch b {
	case Neutral:
		return "neutral"
	case Caution:
		return "caution"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Default thresholds in whole seconds
const (
	DefaultLow    = 1
	DefaultMedium = 5
	DefaultHigh   = 10
)

// Thresholds holds the lower bounds, in whole seconds, of the caution,
// warning and critical bands.
type Thresholds struct {
	Low    int
	Medium int
	High   int
}

// DefaultThresholds returns the 1/5/10 second thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{Low: DefaultLow, Medium: DefaultMedium, High: DefaultHigh}
}

// Validate checks that the thresholds are non-negative and ordered
func (t Thresholds) Validate() error {
	if t.Low < 0 || t.Medium < 0 || t.High < 0 {
		return fmt.Errorf("thresholds must be >= 0 (low=%d medium=%d high=%d)", t.Low, t.Medium, t.High)
	}
	if t.Low > t.Medium || t.Medium > t.High {
		return fmt.Errorf("thresholds must satisfy low <= medium <= high (low=%d medium=%d high=%d)", t.Low, t.Medium, t.High)
	}
	return nil
}

// Classify returns the band for d. The duration is truncated to whole
// seconds before comparison; each band includes its lower bound.
func (t Thresholds) Classify(d time.Duration) Band {
	seconds := int(d / time.Second)
	switch {
	case seconds >= t.High:
		return Critical
	case seconds >= t.Medium:
		return Warning
	case seconds >= t.Low:
		return Caution
	default:
		return Neutral
	}
}

// LowDuration returns the low threshold as a duration. Offenders must be
// strictly slower than this to be tracked.
func (t Thresholds) LowDuration() time.Duration {
	return time.Duration(t.Low) * time.Second
}
