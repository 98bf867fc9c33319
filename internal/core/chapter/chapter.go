package chapter

import (
	"time"

	"github.com/penwyp/go-time-diff/internal/core/offender"
)

// Names of the chapters created implicitly
const (
	FirstName      = "First chapter"
	EverythingName = "Everything"
)

// Chapter is a section of the input between two reset marks, with its own
// time bounds and slowest lines.
type Chapter struct {
	Name string

	start    time.Duration
	end      time.Duration
	hasStart bool
	hasEnd   bool

	tracker *offender.Tracker
}

// New creates an empty chapter retaining at most limit offenders
func New(name string, limit int) *Chapter {
	return &Chapter{
		Name:    name,
		tracker: offender.NewTracker(limit),
	}
}

// Start returns the start time, if set
func (c *Chapter) Start() (time.Duration, bool) { return c.start, c.hasStart }

// End returns the end time, if set
func (c *Chapter) End() (time.Duration, bool) { return c.end, c.hasEnd }

// SetStart sets the start time
func (c *Chapter) SetStart(t time.Duration) {
	c.start = t
	c.hasStart = true
}

// StartIfUnset sets the start time unless one is already present
func (c *Chapter) StartIfUnset(t time.Duration) {
	if !c.hasStart {
		c.SetStart(t)
	}
}

// SetEnd sets the end time
func (c *Chapter) SetEnd(t time.Duration) {
	c.end = t
	c.hasEnd = true
}

// Duration returns end - start. It is undefined until both bounds are set.
func (c *Chapter) Duration() (time.Duration, bool) {
	if !c.hasStart || !c.hasEnd {
		return 0, false
	}
	return c.end - c.start, true
}

// Consider forwards a slow-line observation to the chapter's tracker
func (c *Chapter) Consider(duration, minimum, timestamp time.Duration, line string) bool {
	return c.tracker.Consider(duration, minimum, timestamp, line)
}

// Limit returns the offender capacity
func (c *Chapter) Limit() int { return c.tracker.Limit() }

// SetLimit changes the offender capacity, trimming immediately
func (c *Chapter) SetLimit(limit int) { c.tracker.SetLimit(limit) }

// SortByTimestamp orders the offenders earliest first
func (c *Chapter) SortByTimestamp() { c.tracker.SortByTimestamp() }

// SortByDuration orders the offenders slowest first
func (c *Chapter) SortByDuration() { c.tracker.SortByDuration() }

// Offenders returns the retained offenders in the current order
func (c *Chapter) Offenders() []offender.Offender { return c.tracker.Offenders() }
