package offender

import (
	"sort"
	"time"
)

// Offender records a slow gap: how long it lasted, when it ended and the
// line that preceded it.
type Offender struct {
	Duration  time.Duration
	Timestamp time.Duration
	Line      string
}

// Order is the current ordering of a tracker's offenders
type Order int

const (
	ByDuration Order = iota
	ByTimestamp
)

// Tracker keeps the slowest offenders seen so far, capped at a limit.
// Membership is always the limit largest durations; ties keep discovery
// order, so among equal durations the newest is evicted first.
type Tracker struct {
	limit     int
	order     Order
	offenders []Offender
}

// NewTracker creates a tracker retaining at most limit offenders
func NewTracker(limit int) *Tracker {
	if limit < 0 {
		limit = 0
	}
	return &Tracker{
		limit:     limit,
		order:     ByDuration,
		offenders: make([]Offender, 0, limit),
	}
}

// Consider offers an observation to the tracker. Durations at or below
// minimum are ignored.
func (t *Tracker) Consider(duration, minimum, timestamp time.Duration, line string) bool {
	if duration <= minimum {
		return false
	}
	if t.order != ByDuration {
		t.SortByDuration()
	}
	if len(t.offenders) >= t.limit && !t.beatsWeakest(duration) {
		return false
	}

	t.offenders = append(t.offenders, Offender{
		Duration:  duration,
		Timestamp: timestamp,
		Line:      line,
	})
	t.SortByDuration()
	t.trim()
	return true
}

func (t *Tracker) beatsWeakest(duration time.Duration) bool {
	if len(t.offenders) == 0 {
		return false
	}
	return duration > t.offenders[len(t.offenders)-1].Duration
}

// SortByDuration orders offenders slowest first
func (t *Tracker) SortByDuration() {
	sort.SliceStable(t.offenders, func(i, j int) bool {
		return t.offenders[i].Duration > t.offenders[j].Duration
	})
	t.order = ByDuration
}

// SortByTimestamp orders offenders earliest first
func (t *Tracker) SortByTimestamp() {
	sort.SliceStable(t.offenders, func(i, j int) bool {
		return t.offenders[i].Timestamp < t.offenders[j].Timestamp
	})
	t.order = ByTimestamp
}

// SetLimit changes the capacity and drops the fastest offenders beyond it
func (t *Tracker) SetLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	t.limit = limit
	if len(t.offenders) > limit {
		t.SortByDuration()
		t.trim()
	}
}

func (t *Tracker) trim() {
	if len(t.offenders) > t.limit {
		t.offenders = t.offenders[:t.limit]
	}
}

// Limit returns the capacity
func (t *Tracker) Limit() int { return t.limit }

// Len returns the number of retained offenders
func (t *Tracker) Len() int { return len(t.offenders) }

// Order returns the current ordering
func (t *Tracker) Order() Order { return t.order }

// Offenders returns a copy of the retained offenders in the current order
func (t *Tracker) Offenders() []Offender {
	out := make([]Offender, len(t.offenders))
	copy(out, t.offenders)
	return out
}
