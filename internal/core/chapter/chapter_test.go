package chapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUndefinedUntilBothBounds(t *testing.T) {
	c := New("build", 5)

	d, ok := c.Duration()
	assert.False(t, ok)
	assert.Zero(t, d)

	c.SetStart(10 * time.Second)
	_, ok = c.Duration()
	assert.False(t, ok)

	c.SetEnd(25 * time.Second)
	d, ok = c.Duration()
	require.True(t, ok)
	assert.Equal(t, 15*time.Second, d)
}

func TestStartIfUnset(t *testing.T) {
	c := New("build", 5)
	c.StartIfUnset(3 * time.Second)
	c.StartIfUnset(9 * time.Second)

	start, ok := c.Start()
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, start)

	_, ok = c.End()
	assert.False(t, ok)
}

func TestSetLimitTrimsOffenders(t *testing.T) {
	c := New("build", 4)
	c.Consider(3*time.Second, time.Second, 1*time.Second, "c")
	c.Consider(9*time.Second, time.Second, 2*time.Second, "a")
	c.Consider(6*time.Second, time.Second, 3*time.Second, "b")
	c.Consider(2*time.Second, time.Second, 4*time.Second, "d")
	require.Len(t, c.Offenders(), 4)

	c.SetLimit(2)
	assert.Equal(t, 2, c.Limit())
	got := c.Offenders()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Line)
	assert.Equal(t, "b", got[1].Line)
}

func TestSortDelegates(t *testing.T) {
	c := New("build", 4)
	c.Consider(3*time.Second, 0, 1*time.Second, "early")
	c.Consider(9*time.Second, 0, 2*time.Second, "late")

	c.SortByTimestamp()
	assert.Equal(t, "early", c.Offenders()[0].Line)

	c.SortByDuration()
	assert.Equal(t, "late", c.Offenders()[0].Line)
}
