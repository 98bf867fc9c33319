package offender

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func durations(offenders []Offender) []time.Duration {
	out := make([]time.Duration, len(offenders))
	for i, o := range offenders {
		out[i] = o.Duration
	}
	return out
}

func TestNewTracker(t *testing.T) {
	tr := NewTracker(3)
	assert.Equal(t, 3, tr.Limit())
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, ByDuration, tr.Order())

	assert.Equal(t, 0, NewTracker(-5).Limit())
}

func TestConsiderIgnoresFastLines(t *testing.T) {
	tr := NewTracker(5)

	assert.False(t, tr.Consider(time.Second, time.Second, 0, "equal to minimum"))
	assert.False(t, tr.Consider(500*time.Millisecond, time.Second, 0, "below minimum"))
	assert.Equal(t, 0, tr.Len())

	assert.True(t, tr.Consider(1001*time.Millisecond, time.Second, 0, "just above"))
	assert.Equal(t, 1, tr.Len())
}

func TestConsiderKeepsLargest(t *testing.T) {
	tr := NewTracker(3)

	for i, d := range []int{4, 2, 9, 7, 3, 8} {
		tr.Consider(time.Duration(d)*time.Second, 0, time.Duration(i)*time.Second, "line")
	}

	assert.Equal(t, []time.Duration{9 * time.Second, 8 * time.Second, 7 * time.Second}, durations(tr.Offenders()))
}

func TestConsiderRejectsWhenFullAndNotSlower(t *testing.T) {
	tr := NewTracker(2)
	require.True(t, tr.Consider(5*time.Second, 0, 0, "a"))
	require.True(t, tr.Consider(3*time.Second, 0, 1, "b"))

	assert.False(t, tr.Consider(3*time.Second, 0, 2, "tie with weakest"))
	assert.False(t, tr.Consider(2*time.Second, 0, 3, "slower than nothing"))
	assert.True(t, tr.Consider(4*time.Second, 0, 4, "c"))

	got := tr.Offenders()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Line)
	assert.Equal(t, "c", got[1].Line)
}

func TestTiesKeepDiscoveryOrder(t *testing.T) {
	tr := NewTracker(3)
	tr.Consider(2*time.Second, 0, 10, "first")
	tr.Consider(2*time.Second, 0, 20, "second")
	tr.Consider(5*time.Second, 0, 30, "big")
	tr.Consider(2*time.Second, 0, 40, "third")

	want := []Offender{
		{Duration: 5 * time.Second, Timestamp: 30, Line: "big"},
		{Duration: 2 * time.Second, Timestamp: 10, Line: "first"},
		{Duration: 2 * time.Second, Timestamp: 20, Line: "second"},
	}
	if diff := cmp.Diff(want, tr.Offenders()); diff != "" {
		t.Errorf("offenders mismatch (-want +got):\n%s", diff)
	}
}

func TestConsiderMatchesTopK(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	minimum := 3 * time.Second

	for _, limit := range []int{0, 1, 3, 10, 50} {
		tr := NewTracker(limit)
		var qualifying []time.Duration
		for i := 0; i < 200; i++ {
			d := time.Duration(rng.Intn(20_000)) * time.Millisecond
			tr.Consider(d, minimum, time.Duration(i), "line")
			if d > minimum {
				qualifying = append(qualifying, d)
			}
		}

		sort.Slice(qualifying, func(i, j int) bool { return qualifying[i] > qualifying[j] })
		want := qualifying
		if len(want) > limit {
			want = want[:limit]
		}

		assert.Equal(t, len(want), tr.Len(), "limit %d", limit)
		assert.Equal(t, want, durations(tr.Offenders()), "limit %d", limit)
	}
}

func TestSortingKeepsMembership(t *testing.T) {
	tr := NewTracker(4)
	tr.Consider(3*time.Second, 0, 30*time.Second, "c")
	tr.Consider(9*time.Second, 0, 10*time.Second, "a")
	tr.Consider(6*time.Second, 0, 20*time.Second, "b")

	tr.SortByTimestamp()
	assert.Equal(t, ByTimestamp, tr.Order())
	byTime := tr.Offenders()
	require.Len(t, byTime, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{byTime[0].Line, byTime[1].Line, byTime[2].Line})

	tr.SortByDuration()
	byDuration := tr.Offenders()
	assert.Equal(t, []string{"a", "b", "c"}, []string{byDuration[0].Line, byDuration[1].Line, byDuration[2].Line})
	assert.ElementsMatch(t, byTime, byDuration)
	assert.Equal(t, 4, tr.Limit())
}

func TestConsiderAfterTimestampSort(t *testing.T) {
	tr := NewTracker(2)
	tr.Consider(9*time.Second, 0, 1, "early slow")
	tr.Consider(2*time.Second, 0, 2, "late fast")
	tr.SortByTimestamp()

	// The weakest entry must be found even though the slice is in time order
	assert.True(t, tr.Consider(5*time.Second, 0, 3, "new"))
	assert.Equal(t, []time.Duration{9 * time.Second, 5 * time.Second}, durations(tr.Offenders()))
	assert.Equal(t, ByDuration, tr.Order())
}

func TestSetLimit(t *testing.T) {
	tr := NewTracker(5)
	for i, d := range []int{2, 8, 4, 6, 10} {
		tr.Consider(time.Duration(d)*time.Second, 0, time.Duration(i), "line")
	}
	tr.SortByTimestamp()

	tr.SetLimit(2)
	assert.Equal(t, 2, tr.Limit())
	assert.Equal(t, []time.Duration{10 * time.Second, 8 * time.Second}, durations(tr.Offenders()))

	tr.SetLimit(10)
	assert.Equal(t, 2, tr.Len())

	tr.SetLimit(-1)
	assert.Equal(t, 0, tr.Limit())
	assert.Equal(t, 0, tr.Len())
}

func TestOffendersReturnsCopy(t *testing.T) {
	tr := NewTracker(2)
	tr.Consider(5*time.Second, 0, 0, "original")

	got := tr.Offenders()
	got[0].Line = "mutated"

	assert.Equal(t, "original", tr.Offenders()[0].Line)
}
