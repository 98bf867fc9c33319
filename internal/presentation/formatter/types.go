package formatter

import (
	"time"

	"github.com/penwyp/go-time-diff/internal/core/chapter"
	"github.com/penwyp/go-time-diff/internal/core/offender"
)

// Pass names, in the order they are rendered
const (
	PassTimestamp = "timestamp"
	PassDuration  = "duration"
)

// Pass is one rendering of every chapter with offenders in a given order
type Pass struct {
	Order    string
	Chapters []ChapterSummary
}

// ChapterSummary is a snapshot of a chapter for rendering
type ChapterSummary struct {
	Name      string
	Duration  time.Duration
	Complete  bool
	Offenders []offender.Offender
}

// BuildPasses sorts every chapter by timestamp and then by duration,
// taking a snapshot after each ordering. The chapters are left sorted by
// duration.
func BuildPasses(chapters []*chapter.Chapter) []Pass {
	return []Pass{
		buildPass(PassTimestamp, chapters, (*chapter.Chapter).SortByTimestamp),
		buildPass(PassDuration, chapters, (*chapter.Chapter).SortByDuration),
	}
}

func buildPass(order string, chapters []*chapter.Chapter, sortFn func(*chapter.Chapter)) Pass {
	pass := Pass{Order: order, Chapters: make([]ChapterSummary, 0, len(chapters))}
	for _, c := range chapters {
		sortFn(c)
		d, ok := c.Duration()
		pass.Chapters = append(pass.Chapters, ChapterSummary{
			Name:      c.Name,
			Duration:  d,
			Complete:  ok,
			Offenders: c.Offenders(),
		})
	}
	return pass
}
