package segment

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-time-diff/internal/core/chapter"
	"github.com/penwyp/go-time-diff/internal/core/clock"
	"github.com/penwyp/go-time-diff/internal/core/severity"
	"github.com/penwyp/go-time-diff/internal/util"
)

// Matcher reports whether a line is a reset mark. *regexp.Regexp satisfies it.
type Matcher interface {
	MatchString(s string) bool
}

type noMatch struct{}

func (noMatch) MatchString(string) bool { return false }

// LineRenderer writes each processed line as it arrives
type LineRenderer interface {
	// Delta writes a line annotated with the gap since the previous line
	// and the time elapsed in the current chapter.
	Delta(lastDiff, chapterDiff time.Duration, line string) error
	// Reset writes a line that opened a new chapter
	Reset(line string) error
	// Plain writes a line without timing information
	Plain(line string) error
}

// Config wires the engine's collaborators
type Config struct {
	Source       clock.Source
	Matcher      Matcher
	Thresholds   severity.Thresholds
	SummaryLimit int
	Renderer     LineRenderer
}

// Stats counts what the engine has seen
type Stats struct {
	Lines   int
	Resets  int
	Untimed int
	Tracked int
}

// Engine splits the input into chapters and records the slowest lines of
// each chapter and of the whole run.
type Engine struct {
	source     clock.Source
	matcher    Matcher
	thresholds severity.Thresholds
	limit      int
	renderer   LineRenderer

	current    *chapter.Chapter
	everything *chapter.Chapter
	chapters   []*chapter.Chapter

	now      time.Duration
	hasNow   bool
	prev     time.Duration
	hasPrev  bool
	prevLine string
	hasLine  bool

	stats Stats
}

// NewEngine creates an engine positioned in the implicit first chapter
func NewEngine(cfg Config) *Engine {
	matcher := cfg.Matcher
	if matcher == nil {
		matcher = noMatch{}
	}
	first := chapter.New(chapter.FirstName, cfg.SummaryLimit)
	return &Engine{
		source:     cfg.Source,
		matcher:    matcher,
		thresholds: cfg.Thresholds,
		limit:      cfg.SummaryLimit,
		renderer:   cfg.Renderer,
		current:    first,
		everything: chapter.New(chapter.EverythingName, cfg.SummaryLimit),
		chapters:   []*chapter.Chapter{first},
	}
}

// Process handles one input line, without its trailing newline
func (e *Engine) Process(line string) error {
	e.stats.Lines++

	now, timed := e.source.Next(line)
	if timed {
		e.now, e.hasNow = now, true
	} else {
		e.stats.Untimed++
	}
	if e.hasNow {
		e.current.StartIfUnset(e.now)
		e.everything.StartIfUnset(e.now)
	}

	var err error
	switch {
	case e.matcher.MatchString(line):
		err = e.reset(line)
	case timed:
		err = e.delta(line)
	default:
		err = e.renderer.Plain(line)
	}

	if timed {
		e.prev, e.hasPrev = now, true
	}
	e.prevLine, e.hasLine = line, true
	return err
}

func (e *Engine) reset(line string) error {
	e.stats.Resets++
	if e.hasNow {
		e.current.SetEnd(e.now)
	}
	e.current = chapter.New(line, e.limit)
	e.chapters = append(e.chapters, e.current)
	if e.hasNow {
		e.current.SetStart(e.now)
	}
	util.LogDebugf("Chapter %d opened at %s: %s", len(e.chapters), e.now, line)
	return e.renderer.Reset(line)
}

func (e *Engine) delta(line string) error {
	var lastDiff time.Duration
	if e.hasPrev {
		lastDiff = e.now - e.prev
	}
	start, _ := e.current.Start()
	chapterDiff := e.now - start

	if err := e.renderer.Delta(lastDiff, chapterDiff, line); err != nil {
		return err
	}

	if e.hasLine {
		minimum := e.thresholds.LowDuration()
		if e.current.Consider(lastDiff, minimum, e.now, e.prevLine) {
			e.stats.Tracked++
		}
		e.everything.Consider(lastDiff, minimum, e.now, e.prevLine)
	}
	return nil
}

// Finish closes the open chapters and returns the chapters to summarize:
// every chapter in input order followed by the whole-run chapter. When no
// reset mark ever matched, the implicit first chapter duplicates the
// whole-run chapter and is left out.
func (e *Engine) Finish() []*chapter.Chapter {
	if e.hasNow {
		e.current.SetEnd(e.now)
		e.everything.SetEnd(e.now)
	}

	chapters := make([]*chapter.Chapter, 0, len(e.chapters)+1)
	if len(e.chapters) > 1 {
		chapters = append(chapters, e.chapters...)
	}
	return append(chapters, e.everything)
}

// Run processes r line by line until EOF or until ctx is done, then
// returns the result of Finish.
func (e *Engine) Run(ctx context.Context, r io.Reader) ([]*chapter.Chapter, error) {
	reader := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			util.LogDebugf("Input interrupted: %v", err)
			break
		}

		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if perr := e.Process(trimNewline(line)); perr != nil {
				return nil, fmt.Errorf("write line %d: %w", e.stats.Lines, perr)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
	}

	util.LogInfof("Processed %d lines: %d chapters, %d untimed, %d tracked",
		e.stats.Lines, e.stats.Resets+1, e.stats.Untimed, e.stats.Tracked)
	return e.Finish(), nil
}

// Stats returns the counters collected so far
func (e *Engine) Stats() Stats { return e.stats }

func trimNewline(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
