package formatter

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-time-diff/internal/core/chapter"
	"github.com/penwyp/go-time-diff/internal/core/severity"
)

type jsonReport struct {
	Summaries []jsonPass `json:"summaries"`
}

type jsonPass struct {
	Order    string        `json:"order"`
	Chapters []jsonChapter `json:"chapters"`
}

type jsonChapter struct {
	Name            string         `json:"name"`
	DurationSeconds float64        `json:"duration_seconds"`
	Complete        bool           `json:"complete"`
	Offenders       []jsonOffender `json:"offenders"`
}

type jsonOffender struct {
	DurationSeconds  float64 `json:"duration_seconds"`
	TimestampSeconds float64 `json:"timestamp_seconds"`
	Severity         string  `json:"severity"`
	Line             string  `json:"line"`
}

// JSONFormatter writes the summary passes as an indented JSON document
type JSONFormatter struct {
	thresholds severity.Thresholds
}

func NewJSONFormatter(thresholds severity.Thresholds) *JSONFormatter {
	return &JSONFormatter{thresholds: thresholds}
}

func (f *JSONFormatter) Format(w io.Writer, chapters []*chapter.Chapter) error {
	report := jsonReport{Summaries: make([]jsonPass, 0, 2)}
	for _, pass := range BuildPasses(chapters) {
		jp := jsonPass{Order: pass.Order, Chapters: make([]jsonChapter, 0, len(pass.Chapters))}
		for _, c := range pass.Chapters {
			jc := jsonChapter{
				Name:            c.Name,
				DurationSeconds: c.Duration.Seconds(),
				Complete:        c.Complete,
				Offenders:       make([]jsonOffender, 0, len(c.Offenders)),
			}
			for _, o := range c.Offenders {
				jc.Offenders = append(jc.Offenders, jsonOffender{
					DurationSeconds:  o.Duration.Seconds(),
					TimestampSeconds: o.Timestamp.Seconds(),
					Severity:         f.thresholds.Classify(o.Duration).String(),
					Line:             o.Line,
				})
			}
			jp.Chapters = append(jp.Chapters, jc)
		}
		report.Summaries = append(report.Summaries, jp)
	}

	data, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
