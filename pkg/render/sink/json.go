package sink

import (
	"encoding/json"

	"github.com/matzehuels/slidefit/pkg/flow"
	"github.com/matzehuels/slidefit/pkg/observability"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	mode    string
	passID  string
	records []observability.SlideRecord
	compact bool
}

// WithJSONMode records the flow model ("screen" or "print") the snapshots
// were taken in.
func WithJSONMode(m string) JSONOption { return func(r *jsonRenderer) { r.mode = m } }

// WithJSONRecords attaches the fitting records of the pass. The pass ID is
// taken from the first record.
func WithJSONRecords(recs []observability.SlideRecord) JSONOption {
	return func(r *jsonRenderer) {
		r.records = recs
		if len(recs) > 0 {
			r.passID = recs[0].PassID
		}
	}
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Mode    string                      `json:"mode,omitempty"`
	PassID  string                      `json:"pass_id,omitempty"`
	Summary Summary                     `json:"summary"`
	Slides  []flow.SlideSnapshot        `json:"slides"`
	Records []observability.SlideRecord `json:"records,omitempty"`
}

// Summary counts what needs attention in a set of snapshots.
type Summary struct {
	Slides      int   `json:"slides"`
	Figures     int   `json:"figures"`
	Overflowing []int `json:"overflowing"`
	OutOfBounds int   `json:"figures_out_of_bounds"`
}

// RenderJSON encodes the snapshots.
func RenderJSON(slides []flow.SlideSnapshot, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{
		Mode:    r.mode,
		PassID:  r.passID,
		Summary: Summarize(slides),
		Slides:  slides,
		Records: r.records,
	}
	if out.Slides == nil {
		out.Slides = []flow.SlideSnapshot{}
	}
	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

// Summarize counts figures and lists slides whose content overflows by more
// than the overflow tolerance.
func Summarize(slides []flow.SlideSnapshot) Summary {
	s := Summary{Slides: len(slides), Overflowing: []int{}}
	for _, sl := range slides {
		s.Figures += len(sl.Figures)
		if sl.Overflow > overflowTolerance {
			s.Overflowing = append(s.Overflowing, sl.Index)
		}
		for _, f := range sl.Figures {
			if !f.InBounds {
				s.OutOfBounds++
			}
		}
	}
	return s
}

const overflowTolerance = 2
