package observability

import (
	"context"
	"sync"
	"time"
)

// Pass modes reported in [PassInfo] and [SlideRecord].
const (
	ModeScreen = "screen"
	ModePrint  = "print"
)

// PassInfo identifies one fit pass over a deck.
type PassInfo struct {
	ID     string `json:"id"`
	Mode   string `json:"mode"`
	Slides int    `json:"slides"`
}

// SlideRecord is the structured outcome of fitting one slide in one pass.
type SlideRecord struct {
	PassID  string `json:"pass_id"`
	Mode    string `json:"mode"`
	Index   int    `json:"index"`
	Title   string `json:"title"`
	IsTitle bool   `json:"is_title,omitempty"`

	Figures int   `json:"figures"`
	Groups  int   `json:"groups,omitempty"`
	Columns []int `json:"columns,omitempty"`

	// Outcome is one of converged, floor-accepted, fixed-content-overflow,
	// skipped or no-media.
	Outcome     string  `json:"outcome"`
	Scale       float64 `json:"scale,omitempty"`
	MaxHeight   float64 `json:"max_height,omitempty"`
	SpaceTop    float64 `json:"space_top,omitempty"`
	SpaceBottom float64 `json:"space_bottom,omitempty"`

	InnerClientHeight   float64 `json:"inner_client_height"`
	InnerScrollHeight   float64 `json:"inner_scroll_height"`
	ContentClientHeight float64 `json:"content_client_height"`
	ContentScrollHeight float64 `json:"content_scroll_height"`
	Overflow            bool    `json:"overflow"`
}

// FitObserver receives fit pass events. It is injected into an engine
// rather than registered globally, so concurrent engines can report to
// different sinks.
type FitObserver interface {
	OnPassStart(ctx context.Context, pass PassInfo)
	OnSlide(ctx context.Context, rec SlideRecord)
	OnPassComplete(ctx context.Context, pass PassInfo, duration time.Duration)
}

// NoopFitObserver ignores every event.
type NoopFitObserver struct{}

func (NoopFitObserver) OnPassStart(context.Context, PassInfo)                   {}
func (NoopFitObserver) OnSlide(context.Context, SlideRecord)                    {}
func (NoopFitObserver) OnPassComplete(context.Context, PassInfo, time.Duration) {}

// Recorder keeps every slide record it receives. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	passes  []PassInfo
	records []SlideRecord
}

func (r *Recorder) OnPassStart(_ context.Context, pass PassInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passes = append(r.passes, pass)
}

func (r *Recorder) OnSlide(_ context.Context, rec SlideRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

func (r *Recorder) OnPassComplete(context.Context, PassInfo, time.Duration) {}

// Records returns a copy of the records received so far.
func (r *Recorder) Records() []SlideRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SlideRecord(nil), r.records...)
}

// Passes returns a copy of the passes started so far.
func (r *Recorder) Passes() []PassInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]PassInfo(nil), r.passes...)
}

// Last returns the records of the most recent pass with the given mode.
func (r *Recorder) Last(mode string) []SlideRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var id string
	for i := len(r.passes) - 1; i >= 0; i-- {
		if r.passes[i].Mode == mode {
			id = r.passes[i].ID
			break
		}
	}
	var out []SlideRecord
	for _, rec := range r.records {
		if id != "" && rec.PassID == id {
			out = append(out, rec)
		}
	}
	return out
}

// Reset drops everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passes = nil
	r.records = nil
}

// MultiObserver fans events out to several observers.
type MultiObserver []FitObserver

func (m MultiObserver) OnPassStart(ctx context.Context, pass PassInfo) {
	for _, o := range m {
		o.OnPassStart(ctx, pass)
	}
}

func (m MultiObserver) OnSlide(ctx context.Context, rec SlideRecord) {
	for _, o := range m {
		o.OnSlide(ctx, rec)
	}
}

func (m MultiObserver) OnPassComplete(ctx context.Context, pass PassInfo, d time.Duration) {
	for _, o := range m {
		o.OnPassComplete(ctx, pass, d)
	}
}
