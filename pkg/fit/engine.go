package fit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/slidefit/pkg/deck"
	"github.com/matzehuels/slidefit/pkg/measure"
	"github.com/matzehuels/slidefit/pkg/observability"
)

// Engine runs fit passes against a host through a measurement port. An
// Engine holds no per-pass state; it is not safe for concurrent passes over
// the same host, since passes interleave hint writes and reads.
type Engine struct {
	port     measure.Port
	observer observability.FitObserver
	params   Params
	newID    func() string
}

// Option configures an [Engine].
type Option func(*Engine)

// WithObserver reports slide records to o.
func WithObserver(o observability.FitObserver) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithParams replaces the default constants.
func WithParams(p Params) Option {
	return func(e *Engine) { e.params = p }
}

// WithPassIDs sets the pass ID generator. The default is a random UUID.
func WithPassIDs(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// New returns an engine bound to port.
func New(port measure.Port, opts ...Option) *Engine {
	e := &Engine{
		port:     port,
		observer: observability.NoopFitObserver{},
		params:   DefaultParams(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Params returns the constants in use.
func (e *Engine) Params() Params { return e.params }

// RunScreenFitPass fits every slide for the screen viewport. Residual
// overflow is not an error; it shows up in the observer records.
func (e *Engine) RunScreenFitPass(ctx context.Context, slides []*deck.Slide) {
	pass := observability.PassInfo{ID: e.newID(), Mode: observability.ModeScreen, Slides: len(slides)}
	start := time.Now()
	e.observer.OnPassStart(ctx, pass)
	for _, s := range slides {
		e.observer.OnSlide(ctx, e.fitScreen(pass, s))
	}
	e.observer.OnPassComplete(ctx, pass, time.Since(start))
}

func (e *Engine) fitScreen(pass observability.PassInfo, s *deck.Slide) observability.SlideRecord {
	rec := observability.SlideRecord{
		PassID:  pass.ID,
		Mode:    pass.Mode,
		Index:   s.Index,
		Title:   s.Title,
		IsTitle: s.IsTitle(),
	}

	clearHints(e.port, s.Inner, measure.ScreenHints)
	inner, content := s.Inner, s.Content
	if inner == nil || content == nil || e.port.ClientSize(inner).Height < e.params.MinInnerHeight {
		rec.Outcome = Skipped.String()
		return rec
	}

	rec.Columns = e.chooseGroupColumns(s)
	rec.Groups = len(rec.Columns)

	figures := s.Figures()
	rec.Figures = len(figures)
	switch len(figures) {
	case 0:
		rec.Outcome = NoMedia.String()
	case 1:
		r := e.FitSingle(figures[0], inner, content)
		rec.Outcome = outcomeOf(r.Fits).String()
		rec.MaxHeight = r.MaxHeight
	default:
		r := e.FitMultiple(figures, inner, content, s.IsTitle())
		rec.Outcome = outcomeOf(r.Fits).String()
		rec.Scale = r.Scale
	}

	if sp, ok := e.CenterIfLoneMedia(content, measure.HintSpaceTop, measure.HintSpaceBottom); ok {
		rec.SpaceTop, rec.SpaceBottom = sp.Top, sp.Bottom
	}

	e.measureInto(&rec, inner, content)
	rec.Overflow = e.overflow(inner, content, figures)
	return rec
}

// chooseGroupColumns writes the column hint of every figure group on s and
// returns the counts in document order.
func (e *Engine) chooseGroupColumns(s *deck.Slide) []int {
	var cols []int
	for _, g := range s.Content.Groups() {
		figs := g.Figures()
		if len(figs) < 2 {
			continue
		}
		n := ChooseColumns(figs, s.IsTitle())
		e.port.SetHint(g, measure.HintColumns, float64(n))
		cols = append(cols, n)
	}
	return cols
}

// RunPrintFitPass fits every slide for print. The host must already be in
// print mode; use [Engine.BeginPrint] to manage the mode switch.
func (e *Engine) RunPrintFitPass(ctx context.Context, slides []*deck.Slide) {
	pass := observability.PassInfo{ID: e.newID(), Mode: observability.ModePrint, Slides: len(slides)}
	start := time.Now()
	e.observer.OnPassStart(ctx, pass)
	for _, s := range slides {
		r := e.FitForPrint(s)
		rec := observability.SlideRecord{
			PassID:    pass.ID,
			Mode:      pass.Mode,
			Index:     s.Index,
			Title:     s.Title,
			IsTitle:   s.IsTitle(),
			Figures:   len(s.Figures()),
			Outcome:   r.Outcome.String(),
			Scale:     r.Scale,
			MaxHeight: r.MaxHeight,
			Groups:    len(r.Columns),
			Columns:   r.Columns,
		}
		if s.Content != nil {
			rec.SpaceTop, _ = e.port.Hint(lone(s.Content), measure.HintPrintSpaceTop)
			rec.SpaceBottom, _ = e.port.Hint(lone(s.Content), measure.HintPrintSpaceBottom)
			e.measureInto(&rec, s.Inner, s.Content)
			rec.Overflow = !e.pageFits(s.Content)
		}
		e.observer.OnSlide(ctx, rec)
	}
	e.observer.OnPassComplete(ctx, pass, time.Since(start))
}

// BeginPrint switches host into print mode and fits slides for it. The
// returned release function removes every print hint and switches the host
// back; callers must call it exactly once, typically with defer.
func (e *Engine) BeginPrint(ctx context.Context, host measure.PrintHost, slides []*deck.Slide) (release func()) {
	host.EnterPrint()
	e.RunPrintFitPass(ctx, slides)
	return func() {
		for _, s := range slides {
			clearHints(e.port, s.Inner, measure.PrintHints)
		}
		host.ExitPrint()
	}
}

func (e *Engine) overflow(inner, content *deck.Node, figures []*deck.Node) bool {
	return overflows(e.port, e.params.OverflowTolerance, inner, content, figures)
}

func (e *Engine) measureInto(rec *observability.SlideRecord, inner, content *deck.Node) {
	if inner != nil {
		rec.InnerClientHeight = e.port.ClientSize(inner).Height
		rec.InnerScrollHeight = e.port.ScrollSize(inner).Height
	}
	rec.ContentClientHeight = e.port.ClientSize(content).Height
	rec.ContentScrollHeight = e.port.ScrollSize(content).Height
}

// clearHints removes hints from root and all of its descendants.
func clearHints(p measure.Port, root *deck.Node, hints []measure.Hint) {
	if root == nil {
		return
	}
	root.Walk(func(n *deck.Node) bool {
		for _, h := range hints {
			p.ClearHint(n, h)
		}
		return true
	})
}

// lone returns content's single media block, or content itself so that
// hint lookups on it simply miss.
func lone(content *deck.Node) *deck.Node {
	if b := loneMedia(content); b != nil {
		return b
	}
	return content
}
