package fit

// Outcome classifies how a slide ended up after a pass.
type Outcome int

const (
	// Converged means the slide fits with the chosen parameters.
	Converged Outcome = iota
	// FloorAccepted means the slide still overflows at the lowest allowed
	// size. The floor is left applied.
	FloorAccepted
	// FixedContentOverflow means the non-media content alone overflows the
	// print page, so no media scaling is attempted.
	FixedContentOverflow
	// Skipped means the slide's geometry was unusable.
	Skipped
	// NoMedia means there was nothing to scale.
	NoMedia
)

func (o Outcome) String() string {
	switch o {
	case Converged:
		return "converged"
	case FloorAccepted:
		return "floor-accepted"
	case FixedContentOverflow:
		return "fixed-content-overflow"
	case Skipped:
		return "skipped"
	case NoMedia:
		return "no-media"
	}
	return "unknown"
}

// FitResult is the outcome of a uniform scale search.
type FitResult struct {
	Scale float64
	Fits  bool
}

// SingleResult is the outcome of fitting a lone figure.
type SingleResult struct {
	// MaxHeight is the image height cap left applied, in pixels.
	MaxHeight float64
	Fits      bool
	// Searched reports whether the initial cap overflowed and a search ran.
	Searched bool
}

// PrintResult is the outcome of fitting one slide for print.
type PrintResult struct {
	Outcome   Outcome
	Scale     float64
	MaxHeight float64
	Columns   []int // per figure group
}

func outcomeOf(fits bool) Outcome {
	if fits {
		return Converged
	}
	return FloorAccepted
}
