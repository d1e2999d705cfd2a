package fit

import "github.com/matzehuels/slidefit/pkg/errors"

// Params holds every tunable constant of the engine. The zero value is not
// usable; start from [DefaultParams].
type Params struct {
	// OverflowTolerance is the slack, in pixels, before scroll or figure
	// geometry counts as overflow.
	OverflowTolerance float64 `toml:"overflow_tolerance" json:"overflow_tolerance"`
	// MinInnerHeight is the smallest inner container height worth fitting.
	MinInnerHeight float64 `toml:"min_inner_height" json:"min_inner_height"`

	Single SingleParams `toml:"single" json:"single"`
	Multi  MultiParams  `toml:"multi" json:"multi"`
	Center CenterParams `toml:"center" json:"center"`
	Print  PrintParams  `toml:"print" json:"print"`
}

// SingleParams configures [Engine.FitSingle].
type SingleParams struct {
	MaxWidthPct   float64 `toml:"max_width_pct" json:"max_width_pct"`
	ViewportFrac  float64 `toml:"viewport_frac" json:"viewport_frac"`
	ViewportFloor float64 `toml:"viewport_floor" json:"viewport_floor"`
	Growth        float64 `toml:"growth" json:"growth"`
	CapFloor      float64 `toml:"cap_floor" json:"cap_floor"`
	SearchFloor   float64 `toml:"search_floor" json:"search_floor"`
	Iterations    int     `toml:"iterations" json:"iterations"`

	// Minimum padding guard.
	PadEach       float64 `toml:"pad_each" json:"pad_each"`
	PadFloor      float64 `toml:"pad_floor" json:"pad_floor"`
	PadIterations int     `toml:"pad_iterations" json:"pad_iterations"`
	PadMinStep    float64 `toml:"pad_min_step" json:"pad_min_step"`
	PadBackoff    float64 `toml:"pad_backoff" json:"pad_backoff"`
}

// MultiParams configures [Engine.FitMultiple].
type MultiParams struct {
	Floor       float64 `toml:"floor" json:"floor"`
	TitleFloor  float64 `toml:"title_floor" json:"title_floor"`
	HardFloor   float64 `toml:"hard_floor" json:"hard_floor"`
	Step        float64 `toml:"step" json:"step"`
	Iterations  int     `toml:"iterations" json:"iterations"`
	MinWidthPct float64 `toml:"min_width_pct" json:"min_width_pct"`
	MaxWidthPct float64 `toml:"max_width_pct" json:"max_width_pct"`
}

// CenterParams configures [Engine.CenterIfLoneMedia].
type CenterParams struct {
	MinExtra float64 `toml:"min_extra" json:"min_extra"`
}

// PrintParams configures [Engine.FitForPrint].
type PrintParams struct {
	Tolerance        float64 `toml:"tolerance" json:"tolerance"`
	FixedSlack       float64 `toml:"fixed_slack" json:"fixed_slack"`
	SingleRatio      float64 `toml:"single_ratio" json:"single_ratio"`
	CapFrac          float64 `toml:"cap_frac" json:"cap_frac"`
	CapFloor         float64 `toml:"cap_floor" json:"cap_floor"`
	Growth           float64 `toml:"growth" json:"growth"`
	ShrinkIterations int     `toml:"shrink_iterations" json:"shrink_iterations"`
	Shrink           float64 `toml:"shrink" json:"shrink"`
	ShrinkFloor      float64 `toml:"shrink_floor" json:"shrink_floor"`
	MinScale         float64 `toml:"min_scale" json:"min_scale"`
	MaxScale         float64 `toml:"max_scale" json:"max_scale"`
	Iterations       int     `toml:"iterations" json:"iterations"`
}

// DefaultParams returns the tuned defaults.
func DefaultParams() Params {
	return Params{
		OverflowTolerance: 2,
		MinInnerHeight:    10,
		Single: SingleParams{
			MaxWidthPct:   96,
			ViewportFrac:  0.98,
			ViewportFloor: 64,
			Growth:        2,
			CapFloor:      48,
			SearchFloor:   32,
			Iterations:    12,
			PadEach:       18,
			PadFloor:      72,
			PadIterations: 10,
			PadMinStep:    6,
			PadBackoff:    8,
		},
		Multi: MultiParams{
			Floor:       0.4,
			TitleFloor:  0.35,
			HardFloor:   0.2,
			Step:        0.05,
			Iterations:  10,
			MinWidthPct: 8,
			MaxWidthPct: 96,
		},
		Center: CenterParams{MinExtra: 6},
		Print: PrintParams{
			Tolerance:        1,
			FixedSlack:       1,
			SingleRatio:      0.75,
			CapFrac:          0.98,
			CapFloor:         120,
			Growth:           2,
			ShrinkIterations: 8,
			Shrink:           0.92,
			ShrinkFloor:      64,
			MinScale:         0.2,
			MaxScale:         2,
			Iterations:       12,
		},
	}
}

// Validate reports parameter sets the searches cannot work with.
func (p Params) Validate() error {
	switch {
	case p.OverflowTolerance < 0 || p.Print.Tolerance < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "overflow tolerances must not be negative")
	case p.Single.Iterations < 1 || p.Multi.Iterations < 1 || p.Print.Iterations < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "search iterations must be at least 1")
	case p.Single.SearchFloor <= 0 || p.Single.SearchFloor > p.Single.CapFloor:
		return errors.New(errors.ErrCodeInvalidConfig, "single search floor must be in (0, cap_floor]")
	case p.Multi.HardFloor <= 0 || p.Multi.HardFloor > p.Multi.Floor || p.Multi.HardFloor > p.Multi.TitleFloor:
		return errors.New(errors.ErrCodeInvalidConfig, "multi hard floor must be positive and below both floors")
	case p.Multi.Floor > 1 || p.Multi.TitleFloor > 1:
		return errors.New(errors.ErrCodeInvalidConfig, "multi floors must not exceed 1")
	case p.Multi.Step <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "multi step must be positive")
	case p.Multi.MinWidthPct <= 0 || p.Multi.MinWidthPct > p.Multi.MaxWidthPct:
		return errors.New(errors.ErrCodeInvalidConfig, "multi width bounds are inverted")
	case p.Print.MinScale <= 0 || p.Print.MinScale >= p.Print.MaxScale:
		return errors.New(errors.ErrCodeInvalidConfig, "print scale bounds are inverted")
	case p.Print.Shrink <= 0 || p.Print.Shrink >= 1:
		return errors.New(errors.ErrCodeInvalidConfig, "print shrink factor must be in (0, 1)")
	}
	return nil
}
