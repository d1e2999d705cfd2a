package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slidefit/pkg/observability"
)

// LogObserver logs fitting passes. Overflowing slides are warnings; every
// other slide is logged at debug level.
type LogObserver struct {
	logger *log.Logger
}

// NewLogObserver returns an observer writing to logger.
func NewLogObserver(logger *log.Logger) *LogObserver {
	if logger == nil {
		logger = log.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnPassStart(_ context.Context, pass observability.PassInfo) {
	o.logger.Debug("fit pass started", "pass", pass.ID, "mode", pass.Mode, "slides", pass.Slides)
}

func (o *LogObserver) OnSlide(_ context.Context, rec observability.SlideRecord) {
	kv := []any{
		"slide", rec.Index + 1,
		"title", rec.Title,
		"outcome", rec.Outcome,
		"figures", rec.Figures,
	}
	if rec.Scale > 0 {
		kv = append(kv, "scale", rec.Scale)
	}
	if rec.MaxHeight > 0 {
		kv = append(kv, "max_height", rec.MaxHeight)
	}
	if rec.Overflow {
		o.logger.Warn("slide overflows", append(kv, "mode", rec.Mode)...)
		return
	}
	o.logger.Debug("slide fitted", kv...)
}

func (o *LogObserver) OnPassComplete(_ context.Context, pass observability.PassInfo, d time.Duration) {
	o.logger.Debug("fit pass complete", "pass", pass.ID, "mode", pass.Mode, "duration", d)
}

var _ observability.FitObserver = (*LogObserver)(nil)
