package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		level     log.Level
		wantDebug bool
	}{
		{log.InfoLevel, false},
		{log.DebugLevel, true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		l := newLogger(&buf, tt.level)
		l.Debug("measured", "slide", 1)
		l.Info("fitted")

		out := buf.String()
		if !strings.Contains(out, "fitted") {
			t.Errorf("level %v: info line missing from %q", tt.level, out)
		}
		if got := strings.Contains(out, "measured"); got != tt.wantDebug {
			t.Errorf("level %v: debug logged = %v, want %v", tt.level, got, tt.wantDebug)
		}
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Fitted 3 slides")

	if !regexp.MustCompile(`Fitted 3 slides \(\d+(\.\d+)?[µnm]?s\)`).MatchString(buf.String()) {
		t.Errorf("progress line = %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}

	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("attached logger not returned")
	}
}
