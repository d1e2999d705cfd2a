package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

// spinner animates a status line on stderr while a fit runs.
type spinner struct {
	msg    string
	out    io.Writer
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	mu sync.Mutex // guards writes to out
	wg sync.WaitGroup
}

func newSpinner(msg string) *spinner {
	return newSpinnerWithContext(context.Background(), msg)
}

// newSpinnerWithContext returns a spinner that stops by itself once ctx is
// done.
func newSpinnerWithContext(ctx context.Context, msg string) *spinner {
	inner, cancel := context.WithCancel(ctx)
	return &spinner{msg: msg, out: os.Stderr, parent: ctx, ctx: inner, cancel: cancel}
}

func (s *spinner) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		tick := time.NewTicker(100 * time.Millisecond)
		defer tick.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-tick.C:
				s.write("\r" + styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]) + " " + StyleDim.Render(s.msg))
			}
		}
	}()
}

// Stop halts the animation and blanks the line. It may be called more than
// once.
func (s *spinner) Stop() {
	s.cancel()
	s.wg.Wait()
	s.clear()
}

func (s *spinner) StopWithSuccess(msg string) {
	s.Stop()
	printSuccess("%s", msg)
}

func (s *spinner) StopWithError(msg string) {
	s.Stop()
	printError("%s", msg)
}

// Cancelled reports whether the parent context ended the spinner.
func (s *spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

func (s *spinner) clear() {
	s.write("\r" + strings.Repeat(" ", len(s.msg)+2) + "\r")
}

func (s *spinner) write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, text)
}
