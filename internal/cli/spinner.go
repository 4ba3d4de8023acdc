package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a status line on w while a long step runs. The message
// can change between phases; it stops when its context is cancelled.
type Spinner struct {
	w      io.Writer
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	message string
	width   int // widest line drawn so far
	started time.Time

	once    sync.Once
	stopped chan struct{}
}

func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		ctx:     spinnerCtx,
		cancel:  cancel,
		message: message,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = time.Now()
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// Update switches to the next phase message.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop ends the animation, clears the line and returns how long it ran.
// Calling Stop again is a no-op.
func (s *Spinner) Stop() time.Duration {
	s.once.Do(func() {
		s.cancel()
		s.mu.Lock()
		started := !s.started.IsZero()
		s.mu.Unlock()
		if started {
			<-s.stopped
		}
	})
	return s.Elapsed()
}

// Elapsed is the time since Start.
func (s *Spinner) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started.IsZero() {
		return 0
	}
	return time.Since(s.started)
}

// Cancelled reports whether the spinner's context ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	// Pad over leftovers of a longer previous message.
	if w := lipgloss.Width(line); w > s.width {
		s.width = w
	} else {
		line += strings.Repeat(" ", s.width-w)
	}
	fmt.Fprintf(s.w, "\r%s", line)
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
}
