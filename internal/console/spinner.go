package console

import (
	"fmt"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// Spinner animates a message on the diagnostic stream until stopped.
// A Spinner from a non-terminal Reporter does nothing.
type Spinner struct {
	r       *Reporter
	mu      sync.Mutex
	message string
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Spinner starts a spinner showing message.
func (r *Reporter) Spinner(message string) *Spinner {
	s := &Spinner{r: r, message: message}
	if !r.spinner {
		return s
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run()
	return s
}

func (s *Spinner) run() {
	defer close(s.done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		s.mu.Lock()
		msg := s.message
		s.mu.Unlock()
		s.r.printf(s.r.errOut, "\r\033[K%s %s", spinnerFrames[i%len(spinnerFrames)], msg)

		select {
		case <-s.stop:
			s.r.printf(s.r.errOut, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Update replaces the spinner message.
func (s *Spinner) Update(format string, args ...any) {
	s.mu.Lock()
	s.message = fmt.Sprintf(format, args...)
	s.mu.Unlock()
}

// Stop clears the spinner line and waits for the animation to end. It is
// safe to call more than once, and on a nil Spinner.
func (s *Spinner) Stop() {
	if s == nil || s.stop == nil {
		return
	}
	s.once.Do(func() {
		close(s.stop)
		<-s.done
	})
}
