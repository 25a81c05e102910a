package encoding

import (
	"strings"
	"sync"
	"sync/atomic"
)

// Snapshot is the observable state of a session, safe to read from any
// goroutine. A UI polls this every frame.
type Snapshot struct {
	Percent   float64
	Running   bool
	Completed bool
	Log       string
}

// state holds the fields shared between the worker goroutine and the polling
// side. The mutex guards everything except the cancel flag, which stays
// lock-free so a poller requesting cancellation never contends with the
// worker's lock.
type state struct {
	mu        sync.Mutex
	percent   float64
	running   bool
	completed bool
	status    Status
	log       strings.Builder
	done      chan struct{}
	cancel    atomic.Bool
}

func newState() *state {
	done := make(chan struct{})
	close(done)
	return &state{done: done}
}

// tryStart atomically gates a new run and resets the observable fields, so a
// poller never sees leftovers from a previous session once start is accepted.
func (s *state) tryStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.percent = 0
	s.completed = false
	s.status = ""
	s.log.Reset()
	s.running = true
	s.done = make(chan struct{})
	s.cancel.Store(false)
	return true
}

// finish records the terminal outcome of a run. The done channel stays open
// until endRun so observers waiting on it also see side effects that happen
// after the state turns terminal (history recording, final log lines).
func (s *state) finish(status Status, percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.completed = status == StatusCompleted
	s.percent = percent
	s.status = status
	s.running = false
}

// endRun closes out an accepted start: running drops to false (it already is
// after finish) and the done channel is closed exactly once.
func (s *state) endRun() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

func (s *state) appendLog(text string) {
	if text == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.WriteString(text)
}

func (s *state) setPercent(percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.percent = percent
}

func (s *state) snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Percent:   s.percent,
		Running:   s.running,
		Completed: s.completed,
		Log:       s.log.String(),
	}
}

func (s *state) terminalStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ""
	}
	return s.status
}

func (s *state) doneChan() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *state) requestCancel() {
	s.cancel.Store(true)
}

func (s *state) cancelRequested() bool {
	return s.cancel.Load()
}
