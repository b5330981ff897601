package pipeline

import (
	"errors"
	"sync/atomic"

	"github.com/poko950615-bit/mnist-app/internal/raster"
)

// ErrBusy is returned by Session.Run while a previous frame is still being
// processed.
var ErrBusy = errors.New("recognition already in flight")

// Session states.
const (
	stateIdle int32 = iota
	stateRunning
)

// Session enforces at-most-one pipeline run in flight per logical capture
// session, replacing the global mutable "processing" flag of older
// implementations with an explicit caller-owned Idle/Running state machine.
//
// The wrapped pipeline stays stateless; only the session carries state.
// Session is safe for concurrent use.
type Session struct {
	pipe  *Pipeline
	state atomic.Int32
}

// NewSession wraps a pipeline in a fresh Idle session.
func NewSession(p *Pipeline) *Session {
	return &Session{pipe: p}
}

// Running reports whether a frame is currently in flight.
func (s *Session) Running() bool {
	return s.state.Load() == stateRunning
}

// Run recognizes one frame, transitioning Idle -> Running -> Idle. If the
// session is already Running, it returns ErrBusy without touching the frame;
// the caller decides whether to retry or drop it.
func (s *Session) Run(img *raster.Image) (*Result, error) {
	if !s.state.CompareAndSwap(stateIdle, stateRunning) {
		return nil, ErrBusy
	}
	defer s.state.Store(stateIdle)
	return s.pipe.Recognize(img)
}
