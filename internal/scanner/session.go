package scanner

import (
	"errors"
	"log/slog"
)

// ErrNotInitialized is returned when a frame sequence is started on a
// session that was never initialized.
var ErrNotInitialized = errors.New("scanner: recognition session not initialized")

// FrameSession is the lifecycle bracket within which frames may be
// processed. It moves Idle -> Active via StartNewFrameSequence and back via
// EndFrameSequence; there is no terminal state, a session is reusable.
type FrameSession struct {
	initialized bool
	started     bool
	log         *slog.Logger
}

// NewFrameSession creates an initialized, idle session.
func NewFrameSession() *FrameSession {
	s := &FrameSession{initialized: true, log: slog.Default()}
	s.log.Debug("recognition session created")
	return s
}

// StartNewFrameSequence moves the session to Active. It fails only when the
// session was never initialized.
func (s *FrameSession) StartNewFrameSequence() error {
	if !s.initialized {
		return ErrNotInitialized
	}
	s.started = true
	s.log.Info("new frame sequence started")
	return nil
}

// EndFrameSequence returns the session to Idle. Ending an already-idle
// session is a no-op.
func (s *FrameSession) EndFrameSequence() {
	if !s.started {
		return
	}
	s.started = false
	s.log.Info("frame sequence ended")
}

// Active reports whether a frame sequence is open.
func (s *FrameSession) Active() bool { return s.started }

// Close ends any open frame sequence. It guarantees release on every exit
// path and is safe to call multiple times.
func (s *FrameSession) Close() error {
	s.EndFrameSequence()
	s.log.Debug("recognition session released")
	return nil
}
