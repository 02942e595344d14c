package camera

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// State is the lifecycle state of a Session.
type State int

const (
	Stopped State = iota
	Configuring
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Configuring:
		return "configuring"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session coordinates one input with its outputs.
//
// Inputs and outputs can only change while Configuring. A failed
// configuration is aborted back to Stopped with nothing attached.
type Session struct {
	log *zap.SugaredLogger

	mu      sync.Mutex
	state   State
	input   Input
	outputs []Output
}

// NewSession returns a stopped, empty session.
func NewSession(log *zap.SugaredLogger) *Session {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Session{log: log}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsRunning reports whether the session is running.
func (s *Session) IsRunning() bool {
	return s.State() == Running
}

// Inputs returns the attached inputs (zero or one).
func (s *Session) Inputs() []Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.input == nil {
		return nil
	}
	return []Input{s.input}
}

// Outputs returns a copy of the attached outputs.
func (s *Session) Outputs() []Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Output(nil), s.outputs...)
}

// BeginConfiguration moves a stopped session to Configuring.
func (s *Session) BeginConfiguration() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Stopped {
		return fmt.Errorf("%w: begin configuration while %s", ErrInvalidState, s.state)
	}
	s.state = Configuring
	return nil
}

// RemoveAll detaches every output and closes the input.
func (s *Session) RemoveAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Configuring {
		return fmt.Errorf("%w: remove while %s", ErrInvalidState, s.state)
	}
	s.removeAllLocked()
	return nil
}

func (s *Session) removeAllLocked() {
	if s.input != nil {
		if err := s.input.Close(); err != nil {
			s.log.Warnw("closing camera input", "device", s.input.Device().ID, "error", err)
		}
		s.input = nil
	}
	s.outputs = nil
}

// CanAddInput reports whether in can be attached now.
func (s *Session) CanAddInput(in Input) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return in != nil && s.state == Configuring && s.input == nil
}

// AddInput attaches in. The session owns it from now on.
func (s *Session) AddInput(in Input) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in == nil || s.state != Configuring || s.input != nil {
		return fmt.Errorf("%w: input", ErrCannotAttach)
	}
	s.input = in
	return nil
}

// CanAddOutput reports whether o can be attached now. Each output may be
// attached once, and only one output of each kind is allowed.
func (s *Session) CanAddOutput(o Output) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canAddOutputLocked(o)
}

func (s *Session) canAddOutputLocked(o Output) bool {
	if o == nil || s.state != Configuring {
		return false
	}
	for _, cur := range s.outputs {
		if cur == o || reflect.TypeOf(cur) == reflect.TypeOf(o) {
			return false
		}
	}
	return true
}

// AddOutput attaches o.
func (s *Session) AddOutput(o Output) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canAddOutputLocked(o) {
		return fmt.Errorf("%w: output %T", ErrCannotAttach, o)
	}
	s.outputs = append(s.outputs, o)
	return nil
}

// Commit ends configuration and starts every output on the input.
func (s *Session) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Configuring {
		return fmt.Errorf("%w: commit while %s", ErrInvalidState, s.state)
	}
	if s.input == nil {
		s.removeAllLocked()
		s.state = Stopped
		return fmt.Errorf("%w: commit without input", ErrInvalidState)
	}
	for _, o := range s.outputs {
		o.start(s.input)
	}
	s.state = Running
	s.log.Debugw("capture session running", "device", s.input.Device().ID, "outputs", len(s.outputs))
	return nil
}

// Abort discards a configuration in progress and returns to Stopped.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Configuring {
		return
	}
	s.removeAllLocked()
	s.state = Stopped
}

// Stop halts a running session. Inputs and outputs stay attached until
// the next configuration.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running {
		return
	}
	for _, o := range s.outputs {
		o.stop()
	}
	s.state = Stopped
	s.log.Debugw("capture session stopped")
}

// Close stops the session and releases everything attached.
func (s *Session) Close() {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Configuring {
		s.state = Stopped
	}
	s.removeAllLocked()
}
