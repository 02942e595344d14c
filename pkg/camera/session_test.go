package camera

import (
	"errors"
	"image"
	"testing"
	"time"
)

// stubInput records Close calls.
type stubInput struct {
	id     string
	closed bool
}

func (s *stubInput) Device() Device { return Device{ID: s.id} }
func (s *stubInput) ReadFrame() (image.Image, error) { return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil }
func (s *stubInput) CapturePhoto(PhotoSettings) ([]byte, error) { return nil, errors.New("stub") }
func (s *stubInput) Close() error { s.closed = true; return nil }

func TestSessionLifecycle(t *testing.T) {
	s := NewSession(nil)
	if s.State() != Stopped {
		t.Fatalf("new session state = %s, want stopped", s.State())
	}

	if err := s.BeginConfiguration(); err != nil {
		t.Fatalf("BeginConfiguration: %v", err)
	}
	in := &stubInput{id: "a"}
	if err := s.AddInput(in); err != nil {
		t.Fatalf("AddInput: %v", err)
	}
	if s.CanAddInput(&stubInput{id: "b"}) {
		t.Error("second input should be refused")
	}

	video := NewVideoOutput(time.Hour, nil)
	photo := NewPhotoOutput(nil)
	for _, o := range []Output{video, photo} {
		if err := s.AddOutput(o); err != nil {
			t.Fatalf("AddOutput(%T): %v", o, err)
		}
	}
	if s.CanAddOutput(photo) {
		t.Error("same output should not attach twice")
	}
	if s.CanAddOutput(NewPhotoOutput(nil)) {
		t.Error("second photo output should be refused")
	}

	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !s.IsRunning() {
		t.Fatal("session should be running after commit")
	}
	if s.CanAddOutput(NewVideoOutput(0, nil)) {
		t.Error("outputs cannot change while running")
	}

	s.Stop()
	if s.State() != Stopped {
		t.Errorf("state after Stop = %s", s.State())
	}
	if in.closed {
		t.Error("Stop should keep the input open")
	}

	s.Close()
	if !in.closed {
		t.Error("Close should close the input")
	}
	if len(s.Inputs()) != 0 || len(s.Outputs()) != 0 {
		t.Errorf("after Close: %d inputs, %d outputs", len(s.Inputs()), len(s.Outputs()))
	}
}

func TestSessionInvalidTransitions(t *testing.T) {
	s := NewSession(nil)

	if err := s.Commit(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Commit while stopped = %v, want ErrInvalidState", err)
	}
	if err := s.RemoveAll(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("RemoveAll while stopped = %v, want ErrInvalidState", err)
	}
	if err := s.AddInput(&stubInput{}); !errors.Is(err, ErrCannotAttach) {
		t.Errorf("AddInput while stopped = %v, want ErrCannotAttach", err)
	}

	_ = s.BeginConfiguration()
	if err := s.BeginConfiguration(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("nested BeginConfiguration = %v, want ErrInvalidState", err)
	}
	if err := s.Commit(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Commit without input = %v, want ErrInvalidState", err)
	}
	if s.State() != Stopped {
		t.Errorf("failed commit left state %s, want stopped", s.State())
	}
}

func TestSessionAbortReleasesInput(t *testing.T) {
	s := NewSession(nil)
	_ = s.BeginConfiguration()
	in := &stubInput{id: "a"}
	_ = s.AddInput(in)
	_ = s.AddOutput(NewPhotoOutput(nil))

	s.Abort()

	if s.State() != Stopped {
		t.Errorf("state after Abort = %s", s.State())
	}
	if !in.closed {
		t.Error("Abort should close the partially attached input")
	}
	if len(s.Outputs()) != 0 {
		t.Errorf("Abort left %d outputs", len(s.Outputs()))
	}
}

func TestPhotoOutputNotRunning(t *testing.T) {
	if ch := NewPhotoOutput(nil).Capture(DefaultPhotoSettings()); ch != nil {
		t.Error("Capture on a detached output should return nil")
	}
}
