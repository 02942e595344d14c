package camera

import (
	"errors"
	"image"
)

var (
	// ErrNoDevice is returned when no physical camera matches the position.
	ErrNoDevice = errors.New("no camera device for position")
	// ErrDeviceUnavailable wraps device open and permission failures.
	ErrDeviceUnavailable = errors.New("camera device unavailable")
	// ErrCannotAttach is returned when the session refuses an input or output.
	ErrCannotAttach = errors.New("cannot attach to capture session")
	// ErrInvalidState is returned for illegal session transitions.
	ErrInvalidState = errors.New("invalid capture session state")
	// ErrDecode is returned when a captured still cannot be decoded.
	ErrDecode = errors.New("cannot decode captured photo")
)

// Device is a physical camera reported by a Backend.
type Device struct {
	ID       string
	Name     string
	Position Position
}

// Backend is the platform camera layer: discovery and device access.
type Backend interface {
	// Devices lists the cameras currently present.
	Devices() ([]Device, error)
	// Open connects to a device. Permission problems surface here.
	Open(d Device) (Input, error)
}

// Input is an open device attached to a session.
type Input interface {
	Device() Device
	// ReadFrame returns the next preview frame in sensor orientation.
	ReadFrame() (image.Image, error)
	// CapturePhoto takes one still and returns it encoded.
	CapturePhoto(settings PhotoSettings) ([]byte, error)
	Close() error
}

// PhotoSettings controls still capture encoding.
type PhotoSettings struct {
	Format  string
	Quality int
}

// DefaultPhotoSettings returns JPEG at quality 95.
func DefaultPhotoSettings() PhotoSettings {
	return PhotoSettings{Format: "jpeg", Quality: 95}
}
