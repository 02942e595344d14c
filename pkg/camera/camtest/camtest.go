// Package camtest provides an in-memory camera.Backend for tests.
package camtest

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"sync"

	"github.com/intothevoid/shutter/pkg/camera"
)

// ErrClosed is returned by a closed Input.
var ErrClosed = errors.New("camtest: input closed")

// Backend is a scriptable camera.Backend. Its zero value has no devices.
type Backend struct {
	mu sync.Mutex

	devices []camera.Device
	// DevicesErr fails discovery.
	DevicesErr error
	// OpenErr fails Open for the given device IDs.
	OpenErr map[string]error
	// Frame is returned by ReadFrame. Defaults to a 4x2 grey image.
	Frame image.Image
	// Photo overrides the bytes returned by CapturePhoto.
	Photo []byte
	// CaptureErr fails CapturePhoto.
	CaptureErr error

	inputs []*Input
}

// NewBackend returns a backend reporting devs.
func NewBackend(devs ...camera.Device) *Backend {
	return &Backend{devices: devs}
}

// BackAndFront returns a backend with one camera on each side.
func BackAndFront() *Backend {
	return NewBackend(
		camera.Device{ID: "0", Name: "Back Camera", Position: camera.Back},
		camera.Device{ID: "1", Name: "Front Camera", Position: camera.Front},
	)
}

// Devices implements camera.Backend.
func (b *Backend) Devices() ([]camera.Device, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.DevicesErr != nil {
		return nil, b.DevicesErr
	}
	return append([]camera.Device(nil), b.devices...), nil
}

// Open implements camera.Backend.
func (b *Backend) Open(d camera.Device) (camera.Input, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.OpenErr[d.ID]; err != nil {
		return nil, err
	}
	in := &Input{backend: b, device: d}
	b.inputs = append(b.inputs, in)
	return in, nil
}

// Inputs returns every input opened so far.
func (b *Backend) Inputs() []*Input {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Input(nil), b.inputs...)
}

// OpenInputs counts inputs that have not been closed.
func (b *Backend) OpenInputs() int {
	n := 0
	for _, in := range b.Inputs() {
		if !in.Closed() {
			n++
		}
	}
	return n
}

// Input is an opened fake device.
type Input struct {
	backend *Backend
	device  camera.Device

	mu       sync.Mutex
	closed   bool
	captures int
}

// Device implements camera.Input.
func (in *Input) Device() camera.Device { return in.device }

// ReadFrame implements camera.Input.
func (in *Input) ReadFrame() (image.Image, error) {
	if in.Closed() {
		return nil, ErrClosed
	}
	in.backend.mu.Lock()
	defer in.backend.mu.Unlock()
	if in.backend.Frame != nil {
		return in.backend.Frame, nil
	}
	return Solid(4, 2, color.Gray{Y: 0x80}), nil
}

// CapturePhoto implements camera.Input.
func (in *Input) CapturePhoto(settings camera.PhotoSettings) ([]byte, error) {
	in.mu.Lock()
	if in.closed {
		in.mu.Unlock()
		return nil, ErrClosed
	}
	in.captures++
	in.mu.Unlock()

	in.backend.mu.Lock()
	defer in.backend.mu.Unlock()
	if in.backend.CaptureErr != nil {
		return nil, in.backend.CaptureErr
	}
	if in.backend.Photo != nil {
		return in.backend.Photo, nil
	}
	return JPEG(Solid(8, 6, color.RGBA{R: 0xff, A: 0xff}), settings.Quality)
}

// Captures counts CapturePhoto calls.
func (in *Input) Captures() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.captures
}

// Closed reports whether Close was called.
func (in *Input) Closed() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.closed
}

// Close implements camera.Input.
func (in *Input) Close() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.closed = true
	return nil
}

// Solid returns a w x h image filled with c.
func Solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// JPEG encodes img.
func JPEG(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 {
		quality = jpeg.DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
