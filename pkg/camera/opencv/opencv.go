// Package opencv provides a camera.Backend on top of GoCV video capture.
package opencv

import (
	"fmt"
	"image"
	"strconv"
	"sync"

	"github.com/intothevoid/shutter/pkg/camera"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

// Config maps camera positions to OpenCV device indices.
// A negative index means the position has no camera.
type Config struct {
	BackDevice  int
	FrontDevice int
	Width       int
	Height      int
}

// Backend discovers and opens cameras through OpenCV.
type Backend struct {
	cfg Config
	log *zap.SugaredLogger
}

// NewBackend returns a backend for cfg.
func NewBackend(cfg Config, log *zap.SugaredLogger) *Backend {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Backend{cfg: cfg, log: log}
}

// Devices probes the configured indices and reports those that open.
func (b *Backend) Devices() ([]camera.Device, error) {
	var devices []camera.Device
	for _, p := range []camera.Position{camera.Back, camera.Front} {
		idx := b.index(p)
		if idx < 0 {
			continue
		}
		vc, err := gocv.OpenVideoCapture(idx)
		if err != nil {
			b.log.Debugw("camera probe failed", "index", idx, "error", err)
			continue
		}
		ok := vc.IsOpened()
		vc.Close()
		if !ok {
			continue
		}
		devices = append(devices, camera.Device{
			ID:       strconv.Itoa(idx),
			Name:     fmt.Sprintf("Camera %d (%s)", idx, p),
			Position: p,
		})
	}
	return devices, nil
}

func (b *Backend) index(p camera.Position) int {
	if p == camera.Front {
		return b.cfg.FrontDevice
	}
	return b.cfg.BackDevice
}

// Open connects to d.
func (b *Backend) Open(d camera.Device) (camera.Input, error) {
	idx, err := strconv.Atoi(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid device ID: %s", d.ID)
	}
	return NewVideoStream(d, idx, b.cfg.Width, b.cfg.Height)
}

// VideoStream manages one open webcam connection.
type VideoStream struct {
	device camera.Device

	mu     sync.Mutex // gocv.VideoCapture is not safe for concurrent reads
	webcam *gocv.VideoCapture
	frame  *gocv.Mat // reused between reads
}

// NewVideoStream opens the device at index id.
func NewVideoStream(d camera.Device, id, width, height int) (*VideoStream, error) {
	cam, err := gocv.VideoCaptureDevice(id)
	if err != nil {
		return nil, fmt.Errorf("failed to open device: %v", err)
	}
	if !cam.IsOpened() {
		cam.Close()
		return nil, fmt.Errorf("camera %d is not open", id)
	}

	if width > 0 && height > 0 {
		cam.Set(gocv.VideoCaptureFrameWidth, float64(width))
		cam.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}

	mat := gocv.NewMat()
	return &VideoStream{
		device: d,
		webcam: cam,
		frame:  &mat,
	}, nil
}

// Device implements camera.Input.
func (vs *VideoStream) Device() camera.Device {
	return vs.device
}

// ReadFrame returns the current frame as a standard Go image.
func (vs *VideoStream) ReadFrame() (image.Image, error) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if err := vs.read(); err != nil {
		return nil, err
	}
	return vs.frame.ToImage()
}

// CapturePhoto grabs the next frame and encodes it.
func (vs *VideoStream) CapturePhoto(settings camera.PhotoSettings) ([]byte, error) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if err := vs.read(); err != nil {
		return nil, err
	}

	ext, params := gocv.JPEGFileExt, []int{int(gocv.IMWriteJpegQuality), settings.Quality}
	if settings.Format == "png" {
		ext, params = gocv.PNGFileExt, nil
	}
	buf, err := gocv.IMEncodeWithParams(ext, *vs.frame, params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %v", err)
	}
	defer buf.Close()

	// GetBytes aliases C memory released by Close.
	data := append([]byte(nil), buf.GetBytes()...)
	return data, nil
}

func (vs *VideoStream) read() error {
	if vs.webcam == nil {
		return fmt.Errorf("camera %s is closed", vs.device.ID)
	}
	if !vs.webcam.Read(vs.frame) {
		return fmt.Errorf("cannot read frame")
	}
	if vs.frame.Empty() {
		return fmt.Errorf("frame is empty")
	}
	return nil
}

// Close releases the device.
func (vs *VideoStream) Close() error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if vs.webcam == nil {
		return nil
	}
	err := vs.webcam.Close()
	vs.frame.Close()
	vs.webcam = nil
	return err
}
