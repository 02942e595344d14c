package camera

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Delegate receives still photos from a Camera.
type Delegate interface {
	StillImageCaptured(c *Camera, photo *Photo)
}

// ErrorDelegate may additionally be implemented by a Delegate to learn
// about captures that were dropped.
type ErrorDelegate interface {
	CaptureFailed(c *Camera, err error)
}

// Option configures a Camera.
type Option func(*Camera)

// WithLogger sets the logger used by the camera and its session.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Camera) {
		if log != nil {
			c.log = log
		}
	}
}

// WithOrientationSource sets where the interface orientation is read
// when a photo is normalized.
func WithOrientationSource(src OrientationSource) Option {
	return func(c *Camera) { c.orientation = src }
}

// WithFrameInterval sets the preview read interval.
func WithFrameInterval(d time.Duration) Option {
	return func(c *Camera) { c.frameInterval = d }
}

// WithPhotoSettings overrides DefaultPhotoSettings.
func WithPhotoSettings(s PhotoSettings) Option {
	return func(c *Camera) { c.settings = s }
}

// WithPosition sets the initial position.
func WithPosition(p Position) Option {
	return func(c *Camera) { c.position = p }
}

// Camera manages a capture session for one camera position at a time.
type Camera struct {
	backend       Backend
	session       *Session
	video         *VideoOutput
	photo         *PhotoOutput
	orientation   OrientationSource
	frameInterval time.Duration
	settings      PhotoSettings
	log           *zap.SugaredLogger

	// configMu serializes reconfiguration.
	configMu sync.Mutex

	mu       sync.Mutex
	position Position
	delegate Delegate
}

// New returns a stopped camera backed by b.
func New(b Backend, opts ...Option) *Camera {
	c := &Camera{
		backend:       b,
		frameInterval: DefaultFrameInterval,
		settings:      DefaultPhotoSettings(),
		log:           zap.NewNop().Sugar(),
		orientation:   func() (InterfaceOrientation, bool) { return OrientationUnknown, false },
	}
	for _, opt := range opts {
		opt(c)
	}
	c.session = NewSession(c.log)
	c.video = NewVideoOutput(c.frameInterval, c.log)
	c.photo = NewPhotoOutput(c.log)
	return c
}

// SetDelegate registers d for captured photos.
func (c *Camera) SetDelegate(d Delegate) {
	c.mu.Lock()
	c.delegate = d
	c.mu.Unlock()
}

// Session exposes the underlying capture session.
func (c *Camera) Session() *Session {
	return c.session
}

// IsRunning reports whether the session is running.
func (c *Camera) IsRunning() bool {
	return c.session.IsRunning()
}

// Position returns the requested camera position.
func (c *Camera) Position() Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

// SetPosition changes the camera position. A running session is stopped
// and rebuilt for the new position; a stopped one only records it for the
// next Update.
func (c *Camera) SetPosition(p Position) error {
	c.configMu.Lock()
	defer c.configMu.Unlock()

	c.mu.Lock()
	c.position = p
	c.mu.Unlock()

	if !c.session.IsRunning() {
		return nil
	}
	c.session.Stop()
	return c.update()
}

// Update rebuilds the session for the current position and starts it.
// On failure the session is left stopped with nothing attached.
func (c *Camera) Update() error {
	c.configMu.Lock()
	defer c.configMu.Unlock()
	return c.update()
}

// update requires configMu.
func (c *Camera) update() error {
	c.session.Stop()
	if err := c.session.BeginConfiguration(); err != nil {
		return err
	}
	if err := c.session.RemoveAll(); err != nil {
		c.session.Abort()
		return err
	}

	pos := c.Position()
	dev, in, err := c.openInput(pos)
	if err != nil {
		c.session.Abort()
		c.log.Warnw("camera not started", "position", pos, "error", err)
		return err
	}

	if !c.session.CanAddInput(in) || !c.session.CanAddOutput(c.video) || !c.session.CanAddOutput(c.photo) {
		if in != nil {
			if cerr := in.Close(); cerr != nil {
				c.log.Warnw("closing camera input", "device", dev.ID, "error", cerr)
			}
		}
		c.session.Abort()
		err := fmt.Errorf("%w: device %s", ErrCannotAttach, dev.ID)
		c.log.Warnw("camera not started", "position", pos, "error", err)
		return err
	}

	// The checks above guarantee these succeed.
	_ = c.session.AddInput(in)
	_ = c.session.AddOutput(c.video)
	_ = c.session.AddOutput(c.photo)
	if err := c.session.Commit(); err != nil {
		c.session.Abort()
		return err
	}
	c.log.Infow("camera running", "position", pos, "device", dev.Name)
	return nil
}

func (c *Camera) openInput(pos Position) (Device, Input, error) {
	devices, err := c.backend.Devices()
	if err != nil {
		return Device{}, nil, fmt.Errorf("%w: discovery: %v", ErrNoDevice, err)
	}
	for _, d := range devices {
		if d.Position != pos {
			continue
		}
		in, err := c.backend.Open(d)
		if err != nil {
			return d, nil, fmt.Errorf("%w: open %s: %v", ErrDeviceUnavailable, d.ID, err)
		}
		return d, in, nil
	}
	return Device{}, nil, fmt.Errorf("%w: %s", ErrNoDevice, pos)
}

// PreviewLayer returns a new layer bound to the session's video output, or
// nil when the session has no video output attached.
func (c *Camera) PreviewLayer() *PreviewLayer {
	for _, o := range c.session.Outputs() {
		if o == Output(c.video) {
			return c.video.newLayer()
		}
	}
	return nil
}

// CaptureStillImage requests one photo. It returns immediately; the photo
// arrives later through the delegate. It reports false when the session
// is not running.
func (c *Camera) CaptureStillImage() bool {
	if !c.session.IsRunning() {
		return false
	}
	res := c.photo.Capture(c.settings)
	if res == nil {
		return false
	}
	go func() {
		c.handleCapture(<-res)
	}()
	return true
}

// handleCapture turns one capture result into at most one delegate call.
func (c *Camera) handleCapture(res CaptureResult) {
	if res.Err != nil {
		c.captureFailed(fmt.Errorf("capture from %s: %w", res.Device.ID, res.Err))
		return
	}
	img, err := decodePhoto(res.Data)
	if err != nil {
		c.captureFailed(err)
		return
	}

	pos := res.Device.Position
	io, ok := c.orientation()
	orientation := FallbackOrientation(pos)
	if ok {
		orientation = NormalizedOrientation(io, pos)
	}
	photo := &Photo{
		Image:                img,
		Orientation:          orientation,
		Position:             pos,
		InterfaceOrientation: io,
		CapturedAt:           time.Now(),
	}

	c.mu.Lock()
	d := c.delegate
	c.mu.Unlock()
	if d != nil {
		d.StillImageCaptured(c, photo)
	}
}

func (c *Camera) captureFailed(err error) {
	c.log.Warnw("still capture dropped", "error", err)
	c.mu.Lock()
	d := c.delegate
	c.mu.Unlock()
	if ed, ok := d.(ErrorDelegate); ok {
		ed.CaptureFailed(c, err)
	}
}

// Close stops the camera and releases the device.
func (c *Camera) Close() {
	c.configMu.Lock()
	defer c.configMu.Unlock()
	c.session.Close()
}
