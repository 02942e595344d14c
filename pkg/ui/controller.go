package ui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/intothevoid/shutter/pkg/camera"
	"go.uber.org/zap"
)

// ControllerDelegate receives the user-facing events of a CaptureController.
type ControllerDelegate interface {
	ShutterButtonTapped(c *CaptureController)
	CancelButtonTapped(c *CaptureController)
	StillImageCaptured(c *CaptureController, img image.Image)
}

// ErrorReporter may additionally be implemented by a ControllerDelegate to
// hear about dropped captures.
type ErrorReporter interface {
	CaptureFailed(c *CaptureController, err error)
}

// ControllerOption configures a CaptureController.
type ControllerOption func(*CaptureController)

// WithControllerLogger sets the controller logger.
func WithControllerLogger(log *zap.SugaredLogger) ControllerOption {
	return func(c *CaptureController) {
		if log != nil {
			c.log = log
		}
	}
}

// WithInterfaceOrientation overrides DeviceOrientation as the source used
// on every layout pass.
func WithInterfaceOrientation(src camera.OrientationSource) ControllerOption {
	return func(c *CaptureController) { c.orientation = src }
}

// CaptureController hosts a full screen live preview with shutter and
// cancel controls.
type CaptureController struct {
	camera      *camera.Camera
	orientation camera.OrientationSource
	log         *zap.SugaredLogger

	mu       sync.Mutex
	delegate ControllerDelegate

	preview       *PreviewView
	shutterButton *widget.Button
	cancelButton  *widget.Button
	content       *fyne.Container
}

// NewCaptureController builds the controller UI around cam and registers
// itself as the camera delegate.
func NewCaptureController(cam *camera.Camera, opts ...ControllerOption) *CaptureController {
	c := &CaptureController{
		camera:      cam,
		orientation: DeviceOrientation,
		log:         zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.preview = NewPreviewView()
	c.cancelButton = widget.NewButton("Cancel", c.cancelButtonTapped)
	c.shutterButton = widget.NewButtonWithIcon("", ShutterIcon(), c.shutterButtonTapped)
	c.shutterButton.Importance = widget.LowImportance
	c.content = container.New(&captureLayout{c: c}, c.preview, c.cancelButton, c.shutterButton)

	cam.SetDelegate(c)
	return c
}

// SetDelegate registers d.
func (c *CaptureController) SetDelegate(d ControllerDelegate) {
	c.mu.Lock()
	c.delegate = d
	c.mu.Unlock()
}

func (c *CaptureController) currentDelegate() ControllerDelegate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delegate
}

// Camera returns the managed camera.
func (c *CaptureController) Camera() *camera.Camera {
	return c.camera
}

// Position returns the camera position.
func (c *CaptureController) Position() camera.Position {
	return c.camera.Position()
}

// SetPosition switches camera. It applies immediately when running.
func (c *CaptureController) SetPosition(p camera.Position) {
	if err := c.camera.SetPosition(p); err != nil {
		c.log.Warnw("switching camera", "position", p, "error", err)
	}
}

// Content returns the canvas object to place in a window.
func (c *CaptureController) Content() fyne.CanvasObject {
	return c.content
}

// Present shows the controller as the content of w and starts the camera.
func (c *CaptureController) Present(w fyne.Window) {
	w.SetContent(c.Content())
	c.WillAppear()
}

// WillAppear starts the camera and attaches its preview. Calling it again
// after a failure retries the configuration.
func (c *CaptureController) WillAppear() {
	if err := c.camera.Update(); err != nil {
		c.log.Warnw("camera unavailable", "position", c.camera.Position(), "error", err)
	}
	c.createUI()
}

func (c *CaptureController) createUI() {
	if c.preview.Layer() != nil {
		return
	}
	layer := c.camera.PreviewLayer()
	if layer == nil {
		return
	}
	c.preview.Bind(layer)
	c.content.Refresh()
}

// Dismiss releases the camera. The window is owned by the host.
func (c *CaptureController) Dismiss() {
	if layer := c.preview.Layer(); layer != nil {
		layer.Detach()
		c.preview.Bind(nil)
	}
	c.camera.Close()
}

// layoutSubviews runs on every layout pass of the content.
func (c *CaptureController) layoutSubviews(size fyne.Size) {
	o, _ := c.orientation()
	c.updateUI(o, size)
	c.updateButtonFrames(size)
}

func (c *CaptureController) updateUI(o camera.InterfaceOrientation, size fyne.Size) {
	c.preview.Move(fyne.NewPos(0, 0))
	c.preview.Resize(size)
	if layer := c.preview.Layer(); layer != nil {
		layer.SetVideoOrientation(camera.VideoOrientationFor(o))
	}
}

func (c *CaptureController) updateButtonFrames(size fyne.Size) {
	c.shutterButton.Move(fyne.NewPos(size.Width/2-35, size.Height-80))
	c.shutterButton.Resize(fyne.NewSize(70, 70))
	c.cancelButton.Move(fyne.NewPos(10, size.Height-50))
	c.cancelButton.Resize(fyne.NewSize(70, 30))
}

func (c *CaptureController) cancelButtonTapped() {
	if d := c.currentDelegate(); d != nil {
		d.CancelButtonTapped(c)
	}
}

func (c *CaptureController) shutterButtonTapped() {
	if !c.camera.CaptureStillImage() {
		c.log.Debugw("shutter ignored, camera not running")
	}
	if d := c.currentDelegate(); d != nil {
		d.ShutterButtonTapped(c)
	}
}

// StillImageCaptured implements camera.Delegate. It is called off the UI
// goroutine and hands the upright image to the delegate on it.
func (c *CaptureController) StillImageCaptured(_ *camera.Camera, photo *camera.Photo) {
	img := photo.Upright()
	fyne.Do(func() {
		if d := c.currentDelegate(); d != nil {
			d.StillImageCaptured(c, img)
		}
	})
}

// CaptureFailed implements camera.ErrorDelegate.
func (c *CaptureController) CaptureFailed(_ *camera.Camera, err error) {
	c.log.Warnw("photo capture failed", "error", err)
	fyne.Do(func() {
		if r, ok := c.currentDelegate().(ErrorReporter); ok {
			r.CaptureFailed(c, err)
		}
	})
}

// captureLayout places the preview full screen with the controls on top.
type captureLayout struct {
	c *CaptureController
}

func (l *captureLayout) Layout(_ []fyne.CanvasObject, size fyne.Size) {
	l.c.layoutSubviews(size)
}

func (l *captureLayout) MinSize(_ []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(200, 200)
}
