package ui

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/intothevoid/shutter/pkg/camera"
)

// PreviewView is a widget showing the frames of a camera.PreviewLayer.
type PreviewView struct {
	widget.BaseWidget

	// mu ensures we don't read / write the image at the same time
	mu         sync.Mutex
	image      *canvas.Image
	background *canvas.Rectangle
	layer      *camera.PreviewLayer
}

// NewPreviewView is used to create widget instance
func NewPreviewView() *PreviewView {
	v := &PreviewView{}
	v.ExtendBaseWidget(v)

	v.image = canvas.NewImageFromImage(nil)
	v.image.FillMode = canvas.ImageFillContain
	v.background = canvas.NewRectangle(color.Black)
	return v
}

// Bind routes the frames of layer into the view, replacing any previous
// layer. A nil layer leaves the view black.
func (v *PreviewView) Bind(layer *camera.PreviewLayer) {
	v.mu.Lock()
	old := v.layer
	v.layer = layer
	v.mu.Unlock()

	if old != nil && old != layer {
		old.SetOnFrame(nil)
	}
	if layer != nil {
		layer.SetOnFrame(v.UpdateFrame)
	}
}

// Layer returns the bound preview layer.
func (v *PreviewView) Layer() *camera.PreviewLayer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.layer
}

// UpdateFrame is a thread safe way to send a new image
func (v *PreviewView) UpdateFrame(img image.Image) {
	fyne.Do(func() {
		v.mu.Lock()
		v.image.Image = img
		v.mu.Unlock()
		v.image.Refresh()
	})
}

// Frame returns the image currently shown.
func (v *PreviewView) Frame() image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.image.Image
}

// CreateRenderer is used to create a preview renderer
func (v *PreviewView) CreateRenderer() fyne.WidgetRenderer {
	return &previewRenderer{v}
}

// previewRenderer implements the logic to draw the widget
type previewRenderer struct {
	v *PreviewView
}

// Destroy implements [fyne.WidgetRenderer].
func (r *previewRenderer) Destroy() {}

// MinSize implements [fyne.WidgetRenderer].
func (r *previewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(64, 64)
}

// Objects implements [fyne.WidgetRenderer].
func (r *previewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.v.background, r.v.image}
}

// Refresh implements [fyne.WidgetRenderer].
func (r *previewRenderer) Refresh() {
	r.v.background.Refresh()
	r.v.image.Refresh()
}

func (r *previewRenderer) Layout(s fyne.Size) {
	r.v.background.Resize(s)
	r.v.image.Resize(s)
}
