package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/intothevoid/shutter/pkg/camera"
	"github.com/intothevoid/shutter/pkg/camera/opencv"
	"github.com/intothevoid/shutter/pkg/config"
	"github.com/intothevoid/shutter/pkg/logging"
	"github.com/intothevoid/shutter/pkg/ui"
	"go.uber.org/zap"
)

// host presents the capture controller and shows the photo it returns.
type host struct {
	app      fyne.App
	cfg      *config.Config
	log      *zap.SugaredLogger
	photo    *canvas.Image
	position camera.Position

	captureWindow fyne.Window
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	// 1. Load configuration and logging
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 2. Setup the Fyne UI App
	myApp := app.NewWithID("io.github.intothevoid.shutter")
	if v, ok := ui.Version(); ok {
		log.Infof("Framework Version: %s", v)
	}

	h := &host{
		app:      myApp,
		cfg:      cfg,
		log:      log,
		photo:    canvas.NewImageFromImage(nil),
		position: cfg.Position(),
	}
	h.photo.FillMode = canvas.ImageFillContain
	h.photo.SetMinSize(fyne.NewSize(320, 240))

	positions := widget.NewRadioGroup([]string{camera.Back.String(), camera.Front.String()}, func(s string) {
		if p, err := camera.ParsePosition(s); err == nil {
			h.position = p
		}
	})
	positions.Horizontal = true
	positions.SetSelected(h.position.String())

	// 3. Layout and Run
	window := myApp.NewWindow("Shutter")
	window.SetContent(container.NewBorder(
		nil,
		container.NewHBox(positions, widget.NewButton("Take Photo", h.startCapture)),
		nil, nil,
		h.photo,
	))
	window.Resize(fyne.NewSize(640, 480))
	window.ShowAndRun()
}

func (h *host) startCapture() {
	if h.captureWindow != nil {
		return
	}

	backend := opencv.NewBackend(opencv.Config{
		BackDevice:  *h.cfg.Camera.BackDevice,
		FrontDevice: *h.cfg.Camera.FrontDevice,
		Width:       h.cfg.Camera.Width,
		Height:      h.cfg.Camera.Height,
	}, h.log.Named("opencv"))
	cam := camera.New(backend,
		camera.WithLogger(h.log.Named("camera")),
		camera.WithOrientationSource(ui.DeviceOrientation),
		camera.WithFrameInterval(h.cfg.FrameInterval()),
		camera.WithPhotoSettings(h.cfg.PhotoSettings()),
		camera.WithPosition(h.position),
	)

	controller := ui.NewCaptureController(cam, ui.WithControllerLogger(h.log.Named("ui")))
	controller.SetDelegate(h)

	w := h.app.NewWindow("Camera")
	w.SetFullScreen(true)
	w.SetOnClosed(func() {
		controller.Dismiss()
		h.captureWindow = nil
	})
	h.captureWindow = w
	controller.Present(w)
	w.Show()
}

func (h *host) dismiss() {
	if h.captureWindow != nil {
		h.captureWindow.Close()
	}
}

// ShutterButtonTapped implements ui.ControllerDelegate.
func (h *host) ShutterButtonTapped(*ui.CaptureController) {}

// CancelButtonTapped implements ui.ControllerDelegate.
func (h *host) CancelButtonTapped(*ui.CaptureController) {
	h.dismiss()
}

// StillImageCaptured implements ui.ControllerDelegate.
func (h *host) StillImageCaptured(_ *ui.CaptureController, img image.Image) {
	h.photo.Image = img
	h.photo.Refresh()
	h.dismiss()
}

// CaptureFailed implements ui.ErrorReporter.
func (h *host) CaptureFailed(_ *ui.CaptureController, err error) {
	h.log.Warnw("no photo", "error", err)
}
