package ui

import (
	"fyne.io/fyne/v2"
	"github.com/intothevoid/shutter/pkg/camera"
)

// DeviceOrientation reads the interface orientation from the running fyne
// app. Desktop windows report landscape-right, the native webcam layout.
func DeviceOrientation() (camera.InterfaceOrientation, bool) {
	if fyne.CurrentApp() == nil {
		return camera.OrientationUnknown, false
	}
	dev := fyne.CurrentDevice()
	if dev == nil {
		return camera.OrientationUnknown, false
	}
	if !dev.IsMobile() {
		return camera.OrientationLandscapeRight, true
	}
	return mapOrientation(dev.Orientation()), true
}

func mapOrientation(o fyne.DeviceOrientation) camera.InterfaceOrientation {
	switch o {
	case fyne.OrientationVertical:
		return camera.OrientationPortrait
	case fyne.OrientationVerticalUpsideDown:
		return camera.OrientationPortraitUpsideDown
	case fyne.OrientationHorizontalLeft:
		return camera.OrientationLandscapeLeft
	case fyne.OrientationHorizontalRight:
		return camera.OrientationLandscapeRight
	default:
		return camera.OrientationUnknown
	}
}

// Version returns the application version from the fyne metadata
// (FyneApp.toml). ok is false when none was packaged.
func Version() (v string, ok bool) {
	a := fyne.CurrentApp()
	if a == nil {
		return "", false
	}
	v = a.Metadata().Version
	return v, v != ""
}
