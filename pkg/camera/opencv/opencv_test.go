package opencv

import (
	"testing"

	"github.com/intothevoid/shutter/pkg/camera"
)

func TestDevicesSkipsDisabledPositions(t *testing.T) {
	b := NewBackend(Config{BackDevice: -1, FrontDevice: -1}, nil)
	devices, err := b.Devices()
	if err != nil {
		t.Fatalf("Devices: %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("got %d devices, want 0", len(devices))
	}
}

func TestIndex(t *testing.T) {
	b := NewBackend(Config{BackDevice: 2, FrontDevice: 5}, nil)
	if got := b.index(camera.Back); got != 2 {
		t.Errorf("back index = %d, want 2", got)
	}
	if got := b.index(camera.Front); got != 5 {
		t.Errorf("front index = %d, want 5", got)
	}
}

func TestOpenRejectsInvalidID(t *testing.T) {
	b := NewBackend(Config{}, nil)
	if _, err := b.Open(camera.Device{ID: "usb-cam"}); err == nil {
		t.Error("expected an error for a non-numeric device ID")
	}
}
