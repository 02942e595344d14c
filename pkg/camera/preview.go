package camera

import (
	"context"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultFrameInterval paces preview reads at ~30 FPS.
const DefaultFrameInterval = 33 * time.Millisecond

// VideoOutput streams preview frames from the running input to its layers.
type VideoOutput struct {
	interval time.Duration
	log      *zap.SugaredLogger

	mu     sync.Mutex
	layers []*PreviewLayer
	cancel context.CancelFunc
	done   chan struct{}
}

// NewVideoOutput returns a detached video output reading every interval.
func NewVideoOutput(interval time.Duration, log *zap.SugaredLogger) *VideoOutput {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &VideoOutput{interval: interval, log: log}
}

func (v *VideoOutput) start(in Input) {
	v.stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	v.mu.Lock()
	v.cancel = cancel
	v.done = done
	v.mu.Unlock()

	go v.pump(ctx, in, done)
}

func (v *VideoOutput) stop() {
	v.mu.Lock()
	cancel, done := v.cancel, v.done
	v.cancel, v.done = nil, nil
	v.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (v *VideoOutput) pump(ctx context.Context, in Input, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		frame, err := in.ReadFrame()
		if err != nil || frame == nil {
			v.log.Debugw("preview frame dropped", "device", in.Device().ID, "error", err)
			continue
		}

		v.mu.Lock()
		layers := append([]*PreviewLayer(nil), v.layers...)
		v.mu.Unlock()
		for _, l := range layers {
			l.deliver(frame, in.Device().Position)
		}
	}
}

func (v *VideoOutput) newLayer() *PreviewLayer {
	l := &PreviewLayer{output: v}
	v.mu.Lock()
	v.layers = append(v.layers, l)
	v.mu.Unlock()
	return l
}

func (v *VideoOutput) removeLayer(l *PreviewLayer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, cur := range v.layers {
		if cur == l {
			v.layers = append(v.layers[:i], v.layers[i+1:]...)
			return
		}
	}
}

// PreviewLayer renders the live stream of a session's video output.
type PreviewLayer struct {
	output *VideoOutput

	mu          sync.Mutex
	orientation VideoOrientation
	onFrame     func(image.Image)
	latest      image.Image
}

// SetVideoOrientation sets how incoming frames are rotated.
func (l *PreviewLayer) SetVideoOrientation(o VideoOrientation) {
	l.mu.Lock()
	l.orientation = o
	l.mu.Unlock()
}

// VideoOrientation returns the current preview orientation.
func (l *PreviewLayer) VideoOrientation() VideoOrientation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.orientation
}

// SetOnFrame registers fn to receive every rotated frame. fn runs on the
// output's goroutine.
func (l *PreviewLayer) SetOnFrame(fn func(image.Image)) {
	l.mu.Lock()
	l.onFrame = fn
	l.mu.Unlock()
}

// Frame returns the last rotated frame, or nil.
func (l *PreviewLayer) Frame() image.Image {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.latest
}

// Detach stops the layer from receiving frames.
func (l *PreviewLayer) Detach() {
	l.output.removeLayer(l)
}

// deliver rotates frame for display. Front camera frames are also flipped
// so the preview acts as a mirror.
func (l *PreviewLayer) deliver(frame image.Image, pos Position) {
	l.mu.Lock()
	o := l.orientation.frameOrientation()
	if pos == Front {
		o = o.displayMirrored()
	}
	img := Upright(frame, o)
	l.latest = img
	fn := l.onFrame
	l.mu.Unlock()

	if fn != nil {
		fn(img)
	}
}
