package camera

import (
	"sync"

	"go.uber.org/zap"
)

// Output consumes data from the session's input while it runs.
type Output interface {
	start(in Input)
	stop()
}

// CaptureResult is the single outcome of one still capture request.
type CaptureResult struct {
	Data   []byte
	Device Device
	Err    error
}

// PhotoOutput produces still captures from the running input.
type PhotoOutput struct {
	log *zap.SugaredLogger

	mu    sync.Mutex
	input Input
}

// NewPhotoOutput returns a detached photo output.
func NewPhotoOutput(log *zap.SugaredLogger) *PhotoOutput {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &PhotoOutput{log: log}
}

func (o *PhotoOutput) start(in Input) {
	o.mu.Lock()
	o.input = in
	o.mu.Unlock()
}

func (o *PhotoOutput) stop() {
	o.mu.Lock()
	o.input = nil
	o.mu.Unlock()
}

// Capture requests one still. The returned channel yields exactly one
// result and is then closed. It returns nil when the output is not running.
func (o *PhotoOutput) Capture(settings PhotoSettings) <-chan CaptureResult {
	o.mu.Lock()
	in := o.input
	o.mu.Unlock()
	if in == nil {
		return nil
	}

	ch := make(chan CaptureResult, 1)
	go func() {
		defer close(ch)
		data, err := in.CapturePhoto(settings)
		o.log.Debugw("still captured", "device", in.Device().ID, "bytes", len(data), "error", err)
		ch <- CaptureResult{Data: data, Device: in.Device(), Err: err}
	}()
	return ch
}
