package camera

// HandleCapture delivers a capture result as the photo output would.
func (c *Camera) HandleCapture(res CaptureResult) {
	c.handleCapture(res)
}
