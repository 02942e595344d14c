package camera

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Decoder
	_ "image/png"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Photo is a single decoded still capture.
type Photo struct {
	// Image holds the pixels as the sensor delivered them.
	Image image.Image
	// Orientation tells how Image must be transformed to display upright.
	Orientation          ImageOrientation
	Position             Position
	InterfaceOrientation InterfaceOrientation
	CapturedAt           time.Time
}

// Upright returns the photo pixels transformed for display.
func (p *Photo) Upright() image.Image {
	return Upright(p.Image, p.Orientation)
}

// decodePhoto turns encoded still bytes into an image.
func decodePhoto(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrDecode)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	return img, nil
}

// Upright renders img according to o: mirror horizontally first (for the
// mirrored tags), then rotate clockwise by o.Rotation().
func Upright(img image.Image, o ImageOrientation) image.Image {
	if img == nil || o == Up {
		return img
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	// Move the source origin to (0, 0).
	m := f64.Aff3{1, 0, -float64(b.Min.X), 0, 1, -float64(b.Min.Y)}
	if o.Mirrored() {
		m = compose(f64.Aff3{-1, 0, w, 0, 1, 0}, m)
	}

	dw, dh := b.Dx(), b.Dy()
	switch o.Rotation() {
	case 90:
		m = compose(f64.Aff3{0, -1, h, 1, 0, 0}, m)
		dw, dh = dh, dw
	case 180:
		m = compose(f64.Aff3{-1, 0, w, 0, -1, h}, m)
	case 270:
		m = compose(f64.Aff3{0, 1, 0, -1, 0, w}, m)
		dw, dh = dh, dw
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.NearestNeighbor.Transform(dst, m, img, b, draw.Src, nil)
	return dst
}

// compose returns the affine transform applying inner, then outer.
func compose(outer, inner f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		outer[0]*inner[0] + outer[1]*inner[3],
		outer[0]*inner[1] + outer[1]*inner[4],
		outer[0]*inner[2] + outer[1]*inner[5] + outer[2],
		outer[3]*inner[0] + outer[4]*inner[3],
		outer[3]*inner[1] + outer[4]*inner[4],
		outer[3]*inner[2] + outer[4]*inner[5] + outer[5],
	}
}
