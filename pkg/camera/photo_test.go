package camera

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
)

// strip returns a 3x1 image: red, green, blue from left to right.
func strip() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, red)
	img.Set(1, 0, green)
	img.Set(2, 0, blue)
	return img
}

func colorAt(img image.Image, x, y int) color.RGBA {
	b := img.Bounds()
	return color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
}

func TestUpright(t *testing.T) {
	tests := []struct {
		o    ImageOrientation
		w, h int
		// expected pixels in row-major order
		want []color.RGBA
	}{
		{Up, 3, 1, []color.RGBA{red, green, blue}},
		{Down, 3, 1, []color.RGBA{blue, green, red}},
		{Right, 1, 3, []color.RGBA{red, green, blue}},
		{Left, 1, 3, []color.RGBA{blue, green, red}},
		{UpMirrored, 3, 1, []color.RGBA{blue, green, red}},
		{DownMirrored, 3, 1, []color.RGBA{red, green, blue}},
		{RightMirrored, 1, 3, []color.RGBA{blue, green, red}},
		{LeftMirrored, 1, 3, []color.RGBA{red, green, blue}},
	}
	for _, tt := range tests {
		got := Upright(strip(), tt.o)
		if got.Bounds().Dx() != tt.w || got.Bounds().Dy() != tt.h {
			t.Errorf("%s: size %dx%d, want %dx%d", tt.o, got.Bounds().Dx(), got.Bounds().Dy(), tt.w, tt.h)
			continue
		}
		i := 0
		for y := 0; y < tt.h; y++ {
			for x := 0; x < tt.w; x++ {
				if c := colorAt(got, x, y); c != tt.want[i] {
					t.Errorf("%s: pixel (%d,%d) = %v, want %v", tt.o, x, y, c, tt.want[i])
				}
				i++
			}
		}
	}
}

func TestUprightOffsetBounds(t *testing.T) {
	src := strip().(*image.RGBA).SubImage(image.Rect(1, 0, 3, 1))
	got := Upright(src, Right)
	if got.Bounds() != image.Rect(0, 0, 1, 2) {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if c := colorAt(got, 0, 0); c != green {
		t.Errorf("top = %v, want green", c)
	}
	if c := colorAt(got, 0, 1); c != blue {
		t.Errorf("bottom = %v, want blue", c)
	}
}

func TestDecodePhoto(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, strip()); err != nil {
		t.Fatal(err)
	}
	img, err := decodePhoto(buf.Bytes())
	if err != nil {
		t.Fatalf("decodePhoto: %v", err)
	}
	if img.Bounds().Dx() != 3 {
		t.Errorf("width = %d, want 3", img.Bounds().Dx())
	}

	for _, data := range [][]byte{nil, []byte("not an image")} {
		if _, err := decodePhoto(data); !errors.Is(err, ErrDecode) {
			t.Errorf("decodePhoto(%q) error = %v, want ErrDecode", data, err)
		}
	}
}
