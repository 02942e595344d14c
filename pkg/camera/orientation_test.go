package camera

import (
	"image"
	"image/color"
	"testing"
)

func TestNormalizedOrientation(t *testing.T) {
	tests := []struct {
		io    InterfaceOrientation
		back  ImageOrientation
		front ImageOrientation
	}{
		{OrientationLandscapeLeft, Down, RightMirrored},
		{OrientationUnknown, Right, LeftMirrored},
		{OrientationPortrait, Right, LeftMirrored},
		{OrientationPortraitUpsideDown, Left, DownMirrored},
		{OrientationLandscapeRight, Up, DownMirrored},
		{InterfaceOrientation(42), Right, LeftMirrored}, // unsupported falls back to unknown
	}
	for _, tt := range tests {
		if got := NormalizedOrientation(tt.io, Back); got != tt.back {
			t.Errorf("NormalizedOrientation(%s, back) = %s, want %s", tt.io, got, tt.back)
		}
		if got := NormalizedOrientation(tt.io, Front); got != tt.front {
			t.Errorf("NormalizedOrientation(%s, front) = %s, want %s", tt.io, got, tt.front)
		}
	}
}

func TestNormalizedOrientationScenarios(t *testing.T) {
	got := NormalizedOrientation(OrientationPortrait, Back)
	if got != Right || got.Mirrored() || got.Rotation() != 90 {
		t.Errorf("back/portrait = %s, want unmirrored 90° right", got)
	}

	got = NormalizedOrientation(OrientationLandscapeRight, Front)
	if got != DownMirrored || !got.Mirrored() || got.Rotation() != 180 {
		t.Errorf("front/landscape-right = %s, want mirrored 180°", got)
	}
}

func TestFrontIsAlwaysMirrored(t *testing.T) {
	for io := OrientationUnknown; io <= OrientationLandscapeRight; io++ {
		if NormalizedOrientation(io, Back).Mirrored() {
			t.Errorf("back camera at %s should not be mirrored", io)
		}
		if !NormalizedOrientation(io, Front).Mirrored() {
			t.Errorf("front camera at %s should be mirrored", io)
		}
	}
}

func TestFallbackOrientation(t *testing.T) {
	if got := FallbackOrientation(Back); got != Left {
		t.Errorf("FallbackOrientation(back) = %s, want left", got)
	}
	if got := FallbackOrientation(Front); got != RightMirrored {
		t.Errorf("FallbackOrientation(front) = %s, want right-mirrored", got)
	}
}

func TestEXIF(t *testing.T) {
	want := map[ImageOrientation]int{
		Up: 1, UpMirrored: 2, Down: 3, DownMirrored: 4,
		LeftMirrored: 5, Right: 6, RightMirrored: 7, Left: 8,
	}
	for o, tag := range want {
		if got := o.EXIF(); got != tag {
			t.Errorf("%s.EXIF() = %d, want %d", o, got, tag)
		}
	}
}

func TestVideoOrientationFor(t *testing.T) {
	tests := []struct {
		io   InterfaceOrientation
		want VideoOrientation
	}{
		{OrientationPortrait, VideoPortrait},
		{OrientationPortraitUpsideDown, VideoPortraitUpsideDown},
		{OrientationLandscapeLeft, VideoLandscapeLeft},
		{OrientationLandscapeRight, VideoLandscapeRight},
		{OrientationUnknown, VideoPortrait},
	}
	for _, tt := range tests {
		if got := VideoOrientationFor(tt.io); got != tt.want {
			t.Errorf("VideoOrientationFor(%s) = %d, want %d", tt.io, got, tt.want)
		}
	}
}

func TestParsePosition(t *testing.T) {
	for in, want := range map[string]Position{"back": Back, "Front": Front, " rear ": Back} {
		got, err := ParsePosition(in)
		if err != nil || got != want {
			t.Errorf("ParsePosition(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParsePosition("side"); err == nil {
		t.Error("ParsePosition(side) should fail")
	}
}

func TestDisplayMirroredFlipsScreenHorizontally(t *testing.T) {
	// Showing a frame through o and through its mirrored tag must give the
	// same bounds with the columns swapped.
	strip := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := 0; i < 6; i++ {
		strip.Set(i%3, i/3, color.RGBA{R: uint8(40 * i), G: 0x80, A: 0xff})
	}

	for _, o := range []ImageOrientation{Up, Down, Left, Right} {
		plain := Upright(strip, o)
		flipped := Upright(strip, o.displayMirrored())
		b := plain.Bounds()
		if flipped.Bounds() != b {
			t.Fatalf("%s: bounds %v vs %v", o, flipped.Bounds(), b)
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				want := color.RGBAModel.Convert(plain.At(b.Max.X-1-(x-b.Min.X), y))
				if got := color.RGBAModel.Convert(flipped.At(x, y)); got != want {
					t.Errorf("%s: pixel (%d,%d) = %v, want %v", o, x, y, got, want)
				}
			}
		}
	}
}
