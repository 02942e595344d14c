package camera

import "fmt"

// InterfaceOrientation is the rotation of the on-screen UI.
type InterfaceOrientation int

const (
	OrientationUnknown InterfaceOrientation = iota
	OrientationPortrait
	OrientationPortraitUpsideDown
	OrientationLandscapeLeft
	OrientationLandscapeRight
)

func (o InterfaceOrientation) String() string {
	switch o {
	case OrientationUnknown:
		return "unknown"
	case OrientationPortrait:
		return "portrait"
	case OrientationPortraitUpsideDown:
		return "portrait-upside-down"
	case OrientationLandscapeLeft:
		return "landscape-left"
	case OrientationLandscapeRight:
		return "landscape-right"
	default:
		return fmt.Sprintf("InterfaceOrientation(%d)", int(o))
	}
}

// OrientationSource reports the current interface orientation.
// ok is false when no orientation can be read at all (no window or device).
type OrientationSource func() (o InterfaceOrientation, ok bool)

// ImageOrientation tags how stored pixels must be transformed to display
// upright. Mirrored variants flip horizontally before rotating.
type ImageOrientation int

const (
	Up    ImageOrientation = iota // no rotation
	Down                          // 180°
	Left                          // 90° counter-clockwise
	Right                         // 90° clockwise
	UpMirrored
	DownMirrored
	LeftMirrored
	RightMirrored
)

var imageOrientationNames = [...]string{
	Up:            "up",
	Down:          "down",
	Left:          "left",
	Right:         "right",
	UpMirrored:    "up-mirrored",
	DownMirrored:  "down-mirrored",
	LeftMirrored:  "left-mirrored",
	RightMirrored: "right-mirrored",
}

func (o ImageOrientation) String() string {
	if o >= 0 && int(o) < len(imageOrientationNames) {
		return imageOrientationNames[o]
	}
	return fmt.Sprintf("ImageOrientation(%d)", int(o))
}

// Mirrored reports whether the pixels are flipped horizontally.
func (o ImageOrientation) Mirrored() bool {
	return o >= UpMirrored && o <= RightMirrored
}

// Rotation returns the clockwise rotation in degrees applied after mirroring.
func (o ImageOrientation) Rotation() int {
	switch o {
	case Down, DownMirrored:
		return 180
	case Left, LeftMirrored:
		return 270
	case Right, RightMirrored:
		return 90
	default:
		return 0
	}
}

// EXIF returns the matching EXIF orientation tag (1-8).
func (o ImageOrientation) EXIF() int {
	switch o {
	case UpMirrored:
		return 2
	case Down:
		return 3
	case DownMirrored:
		return 4
	case LeftMirrored:
		return 5
	case Right:
		return 6
	case RightMirrored:
		return 7
	case Left:
		return 8
	default:
		return 1
	}
}

// orientationTable is indexed by interface orientation, then by position.
// The front sensor is mirrored relative to the screen.
var orientationTable = map[InterfaceOrientation][2]ImageOrientation{
	OrientationLandscapeLeft:      {Back: Down, Front: RightMirrored},
	OrientationUnknown:            {Back: Right, Front: LeftMirrored},
	OrientationPortrait:           {Back: Right, Front: LeftMirrored},
	OrientationPortraitUpsideDown: {Back: Left, Front: DownMirrored},
	OrientationLandscapeRight:     {Back: Up, Front: DownMirrored},
}

// NormalizedOrientation returns the tag that makes a photo taken by the
// camera at pos display upright for the given interface orientation.
// Unsupported orientations are treated as unknown.
func NormalizedOrientation(io InterfaceOrientation, pos Position) ImageOrientation {
	row, ok := orientationTable[io]
	if !ok {
		row = orientationTable[OrientationUnknown]
	}
	if pos == Front {
		return row[Front]
	}
	return row[Back]
}

// FallbackOrientation is used when the interface orientation cannot be read.
func FallbackOrientation(pos Position) ImageOrientation {
	if pos == Front {
		return RightMirrored
	}
	return Left
}

// VideoOrientation is the orientation applied to the live preview stream.
type VideoOrientation int

const (
	VideoPortrait VideoOrientation = iota
	VideoPortraitUpsideDown
	VideoLandscapeLeft
	VideoLandscapeRight
)

// VideoOrientationFor maps an interface orientation to a preview
// orientation, defaulting to portrait.
func VideoOrientationFor(io InterfaceOrientation) VideoOrientation {
	switch io {
	case OrientationPortraitUpsideDown:
		return VideoPortraitUpsideDown
	case OrientationLandscapeLeft:
		return VideoLandscapeLeft
	case OrientationLandscapeRight:
		return VideoLandscapeRight
	default:
		return VideoPortrait
	}
}

// displayMirrored returns the tag that shows o flipped left to right on
// screen. Mirroring happens before rotation, so quarter turns swap sides.
func (o ImageOrientation) displayMirrored() ImageOrientation {
	switch o {
	case Up:
		return UpMirrored
	case Down:
		return DownMirrored
	case Left:
		return RightMirrored
	case Right:
		return LeftMirrored
	default:
		return o
	}
}

// frameOrientation is the transform that renders a landscape-right native
// sensor frame in this video orientation.
func (v VideoOrientation) frameOrientation() ImageOrientation {
	switch v {
	case VideoPortraitUpsideDown:
		return Left
	case VideoLandscapeLeft:
		return Down
	case VideoLandscapeRight:
		return Up
	default:
		return Right
	}
}
