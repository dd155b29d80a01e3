package images

import "github.com/pkg/errors"

// OrientationCode is an EXIF orientation tag value. Valid codes are 1
// through 8; code 1 means the image is already upright.
type OrientationCode int

// OrientationUpright is the EXIF code for an image that needs no
// correction.
const OrientationUpright OrientationCode = 1

// Valid reports whether the code is within the EXIF-defined range.
func (c OrientationCode) Valid() bool {
	return c >= 1 && c <= 8
}

// GeometryOp identifies a single corrective flip or rotation primitive.
type GeometryOp int

const (
	// OpFlipH reflects across the vertical axis (left/right mirror).
	OpFlipH GeometryOp = iota
	// OpFlipV reflects across the horizontal axis (top/bottom mirror).
	OpFlipV
	// OpFlipBoth reflects across both axes, equivalent to a 180 rotation.
	OpFlipBoth
	// OpRotateCW rotates 90 degrees clockwise.
	OpRotateCW
	// OpRotateCCW rotates 90 degrees counter-clockwise.
	OpRotateCCW
)

// String returns the op name for debug output.
func (op GeometryOp) String() string {
	switch op {
	case OpFlipH:
		return "flip-h"
	case OpFlipV:
		return "flip-v"
	case OpFlipBoth:
		return "flip-both"
	case OpRotateCW:
		return "rotate-cw"
	case OpRotateCCW:
		return "rotate-ccw"
	}
	return "unknown"
}

// orientationOps is the EXIF standard's corrective mapping from tag value
// to the ordered op sequence that makes the image upright.
var orientationOps = map[OrientationCode][]GeometryOp{
	1: {},
	2: {OpFlipH},
	3: {OpFlipBoth},
	4: {OpFlipV},
	5: {OpRotateCW, OpFlipH},
	6: {OpRotateCW},
	7: {OpFlipH, OpRotateCW},
	8: {OpRotateCCW},
}

// ResolveOrientation maps an EXIF orientation code to the ordered list of
// geometric operations that will make the image upright. Code 1 resolves
// to an empty list. Codes outside 1-8 fail with ErrInvalidInput; they are
// never silently clamped.
func ResolveOrientation(code OrientationCode) ([]GeometryOp, error) {
	ops, ok := orientationOps[code]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidInput, "orientation code %d out of range 1-8", code)
	}
	return ops, nil
}

// ApplyOrientation runs the corrective op sequence for code against the
// buffer and returns the upright result. For code 1 the buffer is
// returned unchanged.
func ApplyOrientation(buf *PixelBuffer, code OrientationCode) (*PixelBuffer, error) {
	ops, err := ResolveOrientation(code)
	if err != nil {
		return nil, err
	}
	for _, op := range ops {
		switch op {
		case OpFlipH:
			buf = Flip(buf, FlipHorizontal)
		case OpFlipV:
			buf = Flip(buf, FlipVertical)
		case OpFlipBoth:
			buf = Flip(buf, FlipBoth)
		case OpRotateCW:
			buf = Rotate(buf, RotateCW90)
		case OpRotateCCW:
			buf = Rotate(buf, RotateCCW90)
		}
	}
	return buf, nil
}
