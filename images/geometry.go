package images

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

// FlipAxis selects the reflection axis for Flip.
type FlipAxis int

const (
	// FlipHorizontal mirrors left/right.
	FlipHorizontal FlipAxis = iota
	// FlipVertical mirrors top/bottom.
	FlipVertical
	// FlipBoth mirrors across both axes.
	FlipBoth
)

// RotationAngle selects the rotation direction for Rotate.
type RotationAngle int

const (
	// RotateCW90 rotates 90 degrees clockwise.
	RotateCW90 RotationAngle = iota
	// RotateCCW90 rotates 90 degrees counter-clockwise.
	RotateCCW90
)

// Degrees returns the counter-clockwise degree value of the angle. The
// rotation primitive rotates counter-clockwise by convention, so the
// clockwise direction maps to the larger value.
func (a RotationAngle) Degrees() int {
	if a == RotateCW90 {
		return 270
	}
	return 90
}

// Flip reflects the buffer across the given axis and returns a new
// buffer of the same dimensions. Flipping twice across the same axis
// restores the original pixels exactly.
func Flip(buf *PixelBuffer, axis FlipAxis) *PixelBuffer {
	switch axis {
	case FlipVertical:
		return fromNRGBA(imaging.FlipV(buf.NRGBA()))
	case FlipBoth:
		return fromNRGBA(imaging.Rotate180(buf.NRGBA()))
	default:
		return fromNRGBA(imaging.FlipH(buf.NRGBA()))
	}
}

// Rotate turns the buffer 90 degrees in the given direction, swapping
// width and height. Rotation is a pure permutation of pixels: rotating
// clockwise and then counter-clockwise restores the original buffer
// pixel-for-pixel.
func Rotate(buf *PixelBuffer, angle RotationAngle) *PixelBuffer {
	if angle.Degrees() == 270 {
		return fromNRGBA(imaging.Rotate270(buf.NRGBA()))
	}
	return fromNRGBA(imaging.Rotate90(buf.NRGBA()))
}

// Crop copies the w x h source rectangle at (x, y) into a new w x h
// buffer. The requested rectangle may extend outside the source bounds;
// any out-of-range area is filled with the mode's background color
// rather than treated as an error.
//
// Arguments:
//   - buf: Source buffer.
//   - x, y: Top-left corner of the source rectangle; may be negative.
//   - w, h: Crop dimensions, must be positive.
//   - mode: Background fill for out-of-range area.
//
// Returns:
//   - *PixelBuffer: The cropped buffer.
//   - error: ErrInvalidInput if w or h is not positive.
func Crop(buf *PixelBuffer, x, y, w, h int, mode ColorMode) (*PixelBuffer, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "crop dimensions %dx%d", w, h)
	}
	dst, err := NewPixelBuffer(w, h, mode)
	if err != nil {
		return nil, err
	}
	// Clip the requested rectangle against the source and copy 1:1.
	want := image.Rect(x, y, x+w, y+h)
	have := want.Intersect(buf.NRGBA().Bounds())
	if !have.Empty() {
		dp := image.Pt(have.Min.X-x, have.Min.Y-y)
		xdraw.Copy(dst.NRGBA(), dp, buf.NRGBA(), have, xdraw.Src, nil)
	}
	return dst, nil
}

// ExpandCanvas places the buffer on a larger newW x newH canvas filled
// with the mode's background color, centering the original content. The
// offset on each axis is floor((new-old)/2), or zero when the new size
// does not exceed the old on that axis. Pixels are copied 1:1 with no
// resampling.
func ExpandCanvas(buf *PixelBuffer, newW, newH int, mode ColorMode) (*PixelBuffer, error) {
	if newW <= 0 || newH <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "canvas dimensions %dx%d", newW, newH)
	}
	dst, err := NewPixelBuffer(newW, newH, mode)
	if err != nil {
		return nil, err
	}
	var dx, dy int
	if newW > buf.Width() {
		dx = (newW - buf.Width()) / 2
	}
	if newH > buf.Height() {
		dy = (newH - buf.Height()) / 2
	}
	xdraw.Copy(dst.NRGBA(), image.Pt(dx, dy), buf.NRGBA(), buf.NRGBA().Bounds(), xdraw.Src, nil)
	return dst, nil
}
