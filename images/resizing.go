package images

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

// BoundingBox is the maximum width/height a resize result must fit
// within while preserving aspect ratio. Zero on an axis means that axis
// is unbounded; zero on both means "no resize".
type BoundingBox struct {
	// MaxWidth bounds the result width; 0 means unbounded.
	MaxWidth int
	// MaxHeight bounds the result height; 0 means unbounded.
	MaxHeight int
}

// Unbounded reports whether neither axis carries a bound.
func (b BoundingBox) Unbounded() bool {
	return b.MaxWidth == 0 && b.MaxHeight == 0
}

// Fit computes the largest dimensions that fit inside the box while
// preserving the width/height ratio of the source exactly. Fractional
// results are truncated toward zero to match integer pixel grids.
//
// Arguments:
//   - width: Source width, must be positive.
//   - height: Source height, must be positive.
//   - box: The bounding box; zero axes are unbounded.
//
// Returns:
//   - int, int: The fitted width and height.
//   - error: ErrInvalidInput for non-positive source dimensions or
//     negative bounds.
func Fit(width, height int, box BoundingBox) (int, int, error) {
	if width <= 0 || height <= 0 {
		return 0, 0, errors.Wrapf(ErrInvalidInput, "source dimensions %dx%d", width, height)
	}
	if box.MaxWidth < 0 || box.MaxHeight < 0 {
		return 0, 0, errors.Wrapf(ErrInvalidInput, "bounds %dx%d", box.MaxWidth, box.MaxHeight)
	}
	if box.Unbounded() {
		return width, height, nil
	}

	aspect := float64(width) / float64(height)

	switch {
	case box.MaxWidth == 0:
		// Height-bounded only.
		return int(float64(box.MaxHeight) * aspect), box.MaxHeight, nil
	case box.MaxHeight == 0:
		// Width-bounded only.
		return box.MaxWidth, int(float64(box.MaxWidth) / aspect), nil
	}

	switch {
	case aspect < 1:
		// Portrait: bind height first, fall back to width on overflow.
		newH := box.MaxHeight
		newW := int(float64(newH) * aspect)
		if newW > box.MaxWidth {
			newW = box.MaxWidth
			newH = int(float64(newW) / aspect)
		}
		return newW, newH, nil
	case aspect > 1:
		// Landscape: bind width first, fall back to height on overflow.
		newW := box.MaxWidth
		newH := int(float64(newW) / aspect)
		if newH > box.MaxHeight {
			newH = box.MaxHeight
			newW = int(float64(newH) * aspect)
		}
		return newW, newH, nil
	default:
		// Square: the tighter bound wins on both axes.
		dim := box.MaxWidth
		if box.MaxHeight < dim {
			dim = box.MaxHeight
		}
		return dim, dim, nil
	}
}

// Resample scales the whole buffer to newW x newH using Lanczos3
// interpolation. Smooth interpolation is a fidelity requirement here,
// not a performance choice; nearest-neighbor would alias.
func Resample(buf *PixelBuffer, newW, newH int) (*PixelBuffer, error) {
	if newW <= 0 || newH <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "resample dimensions %dx%d", newW, newH)
	}
	if newW == buf.Width() && newH == buf.Height() {
		return buf.Clone(), nil
	}
	out := resize.Resize(uint(newW), uint(newH), buf.NRGBA(), resize.Lanczos3)
	return FromImage(out)
}

// ResampleRegion scales the given source rectangle of the buffer into a
// new newW x newH buffer using Catmull-Rom interpolation, filling any
// area the source does not cover with the mode's background color. The
// source rectangle may extend outside the buffer.
func ResampleRegion(buf *PixelBuffer, region image.Rectangle, newW, newH int, mode ColorMode) (*PixelBuffer, error) {
	if newW <= 0 || newH <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "resample dimensions %dx%d", newW, newH)
	}
	if region.Dx() <= 0 || region.Dy() <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "source region %v", region)
	}
	dst, err := NewPixelBuffer(newW, newH, mode)
	if err != nil {
		return nil, err
	}
	src := buf.NRGBA()
	if !region.In(src.Bounds()) {
		// Re-host the region on a background-filled canvas so the scaler
		// only ever reads in-range pixels.
		padded, err := Crop(buf, region.Min.X, region.Min.Y, region.Dx(), region.Dy(), mode)
		if err != nil {
			return nil, err
		}
		src = padded.NRGBA()
		region = src.Bounds()
	}
	xdraw.CatmullRom.Scale(dst.NRGBA(), dst.NRGBA().Bounds(), src, region, xdraw.Src, nil)
	return dst, nil
}

// BoundedResize combines Fit and Resample: the buffer is scaled to the
// largest size that fits inside box while preserving aspect ratio. An
// unbounded box returns an untouched deep copy.
func BoundedResize(buf *PixelBuffer, box BoundingBox) (*PixelBuffer, error) {
	newW, newH, err := Fit(buf.Width(), buf.Height(), box)
	if err != nil {
		return nil, err
	}
	return Resample(buf, newW, newH)
}
