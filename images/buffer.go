package images

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/pkg/errors"
)

// PixelBuffer owns a rectangular grid of RGBA pixels. It is the unit of
// exchange between every transform in the library: each transform consumes
// a buffer and produces a new one, so no two components ever alias the
// same pixel storage.
//
// The zero value is not usable; construct with NewPixelBuffer or FromImage.
type PixelBuffer struct {
	width  int
	height int
	img    *image.NRGBA
}

// NewPixelBuffer allocates a width x height buffer filled per the given
// color mode.
//
// Arguments:
//   - width: Buffer width in pixels, must be positive.
//   - height: Buffer height in pixels, must be positive.
//   - mode: Fill policy for the fresh pixels.
//
// Returns:
//   - *PixelBuffer: The allocated buffer.
//   - error: ErrInvalidInput if either dimension is not positive.
func NewPixelBuffer(width, height int, mode ColorMode) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "buffer dimensions %dx%d", width, height)
	}
	buf := &PixelBuffer{
		width:  width,
		height: height,
		img:    image.NewNRGBA(image.Rect(0, 0, width, height)),
	}
	buf.Fill(mode.Background())
	return buf, nil
}

// FromImage copies an arbitrary image.Image into a new PixelBuffer,
// converting to non-premultiplied RGBA. The source is never retained.
func FromImage(src image.Image) (*PixelBuffer, error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "image dimensions %dx%d", w, h)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return &PixelBuffer{width: w, height: h, img: dst}, nil
}

// fromNRGBA wraps an already-owned *image.NRGBA without copying. The
// caller must not keep its own reference to img.
func fromNRGBA(img *image.NRGBA) *PixelBuffer {
	b := img.Bounds()
	return &PixelBuffer{width: b.Dx(), height: b.Dy(), img: img}
}

// Width returns the buffer width in pixels.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *PixelBuffer) Height() int {
	return b.height
}

// NRGBA exposes the underlying pixel storage for codecs and transforms.
// Callers must treat the returned image as read-only.
func (b *PixelBuffer) NRGBA() *image.NRGBA {
	return b.img
}

// At returns the pixel at (x, y). Out-of-range coordinates return the
// zero color.
func (b *PixelBuffer) At(x, y int) color.NRGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.NRGBA{}
	}
	return b.img.NRGBAAt(x, y)
}

// Set writes the pixel at (x, y). Out-of-range coordinates are ignored.
func (b *PixelBuffer) Set(x, y int, c color.NRGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.img.SetNRGBA(x, y, c)
}

// Fill overwrites every pixel with c.
func (b *PixelBuffer) Fill(c color.NRGBA) {
	draw.Draw(b.img, b.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Clone returns a deep copy of the buffer. Mutating the clone never
// affects the original.
func (b *PixelBuffer) Clone() *PixelBuffer {
	dup := image.NewNRGBA(b.img.Bounds())
	copy(dup.Pix, b.img.Pix)
	return &PixelBuffer{width: b.width, height: b.height, img: dup}
}

// Equal reports whether two buffers have identical dimensions and
// identical pixel values.
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.img.NRGBAAt(x, y) != other.img.NRGBAAt(x, y) {
				return false
			}
		}
	}
	return true
}
