// Package pipeline orchestrates the image manipulation flow: load,
// orientation correction, geometric transforms, format conversion and
// output. A Pipeline owns exactly one pixel buffer at a time; every
// transform replaces it wholesale, so failures never leave partial
// mutation visible.
package pipeline

import (
	"fmt"
	"image"
	"io"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-img/codec"
	"github.com/nvr-ai/go-img/images"
	"github.com/nvr-ai/go-img/metadata"
	"github.com/nvr-ai/go-img/util"
)

// ImageState is the lifecycle state a Pipeline carries between
// operations: the current buffer, its format tag, and the EXIF
// orientation if the source carried one.
type ImageState struct {
	// Buffer is the current pixel data. Replaced, never mutated in place.
	Buffer *images.PixelBuffer
	// Format is the current format tag; changed only by ConvertFormat.
	Format images.ImageFormat
	// Orientation is the EXIF orientation code when HasOrientation.
	Orientation images.OrientationCode
	// HasOrientation reports whether the source carried EXIF orientation
	// metadata.
	HasOrientation bool
}

// Pipeline sequences transforms over a single loaded image.
type Pipeline struct {
	state     ImageState
	debugMode bool
}

// Load reads and decodes the image at path. The format is inferred from
// the file extension and verified against the magic bytes; EXIF
// orientation is read when present (JPEG only), and a malformed or
// absent EXIF block degrades to "no metadata".
//
// Arguments:
//   - path: Image file path.
//
// Returns:
//   - *Pipeline: Pipeline owning the decoded buffer.
//   - error: images.ErrFileNotFound, images.ErrUnsupportedFormat or
//     images.ErrDecodeFailure.
func Load(path string) (*Pipeline, error) {
	data, err := util.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Use the extension as a decode hint; unrecognized extensions fall
	// back to sniffing the magic bytes.
	hint, _ := codec.FormatFromPath(path)
	return LoadBytes(data, hint)
}

// LoadBytes decodes in-memory image bytes. When hint is empty the format
// is sniffed from the magic bytes.
func LoadBytes(data []byte, hint images.ImageFormat) (*Pipeline, error) {
	buf, format, err := codec.Decode(data, hint)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{state: ImageState{Buffer: buf, Format: format}}
	if format == images.FormatJPEG {
		if code, ok := metadata.ReadOrientation(data); ok {
			p.state.Orientation = code
			p.state.HasOrientation = true
		}
	}
	return p, nil
}

// SetDebugMode enables or disables debug logging.
func (p *Pipeline) SetDebugMode(enabled bool) {
	p.debugMode = enabled
}

func (p *Pipeline) debugf(format string, args ...interface{}) {
	if p.debugMode {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

// Width returns the current buffer width in pixels.
func (p *Pipeline) Width() int {
	return p.state.Buffer.Width()
}

// Height returns the current buffer height in pixels.
func (p *Pipeline) Height() int {
	return p.state.Buffer.Height()
}

// Format returns the current format tag.
func (p *Pipeline) Format() images.ImageFormat {
	return p.state.Format
}

// Buffer exposes the current pixel buffer, primarily for tests and
// read-only inspection.
func (p *Pipeline) Buffer() *images.PixelBuffer {
	return p.state.Buffer
}

// Clone returns an independent copy of the pipeline. The pixel buffer is
// deep-copied, so transforms on the clone never affect the original.
func (p *Pipeline) Clone() *Pipeline {
	return &Pipeline{
		state: ImageState{
			Buffer:         p.state.Buffer.Clone(),
			Format:         p.state.Format,
			Orientation:    p.state.Orientation,
			HasOrientation: p.state.HasOrientation,
		},
		debugMode: p.debugMode,
	}
}

// colorMode derives the background fill policy from the current format.
func (p *Pipeline) colorMode() images.ColorMode {
	return images.ColorModeFor(p.state.Format)
}

// CorrectOrientation applies the EXIF corrective transform sequence and
// resets the stored orientation to upright, so re-reading the corrected
// image reports "already upright". Idempotent: with no metadata, or
// metadata already at code 1, this is a no-op.
func (p *Pipeline) CorrectOrientation() error {
	if !p.state.HasOrientation {
		return nil
	}
	buf, err := images.ApplyOrientation(p.state.Buffer, p.state.Orientation)
	if err != nil {
		return err
	}
	p.debugf("corrected orientation %d -> 1", p.state.Orientation)
	p.state.Buffer = buf
	p.state.Orientation = images.OrientationUpright
	return nil
}

// Flip mirrors the image across the given axis.
func (p *Pipeline) Flip(axis images.FlipAxis) {
	p.state.Buffer = images.Flip(p.state.Buffer, axis)
}

// Rotate turns the image 90 degrees in the given direction.
func (p *Pipeline) Rotate(angle images.RotationAngle) {
	p.state.Buffer = images.Rotate(p.state.Buffer, angle)
}

// Crop replaces the image with the w x h region at (x, y). Out-of-range
// area fills with the format's background color.
func (p *Pipeline) Crop(x, y, w, h int) error {
	buf, err := images.Crop(p.state.Buffer, x, y, w, h, p.colorMode())
	if err != nil {
		return err
	}
	p.state.Buffer = buf
	return nil
}

// ExpandCanvas places the image centered on a larger background-filled
// canvas.
func (p *Pipeline) ExpandCanvas(newW, newH int) error {
	buf, err := images.ExpandCanvas(p.state.Buffer, newW, newH, p.colorMode())
	if err != nil {
		return err
	}
	p.state.Buffer = buf
	return nil
}

// Avatar produces a size x size square image: orientation correction,
// then a centered square crop of side min(width, height), then a smooth
// downsample to the requested size.
//
// Arguments:
//   - size: Output side length, must be positive.
//
// Returns:
//   - error: images.ErrInvalidInput for non-positive size.
func (p *Pipeline) Avatar(size int) error {
	if size <= 0 {
		return errors.Wrapf(images.ErrInvalidInput, "avatar size %d", size)
	}
	if err := p.CorrectOrientation(); err != nil {
		return err
	}
	w, h := p.Width(), p.Height()
	side := w
	if h < side {
		side = h
	}
	x := (w - side) / 2
	y := (h - side) / 2
	p.debugf("avatar: crop %dx%d at (%d,%d), resample to %dx%d", side, side, x, y, size, size)
	region := image.Rect(x, y, x+side, y+side)
	buf, err := images.ResampleRegion(p.state.Buffer, region, size, size, p.colorMode())
	if err != nil {
		return err
	}
	p.state.Buffer = buf
	return nil
}

// Thumbnail resizes the image to fit inside maxWidth x maxHeight while
// preserving aspect ratio, after orientation correction. Zero on an axis
// means unbounded; (0, 0) means no resize and is the format-conversion-
// only path — orientation correction still runs.
func (p *Pipeline) Thumbnail(maxWidth, maxHeight int) error {
	if maxWidth < 0 || maxHeight < 0 {
		return errors.Wrapf(images.ErrInvalidInput, "thumbnail bounds %dx%d", maxWidth, maxHeight)
	}
	if err := p.CorrectOrientation(); err != nil {
		return err
	}
	box := images.BoundingBox{MaxWidth: maxWidth, MaxHeight: maxHeight}
	if box.Unbounded() {
		return nil
	}
	buf, err := images.BoundedResize(p.state.Buffer, box)
	if err != nil {
		return err
	}
	p.debugf("thumbnail: %dx%d -> %dx%d", p.Width(), p.Height(), buf.Width(), buf.Height())
	p.state.Buffer = buf
	return nil
}

// ConvertFormat changes only the format tag; pixel data is untouched.
// Subsequent output encodes using the new format.
func (p *Pipeline) ConvertFormat(target images.ImageFormat) error {
	if !target.Valid() {
		return errors.Wrapf(images.ErrUnsupportedFormat, "target format %q", target)
	}
	p.state.Format = target
	return nil
}

// Output encodes the current buffer in the current format. JPEG output
// re-attaches corrected EXIF orientation metadata when the source
// carried it, since the baseline encoder does not preserve it.
func (p *Pipeline) Output() ([]byte, error) {
	data, err := codec.Encode(p.state.Buffer, p.state.Format)
	if err != nil {
		return nil, err
	}
	if p.state.Format == images.FormatJPEG && p.state.HasOrientation {
		data, err = metadata.RewriteOrientation(data, p.state.Orientation)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

// Display encodes the image and writes it to w, for callers streaming
// the result instead of saving it.
func (p *Pipeline) Display(w io.Writer) error {
	data, err := p.Output()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "write output")
}

// Save encodes the image and writes it to path.
func (p *Pipeline) Save(path string) error {
	data, err := p.Output()
	if err != nil {
		return err
	}
	return util.WriteFile(path, data)
}
