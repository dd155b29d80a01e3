// Package codec converts between encoded image bytes and pixel buffers.
// JPEG, PNG and GIF are the only supported formats; encoding quality is
// fixed and not configurable.
package codec

import (
	"bytes"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-img/images"
)

// JPEGQuality is the fixed quality used for all JPEG output.
const JPEGQuality = 50

var (
	magicJPEG = []byte{0xff, 0xd8, 0xff}
	magicPNG  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	magicGIF  = []byte("GIF8")
)

// Sniff detects the image format from the leading magic bytes.
//
// Arguments:
//   - data: Encoded image bytes.
//
// Returns:
//   - images.ImageFormat: The detected format.
//   - error: images.ErrUnsupportedFormat when the bytes match none of
//     JPEG, PNG or GIF.
func Sniff(data []byte) (images.ImageFormat, error) {
	switch {
	case bytes.HasPrefix(data, magicJPEG):
		return images.FormatJPEG, nil
	case bytes.HasPrefix(data, magicPNG):
		return images.FormatPNG, nil
	case bytes.HasPrefix(data, magicGIF):
		return images.FormatGIF, nil
	}
	return "", errors.Wrap(images.ErrUnsupportedFormat, "unrecognized magic bytes")
}

// FormatFromPath maps a file extension to a format.
func FormatFromPath(path string) (images.ImageFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return images.FormatJPEG, nil
	case ".png":
		return images.FormatPNG, nil
	case ".gif":
		return images.FormatGIF, nil
	}
	return "", errors.Wrapf(images.ErrUnsupportedFormat, "extension %q", filepath.Ext(path))
}

// Decode parses encoded bytes into a pixel buffer. When hint is empty the
// format is sniffed from the magic bytes.
//
// Arguments:
//   - data: Encoded image bytes.
//   - hint: Expected format, or "" to sniff.
//
// Returns:
//   - *images.PixelBuffer: The decoded pixels.
//   - images.ImageFormat: The format actually decoded.
//   - error: images.ErrUnsupportedFormat for unknown formats,
//     images.ErrDecodeFailure when the codec rejects the bytes.
func Decode(data []byte, hint images.ImageFormat) (*images.PixelBuffer, images.ImageFormat, error) {
	format := hint
	if format == "" {
		sniffed, err := Sniff(data)
		if err != nil {
			return nil, "", err
		}
		format = sniffed
	}
	if !format.Valid() {
		return nil, "", errors.Wrapf(images.ErrUnsupportedFormat, "format %q", format)
	}

	r := bytes.NewReader(data)
	switch format {
	case images.FormatJPEG:
		img, err := jpeg.Decode(r)
		if err != nil {
			return nil, "", errors.Wrap(images.ErrDecodeFailure, err.Error())
		}
		buf, err := images.FromImage(img)
		return buf, format, err
	case images.FormatPNG:
		img, err := png.Decode(r)
		if err != nil {
			return nil, "", errors.Wrap(images.ErrDecodeFailure, err.Error())
		}
		buf, err := images.FromImage(img)
		return buf, format, err
	default:
		img, err := gif.Decode(r)
		if err != nil {
			return nil, "", errors.Wrap(images.ErrDecodeFailure, err.Error())
		}
		buf, err := images.FromImage(img)
		return buf, format, err
	}
}

// Encode serializes a pixel buffer in the given format. JPEG uses the
// fixed quality constant, PNG uses best compression, GIF uses the
// default palette quantization.
func Encode(buf *images.PixelBuffer, format images.ImageFormat) ([]byte, error) {
	var out bytes.Buffer
	switch format {
	case images.FormatJPEG:
		if err := jpeg.Encode(&out, buf.NRGBA(), &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, errors.Wrap(err, "jpeg encode")
		}
	case images.FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&out, buf.NRGBA()); err != nil {
			return nil, errors.Wrap(err, "png encode")
		}
	case images.FormatGIF:
		if err := gif.Encode(&out, buf.NRGBA(), nil); err != nil {
			return nil, errors.Wrap(err, "gif encode")
		}
	default:
		return nil, errors.Wrapf(images.ErrUnsupportedFormat, "format %q", format)
	}
	return out.Bytes(), nil
}
