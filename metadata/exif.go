// Package metadata reads and rewrites the EXIF orientation tag on JPEG
// images. Reading uses goexif; rewriting emits a minimal APP1 segment,
// since goexif has no serializer and the baseline JPEG encoder does not
// preserve metadata.
package metadata

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/nvr-ai/go-img/images"
)

// ReadOrientation extracts the EXIF orientation code from encoded JPEG
// bytes. Absence of EXIF data, a missing orientation tag, or a malformed
// or out-of-range value all degrade to "no metadata"; none of these is
// an error.
//
// Arguments:
//   - data: Encoded image bytes.
//
// Returns:
//   - images.OrientationCode: The orientation, valid only when ok.
//   - bool: Whether an orientation was present.
func ReadOrientation(data []byte) (images.OrientationCode, bool) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, false
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil || tag == nil || tag.Count == 0 {
		return 0, false
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0, false
	}
	code := images.OrientationCode(v)
	if !code.Valid() {
		// Some devices write 0 to mean "no orientation".
		return 0, false
	}
	return code, true
}

const (
	markerSOI  = 0xffd8
	markerAPP1 = 0xffe1
	markerSOS  = 0xffda
)

var exifHeader = []byte("Exif\x00\x00")

// RewriteOrientation returns a copy of the JPEG bytes whose EXIF
// orientation is the given code. Any existing EXIF APP1 segment is
// replaced by a minimal one holding only the orientation tag; other
// segments are preserved verbatim.
//
// Arguments:
//   - data: Encoded JPEG bytes.
//   - code: Orientation to attach, must be 1-8.
//
// Returns:
//   - []byte: The rewritten JPEG.
//   - error: images.ErrInvalidInput for out-of-range codes or
//     images.ErrDecodeFailure for malformed JPEG structure.
func RewriteOrientation(data []byte, code images.OrientationCode) ([]byte, error) {
	if !code.Valid() {
		return nil, errors.Wrapf(images.ErrInvalidInput, "orientation code %d", code)
	}
	if len(data) < 2 || binary.BigEndian.Uint16(data) != markerSOI {
		return nil, errors.Wrap(images.ErrDecodeFailure, "missing JPEG SOI marker")
	}

	out := bytes.Buffer{}
	out.Write(data[:2])
	out.Write(orientationSegment(code))

	// Copy remaining segments, dropping any existing EXIF APP1.
	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xff {
			break
		}
		marker := binary.BigEndian.Uint16(data[pos:])
		if marker == markerSOS {
			break
		}
		length := int(binary.BigEndian.Uint16(data[pos+2:]))
		segEnd := pos + 2 + length
		if length < 2 || segEnd > len(data) {
			return nil, errors.Wrap(images.ErrDecodeFailure, "truncated JPEG segment")
		}
		if marker == markerAPP1 && bytes.HasPrefix(data[pos+4:segEnd], exifHeader) {
			pos = segEnd
			continue
		}
		out.Write(data[pos:segEnd])
		pos = segEnd
	}
	// Entropy-coded data and trailing segments pass through untouched.
	out.Write(data[pos:])
	return out.Bytes(), nil
}

// orientationSegment builds an APP1 segment containing a little-endian
// TIFF structure with a single IFD entry: tag 0x0112 (Orientation),
// type SHORT, count 1.
func orientationSegment(code images.OrientationCode) []byte {
	tiff := bytes.Buffer{}
	tiff.WriteString("II") // little-endian byte order
	binary.Write(&tiff, binary.LittleEndian, uint16(42))
	binary.Write(&tiff, binary.LittleEndian, uint32(8))      // IFD0 offset
	binary.Write(&tiff, binary.LittleEndian, uint16(1))      // one entry
	binary.Write(&tiff, binary.LittleEndian, uint16(0x0112)) // Orientation
	binary.Write(&tiff, binary.LittleEndian, uint16(3))      // SHORT
	binary.Write(&tiff, binary.LittleEndian, uint32(1))      // count
	binary.Write(&tiff, binary.LittleEndian, uint16(code))
	binary.Write(&tiff, binary.LittleEndian, uint16(0)) // value padding
	binary.Write(&tiff, binary.LittleEndian, uint32(0)) // no next IFD

	payload := append(append([]byte{}, exifHeader...), tiff.Bytes()...)
	seg := bytes.Buffer{}
	binary.Write(&seg, binary.BigEndian, uint16(markerAPP1))
	binary.Write(&seg, binary.BigEndian, uint16(len(payload)+2))
	seg.Write(payload)
	return seg.Bytes()
}
