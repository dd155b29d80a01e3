package metadata

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-img/images"
)

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(40 * x), G: uint8(60 * y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

// TestRewriteReadRoundTrip writes every valid orientation code into a
// JPEG and reads it back.
func TestRewriteReadRoundTrip(t *testing.T) {
	base := jpegBytes(t)
	for code := images.OrientationCode(1); code <= 8; code++ {
		data, err := RewriteOrientation(base, code)
		require.NoError(t, err, "code %d", code)

		got, ok := ReadOrientation(data)
		require.True(t, ok, "code %d should be readable back", code)
		assert.Equal(t, code, got)

		// The image must still decode.
		_, err = jpeg.Decode(bytes.NewReader(data))
		assert.NoError(t, err, "code %d output must stay a valid JPEG", code)
	}
}

// TestRewriteReplacesExisting ensures a second rewrite does not stack
// APP1 segments.
func TestRewriteReplacesExisting(t *testing.T) {
	data, err := RewriteOrientation(jpegBytes(t), 6)
	require.NoError(t, err)

	data, err = RewriteOrientation(data, 1)
	require.NoError(t, err)

	got, ok := ReadOrientation(data)
	require.True(t, ok)
	assert.Equal(t, images.OrientationUpright, got)
	assert.Equal(t, 1, bytes.Count(data, []byte("Exif\x00\x00")), "exactly one EXIF segment")
}

func TestRewriteInvalidCode(t *testing.T) {
	for _, code := range []images.OrientationCode{0, 9, -3} {
		_, err := RewriteOrientation(jpegBytes(t), code)
		require.Error(t, err, "code %d", code)
		assert.True(t, errors.Is(err, images.ErrInvalidInput), "code %d", code)
	}
}

func TestRewriteNonJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))))

	_, err := RewriteOrientation(buf.Bytes(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, images.ErrDecodeFailure))
}

// TestReadOrientationAbsent checks that missing metadata degrades to "no
// metadata" instead of failing.
func TestReadOrientationAbsent(t *testing.T) {
	_, ok := ReadOrientation(jpegBytes(t))
	assert.False(t, ok, "plain encoder output carries no EXIF")

	_, ok = ReadOrientation([]byte("not an image at all"))
	assert.False(t, ok)

	_, ok = ReadOrientation(nil)
	assert.False(t, ok)
}
