package images

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPixelBufferFill(t *testing.T) {
	buf, err := NewPixelBuffer(3, 2, ColorModeOpaque)
	require.NoError(t, err)
	assert.Equal(t, 3, buf.Width())
	assert.Equal(t, 2, buf.Height())
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, buf.At(2, 1))

	buf, err = NewPixelBuffer(3, 2, ColorModeTransparent)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{}, buf.At(0, 0))
}

func TestNewPixelBufferInvalid(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-2, 5}, {5, -2}} {
		_, err := NewPixelBuffer(dims[0], dims[1], ColorModeOpaque)
		require.Error(t, err, "dims %v", dims)
		assert.True(t, errors.Is(err, ErrInvalidInput), "dims %v", dims)
	}
}

func TestFromImageConverts(t *testing.T) {
	src := image.NewRGBA(image.Rect(-2, -2, 2, 2))
	src.Set(-2, -2, color.RGBA{R: 255, A: 255})

	buf, err := FromImage(src)
	require.NoError(t, err)
	assert.Equal(t, 4, buf.Width())
	assert.Equal(t, 4, buf.Height())
	// Non-zero-origin bounds are normalized to (0,0).
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, buf.At(0, 0))
}

func TestSetAtBounds(t *testing.T) {
	buf, err := NewPixelBuffer(2, 2, ColorModeTransparent)
	require.NoError(t, err)

	c := color.NRGBA{G: 128, A: 255}
	buf.Set(1, 1, c)
	assert.Equal(t, c, buf.At(1, 1))

	// Out-of-range access is a silent no-op / zero value.
	buf.Set(5, 5, c)
	assert.Equal(t, color.NRGBA{}, buf.At(5, 5))
	assert.Equal(t, color.NRGBA{}, buf.At(-1, 0))
}

// TestCloneIsDeep guards the copy-on-use guarantee: edits on a clone must
// never show through to the original.
func TestCloneIsDeep(t *testing.T) {
	src := gradientBuffer(t, 4, 4)
	dup := src.Clone()
	require.True(t, dup.Equal(src))

	dup.Set(2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	assert.False(t, dup.Equal(src))
	assert.NotEqual(t, color.NRGBA{R: 1, G: 2, B: 3, A: 4}, src.At(2, 2))
}

func TestEqual(t *testing.T) {
	a := gradientBuffer(t, 3, 3)
	b := gradientBuffer(t, 3, 3)
	assert.True(t, a.Equal(b))

	c := gradientBuffer(t, 3, 4)
	assert.False(t, a.Equal(c), "dimension mismatch is never equal")
}
