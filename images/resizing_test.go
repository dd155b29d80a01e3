package images

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFit validates the bounding-box fit algorithm, including the
// tie-break cases.
func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		box   BoundingBox
		wantW int
		wantH int
	}{
		{"identity when unbounded", 100, 50, BoundingBox{}, 100, 50},
		{"landscape width-constrained", 100, 50, BoundingBox{MaxWidth: 50, MaxHeight: 50}, 50, 25},
		{"portrait height-constrained", 50, 100, BoundingBox{MaxWidth: 50, MaxHeight: 50}, 25, 50},
		{"square uses tighter bound", 100, 100, BoundingBox{MaxWidth: 40, MaxHeight: 80}, 40, 40},
		{"square uses tighter bound reversed", 100, 100, BoundingBox{MaxWidth: 80, MaxHeight: 40}, 40, 40},
		{"height-bounded only", 100, 50, BoundingBox{MaxHeight: 25}, 50, 25},
		{"width-bounded only", 100, 50, BoundingBox{MaxWidth: 20}, 20, 10},
		{"landscape falls back to height", 300, 100, BoundingBox{MaxWidth: 290, MaxHeight: 50}, 150, 50},
		{"portrait falls back to width", 100, 300, BoundingBox{MaxWidth: 50, MaxHeight: 290}, 50, 150},
		{"upscale allowed to fill box", 10, 5, BoundingBox{MaxWidth: 100, MaxHeight: 100}, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotW, gotH, err := Fit(tt.w, tt.h, tt.box)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, gotW, "width")
			assert.Equal(t, tt.wantH, gotH, "height")
		})
	}
}

// TestFitProperties checks the fit invariants: the result never exceeds a
// bounded axis and preserves the aspect ratio within rounding tolerance.
func TestFitProperties(t *testing.T) {
	cases := []struct {
		w, h int
		box  BoundingBox
	}{
		{1920, 1080, BoundingBox{MaxWidth: 320, MaxHeight: 240}},
		{1080, 1920, BoundingBox{MaxWidth: 320, MaxHeight: 240}},
		{640, 480, BoundingBox{MaxWidth: 100, MaxHeight: 1000}},
		{3, 1000, BoundingBox{MaxWidth: 100, MaxHeight: 100}},
		{999, 7, BoundingBox{MaxWidth: 64, MaxHeight: 64}},
	}

	for _, c := range cases {
		gotW, gotH, err := Fit(c.w, c.h, c.box)
		require.NoError(t, err)
		if c.box.MaxWidth > 0 {
			assert.LessOrEqual(t, gotW, c.box.MaxWidth, "%dx%d in %+v", c.w, c.h, c.box)
		}
		if c.box.MaxHeight > 0 {
			assert.LessOrEqual(t, gotH, c.box.MaxHeight, "%dx%d in %+v", c.w, c.h, c.box)
		}
		if gotW > 0 && gotH > 0 {
			want := float64(c.w) / float64(c.h)
			got := float64(gotW) / float64(gotH)
			// One pixel of truncation on the derived axis.
			tolerance := want / math.Min(float64(gotW), float64(gotH))
			assert.InDelta(t, want, got, tolerance, "%dx%d in %+v", c.w, c.h, c.box)
		}
	}
}

func TestFitInvalid(t *testing.T) {
	_, _, err := Fit(0, 10, BoundingBox{MaxWidth: 5, MaxHeight: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, _, err = Fit(10, 10, BoundingBox{MaxWidth: -1, MaxHeight: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestResampleDimensions(t *testing.T) {
	src := solidBuffer(t, 100, 50, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	out, err := Resample(src, 40, 20)
	require.NoError(t, err)
	assert.Equal(t, 40, out.Width())
	assert.Equal(t, 20, out.Height())

	// Interior of a solid image stays that color after smooth resampling.
	c := out.At(20, 10)
	assert.InDelta(t, 200, int(c.R), 2)
	assert.InDelta(t, 10, int(c.G), 2)
}

// TestResampleIdentityCopies ensures the same-size path still returns a
// fresh buffer, never an alias.
func TestResampleIdentityCopies(t *testing.T) {
	src := gradientBuffer(t, 8, 8)
	out, err := Resample(src, 8, 8)
	require.NoError(t, err)
	require.True(t, out.Equal(src))

	out.Set(0, 0, color.NRGBA{A: 1})
	assert.False(t, out.Equal(src), "mutating the copy must not touch the source")
}

func TestResampleInvalid(t *testing.T) {
	src := gradientBuffer(t, 4, 4)
	_, err := Resample(src, 0, 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestBoundedResize(t *testing.T) {
	src := solidBuffer(t, 200, 100, color.NRGBA{B: 255, A: 255})
	out, err := BoundedResize(src, BoundingBox{MaxWidth: 50, MaxHeight: 50})
	require.NoError(t, err)
	assert.Equal(t, 50, out.Width())
	assert.Equal(t, 25, out.Height())
}

func TestBoundedResizeUnbounded(t *testing.T) {
	src := gradientBuffer(t, 20, 10)
	out, err := BoundedResize(src, BoundingBox{})
	require.NoError(t, err)
	assert.True(t, out.Equal(src), "unbounded box is identity on pixels")
}

func TestResampleRegion(t *testing.T) {
	// Left half red, right half blue.
	src := solidBuffer(t, 20, 10, color.NRGBA{R: 255, A: 255})
	blue := color.NRGBA{B: 255, A: 255}
	for y := 0; y < 10; y++ {
		for x := 10; x < 20; x++ {
			src.Set(x, y, blue)
		}
	}

	// Scale the right half down to 5x5: solid blue.
	out, err := ResampleRegion(src, image.Rect(10, 0, 20, 10), 5, 5, ColorModeOpaque)
	require.NoError(t, err)
	require.Equal(t, 5, out.Width())
	require.Equal(t, 5, out.Height())
	c := out.At(2, 2)
	assert.InDelta(t, 0, int(c.R), 2)
	assert.InDelta(t, 255, int(c.B), 2)
}

// TestResampleRegionOutOfRange checks the background fill when the
// region extends past the source bounds.
func TestResampleRegionOutOfRange(t *testing.T) {
	src := solidBuffer(t, 4, 4, color.NRGBA{R: 255, A: 255})
	out, err := ResampleRegion(src, image.Rect(0, 0, 8, 8), 8, 8, ColorModeOpaque)
	require.NoError(t, err)
	c := out.At(7, 7)
	assert.Equal(t, uint8(255), c.G, "uncovered area resamples from white background")
	assert.Equal(t, uint8(255), c.B)
}

func TestResampleRegionInvalid(t *testing.T) {
	src := gradientBuffer(t, 4, 4)
	_, err := ResampleRegion(src, image.Rect(0, 0, 0, 4), 2, 2, ColorModeOpaque)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
