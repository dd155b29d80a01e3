// Package images provides the in-memory pixel buffer and the geometric
// transforms (flip, rotate, crop, canvas expansion, bounded resize) that
// make up the core of the image manipulation library.
package images

import "image/color"

// ImageFormat represents a supported raster image format.
type ImageFormat string

const (
	// FormatJPEG is the JPEG image format.
	FormatJPEG ImageFormat = "jpeg"
	// FormatPNG is the PNG image format.
	FormatPNG ImageFormat = "png"
	// FormatGIF is the GIF image format.
	FormatGIF ImageFormat = "gif"
)

// Valid reports whether f is one of the supported formats.
func (f ImageFormat) Valid() bool {
	switch f {
	case FormatJPEG, FormatPNG, FormatGIF:
		return true
	}
	return false
}

// Extension returns the canonical file extension for the format,
// including the leading dot.
func (f ImageFormat) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	case FormatGIF:
		return ".gif"
	}
	return ""
}

// MimeType returns the MIME type for the format.
func (f ImageFormat) MimeType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	}
	return ""
}

// ColorMode determines how newly allocated pixels are filled during crop,
// bounded resize and canvas expansion.
type ColorMode int

const (
	// ColorModeOpaque fills new pixels with opaque white. Used for formats
	// without a usable alpha channel (JPEG, GIF).
	ColorModeOpaque ColorMode = iota
	// ColorModeTransparent fills new pixels with fully transparent black.
	// Used for PNG.
	ColorModeTransparent
)

// ColorModeFor returns the fill policy for a format. PNG gets a transparent
// background; JPEG and GIF get flat opaque white. GIF transparency is
// deliberately not special-cased.
func ColorModeFor(f ImageFormat) ColorMode {
	if f == FormatPNG {
		return ColorModeTransparent
	}
	return ColorModeOpaque
}

// Background returns the fill color for the mode.
func (m ColorMode) Background() color.NRGBA {
	if m == ColorModeTransparent {
		return color.NRGBA{}
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}
