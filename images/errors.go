package images

import "github.com/pkg/errors"

// Sentinel errors for the library. Every failure surfaced by a public
// operation wraps one of these; callers match with errors.Is. All are
// caller errors, never transient conditions, so no retry policy applies.
var (
	// ErrFileNotFound indicates the input path does not exist.
	ErrFileNotFound = errors.New("images: file not found")
	// ErrUnsupportedFormat indicates an unknown or unsupported image format.
	ErrUnsupportedFormat = errors.New("images: unsupported format")
	// ErrInvalidInput indicates a bad numeric parameter, such as a
	// non-positive dimension or an out-of-range orientation code.
	ErrInvalidInput = errors.New("images: invalid input")
	// ErrDecodeFailure indicates bytes were present but the codec
	// rejected them.
	ErrDecodeFailure = errors.New("images: decode failure")
)
