// Package util provides the filesystem helpers the pipeline delegates
// to: existence checks, byte-level read/write and directory enumeration.
package util

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-img/images"
)

// ImageFile represents an image file on disk.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Data is the raw bytes of the image file.
	Data []byte
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadFile loads the file at path, surfacing images.ErrFileNotFound when
// the path does not exist so callers can distinguish missing input from
// IO failure.
func ReadFile(path string) ([]byte, error) {
	if !Exists(path) {
		return nil, errors.Wrap(images.ErrFileNotFound, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}

// WriteFile writes data to path with 0644 permissions.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// LoadDirectoryImageFiles reads all JPEG, PNG and GIF files from a
// directory, sorted by file name.
//
// Arguments:
//   - dir: Directory path containing image files.
//
// Returns:
//   - []ImageFile: Slice of ImageFile, each containing the raw bytes of
//     an image file.
//   - error: Error if loading fails.
func LoadDirectoryImageFiles(dir string) ([]ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read dir %s", dir)
	}

	var files []ImageFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".jpg", ".jpeg", ".png", ".gif":
			path := filepath.Join(dir, entry.Name())
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return nil, errors.Wrapf(readErr, "read %s", path)
			}
			files = append(files, ImageFile{Path: path, Data: data})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}
