// Package storage persists uploaded media files on local disk and
// classifies them by extension.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaKind is the classification of an uploaded file. A request without an
// attachment is represented by a nil *StoredMedia, not a kind.
type MediaKind int

const (
	// MediaPhoto covers .jpg, .jpeg and .png.
	MediaPhoto MediaKind = iota
	// MediaVideo covers .mp4 and .mov.
	MediaVideo
	// MediaUnknown is any other extension.
	MediaUnknown
)

// Classify maps a filename extension to a media kind.
func Classify(filename string) MediaKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return MediaPhoto
	case ".mp4", ".mov":
		return MediaVideo
	default:
		return MediaUnknown
	}
}

// StoredMedia is the result of persisting an upload.
type StoredMedia struct {
	Path string
	Kind MediaKind
}

// Uploader saves multipart file parts under a base directory with random
// file names, keeping the original extension.
type Uploader struct {
	baseDir string
}

// NewUploader creates an Uploader rooted at baseDir, creating it if needed.
func NewUploader(baseDir string) (*Uploader, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Uploader{baseDir: baseDir}, nil
}

// Save persists the file part to disk and returns its path and kind.
func (u *Uploader) Save(file *multipart.FileHeader) (*StoredMedia, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.NewString() + ext
	path := filepath.Join(u.baseDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	return &StoredMedia{Path: path, Kind: Classify(file.Filename)}, nil
}
