package blob

import (
	"context"
	"io"
	"mime"
	"os"
	"path/filepath"
)

// Serving content types for the extensions the upload pipeline produces.
// mime.TypeByExtension is OS-table dependent and maps .webm to video/webm,
// which breaks audio playback hints, so these take precedence.
var audioContentTypes = map[string]string{
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
}

type diskStore struct {
	dir string
}

// NewDiskStore returns a Store backed by a local directory. The directory
// is created on first write, not on construction.
func NewDiskStore(dir string) Store {
	return &diskStore{dir: dir}
}

func (s *diskStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	if err := os.MkdirAll(s.dir, os.ModePerm); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return err
	}
	return nil
}

func (s *diskStore) Open(ctx context.Context, name string) (*Object, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	ext := filepath.Ext(name)
	contentType, ok := audioContentTypes[ext]
	if !ok {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Object{
		Content:     f,
		Size:        info.Size(),
		ContentType: contentType,
	}, nil
}

func (s *diskStore) Remove(ctx context.Context, name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return ErrObjectNotFound
	}
	return err
}
