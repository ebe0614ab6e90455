package blob

import (
	"context"
	"errors"
	"io"
)

var ErrObjectNotFound = errors.New("object not found")

// Object is an opened stored file ready for streaming. Content must be
// closed by the caller.
type Object struct {
	Content     io.ReadCloser
	Size        int64
	ContentType string
}

// Store abstracts where uploaded audio files live. The disk implementation
// writes into a local uploads directory; the MinIO implementation puts
// objects into a bucket. Both serve the same names back.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (*Object, error)
	Remove(ctx context.Context, name string) error
}
