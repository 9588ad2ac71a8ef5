package ports

import (
	"context"
	"io"
)

// MediaStore accepts a byte stream plus a logical filename and returns
// the durable public URL of the stored blob. Delete accepts a URL
// previously returned by an upload.
type MediaStore interface {
	UploadPoster(ctx context.Context, r io.Reader, filename string) (string, error)
	UploadVideo(ctx context.Context, r io.Reader, filename string) (string, error)
	Delete(ctx context.Context, url string) error
}
