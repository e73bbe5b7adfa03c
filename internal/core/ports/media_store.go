package ports

import (
	"context"
	"io"
)

// MediaStore persists uploaded images and returns their relative path.
type MediaStore interface {
	SaveImage(ctx context.Context, folder string, r io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}
