package service

import (
	"context"
	"fmt"
	"io"

	"github.com/deppfellow/portfolio-backend/internal/errs"
	"github.com/deppfellow/portfolio-backend/internal/storage"
)

// ImageUpload is an uploaded image as received from the client.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// saveImage stores upload under its sanitized filename and returns that name.
// A filename with nothing usable left after sanitizing is rejected.
func saveImage(ctx context.Context, store storage.Store, upload ImageUpload) (string, error) {
	name := storage.SanitizeFilename(upload.Filename)
	if name == "" {
		code := "INVALID_FILENAME"
		return "", errs.NewBadRequestError("Validation failed", true, &code, []errs.FieldError{
			{Field: "image", Error: "filename has no usable characters"},
		})
	}

	if err := store.Save(ctx, name, upload.Content, upload.Size, upload.ContentType); err != nil {
		return "", fmt.Errorf("failed to save image %s: %w", name, err)
	}

	return name, nil
}
