package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-backend/internal/errs"
	"github.com/deppfellow/portfolio-backend/internal/service"
)

// imageField is the multipart field carrying project and client pictures.
const imageField = "image"

// formImage opens the uploaded image. It returns nil when the request has no
// file under imageField, which includes non-multipart requests and a file
// part with an empty filename.
func formImage(c echo.Context) (*service.ImageUpload, io.Closer, error) {
	fh, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, nil
	}
	if err != nil {
		if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
			return nil, nil, echo.ErrStatusRequestEntityTooLarge
		}
		return nil, nil, errs.NewBadRequestError("Could not read uploaded image", false, nil, nil)
	}
	if fh.Filename == "" {
		return nil, nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, errs.NewBadRequestError("Could not read uploaded image", false, nil, nil)
	}

	return &service.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Content:     f,
	}, f, nil
}
