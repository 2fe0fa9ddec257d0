package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-backend/internal/errs"
	"github.com/deppfellow/portfolio-backend/internal/model"
	"github.com/deppfellow/portfolio-backend/internal/server"
	"github.com/deppfellow/portfolio-backend/internal/storage"
)

// UploadHandler serves stored images from whichever backend is configured.
type UploadHandler struct {
	Handler
	store storage.Store
}

func NewUploadHandler(s *server.Server) *UploadHandler {
	return &UploadHandler{
		Handler: NewHandler(s),
		store:   s.Storage,
	}
}

// ServeUpload streams /static/uploads/:filename. Only names that SanitizeFilename
// would have produced are looked up.
func (h *UploadHandler) ServeUpload(c echo.Context, req *model.UploadRequest) (*storage.Object, error) {
	if storage.SanitizeFilename(req.Filename) != req.Filename {
		return nil, errs.NewNotFoundError("File not found", false, nil)
	}

	obj, err := h.store.Open(c.Request().Context(), req.Filename)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errs.NewNotFoundError("File not found", false, nil)
	}
	if err != nil {
		return nil, err
	}

	return obj, nil
}
