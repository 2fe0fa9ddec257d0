package model

import (
	"net/url"

	"github.com/deppfellow/portfolio-backend/internal/validation"
)

// Project is a portfolio entry. Image holds the sanitized filename of the
// uploaded picture, relative to the uploads directory.
type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// CreateProjectRequest carries the text fields of a project upload. The image
// itself is read from the multipart form by the handler.
type CreateProjectRequest struct {
	Name        *string `json:"name" form:"name" validate:"required"`
	Description *string `json:"description" form:"description" validate:"required"`
}

func (r *CreateProjectRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateProjectRequest) BindForm(form url.Values) {
	r.Name = validation.FormValue(form, "name")
	r.Description = validation.FormValue(form, "description")
}

// Project builds the entity for a stored image.
func (r *CreateProjectRequest) Project(image string) *Project {
	return &Project{
		Name:        deref(r.Name),
		Description: deref(r.Description),
		Image:       image,
	}
}
