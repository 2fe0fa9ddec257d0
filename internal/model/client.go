package model

import (
	"net/url"

	"github.com/deppfellow/portfolio-backend/internal/validation"
)

// Client is a customer testimonial shown on the landing page.
type Client struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Designation string `json:"designation"`
	Image       string `json:"image"`
}

type CreateClientRequest struct {
	Name        *string `json:"name" form:"name" validate:"required"`
	Description *string `json:"description" form:"description" validate:"required"`
	Designation *string `json:"designation" form:"designation" validate:"required"`
}

func (r *CreateClientRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateClientRequest) BindForm(form url.Values) {
	r.Name = validation.FormValue(form, "name")
	r.Description = validation.FormValue(form, "description")
	r.Designation = validation.FormValue(form, "designation")
}

func (r *CreateClientRequest) Client(image string) *Client {
	return &Client{
		Name:        deref(r.Name),
		Description: deref(r.Description),
		Designation: deref(r.Designation),
		Image:       image,
	}
}
