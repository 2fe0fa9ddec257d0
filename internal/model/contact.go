package model

import (
	"time"

	"github.com/deppfellow/portfolio-backend/internal/validation"
)

// ContactQuery is a contact form submission. Only the four submitted fields
// are exposed over the API.
type ContactQuery struct {
	ID        int64     `json:"-"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	City      string    `json:"city"`
	Timestamp time.Time `json:"-"`
}

type CreateContactRequest struct {
	FullName *string `json:"full_name" validate:"required"`
	Email    *string `json:"email" validate:"required"`
	Mobile   *string `json:"mobile" validate:"required"`
	City     *string `json:"city" validate:"required"`
}

func (r *CreateContactRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateContactRequest) ContactQuery(at time.Time) *ContactQuery {
	return &ContactQuery{
		FullName:  deref(r.FullName),
		Email:     deref(r.Email),
		Mobile:    deref(r.Mobile),
		City:      deref(r.City),
		Timestamp: at,
	}
}
