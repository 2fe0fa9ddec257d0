package model

import "github.com/deppfellow/portfolio-backend/internal/validation"

// Subscriber is a newsletter address. Email is unique.
type Subscriber struct {
	ID    int64  `json:"-"`
	Email string `json:"email"`
}

type SubscribeRequest struct {
	Email *string `json:"email" validate:"required"`
}

func (r *SubscribeRequest) Validate() error {
	return validation.Struct(r)
}
