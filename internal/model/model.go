// Package model holds the persisted entities and the request/response
// payloads exchanged over the API.
package model

import "github.com/deppfellow/portfolio-backend/internal/validation"

// MessageResponse is the body of every successful create.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListRequest is the (empty) payload of every list endpoint.
type ListRequest struct{}

func (r *ListRequest) Validate() error {
	return nil
}

// deref reads an optional field that validation has already checked.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// UploadRequest addresses a stored upload by its filename.
type UploadRequest struct {
	Filename string `param:"filename" validate:"required"`
}

func (r *UploadRequest) Validate() error {
	return validation.Struct(r)
}
