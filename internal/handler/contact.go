package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-backend/internal/model"
	"github.com/deppfellow/portfolio-backend/internal/server"
	"github.com/deppfellow/portfolio-backend/internal/service"
)

type ContactHandler struct {
	Handler
	contacts *service.ContactService
}

func NewContactHandler(s *server.Server, contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{
		Handler:  NewHandler(s),
		contacts: contacts,
	}
}

// ListContacts returns submissions newest first.
func (h *ContactHandler) ListContacts(c echo.Context, _ *model.ListRequest) ([]model.ContactQuery, error) {
	return h.contacts.List(c.Request().Context())
}

func (h *ContactHandler) CreateContact(c echo.Context, req *model.CreateContactRequest) (model.MessageResponse, error) {
	if _, err := h.contacts.Create(c.Request().Context(), req); err != nil {
		return model.MessageResponse{}, err
	}
	return model.MessageResponse{Message: "Query received!"}, nil
}
