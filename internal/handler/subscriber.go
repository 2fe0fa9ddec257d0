package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-backend/internal/middleware"
	"github.com/deppfellow/portfolio-backend/internal/model"
	"github.com/deppfellow/portfolio-backend/internal/server"
	"github.com/deppfellow/portfolio-backend/internal/service"
)

type SubscriberHandler struct {
	Handler
	subscribers *service.SubscriberService
}

func NewSubscriberHandler(s *server.Server, subscribers *service.SubscriberService) *SubscriberHandler {
	return &SubscriberHandler{
		Handler:     NewHandler(s),
		subscribers: subscribers,
	}
}

func (h *SubscriberHandler) ListSubscribers(c echo.Context, _ *model.ListRequest) ([]model.Subscriber, error) {
	return h.subscribers.List(c.Request().Context())
}

// Subscribe answers the same way whether or not the address was already known.
func (h *SubscriberHandler) Subscribe(c echo.Context, req *model.SubscribeRequest) (model.MessageResponse, error) {
	created, err := h.subscribers.Subscribe(c.Request().Context(), req)
	if err != nil {
		return model.MessageResponse{}, err
	}

	middleware.GetLogger(c).Debug().Bool("created", created).Msg("subscribe handled")

	return model.MessageResponse{Message: "Subscribed!"}, nil
}
