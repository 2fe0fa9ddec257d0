package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-backend/internal/middleware"
	"github.com/deppfellow/portfolio-backend/internal/model"
	"github.com/deppfellow/portfolio-backend/internal/server"
	"github.com/deppfellow/portfolio-backend/internal/service"
)

type ClientHandler struct {
	Handler
	clients *service.ClientService
}

func NewClientHandler(s *server.Server, clients *service.ClientService) *ClientHandler {
	return &ClientHandler{
		Handler: NewHandler(s),
		clients: clients,
	}
}

func (h *ClientHandler) ListClients(c echo.Context, _ *model.ListRequest) ([]model.Client, error) {
	return h.clients.List(c.Request().Context())
}

// CreateClient stores a client with its image. Without an image nothing is
// written and the current list is returned with 200.
func (h *ClientHandler) CreateClient(c echo.Context, req *model.CreateClientRequest) (interface{}, error) {
	ctx := c.Request().Context()

	image, closer, err := formImage(c)
	if err != nil {
		return nil, err
	}
	if image == nil {
		middleware.GetLogger(c).Debug().Msg("client submitted without image, returning list")

		clients, err := h.clients.List(ctx)
		if err != nil {
			return nil, err
		}
		return withStatus(http.StatusOK, clients), nil
	}
	defer closeQuietly(closer)

	client, err := h.clients.Create(ctx, req, *image)
	if err != nil {
		return nil, err
	}

	middleware.GetLogger(c).Info().
		Int64("client_id", client.ID).
		Str("image", client.Image).
		Msg("client created")

	return model.MessageResponse{Message: "Client added!"}, nil
}
