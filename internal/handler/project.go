package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-backend/internal/middleware"
	"github.com/deppfellow/portfolio-backend/internal/model"
	"github.com/deppfellow/portfolio-backend/internal/server"
	"github.com/deppfellow/portfolio-backend/internal/service"
)

type ProjectHandler struct {
	Handler
	projects *service.ProjectService
}

func NewProjectHandler(s *server.Server, projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		Handler:  NewHandler(s),
		projects: projects,
	}
}

func (h *ProjectHandler) ListProjects(c echo.Context, _ *model.ListRequest) ([]model.Project, error) {
	return h.projects.List(c.Request().Context())
}

// CreateProject stores a project with its image. Without an image nothing is
// written and the current list is returned with 200.
func (h *ProjectHandler) CreateProject(c echo.Context, req *model.CreateProjectRequest) (interface{}, error) {
	ctx := c.Request().Context()

	image, closer, err := formImage(c)
	if err != nil {
		return nil, err
	}
	if image == nil {
		middleware.GetLogger(c).Debug().Msg("project submitted without image, returning list")

		projects, err := h.projects.List(ctx)
		if err != nil {
			return nil, err
		}
		return withStatus(http.StatusOK, projects), nil
	}
	defer closeQuietly(closer)

	project, err := h.projects.Create(ctx, req, *image)
	if err != nil {
		return nil, err
	}

	middleware.GetLogger(c).Info().
		Int64("project_id", project.ID).
		Str("image", project.Image).
		Msg("project created")

	return model.MessageResponse{Message: "Project added!"}, nil
}
