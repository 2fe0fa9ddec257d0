package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deppfellow/portfolio-backend/internal/handler"
	"github.com/deppfellow/portfolio-backend/internal/model"
	"github.com/deppfellow/portfolio-backend/internal/server"
)

// registerSystemRoutes registers the endpoints that are not part of the
// content API: health, metrics and static files.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	if s.Config.Observability.HealthChecks.Enabled {
		r.GET("/status", h.Health.CheckHealth)
	}

	r.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// uploads go through the store so the minio backend is served too
	serveUpload := handler.HandleObject(h.Upload.Handler, h.Upload.ServeUpload, http.StatusOK, handler.NewRequest[model.UploadRequest])
	r.GET("/static/uploads/:filename", serveUpload)
	r.HEAD("/static/uploads/:filename", serveUpload)

	r.Static("/static", s.Config.Storage.StaticDir)
}
