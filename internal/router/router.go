// Package router builds the Echo instance: it installs the middleware chain
// and maps every path to its handler.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-backend/internal/handler"
	"github.com/deppfellow/portfolio-backend/internal/middleware"
	"github.com/deppfellow/portfolio-backend/internal/model"
	"github.com/deppfellow/portfolio-backend/internal/server"
)

// NewRouter returns the configured Echo instance.
//
// Middleware order matters: the request id and tracing come first so the
// request logger can include them, Recover sits inside the logger so panics
// are logged as 500s, and BodyLimit runs before any handler reads the body.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler
	router.Renderer = h.Page.Renderer

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Metrics.Record(),
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.BodyLimit(),
	)

	registerSystemRoutes(router, s, h)
	registerPageRoutes(router, h)
	registerAPIRoutes(router.Group("/api"), h)

	return router
}

func registerPageRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Page.Index)
	r.GET("/admin", h.Page.Admin)
}

func registerAPIRoutes(api *echo.Group, h *handler.Handlers) {
	projects := h.Project
	api.GET("/projects", handler.Handle(projects.Handler, projects.ListProjects, http.StatusOK, handler.NewRequest[model.ListRequest]))
	api.POST("/projects", handler.Handle(projects.Handler, projects.CreateProject, http.StatusCreated, handler.NewRequest[model.CreateProjectRequest]))

	clients := h.Client
	api.GET("/clients", handler.Handle(clients.Handler, clients.ListClients, http.StatusOK, handler.NewRequest[model.ListRequest]))
	api.POST("/clients", handler.Handle(clients.Handler, clients.CreateClient, http.StatusCreated, handler.NewRequest[model.CreateClientRequest]))

	contacts := h.Contact
	api.GET("/contact", handler.Handle(contacts.Handler, contacts.ListContacts, http.StatusOK, handler.NewRequest[model.ListRequest]))
	api.POST("/contact", handler.Handle(contacts.Handler, contacts.CreateContact, http.StatusCreated, handler.NewRequest[model.CreateContactRequest]))

	subscribers := h.Subscriber
	api.GET("/subscribe", handler.Handle(subscribers.Handler, subscribers.ListSubscribers, http.StatusOK, handler.NewRequest[model.ListRequest]))
	api.POST("/subscribe", handler.Handle(subscribers.Handler, subscribers.Subscribe, http.StatusCreated, handler.NewRequest[model.SubscribeRequest]))
}
