package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/portfolio-backend/internal/config"
	"github.com/deppfellow/portfolio-backend/internal/database"
	"github.com/deppfellow/portfolio-backend/internal/errs"
	"github.com/deppfellow/portfolio-backend/internal/handler"
	"github.com/deppfellow/portfolio-backend/internal/model"
	"github.com/deppfellow/portfolio-backend/internal/repository"
	"github.com/deppfellow/portfolio-backend/internal/server"
	"github.com/deppfellow/portfolio-backend/internal/service"
	"github.com/deppfellow/portfolio-backend/internal/storage"
)

type testApp struct {
	router    *echo.Echo
	server    *server.Server
	uploadDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := zerolog.Nop()
	cfg := config.Defaults()
	cfg.Database.SQLitePath = ":memory:"
	cfg.Storage.StaticDir = t.TempDir()
	cfg.Server.MaxBodySize = "64K"

	db, err := database.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), &logger, cfg, db))

	store, err := storage.NewLocalStore(cfg.Storage.UploadDir())
	require.NoError(t, err)

	s := &server.Server{
		Config:  cfg,
		Logger:  &logger,
		DB:      db,
		Storage: store,
	}

	services, err := service.NewService(s, repository.NewRepositories(s))
	require.NoError(t, err)

	handlers, err := handler.NewHandlers(s, services)
	require.NoError(t, err)

	return &testApp{
		router:    NewRouter(s, handlers),
		server:    s,
		uploadDir: store.Dir(),
	}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return a.do(req)
}

type upload struct {
	filename string
	content  string
}

func (a *testApp) postMultipart(t *testing.T, path string, fields map[string]string, image *upload) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile("image", image.filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(image.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return a.do(req)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestProjects(t *testing.T) {
	app := newTestApp(t)

	t.Run("empty list", func(t *testing.T) {
		rec := app.get("/api/projects")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("create with image", func(t *testing.T) {
		rec := app.postMultipart(t, "/api/projects",
			map[string]string{"name": "Alpha", "description": "First"},
			&upload{filename: "my photo.png", content: "png-bytes"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"message":"Project added!"}`, rec.Body.String())

		data, err := os.ReadFile(filepath.Join(app.uploadDir, "my_photo.png"))
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))

		projects := decode[[]model.Project](t, app.get("/api/projects"))
		require.Len(t, projects, 1)
		assert.Equal(t, "Alpha", projects[0].Name)
		assert.Equal(t, "First", projects[0].Description)
		assert.Equal(t, "my_photo.png", projects[0].Image)
	})

	t.Run("empty strings are accepted", func(t *testing.T) {
		rec := app.postMultipart(t, "/api/projects",
			map[string]string{"name": "", "description": ""},
			&upload{filename: "blank.png", content: "x"})

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("missing field", func(t *testing.T) {
		rec := app.postMultipart(t, "/api/projects",
			map[string]string{"description": "No name"},
			&upload{filename: "orphan.png", content: "x"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[errs.HTTPError](t, rec)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "name", body.Errors[0].Field)

		_, err := os.Stat(filepath.Join(app.uploadDir, "orphan.png"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("without image returns the list", func(t *testing.T) {
		rec := app.postMultipart(t, "/api/projects",
			map[string]string{"name": "Beta", "description": "Second"}, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		projects := decode[[]model.Project](t, rec)
		assert.Len(t, projects, 2)
	})

	t.Run("empty filename returns the list", func(t *testing.T) {
		rec := app.postMultipart(t, "/api/projects",
			map[string]string{"name": "Beta", "description": "Second"},
			&upload{filename: "", content: ""})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]model.Project](t, rec), 2)
	})

	t.Run("json body is rejected", func(t *testing.T) {
		rec := app.postJSON("/api/projects", `{"name":"Delta","description":"Fourth"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Len(t, decode[[]model.Project](t, app.get("/api/projects")), 2)
	})

	t.Run("unusable filename", func(t *testing.T) {
		rec := app.postMultipart(t, "/api/projects",
			map[string]string{"name": "Gamma", "description": "Third"},
			&upload{filename: "../../", content: "x"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_FILENAME", decode[errs.HTTPError](t, rec).Code)
		assert.Len(t, decode[[]model.Project](t, app.get("/api/projects")), 2)
	})
}

func TestClients(t *testing.T) {
	app := newTestApp(t)

	rec := app.postMultipart(t, "/api/clients",
		map[string]string{"name": "Jane", "description": "Great work", "designation": "CEO"},
		&upload{filename: "jane.jpg", content: "jpg"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Client added!"}`, rec.Body.String())

	rec = app.postMultipart(t, "/api/clients",
		map[string]string{"name": "Joe", "description": "Nice"},
		&upload{filename: "joe.jpg", content: "jpg"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "designation", decode[errs.HTTPError](t, rec).Errors[0].Field)

	rec = app.postJSON("/api/clients", `{"name":"Joe","description":"Nice","designation":"CTO"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.get("/api/clients")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"id":1,"name":"Jane","description":"Great work","designation":"CEO","image":"jane.jpg"}]`,
		rec.Body.String())
}

func TestContact(t *testing.T) {
	app := newTestApp(t)

	rec := app.postJSON("/api/contact", `{"full_name":"A","email":"a@x.com","mobile":"1","city":"X"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Query received!"}`, rec.Body.String())

	rec = app.postJSON("/api/contact", `{"full_name":"B","email":"b@x.com","mobile":"2","city":"Y"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	t.Run("newest first", func(t *testing.T) {
		rec := app.get("/api/contact")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`[{"full_name":"B","email":"b@x.com","mobile":"2","city":"Y"},
			  {"full_name":"A","email":"a@x.com","mobile":"1","city":"X"}]`,
			rec.Body.String())
	})

	t.Run("missing key", func(t *testing.T) {
		rec := app.postJSON("/api/contact", `{"full_name":"C","email":"c@x.com","mobile":"3"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "city", decode[errs.HTTPError](t, rec).Errors[0].Field)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := app.postJSON("/api/contact", `{"full_name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	assert.Len(t, decode[[]model.ContactQuery](t, app.get("/api/contact")), 2)
}

func TestSubscribe(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 2; i++ {
		rec := app.postJSON("/api/subscribe", `{"email":"a@x.com"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"message":"Subscribed!"}`, rec.Body.String())
	}

	rec := app.get("/api/subscribe")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"email":"a@x.com"}]`, rec.Body.String())

	rec = app.postJSON("/api/subscribe", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email", decode[errs.HTTPError](t, rec).Errors[0].Field)
}

func TestPages(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Contains(t, rec.Body.String(), `id="project-list"`)

	rec = app.get("/admin")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="addProjectForm"`)
}

func TestUploads(t *testing.T) {
	app := newTestApp(t)

	rec := app.postMultipart(t, "/api/projects",
		map[string]string{"name": "Alpha", "description": "First"},
		&upload{filename: "shot.png", content: "png-bytes"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.get("/static/uploads/shot.png")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "png-bytes", rec.Body.String())

	rec = app.get("/static/uploads/missing.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.get("/static/uploads/.hidden")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSystemRoutes(t *testing.T) {
	app := newTestApp(t)

	t.Run("status", func(t *testing.T) {
		rec := app.get("/status")
		assert.Equal(t, http.StatusOK, rec.Code)

		body := decode[map[string]interface{}](t, rec)
		assert.Equal(t, "healthy", body["status"])
		checks := body["checks"].(map[string]interface{})
		assert.Contains(t, checks, "database")
		assert.NotContains(t, checks, "redis")
	})

	t.Run("status fails without database", func(t *testing.T) {
		app := newTestApp(t)
		require.NoError(t, app.server.DB.Close())

		rec := app.get("/status")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "unhealthy", decode[map[string]interface{}](t, rec)["status"])
	})

	t.Run("metrics", func(t *testing.T) {
		app.get("/api/projects")

		rec := app.get("/metrics")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "portfolio_http_requests_total")
	})

	t.Run("request id", func(t *testing.T) {
		rec := app.get("/api/projects")
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})
}

func TestErrors(t *testing.T) {
	app := newTestApp(t)

	t.Run("unknown route", func(t *testing.T) {
		rec := app.get("/api/nope")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decode[errs.HTTPError](t, rec)
		assert.Equal(t, "Route not found", body.Message)
	})

	t.Run("body too large", func(t *testing.T) {
		big := `{"email":"` + strings.Repeat("a", 128*1024) + `"}`
		rec := app.postJSON("/api/subscribe", big)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.JSONEq(t, `[]`, app.get("/api/subscribe").Body.String())
	})

	t.Run("oversized upload", func(t *testing.T) {
		rec := app.postMultipart(t, "/api/projects",
			map[string]string{"name": "Big", "description": "Too big"},
			&upload{filename: "big.png", content: strings.Repeat("x", 128*1024)})
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.JSONEq(t, `[]`, app.get("/api/projects").Body.String())
	})
}
