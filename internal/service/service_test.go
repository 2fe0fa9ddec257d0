package service

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/portfolio-backend/internal/errs"
	"github.com/deppfellow/portfolio-backend/internal/model"
	"github.com/deppfellow/portfolio-backend/internal/storage"
)

func strPtr(s string) *string { return &s }

type projectRepo struct {
	created []model.Project
	err     error
}

func (r *projectRepo) List(context.Context) ([]model.Project, error) { return r.created, r.err }

func (r *projectRepo) Create(_ context.Context, p *model.Project) error {
	if r.err != nil {
		return r.err
	}
	p.ID = int64(len(r.created) + 1)
	r.created = append(r.created, *p)
	return nil
}

type clientRepo struct {
	created []model.Client
}

func (r *clientRepo) List(context.Context) ([]model.Client, error) { return r.created, nil }

func (r *clientRepo) Create(_ context.Context, c *model.Client) error {
	c.ID = int64(len(r.created) + 1)
	r.created = append(r.created, *c)
	return nil
}

type contactRepo struct {
	created []model.ContactQuery
}

func (r *contactRepo) List(context.Context) ([]model.ContactQuery, error) { return r.created, nil }

func (r *contactRepo) Create(_ context.Context, q *model.ContactQuery) error {
	q.ID = int64(len(r.created) + 1)
	r.created = append(r.created, *q)
	return nil
}

type subscriberRepo struct {
	emails map[string]bool
	// raceLost makes Create report no insert, as if a concurrent request won.
	raceLost bool
}

func (r *subscriberRepo) List(context.Context) ([]model.Subscriber, error) { return nil, nil }

func (r *subscriberRepo) Exists(_ context.Context, email string) (bool, error) {
	return r.emails[email], nil
}

func (r *subscriberRepo) Create(_ context.Context, email string) (bool, error) {
	if r.raceLost || r.emails[email] {
		return false, nil
	}
	r.emails[email] = true
	return true, nil
}

type fakeNotifier struct {
	subscribed []string
	contacts   []*model.ContactQuery
	err        error
}

func (n *fakeNotifier) NotifySubscribed(_ context.Context, email string) error {
	n.subscribed = append(n.subscribed, email)
	return n.err
}

func (n *fakeNotifier) NotifyContact(_ context.Context, q *model.ContactQuery) error {
	n.contacts = append(n.contacts, q)
	return n.err
}

func newStore(t *testing.T) (*storage.LocalStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	return store, dir
}

func upload(filename, body string) ImageUpload {
	return ImageUpload{
		Filename:    filename,
		ContentType: "image/png",
		Size:        int64(len(body)),
		Content:     strings.NewReader(body),
	}
}

func TestProjectService_Create(t *testing.T) {
	store, dir := newStore(t)
	repo := &projectRepo{}
	svc := NewProjectService(repo, store)
	ctx := context.Background()

	req := &model.CreateProjectRequest{Name: strPtr("Site"), Description: strPtr("")}
	project, err := svc.Create(ctx, req, upload("my logo.png", "png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "my_logo.png", project.Image)
	assert.Equal(t, "", project.Description)
	assert.Equal(t, int64(1), project.ID)

	data, err := os.ReadFile(filepath.Join(dir, "my_logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestProjectService_Create_UnusableFilename(t *testing.T) {
	store, dir := newStore(t)
	repo := &projectRepo{}
	svc := NewProjectService(repo, store)

	req := &model.CreateProjectRequest{Name: strPtr("Site"), Description: strPtr("d")}
	_, err := svc.Create(context.Background(), req, upload("日本.", "x"))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Empty(t, repo.created)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProjectService_Create_InsertFailureKeepsFile(t *testing.T) {
	store, dir := newStore(t)
	svc := NewProjectService(&projectRepo{err: errors.New("db down")}, store)

	req := &model.CreateProjectRequest{Name: strPtr("Site"), Description: strPtr("d")}
	_, err := svc.Create(context.Background(), req, upload("logo.png", "x"))
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "logo.png"))
	assert.NoError(t, statErr)
}

func TestClientService_Create(t *testing.T) {
	store, _ := newStore(t)
	repo := &clientRepo{}
	svc := NewClientService(repo, store)

	req := &model.CreateClientRequest{Name: strPtr("Ann"), Description: strPtr("Great"), Designation: strPtr("CEO")}
	client, err := svc.Create(context.Background(), req, upload("../ann.jpg", "x"))
	require.NoError(t, err)

	assert.Equal(t, "ann.jpg", client.Image)
	assert.Equal(t, "CEO", client.Designation)

	clients, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestContactService_Create(t *testing.T) {
	logger := zerolog.Nop()
	repo := &contactRepo{}
	notifier := &fakeNotifier{}
	svc := NewContactService(repo, notifier, &logger)

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	svc.now = func() time.Time { return fixed }

	req := &model.CreateContactRequest{
		FullName: strPtr("Jane"),
		Email:    strPtr("j@x.com"),
		Mobile:   strPtr("123"),
		City:     strPtr("Oslo"),
	}
	q, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, time.UTC, q.Timestamp.Location())
	assert.True(t, q.Timestamp.Equal(fixed))
	require.Len(t, notifier.contacts, 1)
	assert.Equal(t, "Jane", notifier.contacts[0].FullName)
}

func TestContactService_Create_NotifyFailureIgnored(t *testing.T) {
	logger := zerolog.Nop()
	svc := NewContactService(&contactRepo{}, &fakeNotifier{err: errors.New("redis down")}, &logger)

	req := &model.CreateContactRequest{FullName: strPtr("a"), Email: strPtr("b"), Mobile: strPtr("c"), City: strPtr("d")}
	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestSubscriberService_Subscribe(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("first subscription notifies once", func(t *testing.T) {
		repo := &subscriberRepo{emails: map[string]bool{}}
		notifier := &fakeNotifier{}
		svc := NewSubscriberService(repo, notifier, &logger)

		created, err := svc.Subscribe(ctx, &model.SubscribeRequest{Email: strPtr("a@x.com")})
		require.NoError(t, err)
		assert.True(t, created)

		created, err = svc.Subscribe(ctx, &model.SubscribeRequest{Email: strPtr("a@x.com")})
		require.NoError(t, err)
		assert.False(t, created)

		assert.Equal(t, []string{"a@x.com"}, notifier.subscribed)
	})

	t.Run("lost insert race does not notify", func(t *testing.T) {
		notifier := &fakeNotifier{}
		svc := NewSubscriberService(&subscriberRepo{emails: map[string]bool{}, raceLost: true}, notifier, &logger)

		created, err := svc.Subscribe(ctx, &model.SubscribeRequest{Email: strPtr("a@x.com")})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Empty(t, notifier.subscribed)
	})

	t.Run("nil notifier", func(t *testing.T) {
		svc := NewSubscriberService(&subscriberRepo{emails: map[string]bool{}}, nil, &logger)

		created, err := svc.Subscribe(ctx, &model.SubscribeRequest{Email: strPtr("a@x.com")})
		require.NoError(t, err)
		assert.True(t, created)
	})
}
