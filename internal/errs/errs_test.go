package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPError_Constructors(t *testing.T) {
	bad := NewBadRequestError("nope", false, nil, nil)
	assert.Equal(t, "BAD_REQUEST", bad.Code)
	assert.Equal(t, http.StatusBadRequest, bad.Status)

	code := "SUBSCRIBER_INVALID"
	custom := NewBadRequestError("nope", true, &code, nil)
	assert.Equal(t, code, custom.Code)
	assert.True(t, custom.Override)

	notFound := NewNotFoundError("Route not found", false, nil)
	assert.Equal(t, "NOT_FOUND", notFound.Code)
	assert.Equal(t, http.StatusNotFound, notFound.Status)

	internal := NewInternalServerError()
	assert.Equal(t, "INTERNAL_SERVER_ERROR", internal.Code)
	assert.Equal(t, "Internal Server Error", internal.Message)

	tooLarge := NewStatusError(http.StatusRequestEntityTooLarge, "")
	assert.Equal(t, "REQUEST_ENTITY_TOO_LARGE", tooLarge.Code)
	assert.Equal(t, "Request Entity Too Large", tooLarge.Message)
}

func TestHTTPError_ErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("create project: %w", NewBadRequestError("bad", false, nil, nil))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "bad", httpErr.Message)
	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	renamed := httpErr.WithMessage("still bad")
	assert.Equal(t, "still bad", renamed.Message)
	assert.Equal(t, "bad", httpErr.Message)
}
