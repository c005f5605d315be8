package httpx_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/httpx"
	"ctrlshirt/internal/pkg/logger"
)

func quietLogger() logger.Logger {
	return logger.NewLoggerWithWriter("error", &bytes.Buffer{})
}

func TestRespond_Success(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/categories", nil)

	httpx.Respond(rec, req, quietLogger(), map[string]string{"ok": "sim"}, nil, http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":"sim"}`, rec.Body.String())
}

func TestRespond_NoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.Respond(rec, httptest.NewRequest(http.MethodDelete, "/x", nil), quietLogger(), nil, nil, http.StatusNoContent)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestError_MapsAppErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperror.NewNotFoundError("x"), http.StatusNotFound},
		{apperror.NewConflictError("x"), http.StatusConflict},
		{errors.New("cru"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		httpx.Error(rec, httptest.NewRequest(http.MethodGet, "/x", nil), quietLogger(), c.err)

		assert.Equal(t, c.status, rec.Code)
		var body domain.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, c.status, body.Code)
		assert.NotEmpty(t, body.Category)
	}
}

func TestDecode(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	err := httpx.Decode(httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":"Sci-Fi"}`)), &v)
	require.NoError(t, err)
	assert.Equal(t, "Sci-Fi", v.Name)

	err = httpx.Decode(httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("")), &v)
	assert.IsType(t, &apperror.ValidationError{}, err)

	err = httpx.Decode(httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("{nope")), &v)
	assert.IsType(t, &apperror.ValidationError{}, err)
}
