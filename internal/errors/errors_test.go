package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "ctrlshirt/internal/errors"
)

func TestMapToHTTPStatus_TypedErrors(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		category string
	}{
		{apperror.NewValidationError("x"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{apperror.NewNotFoundError("x"), http.StatusNotFound, "NOT_FOUND"},
		{apperror.NewConflictError("x"), http.StatusConflict, "CONFLICT"},
		{apperror.NewUnauthorizedError("x"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{apperror.NewForbiddenError("x"), http.StatusForbidden, "FORBIDDEN"},
		{apperror.NewTooManyRequestsError("x"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{apperror.NewStorageError("k", "x", errors.New("disk full")), http.StatusInternalServerError, "STORAGE_ERROR"},
	}

	for _, c := range cases {
		status, category, _ := apperror.MapToHTTPStatus(c.err)
		assert.Equal(t, c.status, status)
		assert.Equal(t, c.category, category)
	}
}

func TestMapToHTTPStatus_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("camada de serviço: %w", apperror.NewNotFoundError("Pedido 9"))

	status, category, _ := apperror.MapToHTTPStatus(wrapped)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", category)
	assert.True(t, apperror.IsNotFound(wrapped))
}

func TestIsConflict(t *testing.T) {
	assert.True(t, apperror.IsConflict(apperror.NewConflictError("código em uso")))
	assert.True(t, apperror.IsConflict(fmt.Errorf("salvar: %w", apperror.NewConflictError("código em uso"))))
	assert.False(t, apperror.IsConflict(apperror.NewNotFoundError("x")))
	assert.False(t, apperror.IsConflict(nil))
}

func TestMapToHTTPStatus_UntypedError(t *testing.T) {
	status, category, msg := apperror.MapToHTTPStatus(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "UNKNOWN_ERROR", category)
	assert.Equal(t, "Ocorreu um erro inesperado.", msg)
}

func TestStorageError_UnwrapsCause(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := apperror.NewStorageError("ctrlshirt_products", "falha ao gravar coleção", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "ctrlshirt_products")
}

func TestWrap(t *testing.T) {
	assert.NoError(t, apperror.Wrap("x", nil))

	notFound := apperror.NewNotFoundError("produto")
	assert.Same(t, notFound, apperror.Wrap("x", notFound))

	err := apperror.Wrap("Falha interna ao buscar produtos.", errors.New("context canceled"))
	var internal *apperror.InternalError
	assert.ErrorAs(t, err, &internal)
	assert.Equal(t, "Falha interna ao buscar produtos.", internal.Msg)
}
