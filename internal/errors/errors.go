package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados da CtrlShirt.
// Ela permite que o Handler acesse a Categoria, a Mensagem e o status HTTP sugerido.
type AppError interface {
	Error() string
	Category() string
	HTTPStatus() int
	Unwrap() error
}

// --- Erros de Domínio ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa a ausência do registro alvo de um update/delete/get.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito de regra de negócio
// (transição de status inválida, estoque insuficiente, e-mail duplicado).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict }
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// UnauthorizedError representa ausência de credenciais ou token inválido.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autenticação.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError representa um usuário autenticado sem o papel necessário.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acesso negado: %s", e.Msg) }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden }
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError cria um novo erro de permissão.
func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// TooManyRequestsError representa o estouro do limite de requisições.
type TooManyRequestsError struct {
	Msg string
}

func (e *TooManyRequestsError) Error() string    { return fmt.Sprintf("Limite excedido: %s", e.Msg) }
func (e *TooManyRequestsError) Category() string { return "TOO_MANY_REQUESTS" }
func (e *TooManyRequestsError) HTTPStatus() int  { return http.StatusTooManyRequests }
func (e *TooManyRequestsError) Unwrap() error    { return nil }

func NewTooManyRequestsError(msg string) AppError {
	return &TooManyRequestsError{Msg: msg}
}

// --- Erros de Infraestrutura ---

// InternalError representa falhas inesperadas no serviço ou repositório.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor.
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// StorageError é a falha do armazenamento chave-valor (leitura, escrita ou
// desserialização de uma coleção).
type StorageError struct {
	Key string
	Msg string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("Falha de armazenamento [%s]: %s", e.Key, e.Msg)
	}
	return fmt.Sprintf("Falha de armazenamento [%s]: %s: %s", e.Key, e.Msg, e.Err.Error())
}
func (e *StorageError) Category() string { return "STORAGE_ERROR" }
func (e *StorageError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *StorageError) Unwrap() error    { return e.Err }

// NewStorageError cria um erro de armazenamento para a chave informada.
func NewStorageError(key, msg string, err error) AppError {
	return &StorageError{Key: key, Msg: msg, Err: err}
}

// --- Helpers ---

// IsNotFound informa se algum erro da cadeia é um NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return stderrors.As(err, &nf)
}

// IsConflict informa se algum erro da cadeia é um ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return stderrors.As(err, &c)
}

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, categoria e mensagem.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}

// Wrap mantém erros que já são AppError e encapsula os demais como InternalError.
func Wrap(msg string, err error) error {
	if err == nil {
		return nil
	}
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return NewInternalError(msg, err)
}
