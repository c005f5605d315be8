package category

import (
	"context"
	"net/http"

	"ctrlshirt/internal/domain"
	"ctrlshirt/internal/pkg/httpx"
	"ctrlshirt/internal/pkg/logger"
)

// CategoryService define o contrato que o Handler espera da camada de Serviço.
type CategoryService interface {
	CreateCategory(ctx context.Context, req domain.CategoryCreateRequest) (domain.Category, error)
	GetCategoryByID(ctx context.Context, id string) (domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error)
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Handler agrupa os handlers de categoria.
type Handler struct {
	Service CategoryService
	Logger  logger.Logger
}

func NewHandler(svc CategoryService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// GetAllCategoriesHandler lida com a requisição GET /v1/categories.
// @Summary Lista as categorias
// @Tags categories
// @Produce json
// @Success 200 {array} domain.Category
// @Router /v1/categories [get]
func (h *Handler) GetAllCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.GetAllCategories(r.Context())
	httpx.Respond(w, r, h.Logger, categories, err, http.StatusOK)
}

// GetCategoryBySlugHandler lida com a requisição GET /v1/categories/{slug}.
// @Summary Busca uma categoria pelo slug
// @Tags categories
// @Produce json
// @Param slug path string true "Slug da categoria"
// @Success 200 {object} domain.Category
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/categories/{slug} [get]
func (h *Handler) GetCategoryBySlugHandler(w http.ResponseWriter, r *http.Request) {
	category, err := h.Service.GetCategoryBySlug(r.Context(), r.PathValue("slug"))
	httpx.Respond(w, r, h.Logger, category, err, http.StatusOK)
}

// GetCategoryByIDHandler lida com a requisição GET /v1/admin/categories/{id}.
// @Summary Busca uma categoria pelo ID
// @Tags admin-categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da categoria"
// @Success 200 {object} domain.Category
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/admin/categories/{id} [get]
func (h *Handler) GetCategoryByIDHandler(w http.ResponseWriter, r *http.Request) {
	category, err := h.Service.GetCategoryByID(r.Context(), r.PathValue("id"))
	httpx.Respond(w, r, h.Logger, category, err, http.StatusOK)
}

// CreateCategoryHandler lida com a requisição POST /v1/admin/categories.
// @Summary Cria uma categoria
// @Tags admin-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body domain.CategoryCreateRequest true "Nome da categoria"
// @Success 201 {object} domain.Category
// @Failure 400 {object} domain.ErrorResponse
// @Router /v1/admin/categories [post]
func (h *Handler) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.CategoryCreateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	category, err := h.Service.CreateCategory(r.Context(), req)
	httpx.Respond(w, r, h.Logger, category, err, http.StatusCreated)
}

// UpdateCategoryHandler lida com a requisição PUT /v1/admin/categories/{id}.
// @Summary Renomeia uma categoria
// @Description O slug é sempre recalculado a partir do novo nome.
// @Tags admin-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da categoria"
// @Param category body domain.CategoryCreateRequest true "Novo nome"
// @Success 200 {object} domain.Category
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/admin/categories/{id} [put]
func (h *Handler) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.CategoryCreateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	category, err := h.Service.UpdateCategory(r.Context(), domain.Category{ID: r.PathValue("id"), Name: req.Name})
	httpx.Respond(w, r, h.Logger, category, err, http.StatusOK)
}

// DeleteCategoryHandler lida com a requisição DELETE /v1/admin/categories/{id}.
// @Summary Remove uma categoria
// @Tags admin-categories
// @Security BearerAuth
// @Param id path string true "ID da categoria"
// @Success 204
// @Router /v1/admin/categories/{id} [delete]
func (h *Handler) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteCategory(r.Context(), r.PathValue("id"))
	httpx.Respond(w, r, h.Logger, nil, err, http.StatusNoContent)
}
