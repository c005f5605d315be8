package product

import (
	"context"
	"net/http"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/httpx"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/pkg/middleware"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.Product, error)
	GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AddReview(ctx context.Context, productID string, req domain.ReviewRequest) (domain.Review, error)
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// GetProductsHandler lida com a requisição GET /v1/products.
// @Summary Lista o catálogo
// @Description Filtros opcionais por categoria, tamanho com estoque, tag e busca por nome.
// @Tags products
// @Produce json
// @Param category query string false "ID da categoria"
// @Param size query string false "Tamanho com estoque (P, M, G, GG, XG)"
// @Param tag query string false "Tag"
// @Param q query string false "Busca por nome"
// @Success 200 {array} domain.Product
// @Failure 400 {object} domain.ErrorResponse
// @Router /v1/products [get]
func (h *Handler) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		CategoryID: q.Get("category"),
		Size:       domain.Size(q.Get("size")),
		Tag:        q.Get("tag"),
		Query:      q.Get("q"),
	}
	products, err := h.Service.GetProducts(r.Context(), filter)
	httpx.Respond(w, r, h.Logger, products, err, http.StatusOK)
}

// GetProductBySlugHandler lida com a requisição GET /v1/products/{slug}.
// @Summary Busca um produto pelo slug
// @Tags products
// @Produce json
// @Param slug path string true "Slug do produto"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/products/{slug} [get]
func (h *Handler) GetProductBySlugHandler(w http.ResponseWriter, r *http.Request) {
	product, err := h.Service.GetProductBySlug(r.Context(), r.PathValue("slug"))
	httpx.Respond(w, r, h.Logger, product, err, http.StatusOK)
}

// GetProductByIDHandler lida com a requisição GET /v1/admin/products/{id}.
// @Summary Busca um produto pelo ID
// @Tags admin-products
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/admin/products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.Error(w, r, h.Logger, apperror.NewValidationError("ID do produto é obrigatório."))
		return
	}
	product, err := h.Service.GetProductByID(r.Context(), id)
	httpx.Respond(w, r, h.Logger, product, err, http.StatusOK)
}

// CreateProductHandler lida com a requisição POST /v1/admin/products.
// @Summary Cria um produto
// @Description O slug é derivado do nome; colisões recebem sufixo numérico.
// @Tags admin-products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body domain.ProductCreateRequest true "Dados do produto"
// @Success 201 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse
// @Router /v1/admin/products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if claims, ok := middleware.GetUserClaimsFromContext(ctx); ok {
		h.Logger.Info("Tentativa de criação de produto por", map[string]interface{}{
			"user_id": claims.UserID,
			"role":    claims.Role,
		})
	}

	var req domain.ProductCreateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}

	newProduct, err := h.Service.CreateProduct(ctx, req)
	httpx.Respond(w, r, h.Logger, newProduct, err, http.StatusCreated)
}

// UpdateProductHandler lida com a requisição PUT /v1/admin/products/{id}.
// @Summary Atualiza um produto
// @Tags admin-products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param product body domain.Product true "Produto completo"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/admin/products/{id} [put]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := httpx.Decode(r, &product); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	// O ID da rota prevalece sobre o do corpo.
	product.ID = r.PathValue("id")

	updated, err := h.Service.UpdateProduct(r.Context(), product)
	httpx.Respond(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteProductHandler lida com a requisição DELETE /v1/admin/products/{id}.
// @Summary Remove um produto
// @Description Remover um ID inexistente não é erro.
// @Tags admin-products
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 204
// @Router /v1/admin/products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteProduct(r.Context(), r.PathValue("id"))
	httpx.Respond(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// AddReviewHandler lida com a requisição POST /v1/products/{id}/reviews.
// Exige um usuário logado na sessão; o autor é o nome desse usuário.
// @Summary Avalia um produto
// @Tags products
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "ID da sessão"
// @Param id path string true "ID do produto"
// @Param review body domain.ReviewRequest true "Nota e comentário"
// @Success 201 {object} domain.Review
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/products/{id}/reviews [post]
func (h *Handler) AddReviewHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		httpx.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Sessão ausente."))
		return
	}
	user, ok := sess.CurrentUser()
	if !ok {
		httpx.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Faça login para avaliar um produto."))
		return
	}

	var req domain.ReviewRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	req.Author = user.Name

	review, err := h.Service.AddReview(ctx, r.PathValue("id"), req)
	httpx.Respond(w, r, h.Logger, review, err, http.StatusCreated)
}
