package order

import (
	"context"
	"fmt"
	"net/http"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/httpx"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/pkg/middleware"
)

// OrderService define o contrato que o Handler espera da camada de Serviço.
type OrderService interface {
	GetOrders(ctx context.Context) ([]domain.Order, error)
	GetOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error)
}

// Handler agrupa os handlers de pedidos (painel e área do cliente).
type Handler struct {
	Service OrderService
	Logger  logger.Logger
}

func NewHandler(svc OrderService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// GetOrdersHandler lida com a requisição GET /v1/admin/orders.
// @Summary Lista todos os pedidos
// @Tags admin-orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Order
// @Router /v1/admin/orders [get]
func (h *Handler) GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.GetOrders(r.Context())
	httpx.Respond(w, r, h.Logger, orders, err, http.StatusOK)
}

// GetOrderByIDHandler lida com a requisição GET /v1/admin/orders/{id}.
// @Summary Busca um pedido
// @Tags admin-orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do pedido"
// @Success 200 {object} domain.Order
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/admin/orders/{id} [get]
func (h *Handler) GetOrderByIDHandler(w http.ResponseWriter, r *http.Request) {
	order, err := h.Service.GetOrderByID(r.Context(), r.PathValue("id"))
	httpx.Respond(w, r, h.Logger, order, err, http.StatusOK)
}

// UpdateOrderStatusHandler lida com a requisição PATCH /v1/admin/orders/{id}/status.
// @Summary Altera o status de um pedido
// @Description Pendente -> Processando|Cancelado, Processando -> Enviado|Cancelado, Enviado -> Entregue.
// @Tags admin-orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do pedido"
// @Param status body domain.OrderStatusUpdate true "Novo status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /v1/admin/orders/{id}/status [patch]
func (h *Handler) UpdateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderStatusUpdate
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	order, err := h.Service.UpdateOrderStatus(r.Context(), r.PathValue("id"), req.Status)
	httpx.Respond(w, r, h.Logger, order, err, http.StatusOK)
}

// GetMyOrdersHandler lida com a requisição GET /v1/account/orders.
// @Summary Pedidos do usuário logado
// @Tags account
// @Produce json
// @Param X-Session-ID header string true "ID da sessão"
// @Success 200 {array} domain.Order
// @Failure 401 {object} domain.ErrorResponse
// @Router /v1/account/orders [get]
func (h *Handler) GetMyOrdersHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	orders, err := h.Service.GetOrdersByUser(r.Context(), user.ID)
	httpx.Respond(w, r, h.Logger, orders, err, http.StatusOK)
}

// GetMyOrderHandler lida com a requisição GET /v1/account/orders/{id}.
// Pedido de outro usuário responde como inexistente.
// @Summary Detalhe de um pedido do usuário logado
// @Tags account
// @Produce json
// @Param X-Session-ID header string true "ID da sessão"
// @Param id path string true "ID do pedido"
// @Success 200 {object} domain.Order
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/account/orders/{id} [get]
func (h *Handler) GetMyOrderHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	id := r.PathValue("id")
	order, err := h.Service.GetOrderByID(r.Context(), id)
	if err == nil && order.UserID != user.ID {
		err = apperror.NewNotFoundError(fmt.Sprintf("Pedido com ID %s não existe.", id))
	}
	httpx.Respond(w, r, h.Logger, order, err, http.StatusOK)
}

func currentUser(r *http.Request) (domain.User, error) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		return domain.User{}, apperror.NewUnauthorizedError("Sessão ausente.")
	}
	user, ok := sess.CurrentUser()
	if !ok {
		return domain.User{}, apperror.NewUnauthorizedError("Faça login para ver seus pedidos.")
	}
	return user, nil
}
