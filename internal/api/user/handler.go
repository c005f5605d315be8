package user

import (
	"context"
	"net/http"

	"ctrlshirt/internal/domain"
	"ctrlshirt/internal/pkg/httpx"
	"ctrlshirt/internal/pkg/logger"
)

// UserService define o contrato para registro e consultas de usuários.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
	GetCustomers(ctx context.Context) ([]domain.User, error)
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

// OrderLister devolve o histórico de pedidos de um usuário.
type OrderLister interface {
	GetOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Orders  OrderLister
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando os Services e o Logger.
func NewHandler(svc UserService, orders OrderLister, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Orders:  orders,
		Logger:  log,
	}
}

// RegisterUserHandler lida com a requisição POST /v1/register.
// @Summary Registra um novo cliente
// @Description Cria um cliente, hasheia a senha e salva no armazenamento.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Nome, email e senha"
// @Success 201 {object} domain.User "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou campos obrigatórios ausentes"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /v1/register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := httpx.Decode(r, &reg); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}

	// O usuário devolvido pelo serviço já vem sem senha.
	newUser, err := h.Service.Register(r.Context(), reg)
	httpx.Respond(w, r, h.Logger, newUser, err, http.StatusCreated)
}

// GetCustomersHandler lida com a requisição GET /v1/admin/customers.
// @Summary Lista os clientes
// @Tags admin-customers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.User
// @Router /v1/admin/customers [get]
func (h *Handler) GetCustomersHandler(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Service.GetCustomers(r.Context())
	httpx.Respond(w, r, h.Logger, customers, err, http.StatusOK)
}

// GetCustomerHandler lida com a requisição GET /v1/admin/customers/{id}.
// @Summary Detalhe de um cliente com seus pedidos
// @Tags admin-customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do usuário"
// @Success 200 {object} domain.CustomerDetail
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/admin/customers/{id} [get]
func (h *Handler) GetCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.Service.GetUserByID(ctx, r.PathValue("id"))
	if err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	orders, err := h.Orders.GetOrdersByUser(ctx, user.ID)
	httpx.Respond(w, r, h.Logger, domain.CustomerDetail{User: user, Orders: orders}, err, http.StatusOK)
}
