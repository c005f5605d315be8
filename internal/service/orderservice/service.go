package orderservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/logger"
)

// OrderRepository define o contrato que o Serviço de Pedidos espera da camada de Persistência.
type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	FindByID(ctx context.Context, id string) (domain.Order, bool, error)
	Save(ctx context.Context, order domain.Order) (domain.Order, error)
	Modify(ctx context.Context, id string, fn func(o *domain.Order) error) (domain.Order, error)
}

// Service implementa as regras de pedidos.
type Service struct {
	repo   OrderRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Pedidos.
func NewService(repo OrderRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// WithClock troca o relógio usado em createdAt. Usado em testes.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetOrders devolve todos os pedidos.
func (s *Service) GetOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar pedidos no repositório.", err)
		return nil, apperror.Wrap("Falha interna ao buscar pedidos.", err)
	}
	return orders, nil
}

// GetOrdersByUser devolve os pedidos de um cliente.
func (s *Service) GetOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Falha ao buscar pedidos do cliente no repositório.", err)
		return nil, apperror.Wrap("Falha interna ao buscar pedidos.", err)
	}
	return orders, nil
}

// GetOrderByID busca um pedido pelo ID.
func (s *Service) GetOrderByID(ctx context.Context, id string) (domain.Order, error) {
	order, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar pedido no repositório.", err)
		return domain.Order{}, apperror.Wrap("Falha interna ao buscar pedido.", err)
	}
	if !ok {
		return domain.Order{}, apperror.NewNotFoundError(fmt.Sprintf("Pedido com ID %s não foi encontrado.", id))
	}
	return order, nil
}

// CreateOrder grava um novo pedido com id e createdAt atribuídos.
// Status vazio vira Pendente.
func (s *Service) CreateOrder(ctx context.Context, req domain.OrderCreateRequest) (domain.Order, error) {
	s.logger.Debug("Iniciando criação de pedido no serviço.", map[string]interface{}{"user_id": req.UserID, "items": len(req.Items)})

	if req.UserID == "" {
		return domain.Order{}, apperror.NewValidationError("O pedido precisa de um cliente.")
	}
	if len(req.Items) == 0 {
		return domain.Order{}, apperror.NewValidationError("O pedido precisa de ao menos um item.")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.Order{}, apperror.NewValidationError(fmt.Sprintf("Quantidade inválida para o produto %s.", item.ProductID))
		}
	}
	if req.Status == "" {
		req.Status = domain.StatusPending
	}
	if !req.Status.Valid() {
		return domain.Order{}, apperror.NewValidationError(fmt.Sprintf("Status '%s' é inválido.", req.Status))
	}

	order := req.ToOrder(uuid.New().String(), s.now().UTC())
	created, err := s.repo.Save(ctx, order)
	if err != nil {
		s.logger.Error("Falha ao salvar pedido no repositório.", err)
		return domain.Order{}, apperror.Wrap("Falha interna ao criar pedido.", err)
	}

	s.logger.Info("Pedido criado com sucesso.", map[string]interface{}{"id": created.ID, "total": created.Total.StringFixed(2)})
	return created, nil
}

// UpdateOrderStatus altera o status do pedido respeitando a máquina de estados:
// Pendente -> Processando|Cancelado, Processando -> Enviado|Cancelado,
// Enviado -> Entregue. Repetir o status atual não altera nada.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	s.logger.Debug("Iniciando alteração de status do pedido.", map[string]interface{}{"id": id, "status": status})

	if !status.Valid() {
		return domain.Order{}, apperror.NewValidationError(fmt.Sprintf("Status '%s' é inválido.", status))
	}

	var previous domain.OrderStatus
	order, err := s.repo.Modify(ctx, id, func(o *domain.Order) error {
		previous = o.Status
		if o.Status == status {
			return nil
		}
		if !o.Status.CanTransitionTo(status) {
			return apperror.NewConflictError(fmt.Sprintf("Não é possível alterar o pedido de %s para %s.", o.Status, status))
		}
		o.Status = status
		return nil
	})
	if err != nil {
		s.logger.Warn("Falha ao alterar status do pedido.", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.Order{}, apperror.Wrap("Falha interna ao atualizar pedido.", err)
	}

	s.logger.Info("Status do pedido alterado.", map[string]interface{}{"id": id, "from": previous, "to": order.Status})
	return order, nil
}
