package orderrepo

import (
	"context"
	"fmt"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/repository/seed"
)

// OrderRepository guarda os pedidos na chave "<prefixo>orders".
type OrderRepository struct {
	orders *kvstore.Collection[domain.Order]
	logger logger.Logger
}

// NewOrderRepository cria o repositório de pedidos.
func NewOrderRepository(store kvstore.Store, keyPrefix string, latency kvstore.Latency, logger logger.Logger) *OrderRepository {
	return &OrderRepository{
		orders: kvstore.NewCollection(store, kvstore.CollectionOptions[domain.Order]{
			Key:     kvstore.Key(keyPrefix, kvstore.KeyOrders),
			IDOf:    func(o domain.Order) string { return o.ID },
			Seed:    seed.Orders,
			Latency: latency,
			Logger:  logger,
		}),
		logger: logger,
	}
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.orders.List(ctx)
}

// ListByUser devolve os pedidos de um cliente, na ordem de criação.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := r.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]domain.Order, 0)
	for _, o := range orders {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	return mine, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (domain.Order, bool, error) {
	return r.orders.Find(ctx, id)
}

func (r *OrderRepository) Save(ctx context.Context, order domain.Order) (domain.Order, error) {
	if err := r.orders.Append(ctx, order); err != nil {
		r.logger.Error("Falha ao salvar pedido.", err)
		return domain.Order{}, err
	}
	r.logger.Info("Pedido salvo.", map[string]interface{}{"id": order.ID, "user_id": order.UserID, "total": order.Total.StringFixed(2)})
	return order, nil
}

func (r *OrderRepository) Update(ctx context.Context, order domain.Order) (domain.Order, error) {
	found, err := r.orders.Replace(ctx, order)
	if err != nil {
		r.logger.Error("Falha ao atualizar pedido.", err)
		return domain.Order{}, err
	}
	if !found {
		return domain.Order{}, apperror.NewNotFoundError(fmt.Sprintf("Pedido com ID %s não existe.", order.ID))
	}
	return order, nil
}

// Modify aplica fn ao pedido de forma atômica neste processo.
func (r *OrderRepository) Modify(ctx context.Context, id string, fn func(o *domain.Order) error) (domain.Order, error) {
	order, found, err := r.orders.Modify(ctx, id, fn)
	if err != nil {
		return domain.Order{}, err
	}
	if !found {
		return domain.Order{}, apperror.NewNotFoundError(fmt.Sprintf("Pedido com ID %s não existe.", id))
	}
	return order, nil
}
