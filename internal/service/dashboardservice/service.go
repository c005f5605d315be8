package dashboardservice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/logger"
)

// newOrdersWindow define o que conta como pedido novo no painel.
const newOrdersWindow = 7 * 24 * time.Hour

type OrderLister interface {
	List(ctx context.Context) ([]domain.Order, error)
}

type UserLister interface {
	List(ctx context.Context) ([]domain.User, error)
}

// Service calcula os agregados do painel sob demanda.
type Service struct {
	orders OrderLister
	users  UserLister
	logger logger.Logger
	now    func() time.Time
}

func NewService(orders OrderLister, users UserLister, logger logger.Logger) *Service {
	return &Service{orders: orders, users: users, logger: logger, now: time.Now}
}

// WithClock troca o relógio usado na janela de pedidos novos.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetDashboardStats soma a receita de todos os pedidos, conta pedidos e
// clientes e quantos pedidos foram criados nos últimos 7 dias.
// As duas coleções são lidas em paralelo.
func (s *Service) GetDashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	var (
		orders []domain.Order
		users  []domain.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.users.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Falha ao carregar dados do painel.", err)
		return domain.DashboardStats{}, apperror.Wrap("Falha interna ao calcular o painel.", err)
	}

	cutoff := s.now().Add(-newOrdersWindow)
	stats := domain.DashboardStats{TotalRevenue: decimal.Zero, TotalOrders: len(orders)}
	for _, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
		if o.CreatedAt.After(cutoff) {
			stats.NewOrders++
		}
	}
	for _, u := range users {
		if u.Role == domain.RoleCustomer {
			stats.TotalCustomers++
		}
	}
	return stats, nil
}
