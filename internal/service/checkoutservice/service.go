package checkoutservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/events"
	"ctrlshirt/internal/pkg/logger"
)

const defaultCountry = "Brasil"

// Session é a parte do estado da sessão usada no checkout. Checkout deve
// serializar chamadas da mesma sessão e, se fn tiver sucesso, retirar do
// carrinho os itens que fn recebeu.
type Session interface {
	Checkout(ctx context.Context, fn func(user domain.User, loggedIn bool, items []domain.CartItem) error) error
}

type StockChecker interface {
	CheckAvailability(ctx context.Context, items []domain.CartItem) error
}

type CouponValidator interface {
	ValidateCoupon(ctx context.Context, code string) (*domain.Coupon, error)
}

type SettingsReader interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, req domain.OrderCreateRequest) (domain.Order, error)
}

// Service transforma o carrinho da sessão em um pedido.
type Service struct {
	stock     StockChecker
	coupons   CouponValidator
	settings  SettingsReader
	orders    OrderCreator
	publisher events.OrderPublisher
	logger    logger.Logger
}

// NewService cria o serviço de checkout.
func NewService(stock StockChecker, coupons CouponValidator, settings SettingsReader, orders OrderCreator, publisher events.OrderPublisher, logger logger.Logger) *Service {
	return &Service{stock: stock, coupons: coupons, settings: settings, orders: orders, publisher: publisher, logger: logger}
}

// Quote calcula os valores do pedido sem gravar nada.
// Cupom desconhecido ou inativo é ValidationError aqui, já que o cliente o informou.
func (s *Service) Quote(ctx context.Context, items []domain.CartItem, couponCode string) (domain.OrderCreateRequest, error) {
	subtotal := decimal.Zero
	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
		orderItems = append(orderItems, domain.OrderItem{CartItem: item, ID: fmt.Sprintf("%s-%s", item.ProductID, item.Size)})
	}

	discount := decimal.Zero
	couponCode = strings.TrimSpace(couponCode)
	if couponCode != "" {
		coupon, err := s.coupons.ValidateCoupon(ctx, couponCode)
		if err != nil {
			return domain.OrderCreateRequest{}, err
		}
		if coupon == nil {
			return domain.OrderCreateRequest{}, apperror.NewValidationError(fmt.Sprintf("Cupom '%s' inválido ou expirado.", couponCode))
		}
		discount = coupon.DiscountOn(subtotal)
		couponCode = coupon.Code
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return domain.OrderCreateRequest{}, err
	}

	return domain.OrderCreateRequest{
		Items:      orderItems,
		Subtotal:   subtotal,
		Discount:   discount,
		CouponCode: couponCode,
		Shipping:   settings.ShippingCost,
		Total:      subtotal.Sub(discount).Add(settings.ShippingCost),
		Status:     domain.StatusPending,
	}, nil
}

// Checkout cria o pedido Pendente a partir do carrinho, retira os itens
// comprados do carrinho e publica order.created. A publicação não afeta o
// resultado. Finalizações simultâneas da mesma sessão geram um único pedido.
func (s *Service) Checkout(ctx context.Context, sess Session, req domain.CheckoutRequest) (domain.Order, error) {
	var order domain.Order
	err := sess.Checkout(ctx, func(user domain.User, loggedIn bool, items []domain.CartItem) error {
		if !loggedIn {
			return apperror.NewUnauthorizedError("É preciso estar logado para finalizar a compra.")
		}
		if len(items) == 0 {
			return apperror.NewValidationError("O carrinho está vazio.")
		}
		address, err := normalizeAddress(req.ShippingAddress)
		if err != nil {
			return err
		}

		s.logger.Debug("Iniciando checkout.", map[string]interface{}{"user_id": user.ID, "items": len(items)})

		if err := s.stock.CheckAvailability(ctx, items); err != nil {
			return err
		}

		orderReq, err := s.Quote(ctx, items, req.CouponCode)
		if err != nil {
			return err
		}
		orderReq.UserID = user.ID
		orderReq.ShippingAddress = address

		order, err = s.orders.CreateOrder(ctx, orderReq)
		if err != nil {
			s.logger.Error("Falha ao criar pedido no checkout.", err)
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		s.logger.Warn("Falha ao publicar evento de pedido.", map[string]interface{}{"order_id": order.ID, "error": err.Error()})
	}

	s.logger.Info("Checkout concluído.", map[string]interface{}{"order_id": order.ID, "user_id": order.UserID, "total": order.Total.StringFixed(2)})
	return order, nil
}

func normalizeAddress(a domain.ShippingAddress) (domain.ShippingAddress, error) {
	a.FullName = strings.TrimSpace(a.FullName)
	a.Address = strings.TrimSpace(a.Address)
	a.City = strings.TrimSpace(a.City)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.TrimSpace(a.Country)
	if a.FullName == "" || a.Address == "" || a.City == "" || a.PostalCode == "" {
		return a, apperror.NewValidationError("Nome, endereço, cidade e CEP são obrigatórios.")
	}
	if a.Country == "" {
		a.Country = defaultCountry
	}
	return a, nil
}
