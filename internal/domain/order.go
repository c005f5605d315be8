package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus é o estado de um pedido, alterado apenas pelo painel.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pendente"
	StatusProcessing OrderStatus = "Processando"
	StatusShipped    OrderStatus = "Enviado"
	StatusDelivered  OrderStatus = "Entregue"
	StatusCancelled  OrderStatus = "Cancelado"
)

// orderTransitions é a máquina de estados do pedido.
// Entregue e Cancelado são terminais.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  nil,
	StatusCancelled:  nil,
}

// Valid informa se o status é conhecido.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// Terminal informa se o status não admite novas transições.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(orderTransitions[s]) == 0
}

// CanTransitionTo informa se a transição s -> next é permitida.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ShippingAddress é o endereço de entrega informado no checkout.
type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// OrderItem é uma linha do carrinho congelada no pedido.
type OrderItem struct {
	CartItem
	ID string `json:"id,omitempty"`
}

// Order é criado uma única vez no checkout; depois disso apenas o status muda.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	CouponCode      string          `json:"couponCode,omitempty"`
	Shipping        decimal.Decimal `json:"shipping"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OrderCreateRequest são os dados do pedido antes de id e createdAt.
type OrderCreateRequest struct {
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	CouponCode      string          `json:"couponCode,omitempty"`
	Shipping        decimal.Decimal `json:"shipping"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// ToOrder monta o registro a partir do payload e dos campos atribuídos.
func (r OrderCreateRequest) ToOrder(id string, createdAt time.Time) Order {
	return Order{
		ID:              id,
		UserID:          r.UserID,
		Items:           r.Items,
		Subtotal:        r.Subtotal,
		Discount:        r.Discount,
		CouponCode:      r.CouponCode,
		Shipping:        r.Shipping,
		Total:           r.Total,
		Status:          r.Status,
		ShippingAddress: r.ShippingAddress,
		CreatedAt:       createdAt,
	}
}

// OrderStatusUpdate é o payload de alteração de status no painel.
type OrderStatusUpdate struct {
	Status OrderStatus `json:"status"`
}

// CheckoutRequest é o payload do checkout da sessão.
type CheckoutRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CouponCode      string          `json:"couponCode,omitempty"`
}
