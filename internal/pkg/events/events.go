// Package events publica eventos de domínio para consumidores externos
// (fulfillment, e-mail). A publicação é best-effort: falhas são registradas
// por quem chama e nunca desfazem a operação que gerou o evento.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ctrlshirt/internal/domain"
	"ctrlshirt/internal/pkg/logger"
)

// TypeOrderCreated identifica o evento emitido após um checkout.
const TypeOrderCreated = "order.created"

// OrderCreated é o corpo publicado para cada pedido novo.
type OrderCreated struct {
	EventID    string       `json:"eventId"`
	Type       string       `json:"type"`
	OccurredAt time.Time    `json:"occurredAt"`
	Order      domain.Order `json:"order"`
}

// NewOrderCreated monta o evento de um pedido.
func NewOrderCreated(order domain.Order, at time.Time) OrderCreated {
	return OrderCreated{
		EventID:    uuid.New().String(),
		Type:       TypeOrderCreated,
		OccurredAt: at.UTC(),
		Order:      order,
	}
}

// OrderPublisher é o contrato usado pelo checkout.
type OrderPublisher interface {
	PublishOrderCreated(ctx context.Context, order domain.Order) error
}

// NoopPublisher descarta os eventos. Usado quando AMQP_URL não está definida.
type NoopPublisher struct {
	Logger logger.Logger
}

func (p NoopPublisher) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	if p.Logger != nil {
		p.Logger.Debug("Publicação de eventos desativada; evento descartado.", map[string]interface{}{"order_id": order.ID})
	}
	return nil
}
