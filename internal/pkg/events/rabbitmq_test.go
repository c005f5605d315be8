package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ctrlshirt/internal/domain"
	"ctrlshirt/internal/pkg/logger"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, msg)
	return args.Error(0)
}

func newTestPublisher(ch publishChannel, acquireErr error, released *int) *RabbitPublisher {
	acquire := func() (publishChannel, func(), error) {
		if acquireErr != nil {
			return nil, nil, acquireErr
		}
		return ch, func() { *released++ }, nil
	}
	p := newRabbitPublisher(acquire, "ctrlshirt.orders", logger.NewLoggerWithWriter("error", &bytes.Buffer{}))
	p.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return p
}

func TestRabbitPublisher_PublishesPersistentJSON(t *testing.T) {
	ch := new(mockChannel)
	var sent amqp.Publishing
	ch.On("PublishWithContext", mock.Anything, "", "ctrlshirt.orders", mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(3).(amqp.Publishing) }).
		Return(nil)
	released := 0

	err := newTestPublisher(ch, nil, &released).PublishOrderCreated(context.Background(), domain.Order{ID: "o-1", UserID: "3"})

	require.NoError(t, err)
	assert.Equal(t, 1, released)
	assert.Equal(t, amqp.Persistent, sent.DeliveryMode)
	assert.Equal(t, TypeOrderCreated, sent.Type)

	var event OrderCreated
	require.NoError(t, json.Unmarshal(sent.Body, &event))
	assert.Equal(t, "o-1", event.Order.ID)
	assert.Equal(t, sent.MessageId, event.EventID)
}

func TestRabbitPublisher_SurfacesErrors(t *testing.T) {
	released := 0
	err := newTestPublisher(nil, errors.New("nenhum canal disponível no pool"), &released).
		PublishOrderCreated(context.Background(), domain.Order{ID: "o-1"})
	assert.ErrorContains(t, err, "nenhum canal")
	assert.Zero(t, released)

	ch := new(mockChannel)
	ch.On("PublishWithContext", mock.Anything, "", "ctrlshirt.orders", mock.Anything).Return(errors.New("channel closed"))
	err = newTestPublisher(ch, nil, &released).PublishOrderCreated(context.Background(), domain.Order{ID: "o-1"})
	assert.ErrorContains(t, err, "channel closed")
	assert.Equal(t, 1, released)
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.PublishOrderCreated(context.Background(), domain.Order{ID: "x"}))
}
