package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"ctrlshirt/internal/domain"
	"ctrlshirt/internal/pkg/logger"
)

const publishTimeout = 5 * time.Second

// ChannelPool mantém canais AMQP abertos sobre uma única conexão.
type ChannelPool struct {
	conn      *amqp.Connection
	channels  chan *amqp.Channel
	mu        sync.Mutex
	closed    bool
	queueName string
	logger    logger.Logger
}

// NewChannelPool conecta ao broker, declara a fila durável e pré-cria size canais.
func NewChannelPool(url, queueName string, size int, logger logger.Logger) (*ChannelPool, error) {
	if size < 1 {
		size = 1
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao RabbitMQ: %w", err)
	}

	pool := &ChannelPool{
		conn:      conn,
		channels:  make(chan *amqp.Channel, size),
		queueName: queueName,
		logger:    logger,
	}
	for i := 0; i < size; i++ {
		ch, err := pool.createChannel()
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("falha ao criar canal %d: %w", i, err)
		}
		pool.channels <- ch
	}

	logger.Info("Pool de canais RabbitMQ criado.", map[string]interface{}{"size": size, "queue": queueName})
	return pool, nil
}

func (p *ChannelPool) createChannel() (*amqp.Channel, error) {
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}
	// Declaração idempotente.
	if _, err := ch.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("falha ao declarar fila: %w", err)
	}
	return ch, nil
}

// Get retira um canal do pool, recriando-o se o broker o fechou.
func (p *ChannelPool) Get() (*amqp.Channel, error) {
	select {
	case ch, ok := <-p.channels:
		if !ok {
			return nil, errors.New("pool de canais fechado")
		}
		if ch.IsClosed() {
			return p.createChannel()
		}
		return ch, nil
	default:
		return nil, errors.New("nenhum canal disponível no pool")
	}
}

// Put devolve o canal ao pool; se o pool estiver cheio ou fechado, o canal é fechado.
func (p *ChannelPool) Put(ch *amqp.Channel) {
	if ch == nil || ch.IsClosed() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		ch.Close()
		return
	}
	select {
	case p.channels <- ch:
	default:
		ch.Close()
	}
}

// Close fecha todos os canais e a conexão.
func (p *ChannelPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	close(p.channels)
	for ch := range p.channels {
		ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	p.logger.Info("Pool de canais RabbitMQ fechado.", nil)
}

// publishChannel é a parte de *amqp.Channel usada na publicação.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitPublisher publica eventos de pedido na fila padrão do broker.
type RabbitPublisher struct {
	acquire   func() (publishChannel, func(), error)
	queueName string
	logger    logger.Logger
	now       func() time.Time
}

// NewRabbitPublisher cria o publisher sobre um pool de canais.
func NewRabbitPublisher(pool *ChannelPool, logger logger.Logger) *RabbitPublisher {
	acquire := func() (publishChannel, func(), error) {
		ch, err := pool.Get()
		if err != nil {
			return nil, nil, err
		}
		return ch, func() { pool.Put(ch) }, nil
	}
	return newRabbitPublisher(acquire, pool.queueName, logger)
}

func newRabbitPublisher(acquire func() (publishChannel, func(), error), queueName string, logger logger.Logger) *RabbitPublisher {
	return &RabbitPublisher{acquire: acquire, queueName: queueName, logger: logger, now: time.Now}
}

// PublishOrderCreated publica o evento order.created como mensagem persistente.
func (p *RabbitPublisher) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	event := NewOrderCreated(order, p.now())
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("falha ao serializar evento: %w", err)
	}

	ch, release, err := p.acquire()
	if err != nil {
		return fmt.Errorf("falha ao obter canal do pool: %w", err)
	}
	defer release()

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = ch.PublishWithContext(ctx,
		"",          // exchange padrão
		p.queueName, // routing key = fila
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    event.EventID,
			Type:         event.Type,
			Timestamp:    event.OccurredAt,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("falha ao publicar pedido: %w", err)
	}

	p.logger.Info("Evento de pedido publicado.", map[string]interface{}{"order_id": order.ID, "event_id": event.EventID, "queue": p.queueName})
	return nil
}
