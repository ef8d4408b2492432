package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/clinic-slot-planner/internal/config"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/in"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
)

// errMalformedMessage помечает сообщения, которые бессмысленно возвращать в очередь
var errMalformedMessage = errors.New("malformed message")

type BookingListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.SlotGeneratorUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type (
	CacheHitType         string
	CacheHitResourceType string
)

type CacheMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType CacheHitResourceType
	CacheHitType CacheHitType
}

const (
	CacheHitResourceTypeAll     CacheHitResourceType = "_all_"
	CacheHitResourceTypeBooking CacheHitResourceType = "booking"
)

const (
	CacheHitTypeInvalidate CacheHitType = "invalidate"
)

func NewBookingListener(useCase in.SlotGeneratorUseCase, cfg *config.Config, logger out.LoggerPort) (*BookingListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return newBookingListener(useCase, cfg, logger, conn, channel), nil
}

func newBookingListener(useCase in.SlotGeneratorUseCase, cfg *config.Config, logger out.LoggerPort, conn *amqp.Connection, channel *amqp.Channel) *BookingListener {
	return &BookingListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger.WithModule("BookingListener"),
	}
}

// Start объявляет очередь, привязывает ее ко всем ключам из конфига и запускает обработку
func (l *BookingListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.queue.declare_failed: %w", err)
	}

	for _, bind := range l.cfg.RabbitMQ.Binds {
		bind = strings.TrimSpace(bind)
		if bind == "" {
			continue
		}
		if err := l.channel.QueueBind(queue.Name, bind, l.cfg.RabbitMQ.Exchange, false, nil); err != nil {
			return fmt.Errorf("rabbitmq.queue.bind_failed %q: %w", bind, err)
		}
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.queue.consume_failed: %w", err)
	}

	go l.consume(ctx, msgs)

	l.logger.Info("bookings.queue.started", out.LogFields{
		"queue":    queue.Name,
		"exchange": l.cfg.RabbitMQ.Exchange,
		"binds":    l.cfg.RabbitMQ.Binds,
	})

	return nil
}

func (l *BookingListener) consume(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				l.logger.Warn("bookings.queue.closed", out.LogFields{})
				return
			}
			l.processDelivery(ctx, msg)
		}
	}
}

// processDelivery подтверждает сообщение по результату обработки:
// битые сообщения отклоняются без возврата, ошибки обработки возвращаются в очередь
func (l *BookingListener) processDelivery(ctx context.Context, msg amqp.Delivery) {
	err := l.handle(ctx, msg.RoutingKey, msg.Body)
	switch {
	case err == nil:
		msg.Ack(false)
	case errors.Is(err, errMalformedMessage):
		l.logger.Warn("bookings.message.rejected", out.LogFields{
			"routingKey": msg.RoutingKey,
			"error":      err.Error(),
		})
		msg.Reject(false)
	default:
		l.logger.Error("bookings.message.failed", out.LogFields{
			"routingKey": msg.RoutingKey,
			"error":      err.Error(),
		})
		msg.Nack(false, true) // requeue message
	}
}

func (l *BookingListener) handle(ctx context.Context, routingKey string, body []byte) error {
	key, err := parseRoutingKey(routingKey)
	if err != nil {
		return err
	}

	if key.CacheHitType != CacheHitTypeInvalidate {
		l.logger.Debug("bookings.message.skipped", out.LogFields{
			"routingKey": routingKey,
		})
		return nil
	}

	switch key.ResourceType {
	case CacheHitResourceTypeBooking:
		return l.processBookingMessage(ctx, body)
	case CacheHitResourceTypeAll:
		return l.processAllMessage(ctx)
	default:
		l.logger.Debug("bookings.message.skipped", out.LogFields{
			"routingKey": routingKey,
		})
		return nil
	}
}

func (l *BookingListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

// Пример routingKey:
// clinic.slot-planner.booking.v1.invalidate
// clinic.slot-planner._all_.v1.invalidate
func parseRoutingKey(routingKey string) (CacheMessageRoutingKey, error) {
	parts := strings.Split(routingKey, ".")

	if len(parts) < 5 {
		return CacheMessageRoutingKey{}, fmt.Errorf("%w: invalid routing key: %s", errMalformedMessage, routingKey)
	}

	return CacheMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: CacheHitResourceType(parts[2]),
		CacheHitType: CacheHitType(parts[4]),
	}, nil
}
