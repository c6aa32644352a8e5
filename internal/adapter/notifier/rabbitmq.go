package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/vperfumes/ordertrack/internal/adapter/config"
	"github.com/vperfumes/ordertrack/internal/core/domain"
)

const exchangeName = "order.status"

// RabbitMQ publishes order status transitions to a topic exchange.
// Publishing is best-effort: the ledger, not the broker, is the
// source of truth for what happened to an order.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

func NewRabbitMQ(cfg *config.Broker, logger *zap.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &RabbitMQ{conn: conn, channel: channel, logger: logger}, nil
}

type statusEvent struct {
	OrderID     uint64    `json:"order_id"`
	OrderNumber uint64    `json:"order_number"`
	CompanyID   uint64    `json:"company_id"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	ChangedAt   time.Time `json:"changed_at"`
}

func (n *RabbitMQ) OrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error {
	event := statusEvent{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		CompanyID:   order.CompanyID,
		OldStatus:   string(previous),
		NewStatus:   string(order.Status),
		ChangedAt:   order.UpdatedAt,
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	routingKey := fmt.Sprintf("order.status.%d", order.CompanyID)
	err = n.channel.PublishWithContext(ctx, exchangeName, routingKey, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish status event: %w", err)
	}

	n.logger.Debug("published status event",
		zap.Uint64("order", order.ID), zap.String("status", string(order.Status)))
	return nil
}

func (n *RabbitMQ) Close() {
	if n.channel != nil {
		n.channel.Close()
	}
	if n.conn != nil {
		n.conn.Close()
	}
}
