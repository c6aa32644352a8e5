package notifier

import (
	"context"

	"github.com/vperfumes/ordertrack/internal/core/domain"
)

// Noop is used when no broker is configured.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) OrderStatusChanged(_ context.Context, _ *domain.Order, _ domain.OrderStatus) error {
	return nil
}
