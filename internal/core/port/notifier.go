package port

import (
	"context"

	"github.com/vperfumes/ordertrack/internal/core/domain"
)

//go:generate mockgen -source=notifier.go -destination=mock/notifier.go -package=mock
type StatusNotifier interface {
	OrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error
}
