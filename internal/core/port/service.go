package port

import (
	"context"

	"github.com/vperfumes/ordertrack/internal/core/domain"
)

type Service interface {
	LoginUser(ctx context.Context, login string, password string) (string, *domain.Actor, error)
	RegisterCompany(ctx context.Context, actor domain.Actor, companyName string, user *domain.User) (*domain.Company, error)

	CreateOrder(ctx context.Context, actor domain.Actor, draft *domain.OrderDraft) (*domain.Order, error)
	UpdateOrder(ctx context.Context, actor domain.Actor, orderID uint64, patch *domain.OrderPatch) (*domain.Order, error)
	GetOrder(ctx context.Context, actor domain.Actor, orderID uint64) (*domain.Order, error)
	ListOrders(ctx context.Context, actor domain.Actor, filter domain.OrderFilter) ([]*domain.Order, error)

	OrderHistory(ctx context.Context, actor domain.Actor, orderID uint64) ([]*domain.HistoryEntry, error)
	Stats(ctx context.Context, actor domain.Actor, companyID *uint64) (*domain.StatusCounts, error)
	ListCompanies(ctx context.Context, actor domain.Actor) ([]*domain.Company, error)
}
