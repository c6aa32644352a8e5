package port

import (
	"context"

	"github.com/vperfumes/ordertrack/internal/core/domain"
)

// UpdateOrderFn runs inside the per-order transaction with the current
// record locked. It mutates the record in place and returns the history
// entry to append, or nil when the update turned out to be a no-op
// (nothing is written in that case).
type UpdateOrderFn func(current *domain.Order) (*domain.HistoryEntry, error)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// Company
	CreateCompanyAccount(ctx context.Context, company *domain.Company, user *domain.User) (*domain.Company, error)
	ReadCompany(ctx context.Context, companyID uint64) (*domain.Company, error)
	ListCompanies(ctx context.Context) ([]*domain.Company, error)

	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByLogin(ctx context.Context, login string) (*domain.User, error)

	// Order. CreateOrder persists the record and its CREATED entry
	// atomically; UpdateOrder serializes the read-modify-append-write
	// sequence per order.
	CreateOrder(ctx context.Context, order *domain.Order, entry *domain.HistoryEntry) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error)
	UpdateOrder(ctx context.Context, orderID uint64, updateFn UpdateOrderFn) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)

	// History
	ListHistory(ctx context.Context, orderID uint64) ([]*domain.HistoryEntry, error)

	// Stats
	CountOrdersByStatus(ctx context.Context, companyID *uint64) (map[domain.OrderStatus]int, error)
}
