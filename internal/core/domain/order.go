package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusOngoing   OrderStatus = "ONGOING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusOngoing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID            uint64
	Number        uint64
	CompanyID     uint64
	CustomerName  string
	CustomerPhone string
	DeliveryArea  string
	OrderPrice    decimal.Decimal
	DeliveryCost  decimal.Decimal
	Status        OrderStatus
	Notes         string
	OrderDate     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderDraft carries caller-supplied fields for a new order.
// Pointer fields distinguish "absent" from a zero value.
type OrderDraft struct {
	CompanyID     uint64
	CustomerName  string
	CustomerPhone string
	DeliveryArea  string
	OrderDate     string
	Notes         string
	OrderPrice    *decimal.Decimal
	DeliveryCost  *decimal.Decimal
}

// OrderPatch is a partial update: nil fields are left untouched.
type OrderPatch struct {
	CustomerName  *string
	CustomerPhone *string
	DeliveryArea  *string
	OrderDate     *string
	Notes         *string
	OrderPrice    *decimal.Decimal
	DeliveryCost  *decimal.Decimal
	Status        *OrderStatus
}

// OrderFilter composes with logical AND: an order is returned only if it
// matches every set field. Search matches order number and customer name
// case-insensitively, and customer phone by substring.
type OrderFilter struct {
	CompanyID *uint64
	Status    *OrderStatus
	Search    string
}
