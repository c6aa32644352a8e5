package domain

import "time"

type HistoryAction string

const (
	HistoryActionCreated HistoryAction = "CREATED"
	HistoryActionUpdated HistoryAction = "UPDATED"
)

// OrderField is the closed set of diffable order fields. Identifiers,
// the owning company and timestamps are never part of a change set.
type OrderField string

const (
	FieldCustomerName  OrderField = "customer_name"
	FieldCustomerPhone OrderField = "customer_phone"
	FieldDeliveryArea  OrderField = "delivery_area"
	FieldOrderPrice    OrderField = "order_price"
	FieldDeliveryCost  OrderField = "delivery_cost"
	FieldStatus        OrderField = "status"
	FieldNotes         OrderField = "notes"
	FieldOrderDate     OrderField = "order_date"
)

// FieldChange holds the canonical string form of a field's value before
// and after a mutation. Decimal fields are rendered via Decimal.String,
// so equal numbers always produce equal representations.
type FieldChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// ChangeSet maps a field to its change. A field is present only if its
// value actually changed.
type ChangeSet map[OrderField]FieldChange

// HistoryEntry is one immutable audit record of an order's ledger.
// Entries are only ever appended, never edited or removed.
type HistoryEntry struct {
	ID         uint64
	OrderID    uint64
	ActorID    uint64
	ActorName  string
	Action     HistoryAction
	Changes    ChangeSet
	RecordedAt time.Time
}
