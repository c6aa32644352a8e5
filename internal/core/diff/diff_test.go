package diff_test

import (
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vperfumes/ordertrack/internal/core/diff"
	"github.com/vperfumes/ordertrack/internal/core/domain"
)

func baseOrder() domain.Order {
	return domain.Order{
		ID:            1,
		Number:        1001,
		CompanyID:     7,
		CustomerName:  "Ali",
		CustomerPhone: "0790000000",
		DeliveryArea:  "Amman",
		OrderPrice:    decimal.MustParse("25"),
		DeliveryCost:  decimal.MustParse("3"),
		Status:        domain.OrderStatusOngoing,
		Notes:         "leave at door",
		OrderDate:     "2025-01-15",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func TestCompute_NoChanges(t *testing.T) {
	before := baseOrder()
	after := baseOrder()

	cs := diff.Compute(&before, &after)

	assert.Empty(t, cs)
}

func TestCompute_FieldChanges(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(o *domain.Order)
		expField domain.OrderField
		expOld   string
		expNew   string
	}{
		{
			name:     "customer name",
			mutate:   func(o *domain.Order) { o.CustomerName = "Omar" },
			expField: domain.FieldCustomerName,
			expOld:   "Ali",
			expNew:   "Omar",
		},
		{
			name:     "customer phone",
			mutate:   func(o *domain.Order) { o.CustomerPhone = "0791111111" },
			expField: domain.FieldCustomerPhone,
			expOld:   "0790000000",
			expNew:   "0791111111",
		},
		{
			name:     "delivery area",
			mutate:   func(o *domain.Order) { o.DeliveryArea = "Irbid" },
			expField: domain.FieldDeliveryArea,
			expOld:   "Amman",
			expNew:   "Irbid",
		},
		{
			name:     "delivery cost",
			mutate:   func(o *domain.Order) { o.DeliveryCost = decimal.MustParse("5") },
			expField: domain.FieldDeliveryCost,
			expOld:   "3",
			expNew:   "5",
		},
		{
			name:     "order price",
			mutate:   func(o *domain.Order) { o.OrderPrice = decimal.MustParse("30.50") },
			expField: domain.FieldOrderPrice,
			expOld:   "25",
			expNew:   "30.50",
		},
		{
			name:     "status",
			mutate:   func(o *domain.Order) { o.Status = domain.OrderStatusCancelled },
			expField: domain.FieldStatus,
			expOld:   "ONGOING",
			expNew:   "CANCELLED",
		},
		{
			name:     "notes cleared to empty",
			mutate:   func(o *domain.Order) { o.Notes = "" },
			expField: domain.FieldNotes,
			expOld:   "leave at door",
			expNew:   "",
		},
		{
			name:     "order date",
			mutate:   func(o *domain.Order) { o.OrderDate = "2025-01-16" },
			expField: domain.FieldOrderDate,
			expOld:   "2025-01-15",
			expNew:   "2025-01-16",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			before := baseOrder()
			after := baseOrder()
			test.mutate(&after)

			cs := diff.Compute(&before, &after)

			assert.Len(t, cs, 1)
			change, ok := cs[test.expField]
			assert.True(t, ok)
			assert.Equal(t, test.expOld, change.Old)
			assert.Equal(t, test.expNew, change.New)
		})
	}
}

func TestCompute_NumericEquality(t *testing.T) {
	// Same number, different representations: not a change.
	before := baseOrder()
	after := baseOrder()
	before.DeliveryCost = decimal.MustParse("5")
	after.DeliveryCost = decimal.MustParse("5.0")

	cs := diff.Compute(&before, &after)

	assert.Empty(t, cs)
}

func TestCompute_MultipleFields(t *testing.T) {
	before := baseOrder()
	after := baseOrder()
	after.CustomerName = "Omar"
	after.DeliveryCost = decimal.MustParse("5")
	after.Status = domain.OrderStatusCompleted

	cs := diff.Compute(&before, &after)

	assert.Len(t, cs, 3)
	assert.Contains(t, cs, domain.FieldCustomerName)
	assert.Contains(t, cs, domain.FieldDeliveryCost)
	assert.Contains(t, cs, domain.FieldStatus)
}

func TestCompute_Deterministic(t *testing.T) {
	before := baseOrder()
	after := baseOrder()
	after.CustomerName = "Omar"
	after.OrderPrice = decimal.MustParse("40")

	first := diff.Compute(&before, &after)
	second := diff.Compute(&before, &after)

	assert.Equal(t, first, second)
}
