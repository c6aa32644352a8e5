// Package diff computes field-level change sets between two order
// snapshots. It is pure: no side effects, same inputs always produce
// the same change set.
package diff

import (
	"github.com/govalues/decimal"

	"github.com/vperfumes/ordertrack/internal/core/domain"
)

// Compute returns the change set between before and after. A field is
// present iff its value actually changed: strings compare exactly,
// money fields compare by numeric value (so "5.0" and 5 are equal).
func Compute(before, after *domain.Order) domain.ChangeSet {
	cs := domain.ChangeSet{}

	compareString(cs, domain.FieldCustomerName, before.CustomerName, after.CustomerName)
	compareString(cs, domain.FieldCustomerPhone, before.CustomerPhone, after.CustomerPhone)
	compareString(cs, domain.FieldDeliveryArea, before.DeliveryArea, after.DeliveryArea)
	compareDecimal(cs, domain.FieldOrderPrice, before.OrderPrice, after.OrderPrice)
	compareDecimal(cs, domain.FieldDeliveryCost, before.DeliveryCost, after.DeliveryCost)
	compareString(cs, domain.FieldStatus, string(before.Status), string(after.Status))
	compareString(cs, domain.FieldNotes, before.Notes, after.Notes)
	compareString(cs, domain.FieldOrderDate, before.OrderDate, after.OrderDate)

	return cs
}

func compareString(cs domain.ChangeSet, field domain.OrderField, old, new string) {
	if old == new {
		return
	}
	cs[field] = domain.FieldChange{Old: old, New: new}
}

func compareDecimal(cs domain.ChangeSet, field domain.OrderField, old, new decimal.Decimal) {
	if old.Cmp(new) == 0 {
		return
	}
	cs[field] = domain.FieldChange{Old: old.String(), New: new.String()}
}
