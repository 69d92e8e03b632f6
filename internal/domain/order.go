package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	apperrors "opply/internal/errors"
)

// OrderStatus is the fulfillment lifecycle state of an order. The set of
// statuses is closed; ParseOrderStatus is the only way to obtain one from
// untrusted input.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

// validTransitions maps each status to the statuses reachable from it.
// DELIVERED and CANCELLED are terminal; no row contains its own key, so
// re-entrant transitions are always rejected.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func (s OrderStatus) String() string {
	return string(s)
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

// CanTransitionTo reports whether the lifecycle table allows moving from s
// to target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from s.
func (s OrderStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Order is a buyer's purchase request tracked through the fulfillment
// lifecycle. Status starts at PENDING and changes only via TransitionTo.
// The item set is fixed at creation time.
type Order struct {
	ID        uint
	BuyerID   uint
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []OrderItem
}

// NewOrder builds an unpersisted order in the initial PENDING state.
func NewOrder(buyerID uint, now time.Time) *Order {
	return &Order{
		BuyerID:   buyerID,
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TransitionTo applies the lifecycle table to the order. On success the
// status and UpdatedAt are replaced; on rejection the order is left
// untouched and an InvalidTransitionError naming both states is returned.
func (o *Order) TransitionTo(target OrderStatus, now time.Time) error {
	if !o.Status.CanTransitionTo(target) {
		return apperrors.NewInvalidTransitionError(o.Status.String(), target.String())
	}
	o.Status = target
	o.UpdatedAt = now
	return nil
}

// Total is the exact-decimal sum of all line totals. An order with no items
// totals exactly zero.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (o *Order) ItemCount() int {
	return len(o.Items)
}

// OrderItem is one priced line of an order. UnitPrice is a snapshot of the
// ingredient's price at creation time and never changes afterwards.
type OrderItem struct {
	ID           uint
	OrderID      uint
	IngredientID uint
	Quantity     int
	UnitPrice    decimal.Decimal
	Ingredient   *Ingredient
}

// LineTotal is unit price times quantity in exact decimal arithmetic.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
