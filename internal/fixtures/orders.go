package fixtures

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Order statuses as the backend stores them.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// TestOrderItem is one line of an order. Products are referenced by slug so
// items stay valid across runs regardless of assigned product ids.
type TestOrderItem struct {
	ProductSlug string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// TestOrder references its owner by fixture user id. Registration assigns
// the real user id, so seeded orders are rewritten to the backend-assigned
// id during bootstrap reconciliation.
//
// Order id ranges are statically partitioned per owning user (1xxx
// customer, 2xxx orders user, 3xxx payments user) so parallel spec files
// never mutate each other's history.
type TestOrder struct {
	ID              string
	UserID          string
	Status          string
	PaymentMethod   string
	Items           []TestOrderItem
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	ShippingAddress TestAddress
}

// Clone returns a deep copy.
func (o TestOrder) Clone() TestOrder {
	out := o
	out.Items = append([]TestOrderItem(nil), o.Items...)
	return out
}

var orders = []TestOrder{
	{
		ID:            "fixture-order-1001",
		UserID:        "fixture-user-customer",
		Status:        OrderStatusDelivered,
		PaymentMethod: "CASH_APP",
		Items: []TestOrderItem{
			{ProductSlug: "creatine-monohydrate-500g", Quantity: 2, UnitPrice: decimal.RequireFromString("29.99")},
			{ProductSlug: "vitamin-d3-5000iu", Quantity: 1, UnitPrice: decimal.RequireFromString("14.25")},
		},
		Subtotal:        decimal.RequireFromString("74.23"),
		Tax:             decimal.RequireFromString("6.13"),
		Total:           decimal.RequireFromString("80.36"),
		ShippingAddress: addresses["default"],
	},
	{
		ID:            "fixture-order-1002",
		UserID:        "fixture-user-customer",
		Status:        OrderStatusShipped,
		PaymentMethod: "BITCOIN",
		Items: []TestOrderItem{
			{ProductSlug: "whey-protein-isolate-2lb", Quantity: 1, UnitPrice: decimal.RequireFromString("54.99")},
		},
		Subtotal:        decimal.RequireFromString("54.99"),
		Tax:             decimal.RequireFromString("4.54"),
		Total:           decimal.RequireFromString("59.53"),
		ShippingAddress: addresses["default"],
	},
	{
		ID:            "fixture-order-2001",
		UserID:        "fixture-user-orders",
		Status:        OrderStatusPaid,
		PaymentMethod: "SOLANA_PAY",
		Items: []TestOrderItem{
			{ProductSlug: "omega-3-fish-oil-180", Quantity: 3, UnitPrice: decimal.RequireFromString("34.50")},
		},
		Subtotal:        decimal.RequireFromString("103.50"),
		Tax:             decimal.RequireFromString("8.54"),
		Total:           decimal.RequireFromString("112.04"),
		ShippingAddress: addresses["billing"],
	},
	{
		ID:            "fixture-order-2002",
		UserID:        "fixture-user-orders",
		Status:        OrderStatusCancelled,
		PaymentMethod: "CASH_APP",
		Items: []TestOrderItem{
			{ProductSlug: "nmn-250mg-60", Quantity: 1, UnitPrice: decimal.RequireFromString("89.95")},
		},
		Subtotal:        decimal.RequireFromString("89.95"),
		Tax:             decimal.RequireFromString("7.42"),
		Total:           decimal.RequireFromString("97.37"),
		ShippingAddress: addresses["default"],
	},
	{
		ID:            "fixture-order-3001",
		UserID:        "fixture-user-payments",
		Status:        OrderStatusPending,
		PaymentMethod: "BITCOIN",
		Items: []TestOrderItem{
			{ProductSlug: "creatine-monohydrate-500g", Quantity: 1, UnitPrice: decimal.RequireFromString("29.99")},
		},
		Subtotal:        decimal.RequireFromString("29.99"),
		Tax:             decimal.RequireFromString("2.47"),
		Total:           decimal.RequireFromString("32.46"),
		ShippingAddress: addresses["international"],
	},
}

// Orders returns every catalog order.
func Orders() []TestOrder {
	out := make([]TestOrder, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}

// OrderByID looks up an order by its fixture id.
func OrderByID(id string) (TestOrder, error) {
	for _, o := range orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return TestOrder{}, fmt.Errorf("fixtures: no order with id %q", id)
}

// OrdersForUser returns the orders authored against a fixture user id.
func OrdersForUser(fixtureUserID string) []TestOrder {
	var out []TestOrder
	for _, o := range orders {
		if o.UserID == fixtureUserID {
			out = append(out, o.Clone())
		}
	}
	return out
}
