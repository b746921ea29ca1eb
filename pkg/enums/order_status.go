package enums

// OrderStatus tracks the lifecycle state stamped on an order at creation.
// Checkout always writes OrderStatusCompleted today; pending/cancelled exist
// for parity with the storefront contract.
type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusPending, OrderStatusCancelled:
		return true
	}
	return false
}
