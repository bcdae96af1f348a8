package ports

import "time"

// Event types pushed to connected kitchen displays and waitstaff terminals.
const (
	EventOrderCreated = "order_created"
	EventItemReady    = "item_ready"
	EventOrderReady   = "order_ready"
	EventOrderStatus  = "order_status_changed"
	EventOrderClosed  = "order_closed"
	EventLiveSnapshot = "live_snapshot"
)

// Event describes one committed order or item state change.
type Event struct {
	Type    string    `json:"type"`
	OrderID int64     `json:"orderId,omitempty"`
	ItemID  int64     `json:"itemId,omitempty"`
	Status  string    `json:"status,omitempty"`
	At      time.Time `json:"at"`
	Data    any       `json:"data,omitempty"`
}

// Notifier fans committed state changes out to connected display clients.
//
// Delivery is best-effort and at-most-once per connection: Publish never
// blocks the caller, never reports delivery failures, and must only be
// invoked after the triggering transaction has committed. Clients treat the
// live-orders query as the authoritative reconciliation source; push events
// are a latency optimization.
type Notifier interface {
	Publish(event Event)
}
