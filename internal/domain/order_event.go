package domain

import "fmt"

// OrdersTopic is the bus topic all lifecycle events are published to.
const OrdersTopic = "orders-topic"

// OrderPlacedMessage renders the creation event for downstream consumers.
// Events are opaque text; they carry no schema version or correlation id.
func OrderPlacedMessage(o *Order) string {
	return fmt.Sprintf("ORDER_PLACED id=%d item='%s' qty=%d", o.ID, o.ItemName, o.Quantity)
}

// OrderStatusUpdateMessage renders the status-change event.
func OrderStatusUpdateMessage(o *Order) string {
	return fmt.Sprintf("ORDER_STATUS_UPDATE id=%d status=%s", o.ID, o.Status)
}
