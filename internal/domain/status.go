package domain

import "strings"

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

var validStatuses = map[OrderStatus]bool{
	StatusPending:    true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusCancelled:  true,
}

// AllowedStatuses lists the members of the status set in a fixed order,
// used for error messages.
func AllowedStatuses() []string {
	return []string{
		string(StatusPending),
		string(StatusProcessing),
		string(StatusShipped),
		string(StatusCancelled),
	}
}

// ParseStatus normalizes a candidate status string: it uppercases the input
// and checks membership in the allowed set. Membership is the only rule —
// any member status may follow any other, there is no forward-only
// progression.
func ParseStatus(candidate string) (OrderStatus, error) {
	normalized := OrderStatus(strings.ToUpper(candidate))
	if !validStatuses[normalized] {
		return "", &InvalidStatusError{Input: candidate}
	}
	return normalized, nil
}
