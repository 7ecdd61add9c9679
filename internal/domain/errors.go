package domain

import (
	"fmt"
	"strings"
)

// ValidationError reports a request that fails the business rules for
// order creation (blank item name, non-positive quantity).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidStatusError reports a status string outside the allowed set.
// Input holds the caller-supplied string verbatim.
type InvalidStatusError struct {
	Input string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status '%s'. allowed: %s", e.Input, strings.Join(AllowedStatuses(), ", "))
}

// NotFoundError reports a reference to an order id that does not exist.
type NotFoundError struct {
	ID uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("order not found with id: %d", e.ID)
}
