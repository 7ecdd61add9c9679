package events

import "context"

// PublisherInterface is what the service layer publishes through. Publish
// has no error return: delivery is best-effort and failure terminates at
// the publisher boundary.
type PublisherInterface interface {
	Publish(ctx context.Context, topic string, message string)
}

var _ PublisherInterface = (*Publisher)(nil)
