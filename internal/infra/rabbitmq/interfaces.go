package rabbitmq

import "context"

type BusInterface interface {
	Publish(ctx context.Context, topic string, message string) error
}

var _ BusInterface = (*Publisher)(nil)
