package events

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// Bus is the raw transport the publisher retries over.
type Bus interface {
	Publish(ctx context.Context, topic string, message string) error
}

// Fallback is invoked exactly once when every delivery attempt has failed.
// It must not propagate; it only records the failure for out-of-band
// recovery such as a dead-letter mechanism.
type Fallback func(topic, message string, err error)

const (
	DefaultMaxAttempts = 3
	DefaultDelay       = 500 * time.Millisecond
)

// Publisher decorates a Bus with bounded retry: up to maxAttempts tries
// with a constant inter-attempt delay, stopping on the first success.
// Delivery failure is fully absorbed here — it never reaches the caller
// and never affects the mutation that triggered the event.
type Publisher struct {
	bus         Bus
	maxAttempts uint64
	delay       time.Duration
	fallback    Fallback
}

type Option func(*Publisher)

func WithMaxAttempts(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.maxAttempts = uint64(n)
		}
	}
}

func WithDelay(d time.Duration) Option {
	return func(p *Publisher) {
		if d >= 0 {
			p.delay = d
		}
	}
}

func WithFallback(f Fallback) Option {
	return func(p *Publisher) {
		if f != nil {
			p.fallback = f
		}
	}
}

func NewPublisher(bus Bus, opts ...Option) *Publisher {
	p := &Publisher{
		bus:         bus,
		maxAttempts: DefaultMaxAttempts,
		delay:       DefaultDelay,
		fallback:    logFallback,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish attempts delivery, retrying on failure until the attempt budget
// is spent. Retries always run to completion or exhaustion; there is no
// cancellation beyond what the bus itself honors through ctx.
func (p *Publisher) Publish(ctx context.Context, topic, message string) {
	attempt := 0
	op := func() error {
		attempt++
		err := p.bus.Publish(ctx, topic, message)
		if err != nil {
			log.Warn().Err(err).
				Str("topic", topic).
				Int("attempt", attempt).
				Uint64("max_attempts", p.maxAttempts).
				Msg("event publish attempt failed")
		}
		return err
	}

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(p.delay), p.maxAttempts-1)
	if err := backoff.Retry(op, policy); err != nil {
		p.invokeFallback(topic, message, err)
	}
}

// invokeFallback shields the caller from a misbehaving fallback.
func (p *Publisher) invokeFallback(topic, message string, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("topic", topic).Msg("publish fallback panicked")
		}
	}()
	p.fallback(topic, message, err)
}

func logFallback(topic, message string, err error) {
	log.Error().Err(err).
		Str("topic", topic).
		Str("message", message).
		Msg("event publish failed after all retries, message dropped for out-of-band recovery")
}
