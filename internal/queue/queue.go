package queue

import (
	"context"

	"sentimentform/internal/domain"
)

// Publisher emits completed analyses to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, a domain.Analysis) error
	Close() error
}

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, domain.Analysis) error { return nil }
func (Noop) Close() error                                   { return nil }
