// Package messaging publishes user lifecycle events to RabbitMQ.
package messaging

import (
	"context"
	"time"

	"github.com/oksasatya/user-service/internal/application"
)

const publishTimeout = 2 * time.Second

// jsonPublisher is satisfied by *RabbitPublisher.
type jsonPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type UserEventPublisher struct {
	pub jsonPublisher
}

func NewUserEventPublisher(pub *RabbitPublisher) *UserEventPublisher {
	return &UserEventPublisher{pub: pub}
}

func (p *UserEventPublisher) Publish(ctx context.Context, evt application.UserEvent) error {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	c, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	return p.pub.PublishJSON(c, evt)
}

var _ application.EventPublisher = (*UserEventPublisher)(nil)
