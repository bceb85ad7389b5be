package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-service/internal/domain/entity"
)

// Hooks are the collaborators run after a write has been committed.
// All of them are optional and best-effort: a failure is logged and never
// turns a committed write into a failed result.
type Hooks struct {
	Index  UserIndex
	Cache  ListCache
	Events EventPublisher
	Logger *logrus.Logger
}

func (h *Hooks) warn(err error, msg string, fields logrus.Fields) {
	if h == nil || h.Logger == nil || err == nil {
		return
	}
	h.Logger.WithError(err).WithFields(fields).Warn(msg)
}

func (h *Hooks) afterSave(ctx context.Context, eventType string, u *entity.User) {
	if h == nil {
		return
	}
	if h.Index != nil {
		h.warn(h.Index.Index(ctx, ToUserResponse(u)), "search index update failed", logrus.Fields{"user_id": u.ID})
	}
	h.invalidate(ctx)
	h.publish(ctx, UserEvent{Type: eventType, UserID: u.ID, Email: u.Email, OccurredAt: time.Now().UTC()})
}

func (h *Hooks) afterDelete(ctx context.Context, id uuid.UUID) {
	if h == nil {
		return
	}
	if h.Index != nil {
		h.warn(h.Index.Remove(ctx, id), "search index removal failed", logrus.Fields{"user_id": id})
	}
	h.invalidate(ctx)
	h.publish(ctx, UserEvent{Type: EventUserDeleted, UserID: id, OccurredAt: time.Now().UTC()})
}

func (h *Hooks) invalidate(ctx context.Context) {
	if h.Cache != nil {
		h.warn(h.Cache.Invalidate(ctx), "list cache invalidation failed", nil)
	}
}

func (h *Hooks) publish(ctx context.Context, evt UserEvent) {
	if h.Events != nil {
		h.warn(h.Events.Publish(ctx, evt), "user event publish failed", logrus.Fields{"event": evt.Type, "user_id": evt.UserID})
	}
}
