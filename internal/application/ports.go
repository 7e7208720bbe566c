package application

import (
	"context"
)

// Locker serializes work on a key across concurrent requests.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// EventPublisher announces domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload any) error
}

const (
	EventDealCreated     = "deal.created"
	EventDealModerated   = "deal.moderated"
	EventUserRoleChanged = "user.role_changed"
)

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
