// Package events defines the payloads the services emit for external
// collaborators (notification fan-out, analytics). Delivery is out of
// scope; the default publisher writes them to the structured log.
package events

import (
	"context"
	"log/slog"
)

type Publisher interface {
	Publish(ctx context.Context, name string, payload any)
}

// LogPublisher records events on the structured log.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) Publish(ctx context.Context, name string, payload any) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "event", "name", name, "payload", payload)
}

// NopPublisher drops events. Used where callers do not care.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) {}
