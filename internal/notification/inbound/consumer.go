// Package inbound consumes the broker topics the notification module reacts
// to.
package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/smashstrix/smashstrix/internal/pkg/goroutine"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"github.com/smashstrix/smashstrix/internal/pkg/messaging"
	"github.com/smashstrix/smashstrix/internal/shared/event"
)

type uc interface {
	HandleUserVerified(ctx context.Context, messageID string, msg event.UserVerifiedMessage) error
	HandleUserPasswordChanged(ctx context.Context, messageID string, msg event.UserPasswordChangedMessage) error
}

// Consumer subscribes the notification handlers to their topics.
type Consumer struct {
	uc     uc
	client messaging.Messaging
	mgr    *goroutine.Manager
}

func NewConsumer(uc uc, client messaging.Messaging, mgr *goroutine.Manager) *Consumer {
	return &Consumer{uc: uc, client: client, mgr: mgr}
}

// Start launches one subscription per topic. Each runs until ctx is
// canceled; handler failures are logged and acked so producers never feel
// them.
func (c *Consumer) Start(ctx context.Context) {
	c.mgr.Go(ctx, func(ctx context.Context) error {
		return c.client.Subscribe(ctx, event.TopicUserVerified, c.onUserVerified,
			messaging.WithGroup("notification"), messaging.WithChannel("notification"),
			messaging.WithQueueGroup("notification"), messaging.WithSubscription("notification-user-verified"))
	})

	c.mgr.Go(ctx, func(ctx context.Context) error {
		return c.client.Subscribe(ctx, event.TopicUserPasswordChanged, c.onUserPasswordChanged,
			messaging.WithGroup("notification"), messaging.WithChannel("notification"),
			messaging.WithQueueGroup("notification"), messaging.WithSubscription("notification-user-password-changed"))
	})
}

// deliveryContext restores the producer's correlation id so the logs of one
// request line up across modules.
func deliveryContext(ctx context.Context, d messaging.Delivery) context.Context {
	if cid := d.Attributes()[event.AttrCorrelationID]; cid != "" {
		ctx = instrument.SetCorrelationID(ctx, cid)
	}
	return ctx
}

func (c *Consumer) onUserVerified(ctx context.Context, d messaging.Delivery) error {
	ctx = deliveryContext(ctx, d)

	var msg event.UserVerifiedMessage
	if err := json.Unmarshal(d.Body(), &msg); err != nil {
		slog.ErrorContext(ctx, "unreadable user verified message", "message_id", d.ID(), "error", err)
		return nil
	}

	if err := c.uc.HandleUserVerified(ctx, d.ID(), msg); err != nil {
		slog.ErrorContext(ctx, "failed to send welcome email",
			"message_id", d.ID(), "user_id", msg.UserID, "error", err)
	}
	return nil
}

func (c *Consumer) onUserPasswordChanged(ctx context.Context, d messaging.Delivery) error {
	ctx = deliveryContext(ctx, d)

	var msg event.UserPasswordChangedMessage
	if err := json.Unmarshal(d.Body(), &msg); err != nil {
		slog.ErrorContext(ctx, "unreadable password changed message", "message_id", d.ID(), "error", err)
		return nil
	}

	if err := c.uc.HandleUserPasswordChanged(ctx, d.ID(), msg); err != nil {
		slog.ErrorContext(ctx, "failed to send password change notice",
			"message_id", d.ID(), "user_id", msg.UserID, "error", err)
	}
	return nil
}
