// Package mq publishes account events to the message broker.
package mq

import (
	"context"
	"encoding/json"

	"github.com/smashstrix/smashstrix/internal/account/usecase"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"github.com/smashstrix/smashstrix/internal/pkg/messaging"
	"github.com/smashstrix/smashstrix/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishUserVerified(ctx context.Context, msg usecase.UserVerifiedEvent) error {
	return m.publish(ctx, "PublishUserVerified", event.TopicUserVerified, event.UserVerifiedMessage{
		UserID:   msg.UserID,
		Email:    msg.Email,
		FullName: msg.FullName,
	})
}

func (m *Messaging) PublishUserPasswordChanged(ctx context.Context, msg usecase.UserPasswordChangedEvent) error {
	return m.publish(ctx, "PublishUserPasswordChanged", event.TopicUserPasswordChanged, event.UserPasswordChangedMessage{
		UserID: msg.UserID,
		Email:  msg.Email,
	})
}

func (m *Messaging) publish(ctx context.Context, name, topic string, payload any) error {
	ctx, span := m.ins.Tracer("account.outbound.mq").Start(ctx, name)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = m.client.Publish(ctx, topic, messaging.Envelope{
		Body: body,
		Attributes: map[string]string{
			event.AttrCorrelationID: instrument.GetCorrelationID(ctx),
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
