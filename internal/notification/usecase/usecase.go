package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/smashstrix/smashstrix/internal/pkg/idempotency"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"github.com/smashstrix/smashstrix/internal/pkg/mail"
	"github.com/smashstrix/smashstrix/internal/shared/event"
	"go.opentelemetry.io/otel/trace"
)

type mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// Usecase sends the transactional emails triggered by account events.
type Usecase struct {
	mailer mailer
	idem   idempotency.Idempotency
	ins    instrument.Instrumentation
}

// Dependency lists what Usecase needs; all fields are required.
type Dependency struct {
	Mailer      mailer
	Idempotency idempotency.Idempotency
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		mailer: dep.Mailer,
		idem:   dep.Idempotency,
		ins:    dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

// dedupeKey identifies one email per event so broker redeliveries never mail
// twice. The broker message id wins; the payload identity is the fallback.
func dedupeKey(topic, messageID string, userID int64) string {
	if messageID == "" {
		messageID = strconv.FormatInt(userID, 10)
	}
	return "notification:" + topic + ":" + messageID
}

// sendOnce runs the mail send under the idempotency tracker. A replay of an
// already handled key is not an error.
func (s *Usecase) sendOnce(ctx context.Context, key string, msg mail.Message) error {
	err := s.idem.Exec(ctx, key, func(ctx context.Context) error {
		return s.mailer.Send(ctx, msg)
	}, idempotency.WithStateTTL(24*time.Hour))

	if errors.Is(err, idempotency.ErrAlreadyCompleted) || errors.Is(err, idempotency.ErrAlreadyInProgress) {
		slog.InfoContext(ctx, "duplicate notification skipped", "key", key)
		return nil
	}
	return err
}

// HandleUserVerified welcomes a freshly verified user.
func (s *Usecase) HandleUserVerified(ctx context.Context, messageID string, msg event.UserVerifiedMessage) error {
	ctx, span := s.startSpan(ctx, "HandleUserVerified")
	defer span.End()

	return s.sendOnce(ctx, dedupeKey(event.TopicUserVerified, messageID, msg.UserID), mail.Message{
		To:      []string{msg.Email},
		Subject: "Welcome to SmashStrix",
		TextBody: "Hi " + msg.FullName + ",\n\n" +
			"Your email is verified and your account is ready. Happy smashing!\n\n" +
			"The SmashStrix team",
	})
}

// HandleUserPasswordChanged notifies a user that their password changed.
func (s *Usecase) HandleUserPasswordChanged(ctx context.Context, messageID string, msg event.UserPasswordChangedMessage) error {
	ctx, span := s.startSpan(ctx, "HandleUserPasswordChanged")
	defer span.End()

	return s.sendOnce(ctx, dedupeKey(event.TopicUserPasswordChanged, messageID, msg.UserID), mail.Message{
		To:      []string{msg.Email},
		Subject: "Your SmashStrix password was changed",
		TextBody: "Hi,\n\n" +
			"The password on your account was just changed. If this was not " +
			"you, reset your password immediately and contact support.\n\n" +
			"The SmashStrix team",
	})
}
