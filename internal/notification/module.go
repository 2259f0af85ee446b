// Package notification turns account events into transactional emails.
package notification

import (
	"context"

	"github.com/smashstrix/smashstrix/internal/notification/inbound"
	"github.com/smashstrix/smashstrix/internal/notification/usecase"
	"github.com/smashstrix/smashstrix/internal/pkg/goroutine"
	"github.com/smashstrix/smashstrix/internal/pkg/idempotency"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"github.com/smashstrix/smashstrix/internal/pkg/mail"
	"github.com/smashstrix/smashstrix/internal/pkg/messaging"
	"github.com/smashstrix/smashstrix/internal/pkg/validator"
)

// Dependency lists everything the module needs from the application.
type Dependency struct {
	Messaging   messaging.Messaging        `validate:"required"`
	Mailer      *mail.Dispatcher           `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

// New wires the notification module and starts its consumers.
func New(ctx context.Context, dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		Mailer:      dep.Mailer,
		Idempotency: dep.Idempotency,
		Instrument:  dep.Instrument,
	})

	inbound.NewConsumer(uc, dep.Messaging, dep.Goroutine).Start(ctx)

	return nil
}
