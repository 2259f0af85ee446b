package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smashstrix/smashstrix/internal/pkg/idempotency"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"github.com/smashstrix/smashstrix/internal/pkg/mail"
	"github.com/smashstrix/smashstrix/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

// fakeIdem runs fn unless the key was seen before, mirroring the tracker's
// replay behavior without Redis.
type fakeIdem struct {
	seen map[string]struct{}
	keys []string
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{seen: make(map[string]struct{})}
}

func (f *fakeIdem) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdem) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdem) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdem) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.keys = append(f.keys, key)
	if _, dup := f.seen[key]; dup {
		return idempotency.ErrAlreadyCompleted
	}
	if err := fn(ctx); err != nil {
		return err
	}
	f.seen[key] = struct{}{}
	return nil
}

func newTestUsecase() (*Usecase, *fakeMailer, *fakeIdem) {
	mailer := &fakeMailer{}
	idem := newFakeIdem()
	uc := New(Dependency{
		Mailer:      mailer,
		Idempotency: idem,
		Instrument:  instrument.NewNoop(),
	})
	return uc, mailer, idem
}

func TestHandleUserVerified(t *testing.T) {
	ctx := context.Background()
	msg := event.UserVerifiedMessage{UserID: 7, Email: "ana@example.com", FullName: "Ana"}

	t.Run("SendsWelcomeEmail", func(t *testing.T) {
		uc, mailer, idem := newTestUsecase()

		err := uc.HandleUserVerified(ctx, "msg-1", msg)

		require.NoError(t, err)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, []string{"ana@example.com"}, mailer.sent[0].To)
		assert.Contains(t, mailer.sent[0].Subject, "Welcome")
		assert.Equal(t, []string{"notification:" + event.TopicUserVerified + ":msg-1"}, idem.keys)
	})

	t.Run("RedeliverySendsOnce", func(t *testing.T) {
		uc, mailer, _ := newTestUsecase()

		require.NoError(t, uc.HandleUserVerified(ctx, "msg-1", msg))
		require.NoError(t, uc.HandleUserVerified(ctx, "msg-1", msg))

		assert.Len(t, mailer.sent, 1)
	})

	t.Run("MissingMessageIDFallsBackToUserID", func(t *testing.T) {
		uc, _, idem := newTestUsecase()

		require.NoError(t, uc.HandleUserVerified(ctx, "", msg))

		assert.Equal(t, []string{"notification:" + event.TopicUserVerified + ":7"}, idem.keys)
	})

	t.Run("MailFailurePropagates", func(t *testing.T) {
		uc, mailer, _ := newTestUsecase()
		mailer.err = errors.New("relay refused")

		err := uc.HandleUserVerified(ctx, "msg-1", msg)

		assert.Error(t, err)
	})
}

func TestHandleUserPasswordChanged(t *testing.T) {
	ctx := context.Background()
	msg := event.UserPasswordChangedMessage{UserID: 7, Email: "ana@example.com"}

	uc, mailer, idem := newTestUsecase()

	err := uc.HandleUserPasswordChanged(ctx, "msg-9", msg)

	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].Subject, "password was changed")
	assert.Equal(t, []string{"notification:" + event.TopicUserPasswordChanged + ":msg-9"}, idem.keys)
}
