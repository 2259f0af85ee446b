package usecase

import (
	"context"
	"testing"

	"github.com/smashstrix/smashstrix/internal/account/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
	"github.com/stretchr/testify/require"
)

func TestPasswordForgot(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownEmail", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.uc.PasswordForgot(ctx, PasswordForgotInput{Email: "nobody@example.com"})

		requireCode(t, err, goerror.CodeNotFound)
	})

	t.Run("PrivilegedAccountRefused", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.getUserByEmail = func(_ context.Context, _ string) (*entity.User, error) {
			return &entity.User{ID: 3, IsStaff: true, IsActive: true}, nil
		}

		var inserted bool
		fx.repoDB.insertOTP = func(_ context.Context, _ entity.OTP) error {
			inserted = true
			return nil
		}

		_, err := fx.uc.PasswordForgot(ctx, PasswordForgotInput{Email: "staff@example.com"})

		requireCode(t, err, goerror.CodeForbidden)
		require.False(t, inserted)
		require.Empty(t, fx.mailer.sent)
	})

	t.Run("UnverifiedAccountRefused", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.getUserByEmail = func(_ context.Context, _ string) (*entity.User, error) {
			return &entity.User{ID: 4, IsActive: false}, nil
		}

		_, err := fx.uc.PasswordForgot(ctx, PasswordForgotInput{Email: "ana@example.com"})

		requireCode(t, err, goerror.CodeForbidden)
	})

	t.Run("Success", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.getUserByEmail = func(_ context.Context, email string) (*entity.User, error) {
			require.Equal(t, "ana@example.com", email)
			return &entity.User{ID: 9, Email: email, FullName: "Ana", IsActive: true}, nil
		}

		out, err := fx.uc.PasswordForgot(ctx, PasswordForgotInput{Email: "Ana@Example.com"})

		require.NoError(t, err)
		require.Equal(t, "flow-token", out.FlowToken)
		require.Len(t, fx.mailer.sent, 1)
		require.Contains(t, fx.mailer.sent[0].Subject, "password reset")

		flow := fx.flows.flows["flow-token"]
		require.Equal(t, session.PurposePasswordReset, flow.Purpose)
		require.Equal(t, int64(9), flow.UserID)
	})
}
