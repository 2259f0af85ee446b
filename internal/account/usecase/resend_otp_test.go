package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/smashstrix/smashstrix/internal/account/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
	"github.com/stretchr/testify/require"
)

func TestResendOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("NoPendingFlow", func(t *testing.T) {
		fx := newFixture(t)

		out, err := fx.uc.ResendOTP(ctx, ResendOTPInput{FlowToken: "missing"})

		require.NoError(t, err)
		require.False(t, out.Sent)
		require.Empty(t, fx.mailer.sent)
	})

	t.Run("CooldownActive", func(t *testing.T) {
		fx := newFixture(t)
		fx.flows.flows["flow-token"] = session.Flow{Purpose: session.PurposeSignupVerification, UserID: 7}
		fx.flows.resendDenied = true

		_, err := fx.uc.ResendOTP(ctx, ResendOTPInput{FlowToken: "flow-token"})

		requireCode(t, err, goerror.CodeTooManyRequest)
		require.Empty(t, fx.mailer.sent)
	})

	t.Run("DispatchFailure", func(t *testing.T) {
		fx := newFixture(t)
		fx.flows.flows["flow-token"] = session.Flow{Purpose: session.PurposeSignupVerification, UserID: 7}
		fx.repoDB.getUserByID = func(_ context.Context, id int64) (*entity.User, error) {
			return &entity.User{ID: id, Email: "ana@example.com", FullName: "Ana"}, nil
		}
		fx.mailer.err = errors.New("relay refused")

		var inserted int
		fx.repoDB.insertOTP = func(_ context.Context, _ entity.OTP) error {
			inserted++
			return nil
		}

		out, err := fx.uc.ResendOTP(ctx, ResendOTPInput{FlowToken: "flow-token"})

		require.NoError(t, err)
		require.False(t, out.Sent)
		// The row is created before the send and stays behind to expire.
		require.Equal(t, 1, inserted)
	})

	t.Run("StaffLoginFlowRefused", func(t *testing.T) {
		fx := newFixture(t)
		fx.flows.flows["flow-token"] = session.Flow{Purpose: session.PurposeStaffLogin, UserID: 8}

		var inserted int
		fx.repoDB.insertOTP = func(_ context.Context, _ entity.OTP) error {
			inserted++
			return nil
		}

		out, err := fx.uc.ResendOTP(ctx, ResendOTPInput{FlowToken: "flow-token"})

		require.NoError(t, err)
		require.False(t, out.Sent)
		require.Zero(t, inserted)
		require.Empty(t, fx.mailer.sent)
	})

	t.Run("FreshCodeDelivered", func(t *testing.T) {
		fx := newFixture(t)
		fx.flows.flows["flow-token"] = session.Flow{Purpose: session.PurposePasswordReset, UserID: 9}
		fx.repoDB.getUserByID = func(_ context.Context, id int64) (*entity.User, error) {
			return &entity.User{ID: id, Email: "ana@example.com", FullName: "Ana"}, nil
		}

		var inserted entity.OTP
		fx.repoDB.insertOTP = func(_ context.Context, row entity.OTP) error {
			inserted = row
			return nil
		}

		out, err := fx.uc.ResendOTP(ctx, ResendOTPInput{FlowToken: "flow-token"})

		require.NoError(t, err)
		require.True(t, out.Sent)
		require.Equal(t, "123456", inserted.Code)
		require.Equal(t, testNow.Add(fx.uc.otpTTL()), inserted.ExpiresAt)
		require.Len(t, fx.mailer.sent, 1)
		require.Equal(t, []string{"ana@example.com"}, fx.mailer.sent[0].To)
		// The flow survives under the same token for the new code.
		require.Equal(t, session.PurposePasswordReset, fx.flows.flows["flow-token"].Purpose)
	})
}
