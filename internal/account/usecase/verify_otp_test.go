package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/smashstrix/smashstrix/internal/account/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
	"github.com/stretchr/testify/require"
)

func TestVerifyOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("NoPendingFlow", func(t *testing.T) {
		fx := newFixture(t)

		err := fx.uc.VerifyOTP(ctx, VerifyOTPInput{FlowToken: "missing", Code: "123456"})

		requireCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("InvalidCodeFormat", func(t *testing.T) {
		fx := newFixture(t)

		err := fx.uc.VerifyOTP(ctx, VerifyOTPInput{FlowToken: "flow-token", Code: "12ab56"})

		requireCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("AttemptsExhausted", func(t *testing.T) {
		fx := newFixture(t)
		fx.flows.flows["flow-token"] = session.Flow{Purpose: session.PurposeSignupVerification, UserID: 7}
		fx.flows.attempts["flow-token"] = 5

		err := fx.uc.VerifyOTP(ctx, VerifyOTPInput{FlowToken: "flow-token", Code: "123456"})

		requireCode(t, err, goerror.CodeTooManyRequest)
	})

	t.Run("WrongOrExpiredCode", func(t *testing.T) {
		fx := newFixture(t)
		fx.flows.flows["flow-token"] = session.Flow{Purpose: session.PurposeSignupVerification, UserID: 7}
		fx.repoDB.claimOTP = func(_ context.Context, _ int64, _ string, _ time.Time) (int64, error) {
			return 0, goerror.ErrNotFound
		}

		err := fx.uc.VerifyOTP(ctx, VerifyOTPInput{FlowToken: "flow-token", Code: "999999"})

		requireCode(t, err, goerror.CodeUnauthorized)
		require.Equal(t, int64(1), fx.flows.attempts["flow-token"])
	})

	t.Run("SignupPurposeActivatesUser", func(t *testing.T) {
		fx := newFixture(t)
		fx.flows.flows["flow-token"] = session.Flow{Purpose: session.PurposeSignupVerification, UserID: 7}

		var activated int64
		fx.repoDB.claimOTP = func(_ context.Context, userID int64, code string, now time.Time) (int64, error) {
			require.Equal(t, int64(7), userID)
			require.Equal(t, "123456", code)
			require.Equal(t, testNow, now)
			return 42, nil
		}
		fx.repoDB.setUserActive = func(_ context.Context, id int64) error {
			activated = id
			return nil
		}
		fx.repoDB.getUserByID = func(_ context.Context, id int64) (*entity.User, error) {
			return &entity.User{ID: id, Email: "ana@example.com", FullName: "Ana"}, nil
		}

		err := fx.uc.VerifyOTP(ctx, VerifyOTPInput{FlowToken: "flow-token", Code: "123456"})

		require.NoError(t, err)
		require.Equal(t, int64(7), activated)
		require.NotContains(t, fx.flows.flows, "flow-token")
		require.Len(t, fx.repoMQ.verified, 1)
		require.Equal(t, "ana@example.com", fx.repoMQ.verified[0].Email)
	})

	t.Run("CodeIsSingleUse", func(t *testing.T) {
		fx := newFixture(t)
		fx.flows.flows["flow-token"] = session.Flow{Purpose: session.PurposePasswordReset, UserID: 9}

		// The claim consumes the row, like the conditional delete does.
		live := map[string]int64{"123456": 42}
		fx.repoDB.claimOTP = func(_ context.Context, _ int64, code string, _ time.Time) (int64, error) {
			id, ok := live[code]
			if !ok {
				return 0, goerror.ErrNotFound
			}
			delete(live, code)
			return id, nil
		}

		err := fx.uc.VerifyOTP(ctx, VerifyOTPInput{FlowToken: "flow-token", Code: "999999"})
		requireCode(t, err, goerror.CodeUnauthorized)

		err = fx.uc.VerifyOTP(ctx, VerifyOTPInput{FlowToken: "flow-token", Code: "123456"})
		require.NoError(t, err)
		require.True(t, fx.flows.flows["flow-token"].ResetAuthorized)

		err = fx.uc.VerifyOTP(ctx, VerifyOTPInput{FlowToken: "flow-token", Code: "123456"})
		requireCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("ResendRestoresAttemptBudget", func(t *testing.T) {
		fx := newFixture(t)
		fx.flows.flows["flow-token"] = session.Flow{Purpose: session.PurposeSignupVerification, UserID: 7}
		fx.flows.attempts["flow-token"] = 5
		fx.repoDB.getUserByID = func(_ context.Context, id int64) (*entity.User, error) {
			return &entity.User{ID: id, Email: "ana@example.com", FullName: "Ana"}, nil
		}
		fx.repoDB.claimOTP = func(_ context.Context, _ int64, _ string, _ time.Time) (int64, error) {
			return 42, nil
		}

		err := fx.uc.VerifyOTP(ctx, VerifyOTPInput{FlowToken: "flow-token", Code: "123456"})
		requireCode(t, err, goerror.CodeTooManyRequest)

		out, err := fx.uc.ResendOTP(ctx, ResendOTPInput{FlowToken: "flow-token"})
		require.NoError(t, err)
		require.True(t, out.Sent)

		err = fx.uc.VerifyOTP(ctx, VerifyOTPInput{FlowToken: "flow-token", Code: "123456"})
		require.NoError(t, err)
	})

	t.Run("ResetPurposeAuthorizesFlow", func(t *testing.T) {
		fx := newFixture(t)
		fx.flows.flows["flow-token"] = session.Flow{Purpose: session.PurposePasswordReset, UserID: 9}
		fx.repoDB.claimOTP = func(_ context.Context, _ int64, _ string, _ time.Time) (int64, error) {
			return 43, nil
		}

		err := fx.uc.VerifyOTP(ctx, VerifyOTPInput{FlowToken: "flow-token", Code: "123456"})

		require.NoError(t, err)
		flow := fx.flows.flows["flow-token"]
		require.True(t, flow.ResetAuthorized)
		require.Equal(t, int64(9), flow.UserID)
	})
}
