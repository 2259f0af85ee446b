package usecase

import (
	"context"
	"testing"

	"github.com/smashstrix/smashstrix/internal/account/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
	"github.com/stretchr/testify/require"
)

func TestSetNewPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("NoPendingFlow", func(t *testing.T) {
		fx := newFixture(t)

		err := fx.uc.SetNewPassword(ctx, SetNewPasswordInput{
			FlowToken:       "missing",
			NewPassword:     "Fresh@Secret1",
			ConfirmPassword: "Fresh@Secret1",
		})

		requireCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("FlowNotAuthorized", func(t *testing.T) {
		fx := newFixture(t)
		fx.flows.flows["flow-token"] = session.Flow{Purpose: session.PurposePasswordReset, UserID: 9}

		var updated bool
		fx.repoDB.updateUserPassword = func(_ context.Context, _ int64, _ string) error {
			updated = true
			return nil
		}

		err := fx.uc.SetNewPassword(ctx, SetNewPasswordInput{
			FlowToken:       "flow-token",
			NewPassword:     "Fresh@Secret1",
			ConfirmPassword: "Fresh@Secret1",
		})

		requireCode(t, err, goerror.CodeForbidden)
		require.False(t, updated)
		// The flow stays usable for a later verification.
		require.Contains(t, fx.flows.flows, "flow-token")
	})

	t.Run("ShortPasswordLeavesStateUntouched", func(t *testing.T) {
		fx := newFixture(t)
		fx.flows.flows["flow-token"] = session.Flow{
			Purpose:         session.PurposePasswordReset,
			UserID:          9,
			ResetAuthorized: true,
		}

		var updated bool
		fx.repoDB.updateUserPassword = func(_ context.Context, _ int64, _ string) error {
			updated = true
			return nil
		}

		err := fx.uc.SetNewPassword(ctx, SetNewPasswordInput{
			FlowToken:       "flow-token",
			NewPassword:     "tiny",
			ConfirmPassword: "tiny",
		})

		requireCode(t, err, goerror.CodeInvalidInput)
		require.False(t, updated)
		require.Empty(t, fx.hash.hashed)
		// The authorized flow survives for a retry with a valid password.
		require.True(t, fx.flows.flows["flow-token"].ResetAuthorized)
	})

	t.Run("WrongPurposeRefused", func(t *testing.T) {
		fx := newFixture(t)
		fx.flows.flows["flow-token"] = session.Flow{
			Purpose:         session.PurposeSignupVerification,
			UserID:          9,
			ResetAuthorized: true,
		}

		err := fx.uc.SetNewPassword(ctx, SetNewPasswordInput{
			FlowToken:       "flow-token",
			NewPassword:     "Fresh@Secret1",
			ConfirmPassword: "Fresh@Secret1",
		})

		requireCode(t, err, goerror.CodeForbidden)
	})

	t.Run("Success", func(t *testing.T) {
		fx := newFixture(t)
		fx.flows.flows["flow-token"] = session.Flow{
			Purpose:         session.PurposePasswordReset,
			UserID:          9,
			ResetAuthorized: true,
		}
		fx.repoDB.getUserByID = func(_ context.Context, id int64) (*entity.User, error) {
			return &entity.User{ID: id, Email: "ana@example.com"}, nil
		}

		var updatedID int64
		var updatedHash string
		fx.repoDB.updateUserPassword = func(_ context.Context, id int64, passwordHash string) error {
			updatedID = id
			updatedHash = passwordHash
			return nil
		}

		err := fx.uc.SetNewPassword(ctx, SetNewPasswordInput{
			FlowToken:       "flow-token",
			NewPassword:     "Fresh@Secret1",
			ConfirmPassword: "Fresh@Secret1",
		})

		require.NoError(t, err)
		require.Equal(t, int64(9), updatedID)
		require.Equal(t, "hashed:Fresh@Secret1", updatedHash)
		require.NotContains(t, fx.flows.flows, "flow-token")
		require.Len(t, fx.repoMQ.passwordChanged, 1)
		require.Equal(t, "ana@example.com", fx.repoMQ.passwordChanged[0].Email)
	})
}
