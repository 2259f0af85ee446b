package usecase

import (
	"context"
	"testing"

	"github.com/smashstrix/smashstrix/internal/account/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
	"github.com/stretchr/testify/require"
)

func loginInfo() *entity.UserLoginInfo {
	return &entity.UserLoginInfo{
		ID:       7,
		FullName: "Ana Pereira",
		Email:    "ana@example.com",
		Password: "hashed:Sup3r@Secret",
		IsActive: true,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownEmail", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.uc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever"})

		requireCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.getUserLoginInfo = func(_ context.Context, _ string) (*entity.UserLoginInfo, error) {
			return loginInfo(), nil
		}

		_, err := fx.uc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "not-it"})

		requireCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("SuperuserRefused", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.getUserLoginInfo = func(_ context.Context, _ string) (*entity.UserLoginInfo, error) {
			info := loginInfo()
			info.IsSuperuser = true
			return info, nil
		}

		_, err := fx.uc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "Sup3r@Secret"})

		requireCode(t, err, goerror.CodeForbidden)
	})

	t.Run("BlockedRefused", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.getUserLoginInfo = func(_ context.Context, _ string) (*entity.UserLoginInfo, error) {
			info := loginInfo()
			info.IsBlocked = true
			return info, nil
		}

		_, err := fx.uc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "Sup3r@Secret"})

		requireCode(t, err, goerror.CodeForbidden)
	})

	t.Run("StaffWithTOTPGetsChallenge", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.getUserLoginInfo = func(_ context.Context, _ string) (*entity.UserLoginInfo, error) {
			info := loginInfo()
			info.IsStaff = true
			info.HasTOTP = true
			return info, nil
		}

		out, err := fx.uc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "Sup3r@Secret"})

		require.NoError(t, err)
		require.True(t, out.TOTPRequired)
		require.Equal(t, "flow-token", out.FlowToken)
		require.Empty(t, out.AccessToken)
		require.Equal(t, session.PurposeStaffLogin, fx.flows.flows["flow-token"].Purpose)
	})

	t.Run("Success", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.getUserLoginInfo = func(_ context.Context, email string) (*entity.UserLoginInfo, error) {
			require.Equal(t, "ana@example.com", email)
			return loginInfo(), nil
		}

		out, err := fx.uc.Login(ctx, LoginInput{Email: "Ana@Example.com", Password: "Sup3r@Secret"})

		require.NoError(t, err)
		require.False(t, out.TOTPRequired)
		require.NotEmpty(t, out.AccessToken)

		claims, err := fx.uc.jwt.Verify(out.AccessToken)
		require.NoError(t, err)
		require.Equal(t, int64(7), claims.UserID)
		require.False(t, claims.IsStaff)
	})
}
