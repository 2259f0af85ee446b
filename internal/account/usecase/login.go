package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/jwt"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	// TOTPRequired is true for staff with a confirmed authenticator; the
	// caller must finish the login with LoginTOTP and FlowToken.
	TOTPRequired bool
	FlowToken    string
	AccessToken  string
}

// Login authenticates with email and password. Superusers cannot use the
// storefront login; staff with TOTP enrolled get a second step.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserLoginInfo(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login for unknown email", "email", in.Email)
		return nil, goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load login info", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.password.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "login password mismatch", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
	}

	switch {
	case user.IsSuperuser:
		slog.WarnContext(ctx, "superuser login refused", "user_id", user.ID)
		return nil, goerror.NewBusiness("this account cannot sign in here", goerror.CodeForbidden)
	case user.IsBlocked:
		return nil, goerror.NewBusiness("account is blocked", goerror.CodeForbidden)
	case !user.IsActive:
		return nil, goerror.NewBusiness("account is not verified", goerror.CodeForbidden)
	}

	if user.IsStaff && user.HasTOTP {
		token := s.token.Generate()
		ttl := s.cfg.GetMinute("modules.account.staff_login_ttl_minutes")
		if ttl <= 0 {
			ttl = s.otpTTL()
		}
		if err := s.flows.Start(ctx, token, session.Flow{
			Purpose: session.PurposeStaffLogin,
			UserID:  user.ID,
		}, ttl); err != nil {
			slog.ErrorContext(ctx, "failed to start staff login flow", "user_id", user.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		return &LoginOutput{TOTPRequired: true, FlowToken: token}, nil
	}

	access, err := s.jwt.Generate(jwt.TokenUser{ID: user.ID, Email: user.Email, Staff: user.IsStaff})
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{AccessToken: access}, nil
}
