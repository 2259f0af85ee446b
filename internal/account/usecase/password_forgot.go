package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

type PasswordForgotOutput struct {
	// FlowToken identifies the pending password-reset flow.
	FlowToken string
}

// PasswordForgot starts the OTP-based password reset. Staff and superuser
// accounts are refused before any code exists for them.
func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) (*PasswordForgotOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password reset requested for unknown email", "email", in.Email)
		return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if user.IsSuperuser || user.IsStaff {
		slog.WarnContext(ctx, "password reset refused for privileged account", "user_id", user.ID)
		return nil, goerror.NewBusiness("password reset is not supported via this method", goerror.CodeForbidden)
	}
	if user.IsBlocked {
		return nil, goerror.NewBusiness("account is blocked", goerror.CodeForbidden)
	}
	if !user.IsActive {
		return nil, goerror.NewBusiness("account is not verified", goerror.CodeForbidden)
	}

	token, err := s.issueOTP(ctx, otpRecipient{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}, session.PurposePasswordReset)
	if errors.Is(err, errDispatchFailed) {
		return nil, goerror.NewDependency("could not send the reset email, please try again")
	}
	if err != nil {
		return nil, err
	}

	return &PasswordForgotOutput{FlowToken: token}, nil
}
