package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
)

type SetNewPasswordInput struct {
	FlowToken       string `validate:"required"`
	NewPassword     string `validate:"required,password"`
	ConfirmPassword string `validate:"required,eqfield=NewPassword"`
}

// SetNewPassword finishes a password reset. It requires a pending flow that
// passed OTP verification for the reset purpose; on any validation failure
// the flow stays usable.
func (s *Usecase) SetNewPassword(ctx context.Context, in SetNewPasswordInput) error {
	ctx, span := s.startSpan(ctx, "SetNewPassword")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	flow, err := s.flows.Get(ctx, in.FlowToken)
	if errors.Is(err, session.ErrNoFlow) {
		return goerror.NewBusiness("no pending verification, please start over", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load pending flow", "error", err)
		return goerror.NewServer(err)
	}

	if flow.Purpose != session.PurposePasswordReset || !flow.ResetAuthorized {
		slog.WarnContext(ctx, "set new password without authorized reset flow", "user_id", flow.UserID, "purpose", string(flow.Purpose))
		return goerror.NewBusiness("code verification is required first", goerror.CodeForbidden)
	}

	passwordHash, err := s.password.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "user_id", flow.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateUserPassword(ctx, flow.UserID, string(passwordHash)); err != nil {
		slog.ErrorContext(ctx, "failed to update password", "user_id", flow.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.flows.End(ctx, in.FlowToken); err != nil {
		slog.ErrorContext(ctx, "failed to end pending flow", "user_id", flow.UserID, "error", err)
	}

	user, err := s.repoDB.GetUserByID(ctx, flow.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load user for password changed event", "user_id", flow.UserID, "error", err)
		return nil
	}
	if err := s.repoMQ.PublishUserPasswordChanged(ctx, UserPasswordChangedEvent{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish password changed", "user_id", user.ID, "error", err)
	}

	return nil
}
