package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/mfa"
)

type TOTPConfirmInput struct {
	Code string `validate:"required,len=6,numeric"`
}

// TOTPConfirm proves the staff member scanned the secret and arms the
// factor for future logins.
func (s *Usecase) TOTPConfirm(ctx context.Context, in TOTPConfirmInput) error {
	ctx, span := s.startSpan(ctx, "TOTPConfirm")
	defer span.End()

	clm, err := s.requireStaff(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	factor, err := s.repoDB.GetTOTPFactor(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("no authenticator setup in progress", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load totp factor", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}
	if factor.Confirmed {
		return goerror.NewBusiness("authenticator already configured", goerror.CodeConflict)
	}

	secret, err := s.mfaEnc.Decrypt(factor.Secret, mfa.Scope{UserID: clm.UserID, Purpose: "totp"})
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt totp secret", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if !s.totp.Validate(in.Code, string(secret), s.clock.Now()) {
		return goerror.NewBusiness("invalid authenticator code", goerror.CodeUnauthorized)
	}

	if err := s.repoDB.ConfirmTOTPFactor(ctx, factor.ID, clm.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to confirm totp factor", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
