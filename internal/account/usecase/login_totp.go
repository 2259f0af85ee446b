package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/jwt"
	"github.com/smashstrix/smashstrix/internal/pkg/mfa"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
)

type LoginTOTPInput struct {
	FlowToken string `validate:"required"`
	Code      string `validate:"required,len=6,numeric"`
}

type LoginTOTPOutput struct {
	AccessToken string
}

// LoginTOTP finishes a staff login by checking the authenticator code.
func (s *Usecase) LoginTOTP(ctx context.Context, in LoginTOTPInput) (*LoginTOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginTOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	flow, err := s.flows.Get(ctx, in.FlowToken)
	if errors.Is(err, session.ErrNoFlow) || (err == nil && flow.Purpose != session.PurposeStaffLogin) {
		return nil, goerror.NewBusiness("login challenge not found or expired", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load login flow", "error", err)
		return nil, goerror.NewServer(err)
	}

	attempts, err := s.flows.IncrAttempts(ctx, in.FlowToken, s.otpTTL())
	if err != nil {
		slog.ErrorContext(ctx, "failed to count login attempt", "user_id", flow.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if attempts > s.maxVerifyAttempts() {
		return nil, goerror.NewBusiness("too many attempts, sign in again", goerror.CodeTooManyRequest)
	}

	factor, err := s.repoDB.GetTOTPFactor(ctx, flow.UserID)
	if err != nil || !factor.Confirmed {
		slog.WarnContext(ctx, "staff login flow without confirmed totp", "user_id", flow.UserID, "error", err)
		return nil, goerror.NewBusiness("login challenge not found or expired", goerror.CodeUnauthorized)
	}

	secret, err := s.mfaEnc.Decrypt(factor.Secret, mfa.Scope{UserID: flow.UserID, Purpose: "totp"})
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt totp secret", "user_id", flow.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.totp.Validate(in.Code, string(secret), s.clock.Now()) {
		slog.WarnContext(ctx, "invalid totp code on staff login", "user_id", flow.UserID)
		return nil, goerror.NewBusiness("invalid authenticator code", goerror.CodeUnauthorized)
	}

	if err := s.flows.End(ctx, in.FlowToken); err != nil {
		slog.ErrorContext(ctx, "failed to end login flow", "user_id", flow.UserID, "error", err)
	}

	user, err := s.repoDB.GetUserByID(ctx, flow.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load user after totp", "user_id", flow.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	access, err := s.jwt.Generate(jwt.TokenUser{ID: user.ID, Email: user.Email, Staff: user.IsStaff})
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginTOTPOutput{AccessToken: access}, nil
}
