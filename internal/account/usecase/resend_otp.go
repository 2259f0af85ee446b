package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
)

type ResendOTPInput struct {
	FlowToken string `validate:"required"`
}

type ResendOTPOutput struct {
	// Sent is false when the flow or user could not be resolved, the flow
	// is not an email-code flow, or the email failed to deliver. An
	// already-inserted OTP row stays behind either way.
	Sent bool
}

// ResendOTP issues a fresh code for an existing pending flow. Earlier codes
// stay valid until they expire or one of them is claimed.
func (s *Usecase) ResendOTP(ctx context.Context, in ResendOTPInput) (*ResendOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "ResendOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	flow, err := s.flows.Get(ctx, in.FlowToken)
	if errors.Is(err, session.ErrNoFlow) {
		slog.WarnContext(ctx, "resend requested without a pending flow")
		return &ResendOTPOutput{Sent: false}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load pending flow", "error", err)
		return nil, goerror.NewServer(err)
	}

	// Only email-code flows can be resent; a staff login flow is driven by
	// the authenticator, not a mailed code.
	if flow.Purpose != session.PurposeSignupVerification && flow.Purpose != session.PurposePasswordReset {
		slog.WarnContext(ctx, "resend requested for non-email flow", "user_id", flow.UserID, "purpose", string(flow.Purpose))
		return &ResendOTPOutput{Sent: false}, nil
	}

	window := s.cfg.GetSecond("modules.account.otp_resend_cooldown_seconds")
	if window <= 0 {
		window = 60 * time.Second
	}
	allowed, err := s.flows.AllowResend(ctx, in.FlowToken, window)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check resend cooldown", "user_id", flow.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !allowed {
		return nil, goerror.NewBusiness("please wait before requesting another code", goerror.CodeTooManyRequest)
	}

	user, err := s.repoDB.GetUserByID(ctx, flow.UserID)
	if err != nil {
		slog.WarnContext(ctx, "resend requested for missing user", "user_id", flow.UserID, "error", err)
		return &ResendOTPOutput{Sent: false}, nil
	}

	err = s.createAndSendOTP(ctx, otpRecipient{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}, flow.Purpose)
	if errors.Is(err, errDispatchFailed) {
		return &ResendOTPOutput{Sent: false}, nil
	}
	if err != nil {
		return nil, err
	}

	// Restart the flow under the same token so its lifetime matches the
	// fresh code.
	if err := s.flows.Start(ctx, in.FlowToken, flow, s.otpTTL()); err != nil {
		slog.ErrorContext(ctx, "failed to refresh pending flow", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ResendOTPOutput{Sent: true}, nil
}
