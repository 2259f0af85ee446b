package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
)

type VerifyOTPInput struct {
	FlowToken string `validate:"required"`
	Code      string `validate:"required,len=6,numeric"`
}

// VerifyOTP claims a code against the pending flow. A wrong, expired, and
// unknown code are deliberately indistinguishable to the caller.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) error {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
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

	attempts, err := s.flows.IncrAttempts(ctx, in.FlowToken, s.otpTTL())
	if err != nil {
		slog.ErrorContext(ctx, "failed to count verification attempt", "user_id", flow.UserID, "error", err)
		return goerror.NewServer(err)
	}
	if attempts > s.maxVerifyAttempts() {
		slog.WarnContext(ctx, "verification attempts exhausted", "user_id", flow.UserID, "attempts", attempts)
		return goerror.NewBusiness("too many attempts, request a new code", goerror.CodeTooManyRequest)
	}

	otpID, err := s.repoDB.ClaimOTP(ctx, flow.UserID, in.Code, s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("invalid or expired code", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to claim otp", "user_id", flow.UserID, "error", err)
		return goerror.NewServer(err)
	}

	switch flow.Purpose {
	case session.PurposeSignupVerification:
		if err := s.repoDB.SetUserActive(ctx, flow.UserID); err != nil {
			slog.ErrorContext(ctx, "failed to activate user", "user_id", flow.UserID, "otp_id", otpID, "error", err)
			return goerror.NewServer(err)
		}

		if err := s.flows.End(ctx, in.FlowToken); err != nil {
			slog.ErrorContext(ctx, "failed to end pending flow", "user_id", flow.UserID, "error", err)
		}

		s.publishUserVerified(ctx, flow.UserID)
		return nil

	case session.PurposePasswordReset:
		flow.ResetAuthorized = true
		if err := s.flows.Save(ctx, in.FlowToken, flow); err != nil {
			slog.ErrorContext(ctx, "failed to authorize reset flow", "user_id", flow.UserID, "error", err)
			return goerror.NewServer(err)
		}
		return nil

	default:
		slog.ErrorContext(ctx, "pending flow has unexpected purpose", "user_id", flow.UserID, "purpose", string(flow.Purpose))
		return goerror.NewBusiness("no pending verification, please start over", goerror.CodeUnauthorized)
	}
}

func (s *Usecase) publishUserVerified(ctx context.Context, userID int64) {
	user, err := s.repoDB.GetUserByID(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load user for verified event", "user_id", userID, "error", err)
		return
	}

	if err := s.repoMQ.PublishUserVerified(ctx, UserVerifiedEvent{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user verified", "user_id", userID, "error", err)
	}
}
