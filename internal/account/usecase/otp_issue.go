package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/smashstrix/smashstrix/internal/account/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/mail"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
)

// errDispatchFailed marks an OTP email that could not be delivered. The OTP
// row stays behind and expires unused; callers decide whether to roll back
// anything else.
var errDispatchFailed = errors.New("account: otp email dispatch failed")

type otpRecipient struct {
	UserID   int64
	Email    string
	FullName string
}

// createAndSendOTP inserts exactly one code row and sends exactly one email.
func (s *Usecase) createAndSendOTP(ctx context.Context, rcpt otpRecipient, purpose session.Purpose) error {
	ttl := s.otpTTL()
	now := s.clock.Now()

	code, err := s.codes.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "user_id", rcpt.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.InsertOTP(ctx, entity.OTP{
		ID:        s.uid.Generate(),
		UserID:    rcpt.UserID,
		Code:      code,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to insert otp row", "user_id", rcpt.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.mailer.Send(ctx, otpMessage(rcpt, purpose, code, ttl)); err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "user_id", rcpt.UserID, "purpose", string(purpose), "error", err)
		return errDispatchFailed
	}

	return nil
}

// issueOTP runs createAndSendOTP and, on delivery success, starts a pending
// flow. It returns the opaque flow token.
func (s *Usecase) issueOTP(ctx context.Context, rcpt otpRecipient, purpose session.Purpose) (string, error) {
	if err := s.createAndSendOTP(ctx, rcpt, purpose); err != nil {
		return "", err
	}

	token := s.token.Generate()
	if err := s.flows.Start(ctx, token, session.Flow{Purpose: purpose, UserID: rcpt.UserID}, s.otpTTL()); err != nil {
		slog.ErrorContext(ctx, "failed to start pending flow", "user_id", rcpt.UserID, "error", err)
		return "", goerror.NewServer(err)
	}

	return token, nil
}

func otpMessage(rcpt otpRecipient, purpose session.Purpose, code string, ttl time.Duration) mail.Message {
	minutes := int(ttl.Minutes())

	subject := "Your SmashStrix verification code"
	intro := "Use this code to verify your SmashStrix account."
	if purpose == session.PurposePasswordReset {
		subject = "Your SmashStrix password reset code"
		intro = "Use this code to reset your SmashStrix password. If you did not ask for a reset, ignore this email."
	}

	body := fmt.Sprintf("Hi %s,\n\n%s\n\nCode: %s\n\nThe code expires in %d minutes.\n",
		rcpt.FullName, intro, code, minutes)

	return mail.Message{
		To:       []string{rcpt.Email},
		Subject:  subject,
		TextBody: body,
	}
}
