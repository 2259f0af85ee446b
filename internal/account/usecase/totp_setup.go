package usecase

import (
	"context"
	"log/slog"

	"github.com/smashstrix/smashstrix/internal/account/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/mfa"
)

type TOTPSetupOutput struct {
	// Secret is the base32 key to enter manually.
	Secret string
	// URI is the otpauth provisioning link for QR rendering.
	URI string
}

// TOTPSetup starts authenticator enrollment for a staff account. A repeat
// call before confirmation replaces the unconfirmed secret.
func (s *Usecase) TOTPSetup(ctx context.Context) (*TOTPSetupOutput, error) {
	ctx, span := s.startSpan(ctx, "TOTPSetup")
	defer span.End()

	clm, err := s.requireStaff(ctx)
	if err != nil {
		return nil, err
	}

	if factor, fErr := s.repoDB.GetTOTPFactor(ctx, clm.UserID); fErr == nil && factor.Confirmed {
		return nil, goerror.NewBusiness("authenticator already configured", goerror.CodeConflict)
	}

	secret, uri, err := s.totp.Generate(clm.UserEmail)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate totp secret", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	sealed, err := s.mfaEnc.Encrypt([]byte(secret), mfa.Scope{UserID: clm.UserID, Purpose: "totp"})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encrypt totp secret", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.SaveTOTPFactor(ctx, entity.TOTPFactor{
		ID:        s.uid.Generate(),
		UserID:    clm.UserID,
		Secret:    sealed,
		CreatedAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to save totp factor", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &TOTPSetupOutput{Secret: secret, URI: uri}, nil
}
