package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/jwt"
)

// Logout revokes the caller's access token for its remaining lifetime.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	var remaining time.Duration
	if clm.ExpiresAt != nil {
		remaining = clm.ExpiresAt.Time.Sub(s.clock.Now())
	}
	if remaining <= 0 {
		return nil
	}

	if err := s.revoker.Revoke(ctx, clm.ID, remaining); err != nil {
		slog.ErrorContext(ctx, "failed to revoke token", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
