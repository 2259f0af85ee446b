package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

type UserBlockToggleInput struct {
	UserID int64 `validate:"required"`
}

type UserBlockToggleOutput struct {
	UserID    int64
	IsBlocked bool
}

// UserBlockToggle flips the blocked flag on an account. Staff and superuser
// accounts cannot be blocked this way.
func (s *Usecase) UserBlockToggle(ctx context.Context, in UserBlockToggleInput) (*UserBlockToggleOutput, error) {
	ctx, span := s.startSpan(ctx, "UserBlockToggle")
	defer span.End()

	clm, err := s.requireStaff(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByID(ctx, in.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("user not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load user", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if user.IsStaff || user.IsSuperuser {
		return nil, goerror.NewBusiness("this account cannot be blocked", goerror.CodeForbidden)
	}

	blocked := !user.IsBlocked
	if err := s.repoDB.SetUserBlocked(ctx, user.ID, blocked); err != nil {
		slog.ErrorContext(ctx, "failed to toggle blocked flag", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "user blocked flag toggled", "user_id", user.ID, "blocked", blocked, "staff_id", clm.UserID)

	return &UserBlockToggleOutput{UserID: user.ID, IsBlocked: blocked}, nil
}
