package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

type CategoryDeleteInput struct {
	CategoryID int64 `validate:"required,min=1"`
}

// CategoryDelete soft-deletes a category. Its products stay but the category
// no longer appears anywhere.
func (s *Usecase) CategoryDelete(ctx context.Context, in CategoryDeleteInput) error {
	ctx, span := s.startSpan(ctx, "CategoryDelete")
	defer span.End()

	clm, err := s.requireStaff(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.SoftDeleteCategory(ctx, in.CategoryID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("category not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to delete category", "category_id", in.CategoryID, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "category deleted", "category_id", in.CategoryID, "staff_id", clm.UserID)

	return nil
}
