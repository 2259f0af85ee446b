package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

type BrandDeleteInput struct {
	BrandID int64 `validate:"required,min=1"`
}

// BrandDelete soft-deletes a brand. The stored icon stays so existing
// references keep resolving.
func (s *Usecase) BrandDelete(ctx context.Context, in BrandDeleteInput) error {
	ctx, span := s.startSpan(ctx, "BrandDelete")
	defer span.End()

	clm, err := s.requireStaff(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.SoftDeleteBrand(ctx, in.BrandID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("brand not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to delete brand", "brand_id", in.BrandID, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "brand deleted", "brand_id", in.BrandID, "staff_id", clm.UserID)

	return nil
}
