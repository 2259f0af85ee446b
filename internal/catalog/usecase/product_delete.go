package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

type ProductDeleteInput struct {
	ProductID int64 `validate:"required,min=1"`
}

// ProductDelete removes a product from the storefront by deactivating it.
// The row and its images stay for order history.
func (s *Usecase) ProductDelete(ctx context.Context, in ProductDeleteInput) error {
	ctx, span := s.startSpan(ctx, "ProductDelete")
	defer span.End()

	clm, err := s.requireStaff(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.DeactivateProduct(ctx, in.ProductID, s.clock.Now()); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("product not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to delete product", "product_id", in.ProductID, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "product deactivated", "product_id", in.ProductID, "staff_id", clm.UserID)

	return nil
}
