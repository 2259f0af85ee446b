package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

type ProductDetailInput struct {
	ProductID int64 `validate:"required,min=1"`
}

type ProductDetailOutput struct {
	Product entity.Product
}

// ProductDetail returns one active product with all of its images.
func (s *Usecase) ProductDetail(ctx context.Context, in ProductDetailInput) (*ProductDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "ProductDetail")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	product, err := s.repoDB.GetProductByID(ctx, in.ProductID, true)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("product not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to get product", "product_id", in.ProductID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProductDetailOutput{Product: *product}, nil
}
