package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

type ProductUpdateInput struct {
	ProductID   int64  `validate:"required,min=1"`
	Name        string `validate:"required,max=200"`
	Description string `validate:"omitempty,max=2000"`
	CategoryID  int64  `validate:"required,min=1"`
	Price       string `validate:"required,numeric"`
	StockCount  int64  `validate:"omitempty,min=0"`
	IsActive    bool
}

// ProductUpdate edits a product's listing fields. Images are managed on
// create; the gallery itself does not change here.
func (s *Usecase) ProductUpdate(ctx context.Context, in ProductUpdateInput) error {
	ctx, span := s.startSpan(ctx, "ProductUpdate")
	defer span.End()

	if _, err := s.requireStaff(ctx); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetProductByID(ctx, in.ProductID, false); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("product not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to get product", "product_id", in.ProductID, "error", err)
		return goerror.NewServer(err)
	}

	if _, err := s.repoDB.GetCategoryByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("category not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to get category", "category_id", in.CategoryID, "error", err)
		return goerror.NewServer(err)
	}

	err := s.repoDB.UpdateProduct(ctx, entity.Product{
		ID:          in.ProductID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		StockCount:  in.StockCount,
		IsActive:    in.IsActive,
		UpdatedAt:   s.clock.Now(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to update product", "product_id", in.ProductID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
