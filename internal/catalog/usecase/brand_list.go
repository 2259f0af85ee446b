package usecase

import (
	"context"
	"log/slog"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

type BrandListOutput struct {
	Brands []entity.Brand
}

// BrandList returns all non-deleted brands for the admin screens.
func (s *Usecase) BrandList(ctx context.Context) (*BrandListOutput, error) {
	ctx, span := s.startSpan(ctx, "BrandList")
	defer span.End()

	if _, err := s.requireStaff(ctx); err != nil {
		return nil, err
	}

	brands, err := s.repoDB.GetBrandList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list brands", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &BrandListOutput{Brands: brands}, nil
}
