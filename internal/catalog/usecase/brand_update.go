package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

type BrandUpdateInput struct {
	BrandID  int64  `validate:"required,min=1"`
	Name     string `validate:"required,max=100"`
	IsActive bool
	Icon     *Upload
}

type BrandUpdateOutput struct {
	IconURL string
}

// BrandUpdate edits a brand. A newly uploaded icon replaces the stored one.
func (s *Usecase) BrandUpdate(ctx context.Context, in BrandUpdateInput) (*BrandUpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "BrandUpdate")
	defer span.End()

	if _, err := s.requireStaff(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	brand, err := s.repoDB.GetBrandByID(ctx, in.BrandID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("brand not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to get brand", "brand_id", in.BrandID, "error", err)
		return nil, goerror.NewServer(err)
	}

	oldIcon := brand.IconURL
	if in.Icon != nil {
		url, err := s.storeMedia(ctx, "brands/"+strconv.FormatInt(brand.ID, 10), *in.Icon)
		if err != nil {
			return nil, err
		}
		brand.IconURL = url
	}

	err = s.repoDB.UpdateBrand(ctx, entity.Brand{
		ID:       brand.ID,
		Name:     in.Name,
		IconURL:  brand.IconURL,
		IsActive: in.IsActive,
	})
	if err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("a brand with that name already exists", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to update brand", "brand_id", in.BrandID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if in.Icon != nil && oldIcon != "" && oldIcon != brand.IconURL {
		s.removeMedia(ctx, oldIcon)
	}

	return &BrandUpdateOutput{IconURL: brand.IconURL}, nil
}
