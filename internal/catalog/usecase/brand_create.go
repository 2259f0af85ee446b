package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

type BrandCreateInput struct {
	Name string `validate:"required,max=100"`
	Icon *Upload
}

type BrandCreateOutput struct {
	BrandID int64
	IconURL string
}

// BrandCreate adds a brand, storing its icon in object storage when one was
// uploaded.
func (s *Usecase) BrandCreate(ctx context.Context, in BrandCreateInput) (*BrandCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "BrandCreate")
	defer span.End()

	if _, err := s.requireStaff(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	brand := entity.Brand{
		ID:       s.uid.Generate(),
		Name:     strings.TrimSpace(in.Name),
		IsActive: true,
	}

	if in.Icon != nil {
		url, err := s.storeMedia(ctx, "brands/"+strconv.FormatInt(brand.ID, 10), *in.Icon)
		if err != nil {
			return nil, err
		}
		brand.IconURL = url
	}

	if err := s.repoDB.CreateBrand(ctx, brand); err != nil {
		s.removeMedia(ctx, brand.IconURL)
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("a brand with that name already exists", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to create brand", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &BrandCreateOutput{BrandID: brand.ID, IconURL: brand.IconURL}, nil
}
