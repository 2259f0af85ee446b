package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

// minProductImages is the smallest gallery a storefront listing needs.
const minProductImages = 3

type ProductCreateInput struct {
	Name        string `validate:"required,max=200"`
	Description string `validate:"omitempty,max=2000"`
	CategoryID  int64  `validate:"required,min=1"`
	Price       string `validate:"required,numeric"`
	StockCount  int64  `validate:"omitempty,min=0"`
	Images      []Upload
}

type ProductCreateOutput struct {
	ProductID int64
	ImageURLs []string
}

// ProductCreate adds a product with its image gallery. At least three images
// are required so the listing never shows an empty card.
func (s *Usecase) ProductCreate(ctx context.Context, in ProductCreateInput) (*ProductCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "ProductCreate")
	defer span.End()

	if _, err := s.requireStaff(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if len(in.Images) < minProductImages {
		return nil, goerror.NewInvalidInput(nil, "images", "at least 3 product images are required")
	}

	if _, err := s.repoDB.GetCategoryByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("category not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to get category", "category_id", in.CategoryID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	product := entity.Product{
		ID:          s.uid.Generate(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		StockCount:  in.StockCount,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	prefix := "products/" + strconv.FormatInt(product.ID, 10)
	images := make([]entity.ProductImage, 0, len(in.Images))
	for _, up := range in.Images {
		url, err := s.storeMedia(ctx, prefix, up)
		if err != nil {
			for _, img := range images {
				s.removeMedia(ctx, img.ImageURL)
			}
			return nil, err
		}
		images = append(images, entity.ProductImage{
			ID:        s.uid.Generate(),
			ProductID: product.ID,
			ImageURL:  url,
			AltText:   product.Name,
		})
	}

	if err := s.repoDB.CreateProduct(ctx, product, images); err != nil {
		for _, img := range images {
			s.removeMedia(ctx, img.ImageURL)
		}
		slog.ErrorContext(ctx, "failed to create product", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProductCreateOutput{
		ProductID: product.ID,
		ImageURLs: lo.Map(images, func(img entity.ProductImage, _ int) string { return img.ImageURL }),
	}, nil
}
