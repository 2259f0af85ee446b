package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

type ProductListInput struct {
	Search     string `validate:"omitempty,max=100"`
	CategoryID int64  `validate:"omitempty,min=1"`
	PriceMin   string `validate:"omitempty,numeric"`
	PriceMax   string `validate:"omitempty,numeric"`
	InStock    *bool
	Sort       string `validate:"omitempty,oneof=newest oldest price_asc price_desc rating"`
	Page       int64  `validate:"omitempty,min=1"`
	Size       int64  `validate:"omitempty,min=1,max=100"`
}

type ProductListItem struct {
	ID           int64
	Name         string
	CategoryID   int64
	CategoryName string
	Price        string
	StockCount   int64
	Rating       float64
	ImageURL     string
}

type ProductListOutput struct {
	Products []ProductListItem
	Total    int64
	Page     int64
	Size     int64
}

// ProductList returns a page of the public storefront listing. Only active
// products in non-deleted categories appear.
func (s *Usecase) ProductList(ctx context.Context, in ProductListInput) (*ProductListOutput, error) {
	ctx, span := s.startSpan(ctx, "ProductList")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Page < 1 {
		in.Page = 1
	}
	if in.Size < 1 {
		in.Size = 20
	}
	if in.Sort == "" {
		in.Sort = "newest"
	}

	products, total, err := s.repoDB.GetProductList(ctx, entity.ProductListFilter{
		Search:     strings.TrimSpace(in.Search),
		CategoryID: in.CategoryID,
		PriceMin:   in.PriceMin,
		PriceMax:   in.PriceMax,
		InStock:    in.InStock,
		Sort:       in.Sort,
		Page:       in.Page,
		Size:       in.Size,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to list products", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProductListOutput{
		Products: lo.Map(products, func(p entity.Product, _ int) ProductListItem {
			item := ProductListItem{
				ID:           p.ID,
				Name:         p.Name,
				CategoryID:   p.CategoryID,
				CategoryName: p.CategoryName,
				Price:        p.Price,
				StockCount:   p.StockCount,
				Rating:       p.Rating,
			}
			if len(p.Images) > 0 {
				item.ImageURL = p.Images[0].ImageURL
			}
			return item
		}),
		Total: total,
		Page:  in.Page,
		Size:  in.Size,
	}, nil
}
