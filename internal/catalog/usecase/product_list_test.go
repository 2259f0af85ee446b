package usecase

import (
	"context"
	"testing"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/stretchr/testify/require"
)

func TestProductList(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownSortRejected", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.uc.ProductList(ctx, ProductListInput{Sort: "cheapest"})

		requireCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("DefaultsApplied", func(t *testing.T) {
		fx := newFixture(t)

		var got entity.ProductListFilter
		fx.repoDB.getProductList = func(_ context.Context, filter entity.ProductListFilter) ([]entity.Product, int64, error) {
			got = filter
			return nil, 0, nil
		}

		out, err := fx.uc.ProductList(ctx, ProductListInput{})

		require.NoError(t, err)
		require.Equal(t, int64(1), got.Page)
		require.Equal(t, int64(20), got.Size)
		require.Equal(t, "newest", got.Sort)
		require.Equal(t, int64(1), out.Page)
		require.Equal(t, int64(20), out.Size)
	})

	t.Run("CoverImageAndTotal", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.getProductList = func(_ context.Context, filter entity.ProductListFilter) ([]entity.Product, int64, error) {
			require.Equal(t, "racket", filter.Search)
			return []entity.Product{
				{
					ID: 1, Name: "Pro Carbon Racket", Price: "129.99", Rating: 4.5,
					Images: []entity.ProductImage{{ImageURL: "http://cdn.example.com/test-media/products/1/a.jpg"}},
				},
				{ID: 2, Name: "Grip Tape", Price: "4.99"},
			}, 37, nil
		}

		out, err := fx.uc.ProductList(ctx, ProductListInput{Search: " racket "})

		require.NoError(t, err)
		require.Equal(t, int64(37), out.Total)
		require.Len(t, out.Products, 2)
		require.Equal(t, "http://cdn.example.com/test-media/products/1/a.jpg", out.Products[0].ImageURL)
		require.Empty(t, out.Products[1].ImageURL)
	})
}

func TestProductDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.uc.ProductDetail(ctx, ProductDetailInput{ProductID: 404})

		requireCode(t, err, goerror.CodeNotFound)
	})

	t.Run("OnlyActiveProductsVisible", func(t *testing.T) {
		fx := newFixture(t)

		var gotActiveOnly bool
		fx.repoDB.getProductByID = func(_ context.Context, id int64, activeOnly bool) (*entity.Product, error) {
			gotActiveOnly = activeOnly
			return &entity.Product{ID: id, Name: "Pro Carbon Racket", IsActive: true}, nil
		}

		out, err := fx.uc.ProductDetail(ctx, ProductDetailInput{ProductID: 1})

		require.NoError(t, err)
		require.True(t, gotActiveOnly)
		require.Equal(t, "Pro Carbon Racket", out.Product.Name)
	})
}
