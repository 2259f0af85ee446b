package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/stretchr/testify/require"
)

func imageUpload(name string) Upload {
	return Upload{
		Filename:    name,
		ContentType: "image/jpeg",
		Size:        3,
		Body:        strings.NewReader("img"),
	}
}

func validProductCreateInput() ProductCreateInput {
	return ProductCreateInput{
		Name:       "Pro Carbon Racket",
		CategoryID: 5,
		Price:      "129.99",
		StockCount: 10,
		Images:     []Upload{imageUpload("a.jpg"), imageUpload("b.jpg"), imageUpload("c.jpg")},
	}
}

func TestProductCreate(t *testing.T) {
	t.Run("RequiresStaff", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.uc.ProductCreate(context.Background(), validProductCreateInput())
		requireCode(t, err, goerror.CodeUnauthorized)

		_, err = fx.uc.ProductCreate(userContext(), validProductCreateInput())
		requireCode(t, err, goerror.CodeForbidden)
	})

	t.Run("RequiresThreeImages", func(t *testing.T) {
		fx := newFixture(t)
		in := validProductCreateInput()
		in.Images = in.Images[:2]

		_, err := fx.uc.ProductCreate(staffContext(), in)

		requireCode(t, err, goerror.CodeInvalidInput)
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		require.Contains(t, gerr.Fields(), "images")
		require.Empty(t, fx.store.put)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.getCategoryByID = func(_ context.Context, _ int64) (*entity.Category, error) {
			return nil, goerror.ErrNotFound
		}

		_, err := fx.uc.ProductCreate(staffContext(), validProductCreateInput())

		requireCode(t, err, goerror.CodeNotFound)
	})

	t.Run("NonImageUploadRejected", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.getCategoryByID = func(_ context.Context, id int64) (*entity.Category, error) {
			return &entity.Category{ID: id, IsActive: true}, nil
		}
		in := validProductCreateInput()
		in.Images[1].ContentType = "application/pdf"

		_, err := fx.uc.ProductCreate(staffContext(), in)

		requireCode(t, err, goerror.CodeInvalidInput)
		// The first stored object is cleaned up again.
		require.Len(t, fx.store.deleted, 1)
	})

	t.Run("UploadFailureCleansUpEarlierImages", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.getCategoryByID = func(_ context.Context, id int64) (*entity.Category, error) {
			return &entity.Category{ID: id, IsActive: true}, nil
		}
		fx.store.failPut = 3

		_, err := fx.uc.ProductCreate(staffContext(), validProductCreateInput())

		requireCode(t, err, goerror.CodeDependency)
		require.Len(t, fx.store.put, 2)
		require.ElementsMatch(t, fx.store.put, fx.store.deleted)
	})

	t.Run("InsertFailureCleansUpAllImages", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.getCategoryByID = func(_ context.Context, id int64) (*entity.Category, error) {
			return &entity.Category{ID: id, IsActive: true}, nil
		}
		fx.repoDB.createProduct = func(_ context.Context, _ entity.Product, _ []entity.ProductImage) error {
			return errors.New("insert failed")
		}

		_, err := fx.uc.ProductCreate(staffContext(), validProductCreateInput())

		requireCode(t, err, goerror.CodeInternal)
		require.Len(t, fx.store.deleted, 3)
	})

	t.Run("Success", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.getCategoryByID = func(_ context.Context, id int64) (*entity.Category, error) {
			return &entity.Category{ID: id, IsActive: true}, nil
		}

		var created entity.Product
		var gallery []entity.ProductImage
		fx.repoDB.createProduct = func(_ context.Context, product entity.Product, images []entity.ProductImage) error {
			created = product
			gallery = images
			return nil
		}

		out, err := fx.uc.ProductCreate(staffContext(), validProductCreateInput())

		require.NoError(t, err)
		require.Equal(t, created.ID, out.ProductID)
		require.True(t, created.IsActive)
		require.Equal(t, testNow, created.CreatedAt)
		require.Len(t, gallery, 3)
		require.Len(t, out.ImageURLs, 3)
		for _, url := range out.ImageURLs {
			require.True(t, strings.HasPrefix(url, "http://cdn.example.com/test-media/products/"), url)
		}
		require.Empty(t, fx.store.deleted)
	})
}
