package usecase

import (
	"context"
	"testing"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/stretchr/testify/require"
)

func TestCategoryList(t *testing.T) {
	t.Run("PublicHidesInactive", func(t *testing.T) {
		fx := newFixture(t)

		var includeInactive bool
		fx.repoDB.getCategoryList = func(_ context.Context, inactive bool) ([]entity.Category, error) {
			includeInactive = inactive
			return []entity.Category{{ID: 1, Name: "Rackets", IsActive: true}}, nil
		}

		out, err := fx.uc.CategoryList(context.Background())

		require.NoError(t, err)
		require.False(t, includeInactive)
		require.Len(t, out.Categories, 1)
	})

	t.Run("StaffSeesInactive", func(t *testing.T) {
		fx := newFixture(t)

		var includeInactive bool
		fx.repoDB.getCategoryList = func(_ context.Context, inactive bool) ([]entity.Category, error) {
			includeInactive = inactive
			return nil, nil
		}

		_, err := fx.uc.CategoryList(staffContext())

		require.NoError(t, err)
		require.True(t, includeInactive)
	})

	t.Run("RegularUserDoesNot", func(t *testing.T) {
		fx := newFixture(t)

		var includeInactive bool
		fx.repoDB.getCategoryList = func(_ context.Context, inactive bool) ([]entity.Category, error) {
			includeInactive = inactive
			return nil, nil
		}

		_, err := fx.uc.CategoryList(userContext())

		require.NoError(t, err)
		require.False(t, includeInactive)
	})
}

func TestCategoryCreate(t *testing.T) {
	t.Run("RequiresStaff", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.uc.CategoryCreate(userContext(), CategoryCreateInput{Name: "Rackets"})

		requireCode(t, err, goerror.CodeForbidden)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.createCategory = func(_ context.Context, _ entity.Category) error {
			return goerror.ErrConflict
		}

		_, err := fx.uc.CategoryCreate(staffContext(), CategoryCreateInput{Name: "Rackets"})

		requireCode(t, err, goerror.CodeConflict)
	})

	t.Run("Success", func(t *testing.T) {
		fx := newFixture(t)

		var created entity.Category
		fx.repoDB.createCategory = func(_ context.Context, cat entity.Category) error {
			created = cat
			return nil
		}

		out, err := fx.uc.CategoryCreate(staffContext(), CategoryCreateInput{Name: "  Rackets  "})

		require.NoError(t, err)
		require.Equal(t, created.ID, out.CategoryID)
		require.Equal(t, "Rackets", created.Name)
		require.True(t, created.IsActive)
	})
}

func TestDashboard(t *testing.T) {
	t.Run("RequiresStaff", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.uc.Dashboard(context.Background())
		requireCode(t, err, goerror.CodeUnauthorized)

		_, err = fx.uc.Dashboard(userContext())
		requireCode(t, err, goerror.CodeForbidden)
	})

	t.Run("Counts", func(t *testing.T) {
		fx := newFixture(t)
		fx.repoDB.countDashboard = func(_ context.Context) (*entity.DashboardCounts, error) {
			return &entity.DashboardCounts{Users: 120, Categories: 8, ActiveProducts: 42}, nil
		}

		out, err := fx.uc.Dashboard(staffContext())

		require.NoError(t, err)
		require.Equal(t, int64(120), out.Users)
		require.Equal(t, int64(8), out.Categories)
		require.Equal(t, int64(42), out.ActiveProducts)
	})
}
