package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/clock"
	"github.com/smashstrix/smashstrix/internal/pkg/config"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"github.com/smashstrix/smashstrix/internal/pkg/jwt"
	"github.com/smashstrix/smashstrix/internal/pkg/storage"
	"github.com/smashstrix/smashstrix/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

type fakeRepoDB struct {
	getCategoryList    func(ctx context.Context, includeInactive bool) ([]entity.Category, error)
	getCategoryByID    func(ctx context.Context, id int64) (*entity.Category, error)
	createCategory     func(ctx context.Context, cat entity.Category) error
	updateCategory     func(ctx context.Context, cat entity.Category) error
	softDeleteCategory func(ctx context.Context, id int64) error
	getBrandList       func(ctx context.Context) ([]entity.Brand, error)
	getBrandByID       func(ctx context.Context, id int64) (*entity.Brand, error)
	createBrand        func(ctx context.Context, brand entity.Brand) error
	updateBrand        func(ctx context.Context, brand entity.Brand) error
	softDeleteBrand    func(ctx context.Context, id int64) error
	getProductList     func(ctx context.Context, filter entity.ProductListFilter) ([]entity.Product, int64, error)
	getProductByID     func(ctx context.Context, id int64, activeOnly bool) (*entity.Product, error)
	createProduct      func(ctx context.Context, product entity.Product, images []entity.ProductImage) error
	updateProduct      func(ctx context.Context, product entity.Product) error
	deactivateProduct  func(ctx context.Context, id int64, now time.Time) error
	countDashboard     func(ctx context.Context) (*entity.DashboardCounts, error)
}

func (f *fakeRepoDB) GetCategoryList(ctx context.Context, includeInactive bool) ([]entity.Category, error) {
	if f.getCategoryList == nil {
		return nil, nil
	}
	return f.getCategoryList(ctx, includeInactive)
}

func (f *fakeRepoDB) GetCategoryByID(ctx context.Context, id int64) (*entity.Category, error) {
	if f.getCategoryByID == nil {
		return nil, goerror.ErrNotFound
	}
	return f.getCategoryByID(ctx, id)
}

func (f *fakeRepoDB) CreateCategory(ctx context.Context, cat entity.Category) error {
	if f.createCategory == nil {
		return nil
	}
	return f.createCategory(ctx, cat)
}

func (f *fakeRepoDB) UpdateCategory(ctx context.Context, cat entity.Category) error {
	if f.updateCategory == nil {
		return nil
	}
	return f.updateCategory(ctx, cat)
}

func (f *fakeRepoDB) SoftDeleteCategory(ctx context.Context, id int64) error {
	if f.softDeleteCategory == nil {
		return nil
	}
	return f.softDeleteCategory(ctx, id)
}

func (f *fakeRepoDB) GetBrandList(ctx context.Context) ([]entity.Brand, error) {
	if f.getBrandList == nil {
		return nil, nil
	}
	return f.getBrandList(ctx)
}

func (f *fakeRepoDB) GetBrandByID(ctx context.Context, id int64) (*entity.Brand, error) {
	if f.getBrandByID == nil {
		return nil, goerror.ErrNotFound
	}
	return f.getBrandByID(ctx, id)
}

func (f *fakeRepoDB) CreateBrand(ctx context.Context, brand entity.Brand) error {
	if f.createBrand == nil {
		return nil
	}
	return f.createBrand(ctx, brand)
}

func (f *fakeRepoDB) UpdateBrand(ctx context.Context, brand entity.Brand) error {
	if f.updateBrand == nil {
		return nil
	}
	return f.updateBrand(ctx, brand)
}

func (f *fakeRepoDB) SoftDeleteBrand(ctx context.Context, id int64) error {
	if f.softDeleteBrand == nil {
		return nil
	}
	return f.softDeleteBrand(ctx, id)
}

func (f *fakeRepoDB) GetProductList(ctx context.Context, filter entity.ProductListFilter) ([]entity.Product, int64, error) {
	if f.getProductList == nil {
		return nil, 0, nil
	}
	return f.getProductList(ctx, filter)
}

func (f *fakeRepoDB) GetProductByID(ctx context.Context, id int64, activeOnly bool) (*entity.Product, error) {
	if f.getProductByID == nil {
		return nil, goerror.ErrNotFound
	}
	return f.getProductByID(ctx, id, activeOnly)
}

func (f *fakeRepoDB) CreateProduct(ctx context.Context, product entity.Product, images []entity.ProductImage) error {
	if f.createProduct == nil {
		return nil
	}
	return f.createProduct(ctx, product, images)
}

func (f *fakeRepoDB) UpdateProduct(ctx context.Context, product entity.Product) error {
	if f.updateProduct == nil {
		return nil
	}
	return f.updateProduct(ctx, product)
}

func (f *fakeRepoDB) DeactivateProduct(ctx context.Context, id int64, now time.Time) error {
	if f.deactivateProduct == nil {
		return nil
	}
	return f.deactivateProduct(ctx, id, now)
}

func (f *fakeRepoDB) CountDashboard(ctx context.Context) (*entity.DashboardCounts, error) {
	if f.countDashboard == nil {
		return &entity.DashboardCounts{}, nil
	}
	return f.countDashboard(ctx)
}

// fakeStore records stored keys and can fail on the Nth put.
type fakeStore struct {
	put     []string
	deleted []string
	failPut int
}

func (f *fakeStore) Put(_ context.Context, _, key string, _ io.Reader, _ storage.PutOptions) (storage.ObjectInfo, error) {
	if f.failPut > 0 && len(f.put)+1 == f.failPut {
		return storage.ObjectInfo{}, io.ErrUnexpectedEOF
	}
	f.put = append(f.put, key)
	return storage.ObjectInfo{Key: key}, nil
}

func (f *fakeStore) Delete(_ context.Context, _, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStore) PresignGet(_ context.Context, _, key string, _ time.Duration) (string, error) {
	return "https://signed.example.com/" + key, nil
}

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type seqStringID struct{ next int }

func (s *seqStringID) Generate() string {
	s.next++
	return "tok" + string(rune('0'+s.next))
}

type fixture struct {
	uc     *Usecase
	repoDB *fakeRepoDB
	store  *fakeStore
}

const testConfigYAML = `
modules:
  catalog:
    media:
      bucket: test-media
      public_base_url: "http://cdn.example.com/test-media"
      presign_ttl_hours: 1
`

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	require.NoError(t, err)

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	fx := &fixture{
		repoDB: &fakeRepoDB{},
		store:  &fakeStore{},
	}

	fx.uc = New(Dependency{
		RepoDB:     fx.repoDB,
		Media:      fx.store,
		Validator:  v10,
		Config:     cfg,
		UID:        &seqNumberID{},
		Token:      &seqStringID{},
		Clock:      clock.NewFixed(testNow),
		Instrument: instrument.NewNoop(),
	})

	return fx
}

func staffContext() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: 99, IsStaff: true})
}

func userContext() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: 7})
}

func requireCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, code, gerr.Code())
}
