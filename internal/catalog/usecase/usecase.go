package usecase

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/config"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"github.com/smashstrix/smashstrix/internal/pkg/jwt"
	"github.com/smashstrix/smashstrix/internal/pkg/storage"
	"github.com/smashstrix/smashstrix/internal/pkg/uid"
	"github.com/smashstrix/smashstrix/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetCategoryList(ctx context.Context, includeInactive bool) ([]entity.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*entity.Category, error)
	CreateCategory(ctx context.Context, cat entity.Category) error
	UpdateCategory(ctx context.Context, cat entity.Category) error
	SoftDeleteCategory(ctx context.Context, id int64) error

	GetBrandList(ctx context.Context) ([]entity.Brand, error)
	GetBrandByID(ctx context.Context, id int64) (*entity.Brand, error)
	CreateBrand(ctx context.Context, brand entity.Brand) error
	UpdateBrand(ctx context.Context, brand entity.Brand) error
	SoftDeleteBrand(ctx context.Context, id int64) error

	GetProductList(ctx context.Context, filter entity.ProductListFilter) ([]entity.Product, int64, error)
	GetProductByID(ctx context.Context, id int64, activeOnly bool) (*entity.Product, error)
	CreateProduct(ctx context.Context, product entity.Product, images []entity.ProductImage) error
	UpdateProduct(ctx context.Context, product entity.Product) error
	DeactivateProduct(ctx context.Context, id int64, now time.Time) error

	CountDashboard(ctx context.Context) (*entity.DashboardCounts, error)
}

type objectStore interface {
	Put(ctx context.Context, bucket, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error)
	Delete(ctx context.Context, bucket, key string) error
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

type clocker interface {
	Now() time.Time
}

// Usecase implements the catalog operations.
type Usecase struct {
	repoDB    repoDB
	media     objectStore
	validator validator.Validator
	cfg       config.Config
	uid       uid.NumberID
	token     uid.StringID
	clock     clocker
	ins       instrument.Instrumentation
}

// Dependency lists what Usecase needs; all fields are required.
type Dependency struct {
	RepoDB     repoDB
	Media      objectStore
	Validator  validator.Validator
	Config     config.Config
	UID        uid.NumberID
	Token      uid.StringID
	Clock      clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		media:     dep.Media,
		validator: dep.Validator,
		cfg:       dep.Config,
		uid:       dep.UID,
		token:     dep.Token,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("catalog.usecase").Start(ctx, name)
}

func (s *Usecase) requireStaff(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}
	if !clm.IsStaff {
		return nil, goerror.NewBusiness("staff account required", goerror.CodeForbidden)
	}
	return clm, nil
}

func (s *Usecase) mediaBucket() string {
	bucket := s.cfg.GetString("modules.catalog.media.bucket")
	if bucket == "" {
		bucket = "smashstrix-media"
	}
	return bucket
}

// mediaURL resolves the download location for a stored object. A configured
// public base URL wins; otherwise the store signs a time-limited URL.
func (s *Usecase) mediaURL(ctx context.Context, key string) (string, error) {
	if base := s.cfg.GetString("modules.catalog.media.public_base_url"); base != "" {
		return strings.TrimSuffix(base, "/") + "/" + key, nil
	}

	ttl := s.cfg.GetHour("modules.catalog.media.presign_ttl_hours")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return s.media.PresignGet(ctx, s.mediaBucket(), key, ttl)
}

// mediaKeyFromURL recovers the object key from a stored public URL so a
// replaced object can be removed. Signed URLs are not reversible.
func (s *Usecase) mediaKeyFromURL(url string) (string, bool) {
	base := s.cfg.GetString("modules.catalog.media.public_base_url")
	if base == "" {
		return "", false
	}

	key := strings.TrimPrefix(url, strings.TrimSuffix(base, "/")+"/")
	if key == url || key == "" {
		return "", false
	}
	return key, true
}
