// Package inbound exposes the catalog module over HTTP.
package inbound

import (
	"context"

	"github.com/smashstrix/smashstrix/internal/catalog/usecase"
	"github.com/smashstrix/smashstrix/internal/pkg/router"
)

type uc interface {
	ProductList(ctx context.Context, in usecase.ProductListInput) (*usecase.ProductListOutput, error)
	ProductDetail(ctx context.Context, in usecase.ProductDetailInput) (*usecase.ProductDetailOutput, error)
	CategoryList(ctx context.Context) (*usecase.CategoryListOutput, error)

	CategoryCreate(ctx context.Context, in usecase.CategoryCreateInput) (*usecase.CategoryCreateOutput, error)
	CategoryUpdate(ctx context.Context, in usecase.CategoryUpdateInput) error
	CategoryDelete(ctx context.Context, in usecase.CategoryDeleteInput) error

	BrandList(ctx context.Context) (*usecase.BrandListOutput, error)
	BrandCreate(ctx context.Context, in usecase.BrandCreateInput) (*usecase.BrandCreateOutput, error)
	BrandUpdate(ctx context.Context, in usecase.BrandUpdateInput) (*usecase.BrandUpdateOutput, error)
	BrandDelete(ctx context.Context, in usecase.BrandDeleteInput) error

	ProductCreate(ctx context.Context, in usecase.ProductCreateInput) (*usecase.ProductCreateOutput, error)
	ProductUpdate(ctx context.Context, in usecase.ProductUpdateInput) error
	ProductDelete(ctx context.Context, in usecase.ProductDeleteInput) error

	Dashboard(ctx context.Context) (*usecase.DashboardOutput, error)
}

// RegisterHTTPEndpoint mounts the catalog routes.
func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Public storefront
	r.GET("/api/v1/catalog/products", end.ProductList)
	r.GET("/api/v1/catalog/products/:id", end.ProductDetail)
	r.GET("/api/v1/catalog/categories", end.CategoryList)

	// Staff management (need authentication & authorization)
	r.GET("/api/v1/catalog/dashboard", end.Dashboard, r.Authorize("catalog", "read"))

	r.POST("/api/v1/catalog/categories", end.CategoryCreate, r.Authorize("catalog", "create"))
	r.PUT("/api/v1/catalog/categories/:id", end.CategoryUpdate, r.Authorize("catalog", "update"))
	r.DELETE("/api/v1/catalog/categories/:id", end.CategoryDelete, r.Authorize("catalog", "delete"))

	r.GET("/api/v1/catalog/brands", end.BrandList, r.Authorize("catalog", "read"))
	r.POST("/api/v1/catalog/brands", end.BrandCreate, r.Authorize("catalog", "create"))
	r.PUT("/api/v1/catalog/brands/:id", end.BrandUpdate, r.Authorize("catalog", "update"))
	r.DELETE("/api/v1/catalog/brands/:id", end.BrandDelete, r.Authorize("catalog", "delete"))

	r.POST("/api/v1/catalog/products", end.ProductCreate, r.Authorize("catalog", "create"))
	r.PUT("/api/v1/catalog/products/:id", end.ProductUpdate, r.Authorize("catalog", "update"))
	r.DELETE("/api/v1/catalog/products/:id", end.ProductDelete, r.Authorize("catalog", "delete"))
}

// PublicRoutes lists the endpoints reachable without a token.
func PublicRoutes() map[string][]string {
	return map[string][]string{
		"GET": {
			"/api/v1/catalog/products",
			"/api/v1/catalog/products/:id",
			"/api/v1/catalog/categories",
		},
	}
}
