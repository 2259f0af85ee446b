package inbound

import (
	"mime/multipart"
	"strconv"

	"github.com/samber/lo"
	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/catalog/usecase"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/router"
)

// HTTPEndpoint holds the HTTP handlers for catalog workflows.
type HTTPEndpoint struct {
	uc uc
}

// openUpload turns a multipart file header into a usecase upload. The caller
// owns the returned closer.
func openUpload(fh *multipart.FileHeader) (usecase.Upload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return usecase.Upload{}, nil, goerror.NewInvalidFormat("could not read uploaded file")
	}

	return usecase.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

// ProductList serves the public storefront listing.
func (h *HTTPEndpoint) ProductList(r *router.Request) (any, error) {
	page, err := r.QueryInt64("page", 1)
	if err != nil {
		return nil, err
	}
	size, err := r.QueryInt64("size", 20)
	if err != nil {
		return nil, err
	}
	categoryID, err := r.QueryInt64("category_id", 0)
	if err != nil {
		return nil, err
	}
	inStock, err := r.QueryBool("in_stock")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ProductList(r.Context(), usecase.ProductListInput{
		Search:     r.Query("search"),
		CategoryID: categoryID,
		PriceMin:   r.Query("price_min"),
		PriceMax:   r.Query("price_max"),
		InStock:    inStock,
		Sort:       r.Query("sort"),
		Page:       page,
		Size:       size,
	})
	if err != nil {
		return nil, err
	}

	return ProductListResponse{
		Products: lo.Map(resp.Products, func(p usecase.ProductListItem, _ int) ProductItem {
			return ProductItem{
				ID:           p.ID,
				Name:         p.Name,
				CategoryID:   p.CategoryID,
				CategoryName: p.CategoryName,
				Price:        p.Price,
				StockCount:   p.StockCount,
				Rating:       p.Rating,
				ImageURL:     p.ImageURL,
			}
		}),
		meta: map[string]any{
			"total": resp.Total,
			"page":  resp.Page,
			"size":  resp.Size,
		},
	}, nil
}

// ProductDetail serves one product with its gallery.
func (h *HTTPEndpoint) ProductDetail(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ProductDetail(r.Context(), usecase.ProductDetailInput{ProductID: id})
	if err != nil {
		return nil, err
	}

	p := resp.Product
	return ProductDetailResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Price:        p.Price,
		StockCount:   p.StockCount,
		Rating:       p.Rating,
		CreatedAt:    p.CreatedAt,
		Images: lo.Map(p.Images, func(img entity.ProductImage, _ int) ProductImageItem {
			return ProductImageItem{ID: img.ID, ImageURL: img.ImageURL, AltText: img.AltText}
		}),
	}, nil
}

// CategoryList serves the browsable categories.
func (h *HTTPEndpoint) CategoryList(r *router.Request) (any, error) {
	resp, err := h.uc.CategoryList(r.Context())
	if err != nil {
		return nil, err
	}

	return CategoryListResponse{
		Categories: lo.Map(resp.Categories, func(c entity.Category, _ int) CategoryItem {
			return CategoryItem{ID: c.ID, Name: c.Name, Description: c.Description, IsActive: c.IsActive}
		}),
	}, nil
}

// CategoryCreate adds a category.
func (h *HTTPEndpoint) CategoryCreate(r *router.Request) (any, error) {
	var req CategoryCreateRequest
	if err := r.Bind(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CategoryCreate(r.Context(), usecase.CategoryCreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	return CategoryCreateResponse{CategoryID: resp.CategoryID}, nil
}

// CategoryUpdate edits a category.
func (h *HTTPEndpoint) CategoryUpdate(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req CategoryUpdateRequest
	if err := r.Bind(&req); err != nil {
		return nil, err
	}

	if err := h.uc.CategoryUpdate(r.Context(), usecase.CategoryUpdateInput{
		CategoryID:  id,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

// CategoryDelete soft-deletes a category.
func (h *HTTPEndpoint) CategoryDelete(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.CategoryDelete(r.Context(), usecase.CategoryDeleteInput{CategoryID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}

// BrandList serves the admin brand listing.
func (h *HTTPEndpoint) BrandList(r *router.Request) (any, error) {
	resp, err := h.uc.BrandList(r.Context())
	if err != nil {
		return nil, err
	}

	return BrandListResponse{
		Brands: lo.Map(resp.Brands, func(b entity.Brand, _ int) BrandItem {
			return BrandItem{ID: b.ID, Name: b.Name, IconURL: b.IconURL, IsActive: b.IsActive}
		}),
	}, nil
}

// BrandCreate adds a brand from a multipart form with an optional icon file.
func (h *HTTPEndpoint) BrandCreate(r *router.Request) (any, error) {
	fh, err := r.FormFile("icon")
	if err != nil {
		return nil, err
	}

	in := usecase.BrandCreateInput{Name: r.FormValue("name")}
	if fh != nil {
		up, closeFn, err := openUpload(fh)
		if err != nil {
			return nil, err
		}
		defer closeFn()
		in.Icon = &up
	}

	resp, err := h.uc.BrandCreate(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return BrandCreateResponse{BrandID: resp.BrandID, IconURL: resp.IconURL}, nil
}

// BrandUpdate edits a brand, replacing the icon when a new file arrives.
func (h *HTTPEndpoint) BrandUpdate(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	fh, err := r.FormFile("icon")
	if err != nil {
		return nil, err
	}

	isActive, err := strconv.ParseBool(r.FormValue("is_active"))
	if err != nil {
		return nil, goerror.NewInvalidFormat("form field is_active must be a boolean")
	}

	in := usecase.BrandUpdateInput{
		BrandID:  id,
		Name:     r.FormValue("name"),
		IsActive: isActive,
	}
	if fh != nil {
		up, closeFn, err := openUpload(fh)
		if err != nil {
			return nil, err
		}
		defer closeFn()
		in.Icon = &up
	}

	resp, err := h.uc.BrandUpdate(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return BrandUpdateResponse{IconURL: resp.IconURL}, nil
}

// BrandDelete soft-deletes a brand.
func (h *HTTPEndpoint) BrandDelete(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.BrandDelete(r.Context(), usecase.BrandDeleteInput{BrandID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}

// ProductCreate adds a product from a multipart form with its image files.
func (h *HTTPEndpoint) ProductCreate(r *router.Request) (any, error) {
	headers, err := r.FormFiles("images")
	if err != nil {
		return nil, err
	}

	categoryID, err := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	if err != nil {
		return nil, goerror.NewInvalidFormat("form field category_id must be an integer")
	}

	var stockCount int64
	if raw := r.FormValue("stock_count"); raw != "" {
		stockCount, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, goerror.NewInvalidFormat("form field stock_count must be an integer")
		}
	}

	in := usecase.ProductCreateInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		CategoryID:  categoryID,
		Price:       r.FormValue("price"),
		StockCount:  stockCount,
	}

	for _, fh := range headers {
		up, closeFn, err := openUpload(fh)
		if err != nil {
			return nil, err
		}
		defer closeFn()
		in.Images = append(in.Images, up)
	}

	resp, err := h.uc.ProductCreate(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return ProductCreateResponse{ProductID: resp.ProductID, ImageURLs: resp.ImageURLs}, nil
}

// ProductUpdate edits a product's listing fields.
func (h *HTTPEndpoint) ProductUpdate(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req ProductUpdateRequest
	if err := r.Bind(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ProductUpdate(r.Context(), usecase.ProductUpdateInput{
		ProductID:   id,
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		StockCount:  req.StockCount,
		IsActive:    req.IsActive,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

// ProductDelete deactivates a product.
func (h *HTTPEndpoint) ProductDelete(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.ProductDelete(r.Context(), usecase.ProductDeleteInput{ProductID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}

// Dashboard serves the staff headline counts.
func (h *HTTPEndpoint) Dashboard(r *router.Request) (any, error) {
	resp, err := h.uc.Dashboard(r.Context())
	if err != nil {
		return nil, err
	}

	return DashboardResponse{
		Users:          resp.Users,
		Categories:     resp.Categories,
		ActiveProducts: resp.ActiveProducts,
	}, nil
}
