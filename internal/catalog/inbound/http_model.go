package inbound

import "time"

type ProductItem struct {
	ID           int64   `json:"id,string"`
	Name         string  `json:"name"`
	CategoryID   int64   `json:"category_id,string"`
	CategoryName string  `json:"category_name"`
	Price        string  `json:"price"`
	StockCount   int64   `json:"stock_count"`
	Rating       float64 `json:"rating"`
	ImageURL     string  `json:"image_url,omitempty"`
}

type ProductListResponse struct {
	Products []ProductItem  `json:"products"`
	meta     map[string]any `json:"-"`
}

func (r ProductListResponse) Meta() map[string]any { return r.meta }

type ProductImageItem struct {
	ID       int64  `json:"id,string"`
	ImageURL string `json:"image_url"`
	AltText  string `json:"alt_text,omitempty"`
}

type ProductDetailResponse struct {
	ID           int64              `json:"id,string"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	CategoryID   int64              `json:"category_id,string"`
	CategoryName string             `json:"category_name"`
	Price        string             `json:"price"`
	StockCount   int64              `json:"stock_count"`
	Rating       float64            `json:"rating"`
	CreatedAt    time.Time          `json:"created_at"`
	Images       []ProductImageItem `json:"images"`
}

type CategoryItem struct {
	ID          int64  `json:"id,string"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

type CategoryListResponse struct {
	Categories []CategoryItem `json:"categories"`
}

type CategoryCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CategoryCreateResponse struct {
	CategoryID int64 `json:"category_id,string"`
}

func (CategoryCreateResponse) Message() string {
	return "Category created."
}

type CategoryUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

type BrandItem struct {
	ID       int64  `json:"id,string"`
	Name     string `json:"name"`
	IconURL  string `json:"icon_url,omitempty"`
	IsActive bool   `json:"is_active"`
}

type BrandListResponse struct {
	Brands []BrandItem `json:"brands"`
}

type BrandCreateResponse struct {
	BrandID int64  `json:"brand_id,string"`
	IconURL string `json:"icon_url,omitempty"`
}

func (BrandCreateResponse) Message() string {
	return "Brand created."
}

type BrandUpdateResponse struct {
	IconURL string `json:"icon_url,omitempty"`
}

type ProductCreateResponse struct {
	ProductID int64    `json:"product_id,string"`
	ImageURLs []string `json:"image_urls"`
}

func (ProductCreateResponse) Message() string {
	return "Product created."
}

type ProductUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CategoryID  int64  `json:"category_id,string"`
	Price       string `json:"price"`
	StockCount  int64  `json:"stock_count"`
	IsActive    bool   `json:"is_active"`
}

type DashboardResponse struct {
	Users          int64 `json:"users"`
	Categories     int64 `json:"categories"`
	ActiveProducts int64 `json:"active_products"`
}
