// Package entity holds the catalog domain types.
package entity

import "time"

// Category groups products for browsing. Soft-deleted categories stay in the
// table but never leave the repository.
type Category struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

// Brand identifies a product maker. The icon lives in object storage and
// IconURL is the resolved download location.
type Brand struct {
	ID       int64
	Name     string
	IconURL  string
	IsActive bool
}

// Product is a sellable item. Price is a decimal string so no precision is
// lost between the database and the API.
type Product struct {
	ID           int64
	Name         string
	Description  string
	CategoryID   int64
	CategoryName string
	Price        string
	StockCount   int64
	Rating       float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Images       []ProductImage
}

// ProductImage is one stored image of a product.
type ProductImage struct {
	ID        int64
	ProductID int64
	ImageURL  string
	AltText   string
}

// ProductListFilter narrows and pages the public product listing.
type ProductListFilter struct {
	Search     string
	CategoryID int64
	PriceMin   string
	PriceMax   string
	InStock    *bool
	Sort       string
	Page       int64
	Size       int64
}

// DashboardCounts are the headline numbers on the staff dashboard.
type DashboardCounts struct {
	Users          int64
	Categories     int64
	ActiveProducts int64
}
