package db

import (
	"context"
	"strconv"
	"time"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

func productOrderBy(sort string) string {
	switch sort {
	case "oldest":
		return "p.created_at ASC"
	case "price_asc":
		return "p.price ASC"
	case "price_desc":
		return "p.price DESC"
	case "rating":
		return "p.rating DESC"
	default:
		return "p.created_at DESC"
	}
}

// productListConds renders the optional filters as SQL conditions, appending
// their values to args.
func productListConds(filter entity.ProductListFilter, args *[]any) string {
	conds := ""

	if filter.Search != "" {
		*args = append(*args, "%"+filter.Search+"%")
		conds += ` AND p.name ILIKE $` + strconv.Itoa(len(*args))
	}
	if filter.CategoryID > 0 {
		*args = append(*args, filter.CategoryID)
		conds += ` AND p.category_id = $` + strconv.Itoa(len(*args))
	}
	if filter.PriceMin != "" {
		*args = append(*args, filter.PriceMin)
		conds += ` AND p.price >= $` + strconv.Itoa(len(*args)) + `::numeric`
	}
	if filter.PriceMax != "" {
		*args = append(*args, filter.PriceMax)
		conds += ` AND p.price <= $` + strconv.Itoa(len(*args)) + `::numeric`
	}
	if filter.InStock != nil {
		if *filter.InStock {
			conds += ` AND p.stock_count > 0`
		} else {
			conds += ` AND p.stock_count = 0`
		}
	}

	return conds
}

func (s *DB) GetProductList(ctx context.Context, filter entity.ProductListFilter) (_ []entity.Product, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetProductList")
	defer func() { s.endSpan(span, err) }()

	base := `
		FROM catalog_products p
		JOIN catalog_categories c ON c.id = p.category_id AND NOT c.is_deleted AND c.is_active
		WHERE p.is_active`

	args := []any{}
	conds := productListConds(filter, &args)

	var total int64
	if err = s.conn.QueryRow(ctx, `SELECT COUNT(*)`+base+conds, args...).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	args = append(args, filter.Size, (filter.Page-1)*filter.Size)

	// The lateral join picks one cover image per row without a second query.
	query := `
		SELECT p.id, p.name, p.description, p.category_id, c.name,
			p.price::text, p.stock_count, p.rating, p.created_at, p.updated_at,
			COALESCE(img.img_url, '')
		FROM catalog_products p
		JOIN catalog_categories c ON c.id = p.category_id AND NOT c.is_deleted AND c.is_active
		LEFT JOIN LATERAL (
			SELECT i.img_url FROM catalog_product_images i
			WHERE i.product_id = p.id
			ORDER BY i.id
			LIMIT 1
		) img ON TRUE
		WHERE p.is_active` + conds + `
		ORDER BY ` + productOrderBy(filter.Sort) + `
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		var cover string
		if err = rows.Scan(&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.CategoryName,
			&p.Price, &p.StockCount, &p.Rating, &p.CreatedAt, &p.UpdatedAt, &cover); err != nil {
			return nil, 0, s.mapError(err)
		}
		p.IsActive = true
		if cover != "" {
			p.Images = []entity.ProductImage{{ProductID: p.ID, ImageURL: cover}}
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return products, total, nil
}

func (s *DB) GetProductByID(ctx context.Context, id int64, activeOnly bool) (_ *entity.Product, err error) {
	ctx, span := s.startSpan(ctx, "GetProductByID")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT p.id, p.name, p.description, p.category_id, c.name,
			p.price::text, p.stock_count, p.rating, p.is_active, p.created_at, p.updated_at
		FROM catalog_products p
		JOIN catalog_categories c ON c.id = p.category_id
		WHERE p.id = $1`
	if activeOnly {
		query += ` AND p.is_active AND c.is_active AND NOT c.is_deleted`
	}

	var p entity.Product
	err = s.conn.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.CategoryName,
		&p.Price, &p.StockCount, &p.Rating, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	rows, err := s.conn.Query(ctx, `
		SELECT id, product_id, img_url, COALESCE(alt_text, '')
		FROM catalog_product_images
		WHERE product_id = $1
		ORDER BY id`,
		id)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var img entity.ProductImage
		if err = rows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.AltText); err != nil {
			return nil, s.mapError(err)
		}
		p.Images = append(p.Images, img)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return &p, nil
}

func (s *DB) CreateProduct(ctx context.Context, product entity.Product, images []entity.ProductImage) (err error) {
	ctx, span := s.startSpan(ctx, "CreateProduct")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return s.mapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO catalog_products
			(id, name, description, category_id, price, stock_count, rating, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, 0, $7, $8, $9)`,
		product.ID, product.Name, product.Description, product.CategoryID, product.Price,
		product.StockCount, product.IsActive, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return s.mapError(err)
	}

	for _, img := range images {
		_, err = tx.Exec(ctx, `
			INSERT INTO catalog_product_images (id, product_id, img_url, alt_text)
			VALUES ($1, $2, $3, NULLIF($4, ''))`,
			img.ID, img.ProductID, img.ImageURL, img.AltText)
		if err != nil {
			return s.mapError(err)
		}
	}

	return s.mapError(tx.Commit(ctx))
}

func (s *DB) UpdateProduct(ctx context.Context, product entity.Product) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateProduct")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE catalog_products
		SET name = $2, description = $3, category_id = $4, price = $5::numeric,
			stock_count = $6, is_active = $7, updated_at = $8
		WHERE id = $1`,
		product.ID, product.Name, product.Description, product.CategoryID,
		product.Price, product.StockCount, product.IsActive, product.UpdatedAt)
	return s.mapError(err)
}

func (s *DB) DeactivateProduct(ctx context.Context, id int64, now time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "DeactivateProduct")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE catalog_products
		SET is_active = FALSE, updated_at = $2
		WHERE id = $1 AND is_active`,
		id, now)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}
	return nil
}

func (s *DB) CountDashboard(ctx context.Context) (_ *entity.DashboardCounts, err error) {
	ctx, span := s.startSpan(ctx, "CountDashboard")
	defer func() { s.endSpan(span, err) }()

	var counts entity.DashboardCounts
	err = s.conn.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM account_users WHERE NOT is_superuser),
			(SELECT COUNT(*) FROM catalog_categories WHERE NOT is_deleted),
			(SELECT COUNT(*) FROM catalog_products WHERE is_active)`,
	).Scan(&counts.Users, &counts.Categories, &counts.ActiveProducts)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &counts, nil
}
