package db

import (
	"context"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

func (s *DB) GetBrandList(ctx context.Context) (_ []entity.Brand, err error) {
	ctx, span := s.startSpan(ctx, "GetBrandList")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT id, name, COALESCE(icon_url, ''), is_active
		FROM catalog_brands
		WHERE NOT is_deleted
		ORDER BY name`)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var brands []entity.Brand
	for rows.Next() {
		var brand entity.Brand
		if err = rows.Scan(&brand.ID, &brand.Name, &brand.IconURL, &brand.IsActive); err != nil {
			return nil, s.mapError(err)
		}
		brands = append(brands, brand)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return brands, nil
}

func (s *DB) GetBrandByID(ctx context.Context, id int64) (_ *entity.Brand, err error) {
	ctx, span := s.startSpan(ctx, "GetBrandByID")
	defer func() { s.endSpan(span, err) }()

	var brand entity.Brand
	err = s.conn.QueryRow(ctx, `
		SELECT id, name, COALESCE(icon_url, ''), is_active
		FROM catalog_brands
		WHERE id = $1 AND NOT is_deleted`,
		id,
	).Scan(&brand.ID, &brand.Name, &brand.IconURL, &brand.IsActive)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &brand, nil
}

func (s *DB) CreateBrand(ctx context.Context, brand entity.Brand) (err error) {
	ctx, span := s.startSpan(ctx, "CreateBrand")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO catalog_brands (id, name, icon_url, is_active, is_deleted)
		VALUES ($1, $2, NULLIF($3, ''), $4, FALSE)`,
		brand.ID, brand.Name, brand.IconURL, brand.IsActive)
	return s.mapError(err)
}

func (s *DB) UpdateBrand(ctx context.Context, brand entity.Brand) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateBrand")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE catalog_brands
		SET name = $2, icon_url = NULLIF($3, ''), is_active = $4
		WHERE id = $1 AND NOT is_deleted`,
		brand.ID, brand.Name, brand.IconURL, brand.IsActive)
	return s.mapError(err)
}

func (s *DB) SoftDeleteBrand(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "SoftDeleteBrand")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE catalog_brands
		SET is_deleted = TRUE, is_active = FALSE
		WHERE id = $1 AND NOT is_deleted`,
		id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}
	return nil
}
