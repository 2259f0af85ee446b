package db

import (
	"context"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

func (s *DB) GetCategoryList(ctx context.Context, includeInactive bool) (_ []entity.Category, err error) {
	ctx, span := s.startSpan(ctx, "GetCategoryList")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, name, description, is_active, created_at
		FROM catalog_categories
		WHERE NOT is_deleted`
	if !includeInactive {
		query += ` AND is_active`
	}
	query += ` ORDER BY name`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var categories []entity.Category
	for rows.Next() {
		var cat entity.Category
		if err = rows.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.IsActive, &cat.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		categories = append(categories, cat)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return categories, nil
}

func (s *DB) GetCategoryByID(ctx context.Context, id int64) (_ *entity.Category, err error) {
	ctx, span := s.startSpan(ctx, "GetCategoryByID")
	defer func() { s.endSpan(span, err) }()

	var cat entity.Category
	err = s.conn.QueryRow(ctx, `
		SELECT id, name, description, is_active, created_at
		FROM catalog_categories
		WHERE id = $1 AND NOT is_deleted`,
		id,
	).Scan(&cat.ID, &cat.Name, &cat.Description, &cat.IsActive, &cat.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &cat, nil
}

func (s *DB) CreateCategory(ctx context.Context, cat entity.Category) (err error) {
	ctx, span := s.startSpan(ctx, "CreateCategory")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO catalog_categories (id, name, description, is_active, is_deleted, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)`,
		cat.ID, cat.Name, cat.Description, cat.IsActive, cat.CreatedAt)
	return s.mapError(err)
}

func (s *DB) UpdateCategory(ctx context.Context, cat entity.Category) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateCategory")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE catalog_categories
		SET name = $2, description = $3, is_active = $4
		WHERE id = $1 AND NOT is_deleted`,
		cat.ID, cat.Name, cat.Description, cat.IsActive)
	return s.mapError(err)
}

func (s *DB) SoftDeleteCategory(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "SoftDeleteCategory")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE catalog_categories
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
