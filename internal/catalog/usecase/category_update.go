package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

type CategoryUpdateInput struct {
	CategoryID  int64  `validate:"required,min=1"`
	Name        string `validate:"required,max=100"`
	Description string `validate:"omitempty,max=500"`
	IsActive    bool
}

// CategoryUpdate edits a category's name, description, and visibility.
func (s *Usecase) CategoryUpdate(ctx context.Context, in CategoryUpdateInput) error {
	ctx, span := s.startSpan(ctx, "CategoryUpdate")
	defer span.End()

	if _, err := s.requireStaff(ctx); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetCategoryByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("category not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to get category", "category_id", in.CategoryID, "error", err)
		return goerror.NewServer(err)
	}

	err := s.repoDB.UpdateCategory(ctx, entity.Category{
		ID:          in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		IsActive:    in.IsActive,
	})
	if err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return goerror.NewBusiness("a category with that name already exists", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to update category", "category_id", in.CategoryID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
