package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

type CategoryCreateInput struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"omitempty,max=500"`
}

type CategoryCreateOutput struct {
	CategoryID int64
}

// CategoryCreate adds a browsable category.
func (s *Usecase) CategoryCreate(ctx context.Context, in CategoryCreateInput) (*CategoryCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "CategoryCreate")
	defer span.End()

	if _, err := s.requireStaff(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	cat := entity.Category{
		ID:          s.uid.Generate(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		IsActive:    true,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repoDB.CreateCategory(ctx, cat); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("a category with that name already exists", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to create category", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CategoryCreateOutput{CategoryID: cat.ID}, nil
}
