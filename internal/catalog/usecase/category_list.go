package usecase

import (
	"context"
	"log/slog"

	"github.com/smashstrix/smashstrix/internal/catalog/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/jwt"
)

type CategoryListOutput struct {
	Categories []entity.Category
}

// CategoryList returns browsable categories. Staff callers also see
// inactive ones so they can manage them.
func (s *Usecase) CategoryList(ctx context.Context) (*CategoryListOutput, error) {
	ctx, span := s.startSpan(ctx, "CategoryList")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	includeInactive := clm != nil && clm.IsStaff

	categories, err := s.repoDB.GetCategoryList(ctx, includeInactive)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list categories", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CategoryListOutput{Categories: categories}, nil
}
