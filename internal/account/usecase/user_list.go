package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/smashstrix/smashstrix/internal/account/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

type UserListInput struct {
	Search  string `validate:"omitempty,max=100"`
	Blocked *bool
	Page    int64 `validate:"omitempty,min=1"`
	Size    int64 `validate:"omitempty,min=1,max=100"`
}

type UserListItem struct {
	ID           int64
	FullName     string
	Email        string
	MobileNumber string
	IsActive     bool
	IsBlocked    bool
	IsStaff      bool
}

type UserListOutput struct {
	Users []UserListItem
	Total int64
	Page  int64
	Size  int64
}

// UserList returns a page of the admin user directory.
func (s *Usecase) UserList(ctx context.Context, in UserListInput) (*UserListOutput, error) {
	ctx, span := s.startSpan(ctx, "UserList")
	defer span.End()

	if _, err := s.requireStaff(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Page < 1 {
		in.Page = 1
	}
	if in.Size < 1 {
		in.Size = 20
	}

	users, total, err := s.repoDB.GetUserList(ctx, entity.UserListFilter{
		Search:  strings.TrimSpace(in.Search),
		Blocked: in.Blocked,
		Page:    in.Page,
		Size:    in.Size,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to list users", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserListOutput{
		Users: lo.Map(users, func(u entity.User, _ int) UserListItem {
			return UserListItem{
				ID:           u.ID,
				FullName:     u.FullName,
				Email:        u.Email,
				MobileNumber: u.MobileNumber,
				IsActive:     u.IsActive,
				IsBlocked:    u.IsBlocked,
				IsStaff:      u.IsStaff,
			}
		}),
		Total: total,
		Page:  in.Page,
		Size:  in.Size,
	}, nil
}
