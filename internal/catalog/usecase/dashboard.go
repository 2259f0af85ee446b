package usecase

import (
	"context"
	"log/slog"

	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
)

type DashboardOutput struct {
	Users          int64
	Categories     int64
	ActiveProducts int64
}

// Dashboard returns the headline counts for the staff landing page.
func (s *Usecase) Dashboard(ctx context.Context) (*DashboardOutput, error) {
	ctx, span := s.startSpan(ctx, "Dashboard")
	defer span.End()

	if _, err := s.requireStaff(ctx); err != nil {
		return nil, err
	}

	counts, err := s.repoDB.CountDashboard(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count dashboard", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DashboardOutput{
		Users:          counts.Users,
		Categories:     counts.Categories,
		ActiveProducts: counts.ActiveProducts,
	}, nil
}
