package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/korima-app/korima-backend/internal/domain"
)

// Stats returns the dashboard counters. "Today" is the current UTC day.
func (s *Service) Stats(ctx context.Context) (domain.AdminStats, error) {
	if err := requireStaff(ctx); err != nil {
		return domain.AdminStats{}, err
	}

	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	st, err := s.stats.AdminStats(ctx, startOfDay)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("admin.Stats: %w", err)
	}
	return st, nil
}
