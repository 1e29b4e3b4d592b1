package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/korima-app/korima-backend/internal/domain"
)

// Overview loads every aggregate and derives the rates. Staff only.
func (s *Service) Overview(ctx context.Context) (*domain.AnalyticsOverview, error) {
	if err := requireStaff(ctx); err != nil {
		return nil, err
	}

	now := s.now().UTC()

	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics.Overview: %w", err)
	}
	categories, err := s.repo.ByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics.Overview: %w", err)
	}
	levels, err := s.repo.Levels(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics.Overview: %w", err)
	}
	top, err := s.repo.TopContributors(ctx, topContributorsLimit)
	if err != nil {
		return nil, fmt.Errorf("analytics.Overview: %w", err)
	}
	monthly, err := s.repo.Monthly(ctx, trendStart(now))
	if err != nil {
		return nil, fmt.Errorf("analytics.Overview: %w", err)
	}

	return Build(now, totals, categories, levels, top, monthly), nil
}

// Build derives the overview rates from raw counters. Ratios with a zero
// denominator are reported as zero.
func Build(
	now time.Time,
	t domain.AnalyticsTotals,
	categories []domain.CategoryCount,
	levels []domain.LevelCount,
	top []domain.TopContributor,
	monthly []domain.MonthlyCount,
) *domain.AnalyticsOverview {
	return &domain.AnalyticsOverview{
		GeneratedAt:            now,
		Totals:                 t,
		ResolutionRate:         percent(t.Completed, t.Requests),
		AvgResponsesPerRequest: ratio(t.Responses, t.Requests),
		BestAnswerRate:         percent(t.BestAnswers, t.Responses),
		AvgCommentsPerRequest:  ratio(t.Comments, t.Requests),
		AvgPointsPerUser:       ratio(t.PointsInCirculation, t.Users),
		UrgentResolutionRate:   percent(t.UrgentResolved, t.Urgent),
		NormalResolutionRate:   percent(t.Completed-t.UrgentResolved, t.Requests-t.Urgent),
		Categories:             categories,
		Levels:                 levels,
		TopContributors:        top,
		Monthly:                monthly,
	}
}

// trendStart is the first day of the month trendMonths-1 months before now.
func trendStart(now time.Time) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -(trendMonths - 1), 0)
}

func ratio(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func percent(num, den int) float64 {
	return ratio(num, den) * 100
}
