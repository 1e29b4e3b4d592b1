package analytics

import (
	"context"
	"github.com/korima-app/korima-backend/internal/domain"
	"sync"
	"time"
)

var _ analyticsRepo = &analyticsRepoMock{}

type analyticsRepoMock struct {
	TotalsFunc          func(ctx context.Context) (domain.AnalyticsTotals, error)
	ByCategoryFunc      func(ctx context.Context) ([]domain.CategoryCount, error)
	LevelsFunc          func(ctx context.Context) ([]domain.LevelCount, error)
	TopContributorsFunc func(ctx context.Context, limit int) ([]domain.TopContributor, error)
	MonthlyFunc         func(ctx context.Context, since time.Time) ([]domain.MonthlyCount, error)

	calls struct {
		Totals []struct {
			Ctx context.Context
		}
		ByCategory []struct {
			Ctx context.Context
		}
		Levels []struct {
			Ctx context.Context
		}
		TopContributors []struct {
			Ctx   context.Context
			Limit int
		}
		Monthly []struct {
			Ctx   context.Context
			Since time.Time
		}
	}
	lockTotals          sync.RWMutex
	lockByCategory      sync.RWMutex
	lockLevels          sync.RWMutex
	lockTopContributors sync.RWMutex
	lockMonthly         sync.RWMutex
}

func (mock *analyticsRepoMock) Totals(ctx context.Context) (domain.AnalyticsTotals, error) {
	if mock.TotalsFunc == nil {
		panic("analyticsRepoMock.TotalsFunc: method is nil but analyticsRepo.Totals was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockTotals.Lock()
	mock.calls.Totals = append(mock.calls.Totals, callInfo)
	mock.lockTotals.Unlock()
	return mock.TotalsFunc(ctx)
}

func (mock *analyticsRepoMock) TotalsCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockTotals.RLock()
	calls = mock.calls.Totals
	mock.lockTotals.RUnlock()
	return calls
}

func (mock *analyticsRepoMock) ByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	if mock.ByCategoryFunc == nil {
		panic("analyticsRepoMock.ByCategoryFunc: method is nil but analyticsRepo.ByCategory was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockByCategory.Lock()
	mock.calls.ByCategory = append(mock.calls.ByCategory, callInfo)
	mock.lockByCategory.Unlock()
	return mock.ByCategoryFunc(ctx)
}

func (mock *analyticsRepoMock) ByCategoryCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockByCategory.RLock()
	calls = mock.calls.ByCategory
	mock.lockByCategory.RUnlock()
	return calls
}

func (mock *analyticsRepoMock) Levels(ctx context.Context) ([]domain.LevelCount, error) {
	if mock.LevelsFunc == nil {
		panic("analyticsRepoMock.LevelsFunc: method is nil but analyticsRepo.Levels was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockLevels.Lock()
	mock.calls.Levels = append(mock.calls.Levels, callInfo)
	mock.lockLevels.Unlock()
	return mock.LevelsFunc(ctx)
}

func (mock *analyticsRepoMock) LevelsCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockLevels.RLock()
	calls = mock.calls.Levels
	mock.lockLevels.RUnlock()
	return calls
}

func (mock *analyticsRepoMock) TopContributors(ctx context.Context, limit int) ([]domain.TopContributor, error) {
	if mock.TopContributorsFunc == nil {
		panic("analyticsRepoMock.TopContributorsFunc: method is nil but analyticsRepo.TopContributors was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{
		Ctx:   ctx,
		Limit: limit,
	}
	mock.lockTopContributors.Lock()
	mock.calls.TopContributors = append(mock.calls.TopContributors, callInfo)
	mock.lockTopContributors.Unlock()
	return mock.TopContributorsFunc(ctx, limit)
}

func (mock *analyticsRepoMock) TopContributorsCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	var calls []struct {
		Ctx   context.Context
		Limit int
	}
	mock.lockTopContributors.RLock()
	calls = mock.calls.TopContributors
	mock.lockTopContributors.RUnlock()
	return calls
}

func (mock *analyticsRepoMock) Monthly(ctx context.Context, since time.Time) ([]domain.MonthlyCount, error) {
	if mock.MonthlyFunc == nil {
		panic("analyticsRepoMock.MonthlyFunc: method is nil but analyticsRepo.Monthly was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Since time.Time
	}{
		Ctx:   ctx,
		Since: since,
	}
	mock.lockMonthly.Lock()
	mock.calls.Monthly = append(mock.calls.Monthly, callInfo)
	mock.lockMonthly.Unlock()
	return mock.MonthlyFunc(ctx, since)
}

func (mock *analyticsRepoMock) MonthlyCalls() []struct {
	Ctx   context.Context
	Since time.Time
} {
	var calls []struct {
		Ctx   context.Context
		Since time.Time
	}
	mock.lockMonthly.RLock()
	calls = mock.calls.Monthly
	mock.lockMonthly.RUnlock()
	return calls
}
