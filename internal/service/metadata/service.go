package metadata

import (
	"context"
	"errors"
	"log/slog"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/internal/metrics"
	"github.com/korima-app/korima-backend/internal/provider"
)

type catalog interface {
	SearchByTitle(ctx context.Context, query string) ([]provider.Work, error)
	LookupDOI(ctx context.Context, doi string) (*provider.Work, error)
}

type openAccessChecker interface {
	CheckOpenAccess(ctx context.Context, doi string) (*provider.OpenAccess, error)
}

// Service wraps the bibliographic catalogs used to prefill request forms.
type Service struct {
	log        *slog.Logger
	catalog    catalog
	openAccess openAccessChecker
	metrics    *metrics.Metrics
}

// NewService creates a new metadata service.
func NewService(logger *slog.Logger, catalog catalog, openAccess openAccessChecker, m *metrics.Metrics) *Service {
	return &Service{
		log:        logger.With("service", "metadata"),
		catalog:    catalog,
		openAccess: openAccess,
		metrics:    m,
	}
}

// outcome labels a provider call for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return "timeout"
	default:
		return "error"
	}
}
