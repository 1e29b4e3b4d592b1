// Package cleanup purges stored response files once their retention window
// has passed. The response rows themselves are kept.
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/internal/metrics"
)

const defaultBatchSize = 100

type responseRepo interface {
	ListExpiredFiles(ctx context.Context, now time.Time, limit int) ([]domain.ExpiredFile, error)
	ClearFile(ctx context.Context, id uuid.UUID) error
}

type blobStore interface {
	Delete(ctx context.Context, key string) error
}

// Service runs expired-file sweeps.
type Service struct {
	log       *slog.Logger
	responses responseRepo
	blobs     blobStore
	metrics   *metrics.Metrics
	batchSize int
	now       func() time.Time
}

// NewService creates a new cleanup service.
func NewService(logger *slog.Logger, responses responseRepo, blobs blobStore, m *metrics.Metrics) *Service {
	return &Service{
		log:       logger.With("service", "cleanup"),
		responses: responses,
		blobs:     blobs,
		metrics:   m,
		batchSize: defaultBatchSize,
		now:       time.Now,
	}
}

// SweepExpiredFiles deletes the blob of every response whose expiry has
// passed and clears its file reference. A failure on one row is recorded in
// the report and the sweep moves on; rows that failed are retried by the
// next run. Running it twice in a row is harmless.
func (s *Service) SweepExpiredFiles(ctx context.Context) (*domain.CleanupReport, error) {
	now := s.now().UTC()
	report := &domain.CleanupReport{Errors: []string{}}
	failed := make(map[uuid.UUID]struct{})

	for {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("cleanup.SweepExpiredFiles: %w", err)
		}

		// Rows that already failed in this run come back, so ask for more.
		limit := s.batchSize + len(failed)
		batch, err := s.responses.ListExpiredFiles(ctx, now, limit)
		if err != nil {
			return report, fmt.Errorf("cleanup.SweepExpiredFiles: %w", err)
		}

		progressed := false
		for _, f := range batch {
			if _, skip := failed[f.ResponseID]; skip {
				continue
			}
			progressed = true
			report.Total++

			if err := s.purge(ctx, f); err != nil {
				failed[f.ResponseID] = struct{}{}
				report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", f.ResponseID, err))
				s.log.WarnContext(ctx, "expired file not purged",
					slog.String("response_id", f.ResponseID.String()),
					slog.String("error", err.Error()))
				continue
			}
			report.Deleted++
		}

		if !progressed || len(batch) < limit {
			break
		}
	}

	s.metrics.FilesCleaned(report.Deleted, len(report.Errors))
	s.log.InfoContext(ctx, "expired file sweep finished",
		slog.Int("total", report.Total),
		slog.Int("deleted", report.Deleted),
		slog.Int("failed", len(report.Errors)))

	return report, nil
}

func (s *Service) purge(ctx context.Context, f domain.ExpiredFile) error {
	if err := s.blobs.Delete(ctx, f.FileKey); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	if err := s.responses.ClearFile(ctx, f.ResponseID); err != nil {
		return fmt.Errorf("clear file reference: %w", err)
	}
	return nil
}
