package rest

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/internal/transport/dataloader"
)

// loadProfiles resolves author profiles through the per-request loader.
// Profiles decorate a response, so a failure is logged and rendering goes on
// without them.
func loadProfiles(ctx context.Context, log *slog.Logger, ids []uuid.UUID) map[uuid.UUID]*domain.PublicProfile {
	l, ok := dataloader.Lookup(ctx)
	if !ok || len(ids) == 0 {
		return nil
	}
	profiles, err := l.LoadProfiles(ctx, uniqueIDs(ids))
	if err != nil {
		log.WarnContext(ctx, "load profiles", slog.String("error", err.Error()))
		return nil
	}
	return profiles
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func withOwners(ctx context.Context, log *slog.Logger, views []domain.RequestView) {
	ids := make([]uuid.UUID, len(views))
	for i, v := range views {
		ids[i] = v.OwnerID
	}
	profiles := loadProfiles(ctx, log, ids)
	for i := range views {
		if p, ok := profiles[views[i].OwnerID]; ok {
			views[i].Owner = p
		}
	}
}

func withContributors(ctx context.Context, log *slog.Logger, views []domain.ResponseView) {
	ids := make([]uuid.UUID, len(views))
	for i, v := range views {
		ids[i] = v.ContributorID
	}
	profiles := loadProfiles(ctx, log, ids)
	for i := range views {
		if p, ok := profiles[views[i].ContributorID]; ok {
			views[i].Contributor = p
		}
	}
}

func withAuthors(ctx context.Context, log *slog.Logger, comments []domain.Comment) {
	ids := make([]uuid.UUID, len(comments))
	for i, c := range comments {
		ids[i] = c.AuthorID
	}
	profiles := loadProfiles(ctx, log, ids)
	for i := range comments {
		if p, ok := profiles[comments[i].AuthorID]; ok {
			comments[i].Author = p
		}
	}
}
