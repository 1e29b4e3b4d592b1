// Package dataloader provides per-request DataLoaders that batch the profile
// lookups made while rendering requests, responses and comments into a
// single call to the profile cache.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/korima-app/korima-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type profileSource interface {
	GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.PublicProfile, error)
}

// Loaders contains the per-request DataLoaders. Created per-request via
// NewLoaders.
type Loaders struct {
	Profiles *dataloader.Loader[uuid.UUID, *domain.PublicProfile]
}

// NewLoaders creates a new set of DataLoaders backed by profiles.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(profiles profileSource) *Loaders {
	return &Loaders{
		Profiles: newLoader(newProfilesBatchFn(profiles)),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is the middleware configured?")
	}
	return l
}

// LoadProfiles resolves many profiles at once. Unknown users are absent from
// the result; only a failed batch returns an error.
func (l *Loaders) LoadProfiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.PublicProfile, error) {
	out := make(map[uuid.UUID]*domain.PublicProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	profiles, errs := l.Profiles.LoadMany(ctx, ids)()
	for i, id := range ids {
		if i < len(errs) && errs[i] != nil {
			return nil, errs[i]
		}
		if profiles[i] != nil {
			out[id] = profiles[i]
		}
	}
	return out, nil
}

// Lookup is FromContext for callers that can do without loaders.
func Lookup(ctx context.Context) (*Loaders, bool) {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	return l, ok && l != nil
}
