package dataloader

import (
	"context"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/korima-app/korima-backend/internal/domain"
)

func newProfilesBatchFn(src profileSource) dataloader.BatchFunc[uuid.UUID, *domain.PublicProfile] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.PublicProfile] {
		profiles, err := src.GetMany(ctx, keys)
		if err != nil {
			return errorResults[*domain.PublicProfile](len(keys), err)
		}

		results := make([]*dataloader.Result[*domain.PublicProfile], len(keys))
		for i, k := range keys {
			r := &dataloader.Result[*domain.PublicProfile]{}
			if p, ok := profiles[k]; ok {
				r.Data = &p
			}
			results[i] = r
		}
		return results
	}
}

func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}
