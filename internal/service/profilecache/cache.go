// Package profilecache memoizes public profile projections for the lifetime
// of the process. Entries are never evicted one by one; Invalidate drops a
// single user after a profile edit and Reset clears everything.
package profilecache

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/domain"
)

type userRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

// Cache is a read-through map from user ID to domain.PublicProfile.
// It is safe for concurrent use.
type Cache struct {
	users userRepo

	mu       sync.RWMutex
	profiles map[uuid.UUID]domain.PublicProfile
}

// New creates an empty cache backed by users.
func New(users userRepo) *Cache {
	return &Cache{
		users:    users,
		profiles: make(map[uuid.UUID]domain.PublicProfile),
	}
}

// GetMany returns the profiles for ids. Cached entries are served from
// memory and only the misses are loaded, in one batch. IDs that do not
// exist in storage are absent from the result.
func (c *Cache) GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.PublicProfile, error) {
	result := make(map[uuid.UUID]domain.PublicProfile, len(ids))
	var missing []uuid.UUID

	c.mu.RLock()
	for _, id := range ids {
		if _, seen := result[id]; seen {
			continue
		}
		if p, ok := c.profiles[id]; ok {
			result[id] = p
			continue
		}
		missing = append(missing, id)
	}
	c.mu.RUnlock()

	if len(missing) == 0 {
		return result, nil
	}
	missing = dedupe(missing)

	users, err := c.users.GetByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("profilecache.GetMany: %w", err)
	}

	c.mu.Lock()
	for _, u := range users {
		p := u.Public()
		c.profiles[u.ID] = p
		result[u.ID] = p
	}
	c.mu.Unlock()

	return result, nil
}

// Get returns a single profile or domain.ErrNotFound.
func (c *Cache) Get(ctx context.Context, id uuid.UUID) (domain.PublicProfile, error) {
	m, err := c.GetMany(ctx, []uuid.UUID{id})
	if err != nil {
		return domain.PublicProfile{}, err
	}
	p, ok := m[id]
	if !ok {
		return domain.PublicProfile{}, fmt.Errorf("profilecache.Get: user %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// Invalidate forgets one user so the next lookup reloads it.
func (c *Cache) Invalidate(id uuid.UUID) {
	c.mu.Lock()
	delete(c.profiles, id)
	c.mu.Unlock()
}

// Reset drops every cached profile.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.profiles = make(map[uuid.UUID]domain.PublicProfile)
	c.mu.Unlock()
}

// Len reports the number of cached profiles.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.profiles)
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
