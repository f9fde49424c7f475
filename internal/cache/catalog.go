// Package cache holds read-through caches in front of service ports.
package cache

import (
	"context"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"medical-agenda/internal/model"
	"medical-agenda/internal/service"
)

// Catalog caches single-entity lookups of roles and specialties. Rows in
// those tables are seeded by the schema and never change at runtime, so
// entries are not invalidated. Misses (unknown ids) are not cached.
type Catalog struct {
	next        service.Catalog
	roles       *lru.Cache[int64, model.Role]
	specialties *lru.Cache[int64, model.Specialty]
	log         *slog.Logger
}

var _ service.Catalog = (*Catalog)(nil)

func NewCatalog(next service.Catalog, size int, log *slog.Logger) (*Catalog, error) {
	roles, err := lru.New[int64, model.Role](size)
	if err != nil {
		return nil, err
	}
	specialties, err := lru.New[int64, model.Specialty](size)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Catalog{next: next, roles: roles, specialties: specialties, log: log}, nil
}

func (c *Catalog) Role(ctx context.Context, id int64) (*model.Role, error) {
	if r, ok := c.roles.Get(id); ok {
		return &r, nil
	}
	c.log.DebugContext(ctx, "cache.role.miss", "id", id)

	r, err := c.next.Role(ctx, id)
	if err != nil || r == nil {
		return r, err
	}
	c.roles.Add(id, *r)
	return r, nil
}

func (c *Catalog) Specialty(ctx context.Context, id int64) (*model.Specialty, error) {
	if sp, ok := c.specialties.Get(id); ok {
		return &sp, nil
	}
	c.log.DebugContext(ctx, "cache.specialty.miss", "id", id)

	sp, err := c.next.Specialty(ctx, id)
	if err != nil || sp == nil {
		return sp, err
	}
	c.specialties.Add(id, *sp)
	return sp, nil
}

// Roles always reads through and refreshes the per-id entries.
func (c *Catalog) Roles(ctx context.Context) ([]model.Role, error) {
	roles, err := c.next.Roles(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		c.roles.Add(r.ID, r)
	}
	return roles, nil
}

func (c *Catalog) Specialties(ctx context.Context) ([]model.Specialty, error) {
	specialties, err := c.next.Specialties(ctx)
	if err != nil {
		return nil, err
	}
	for _, sp := range specialties {
		c.specialties.Add(sp.ID, sp)
	}
	return specialties, nil
}
