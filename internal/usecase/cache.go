package usecase

import (
	"context"

	"telesalud-admin/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// Cache keys, one per listed entity. tipoEquipo is reference data and is
// never invalidated by a write.
const (
	CacheKeyPatients       = "pacientes"
	CacheKeyEquipment      = "equipo"
	CacheKeyAssignments    = "asignacionEquipo"
	CacheKeyEquipmentTypes = "tipoEquipo"
)

// listCache wraps a QueryCache so that a cache failure only costs a
// remote round trip.
type listCache struct {
	log   *logrus.Logger
	cache repository.QueryCache
}

// cacheRead is the outcome of a lookup. A miss that could not learn the
// generation is not stored afterwards.
type cacheRead struct {
	hit        bool
	storable   bool
	generation int64
}

func (c listCache) get(ctx context.Context, entity string, filter, dest interface{}) cacheRead {
	if c.cache == nil {
		return cacheRead{}
	}
	hit, gen, err := c.cache.Get(ctx, entity, filter, dest)
	if err != nil {
		c.log.Warnf("Failed to read %s from cache: %+v", entity, err)
		return cacheRead{}
	}
	return cacheRead{hit: hit, storable: true, generation: gen}
}

func (c listCache) set(ctx context.Context, read cacheRead, entity string, filter, value interface{}) {
	if c.cache == nil || !read.storable {
		return
	}
	if err := c.cache.Set(ctx, entity, read.generation, filter, value); err != nil {
		c.log.Warnf("Failed to cache %s: %+v", entity, err)
	}
}

func (c listCache) invalidate(ctx context.Context, entity string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Invalidate(ctx, entity); err != nil {
		c.log.Warnf("Failed to invalidate %s cache: %+v", entity, err)
	}
}
