package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-agenda/internal/cache"
	"medical-agenda/internal/logger"
	"medical-agenda/internal/model"
	"medical-agenda/internal/store/memory"
)

// counting wraps the memory catalog and counts single lookups.
type counting struct {
	*memory.Store
	roleCalls, specialtyCalls int
	fail                      error
}

func (c *counting) Role(ctx context.Context, id int64) (*model.Role, error) {
	c.roleCalls++
	if c.fail != nil {
		return nil, c.fail
	}
	return c.Store.Role(ctx, id)
}

func (c *counting) Specialty(ctx context.Context, id int64) (*model.Specialty, error) {
	c.specialtyCalls++
	return c.Store.Specialty(ctx, id)
}

func TestCatalog_CachesHits(t *testing.T) {
	next := &counting{Store: memory.New()}
	c, err := cache.NewCatalog(next, 8, logger.Discard())
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		r, err := c.Role(ctx, model.RoleIDDoctor)
		require.NoError(t, err)
		assert.Equal(t, "MEDICO", r.Name)
	}
	assert.Equal(t, 1, next.roleCalls)
}

func TestCatalog_DoesNotCacheMisses(t *testing.T) {
	next := &counting{Store: memory.New()}
	c, err := cache.NewCatalog(next, 8, logger.Discard())
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		sp, err := c.Specialty(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, sp)
	}
	assert.Equal(t, 2, next.specialtyCalls)
}

func TestCatalog_ListWarmsEntries(t *testing.T) {
	next := &counting{Store: memory.New()}
	c, err := cache.NewCatalog(next, 8, logger.Discard())
	require.NoError(t, err)
	ctx := context.Background()

	specialties, err := c.Specialties(ctx)
	require.NoError(t, err)
	assert.Len(t, specialties, 4)

	sp, err := c.Specialty(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Pediatría", sp.Name)
	assert.Zero(t, next.specialtyCalls)
}

func TestCatalog_PropagatesErrors(t *testing.T) {
	boom := errors.New("db down")
	next := &counting{Store: memory.New(), fail: boom}
	c, err := cache.NewCatalog(next, 8, logger.Discard())
	require.NoError(t, err)

	_, err = c.Role(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

func TestNewCatalog_InvalidSize(t *testing.T) {
	_, err := cache.NewCatalog(memory.New(), 0, nil)
	assert.Error(t, err)
}
