package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProfileStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfileStore()
	defer s.Close()

	created, err := s.Create(ctx, domain.Profile{Name: "Aisyah", Age: 30, MonthlyIncome: decimal.NewFromInt(5000)})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aisyah", got.Name)

	got.Age = 31
	_, err = s.Update(ctx, got)
	require.NoError(t, err)
	got, err = s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 31, got.Age)

	kept, err := s.Create(ctx, domain.Profile{ID: "fixed", Name: "Ben"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", kept.ID)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Aisyah", list[0].Name)
	assert.Equal(t, "Ben", list[1].Name)
}

func TestMemoryProfileStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfileStore()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Update(ctx, domain.Profile{ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProfileStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfileStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Create(ctx, domain.Profile{Name: fmt.Sprintf("p%02d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Set(ctx, "forever", "x", 0))

	v, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	now = now.Add(time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	v, ok = c.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestCacheImplementations(t *testing.T) {
	var _ CacheRepository = NewMemoryCache()
	var _ CacheRepository = NewRedisCache("localhost:0")
	var _ ProfileStore = NewMemoryProfileStore()
	var _ ProfileStore = &PostgresProfileStore{}
}
