package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadpoly-ict/ards-api/internal/models"
	appErrors "github.com/kadpoly-ict/ards-api/pkg/errors"
)

type mockStatsRepo struct {
	stats *models.DashboardStats
	err   error
	calls int
}

func (m *mockStatsRepo) CountByStatus(ctx context.Context) (*models.DashboardStats, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

type mockStatsCache struct {
	entries map[string]*models.DashboardStats
	getErr  error
}

func (m *mockStatsCache) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	cached, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*dest.(*models.DashboardStats) = *cached
	return nil
}

func (m *mockStatsCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.entries == nil {
		m.entries = map[string]*models.DashboardStats{}
	}
	m.entries[key] = value.(*models.DashboardStats)
	return nil
}

type mockCacheMetrics struct {
	hits   int
	misses int
}

func (m *mockCacheMetrics) RecordCacheLookup(hit bool) {
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

func TestDashboardServiceStatsColdCache(t *testing.T) {
	repo := &mockStatsRepo{stats: &models.DashboardStats{Total: 10, Sent: 6, Pending: 3, Failed: 1}}
	cache := &mockStatsCache{}
	metrics := &mockCacheMetrics{}
	svc := NewDashboardService(repo, cache, metrics, nil, DashboardServiceConfig{CacheTTL: time.Minute})

	stats, cached, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, metrics.misses)

	// second read is served from cache
	stats, cached, err = svc.Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, 6, stats.Sent)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, metrics.hits)
}

func TestDashboardServiceStatsCacheErrorFallsThrough(t *testing.T) {
	repo := &mockStatsRepo{stats: &models.DashboardStats{Total: 2, Pending: 2}}
	cache := &mockStatsCache{getErr: errors.New("redis down")}
	svc := NewDashboardService(repo, cache, nil, nil, DashboardServiceConfig{})

	stats, cached, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, stats.Pending)
}

func TestDashboardServiceStatsWithoutCache(t *testing.T) {
	repo := &mockStatsRepo{stats: &models.DashboardStats{Total: 1}}
	svc := NewDashboardService(repo, nil, nil, nil, DashboardServiceConfig{})

	stats, cached, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 1, stats.Total)
}

func TestDashboardServiceStatsRepoError(t *testing.T) {
	repo := &mockStatsRepo{err: errors.New("query failed")}
	svc := NewDashboardService(repo, nil, nil, nil, DashboardServiceConfig{})

	_, _, err := svc.Stats(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
