package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/coaching-conflict-api/internal/models"
	appErrors "github.com/noah-isme/coaching-conflict-api/pkg/errors"
)

const batchCachePrefix = "batch:"

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService keeps published batch definitions in a shared cache so hot
// conflict checks skip the batch lookup. A disabled service misses every read.
type CacheService struct {
	repo    CacheRepository
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
	enabled bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, ttl time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, ttl: ttl, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Batch returns the cached definition of batchID. The bool is false on a miss.
func (s *CacheService) Batch(ctx context.Context, batchID string) (*models.Batch, bool, error) {
	var batch models.Batch
	hit, err := s.get(ctx, batchCacheKey(batchID), &batch)
	if err != nil || !hit {
		return nil, false, err
	}
	return &batch, true, nil
}

// StoreBatch caches a batch definition under batchID.
func (s *CacheService) StoreBatch(ctx context.Context, batchID string, batch *models.Batch) error {
	if batch == nil {
		return nil
	}
	return s.set(ctx, batchCacheKey(batchID), batch)
}

// DropBatch removes the cached definition of batchID.
func (s *CacheService) DropBatch(ctx context.Context, batchID string) error {
	return s.invalidate(ctx, batchCacheKey(batchID))
}

func (s *CacheService) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	duration := time.Since(start)
	if err != nil {
		s.metrics.RecordCacheOperation(false, duration)
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return false, nil
		}
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	s.metrics.RecordCacheOperation(true, duration)
	return true, nil
}

func (s *CacheService) set(ctx context.Context, key string, value interface{}) error {
	if !s.Enabled() {
		return nil
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, s.ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

func (s *CacheService) invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	return nil
}

// batchCacheKey keeps ":" out of the ID so a key never widens a pattern.
func batchCacheKey(batchID string) string {
	return batchCachePrefix + strings.ReplaceAll(strings.TrimSpace(batchID), ":", "|")
}
