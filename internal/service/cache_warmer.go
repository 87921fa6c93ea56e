package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/coaching-conflict-api/internal/models"
	appErrors "github.com/noah-isme/coaching-conflict-api/pkg/errors"
	"github.com/noah-isme/coaching-conflict-api/pkg/jobs"
)

type batchPreloader interface {
	Batch(ctx context.Context, batchID string) (*models.Batch, error)
}

// BatchCacheWarmer reloads invalidated batch definitions in the background so
// the next conflict check after an edit is served from cache.
type BatchCacheWarmer struct {
	queue  *jobs.Queue
	loader batchPreloader
	logger *zap.Logger
}

// NewBatchCacheWarmer builds a warmer with the given worker count.
func NewBatchCacheWarmer(loader batchPreloader, workers int, logger *zap.Logger) *BatchCacheWarmer {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &BatchCacheWarmer{loader: loader, logger: logger}
	w.queue = jobs.NewQueue("batch-cache-warm", w.reload, jobs.QueueConfig{
		Workers:    workers,
		MaxRetries: 2,
		RetryDelay: 2 * time.Second,
		Logger:     logger,
	})
	return w
}

// Start launches the workers.
func (w *BatchCacheWarmer) Start(ctx context.Context) {
	w.queue.Start(ctx)
}

// Stop waits for the workers to exit.
func (w *BatchCacheWarmer) Stop() {
	w.queue.Stop()
}

// Schedule queues a reload of batchID. It reports false when the reload was
// not queued, either because one is already pending or the queue rejected it.
func (w *BatchCacheWarmer) Schedule(batchID string) bool {
	queued, err := w.queue.Enqueue(batchID)
	if err != nil {
		w.logger.Warn("batch reload not scheduled", zap.String("batch_id", batchID), zap.Error(err))
		return false
	}
	return queued
}

func (w *BatchCacheWarmer) reload(ctx context.Context, task jobs.Task) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := w.loader.Batch(ctx, task.Key)
	if err == nil {
		return nil
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) && appErr.Status < 500 {
		w.logger.Debug("batch reload skipped", zap.String("batch_id", task.Key), zap.Error(err))
		return nil
	}
	return err
}
