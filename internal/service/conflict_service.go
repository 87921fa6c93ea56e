package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-conflict-api/internal/conflict"
	"github.com/noah-isme/coaching-conflict-api/internal/dto"
	"github.com/noah-isme/coaching-conflict-api/internal/models"
	appErrors "github.com/noah-isme/coaching-conflict-api/pkg/errors"
)

type cartReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.CartItem, error)
}

type passReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Pass, error)
}

type batchReader interface {
	FindByID(ctx context.Context, id string) (*models.Batch, error)
}

// ConflictService loads a student's schedule and runs the conflict engine over it.
type ConflictService struct {
	carts     cartReader
	passes    passReader
	batches   batchReader
	cache     *CacheService
	warmer    cacheWarmer
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

type cacheWarmer interface {
	Schedule(batchID string) bool
}

// NewConflictService constructs the conflict service. cache and metrics are optional.
func NewConflictService(carts cartReader, passes passReader, batches batchReader, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ConflictService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{
		carts:     carts,
		passes:    passes,
		batches:   batches,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// CheckBatch reports whether adding batchID to the student's cart would clash
// with the cart or the student's committed passes. The bool reports whether
// the batch definition came from cache.
func (s *ConflictService) CheckBatch(ctx context.Context, studentID, batchID string) (conflict.CheckResult, bool, error) {
	batch, cacheHit, err := s.loadBatch(ctx, batchID)
	if err != nil {
		return conflict.CheckResult{}, false, err
	}
	cart, passes, err := s.loadSchedule(ctx, studentID)
	if err != nil {
		return conflict.CheckResult{}, cacheHit, err
	}

	result := conflict.CheckBatch(*batch, cart, passes)
	s.metrics.RecordConflictCheck(OperationBatchCheck, len(result.Conflicts))
	if result.HasConflict {
		s.logger.Debug("batch conflicts found",
			zap.String("student_id", studentID),
			zap.String("batch_id", batchID),
			zap.Int("conflicts", len(result.Conflicts)),
		)
	}
	return result, cacheHit, nil
}

// ValidateCart checks every cart item against the rest of the cart and the student's passes.
func (s *ConflictService) ValidateCart(ctx context.Context, studentID string) (conflict.CartValidation, error) {
	cart, passes, err := s.loadSchedule(ctx, studentID)
	if err != nil {
		return conflict.CartValidation{}, err
	}
	result := conflict.ValidateCart(cart, passes)
	s.metrics.RecordConflictCheck(OperationCartValidate, len(result.CartPairConflicts)+len(result.EnrollmentConflicts))
	return result, nil
}

// Evaluate checks an ad-hoc candidate against an explicit cart and pass list.
func (s *ConflictService) Evaluate(ctx context.Context, req dto.EvaluateRequest) (conflict.CheckResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return conflict.CheckResult{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid evaluation payload")
	}
	input := req.Candidate
	days := conflict.NormalizeDays(input.ScheduleDays)
	if len(days) == 0 {
		return conflict.CheckResult{}, appErrors.Clone(appErrors.ErrValidation, "scheduleDays has no recognised weekday")
	}
	start, okStart := conflict.ParseClock(input.StartTime)
	end, okEnd := conflict.ParseClock(input.EndTime)
	if !okStart || !okEnd || start >= end {
		return conflict.CheckResult{}, appErrors.Clone(appErrors.ErrValidation, "startTime and endTime must be HH:MM with start before end")
	}

	candidate := conflict.Candidate{
		Label:        strings.TrimSpace(input.Label),
		BatchID:      strings.TrimSpace(input.BatchID),
		SubjectID:    strings.TrimSpace(input.SubjectID),
		SubjectName:  strings.TrimSpace(input.SubjectName),
		BusinessID:   strings.TrimSpace(input.BusinessID),
		BusinessName: strings.TrimSpace(input.BusinessName),
		ScheduleDays: days,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
	}
	existing := append(conflict.FromCartItems(req.Cart), conflict.FromPasses(req.Passes)...)

	result := conflict.Detect(candidate, existing)
	s.metrics.RecordConflictCheck(OperationEvaluate, len(result.Conflicts))
	return result, nil
}

// ValidateSnapshot validates an explicit cart against explicit passes.
func (s *ConflictService) ValidateSnapshot(ctx context.Context, req dto.CartSnapshotRequest) (conflict.CartValidation, error) {
	if err := s.validator.Struct(req); err != nil {
		return conflict.CartValidation{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cart snapshot")
	}
	result := conflict.ValidateCart(req.Cart, req.Passes)
	s.metrics.RecordConflictCheck(OperationCartValidate, len(result.CartPairConflicts)+len(result.EnrollmentConflicts))
	return result, nil
}

// Batch returns a published batch, consulting the cache first.
func (s *ConflictService) Batch(ctx context.Context, batchID string) (*models.Batch, error) {
	batch, _, err := s.loadBatch(ctx, batchID)
	return batch, err
}

func (s *ConflictService) loadBatch(ctx context.Context, batchID string) (*models.Batch, bool, error) {
	if strings.TrimSpace(batchID) == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "batch id is required")
	}
	cached, hit, err := s.cache.Batch(ctx, batchID)
	if err != nil {
		s.logger.Warn("batch cache unavailable, reading from database", zap.String("batch_id", batchID), zap.Error(err))
	} else if hit {
		return cached, true, nil
	}

	start := time.Now()
	batch, err := s.batches.FindByID(ctx, batchID)
	s.metrics.ObserveDBQuery("batch_find", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "batch not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch")
	}

	_ = s.cache.StoreBatch(ctx, batchID, batch)
	return batch, false, nil
}

func (s *ConflictService) loadSchedule(ctx context.Context, studentID string) ([]models.CartItem, []models.Pass, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}

	start := time.Now()
	cart, err := s.carts.ListByStudent(ctx, studentID)
	s.metrics.ObserveDBQuery("cart_list", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cart")
	}

	start = time.Now()
	passes, err := s.passes.ListByStudent(ctx, studentID)
	s.metrics.ObserveDBQuery("pass_list", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load passes")
	}
	return cart, passes, nil
}

// UseCacheWarmer makes InvalidateBatch schedule a background reload of the
// dropped definition.
func (s *ConflictService) UseCacheWarmer(w cacheWarmer) {
	s.warmer = w
}

// InvalidateBatch drops the cached definition of a batch.
func (s *ConflictService) InvalidateBatch(ctx context.Context, batchID string) error {
	if strings.TrimSpace(batchID) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "batch id is required")
	}
	if !s.cache.Enabled() {
		return nil
	}
	if err := s.cache.DropBatch(ctx, batchID); err != nil {
		return fmt.Errorf("invalidate batch cache: %w", err)
	}
	if s.warmer != nil && !s.warmer.Schedule(batchID) {
		s.logger.Debug("batch reload already pending", zap.String("batch_id", batchID))
	}
	return nil
}
