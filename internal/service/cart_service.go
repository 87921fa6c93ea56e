package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-conflict-api/internal/conflict"
	"github.com/noah-isme/coaching-conflict-api/internal/dto"
	"github.com/noah-isme/coaching-conflict-api/internal/models"
	appErrors "github.com/noah-isme/coaching-conflict-api/pkg/errors"
)

type cartRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.CartItem, error)
	FindByID(ctx context.Context, studentID, itemID string) (*models.CartItem, error)
	CountByStudent(ctx context.Context, studentID string) (int, error)
	LockStudent(ctx context.Context, studentID string) (func() error, error)
	Create(ctx context.Context, item *models.CartItem) error
	Delete(ctx context.Context, studentID, itemID string) (bool, error)
}

type batchLoader interface {
	Batch(ctx context.Context, batchID string) (*models.Batch, error)
}

// CartService manages the student's cart and refuses additions that would clash.
type CartService struct {
	repo      cartRepository
	passes    passReader
	batches   batchLoader
	maxItems  int
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewCartService constructs the cart service.
func NewCartService(repo cartRepository, passes passReader, batches batchLoader, maxItems int, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CartService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxItems <= 0 {
		maxItems = 10
	}
	return &CartService{
		repo:      repo,
		passes:    passes,
		batches:   batches,
		maxItems:  maxItems,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns the cart together with its current validation.
func (s *CartService) List(ctx context.Context, studentID string) (*dto.CartView, error) {
	cart, passes, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = []models.CartItem{}
	}
	return &dto.CartView{
		Items:      cart,
		MaxItems:   s.maxItems,
		Validation: conflict.ValidateCart(cart, passes),
	}, nil
}

// Add places an offering in the cart. Coaching batches are checked first and
// rejected with a *conflict.BlockedError wrapped in ErrConflict when they clash.
// The returned CheckResult carries advisory info messages for accepted items.
// The count, check and insert run under a per-student cart lock.
func (s *CartService) Add(ctx context.Context, studentID string, req dto.AddCartItemRequest) (*models.CartItem, conflict.CheckResult, error) {
	if strings.TrimSpace(req.Vertical.String()) == "" {
		req.Vertical = models.VerticalCoaching
	}
	req.Vertical = models.Vertical(strings.ToLower(strings.TrimSpace(req.Vertical.String())))
	if err := s.validator.Struct(req); err != nil {
		return nil, conflict.CheckResult{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cart item payload")
	}

	release, err := s.repo.LockStudent(ctx, studentID)
	if err != nil {
		return nil, conflict.CheckResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to lock cart")
	}
	defer func() {
		if err := release(); err != nil {
			s.logger.Warn("release cart lock", zap.String("student_id", studentID), zap.Error(err))
		}
	}()

	count, err := s.repo.CountByStudent(ctx, studentID)
	if err != nil {
		return nil, conflict.CheckResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count cart items")
	}
	if count >= s.maxItems {
		return nil, conflict.CheckResult{}, appErrors.ErrCartFull
	}

	var (
		item   *models.CartItem
		result conflict.CheckResult
	)
	if req.Vertical == models.VerticalCoaching {
		item, result, err = s.prepareBatchItem(ctx, studentID, req.BatchID)
	} else {
		item, err = s.prepareVenueItem(studentID, req)
	}
	if err != nil {
		return nil, result, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, result, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add cart item")
	}
	s.logger.Info("cart item added",
		zap.String("student_id", studentID),
		zap.String("item_id", item.ID),
		zap.String("vertical", item.Vertical.String()),
	)
	return item, result, nil
}

// Remove deletes an item from the student's cart.
func (s *CartService) Remove(ctx context.Context, studentID, itemID string) error {
	removed, err := s.repo.Delete(ctx, studentID, itemID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove cart item")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "cart item not found")
	}
	return nil
}

// Get returns a single cart item.
func (s *CartService) Get(ctx context.Context, studentID, itemID string) (*models.CartItem, error) {
	item, err := s.repo.FindByID(ctx, studentID, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "cart item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cart item")
	}
	return item, nil
}

func (s *CartService) prepareBatchItem(ctx context.Context, studentID, batchID string) (*models.CartItem, conflict.CheckResult, error) {
	batch, err := s.batches.Batch(ctx, batchID)
	if err != nil {
		return nil, conflict.CheckResult{}, err
	}
	days := conflict.ResolveDays(batch.SchedulePattern, batch.CustomDays)
	if len(days) == 0 {
		return nil, conflict.CheckResult{}, appErrors.Clone(appErrors.ErrValidation, "batch has no schedulable days")
	}
	if _, _, ok := conflict.ParseSlot(batch.Slot()); !ok {
		return nil, conflict.CheckResult{}, appErrors.Clone(appErrors.ErrValidation, "batch has an invalid time slot")
	}

	cart, passes, err := s.load(ctx, studentID)
	if err != nil {
		return nil, conflict.CheckResult{}, err
	}
	result := conflict.CheckBatch(*batch, cart, passes)
	s.metrics.RecordConflictCheck(OperationCartAdd, len(result.Conflicts))
	if result.HasConflict {
		blocked := &conflict.BlockedError{Result: result}
		return nil, result, appErrors.Wrap(blocked, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, blocked.Error())
	}

	dayNames := make([]string, 0, len(days))
	for _, d := range days {
		dayNames = append(dayNames, string(d))
	}
	batchIDCopy := batch.ID
	batchName := batch.Name
	return &models.CartItem{
		StudentID:    studentID,
		Vertical:     models.VerticalCoaching,
		BusinessID:   batch.BusinessID,
		BusinessName: batch.BusinessName,
		SubjectID:    batch.SubjectID,
		SubjectName:  batch.SubjectName,
		BatchID:      &batchIDCopy,
		BatchName:    &batchName,
		ScheduleDays: dayNames,
		TimeSlot:     batch.Slot(),
		AddedAt:      s.now().UTC(),
	}, result, nil
}

func (s *CartService) prepareVenueItem(studentID string, req dto.AddCartItemRequest) (*models.CartItem, error) {
	slot := strings.TrimSpace(req.TimeSlot)
	if slot != "" {
		if _, _, ok := conflict.ParseSlot(slot); !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "timeSlot must be HH:MM-HH:MM with start before end")
		}
	}
	days := make([]string, 0, len(req.ScheduleDays))
	for _, d := range conflict.NormalizeDays(req.ScheduleDays) {
		days = append(days, string(d))
	}
	return &models.CartItem{
		StudentID:    studentID,
		Vertical:     req.Vertical,
		BusinessID:   strings.TrimSpace(req.BusinessID),
		BusinessName: strings.TrimSpace(req.BusinessName),
		ScheduleDays: days,
		TimeSlot:     slot,
		AddedAt:      s.now().UTC(),
	}, nil
}

func (s *CartService) load(ctx context.Context, studentID string) ([]models.CartItem, []models.Pass, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	cart, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cart")
	}
	passes, err := s.passes.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load passes")
	}
	return cart, passes, nil
}
