package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/coaching-conflict-api/internal/conflict"
	"github.com/noah-isme/coaching-conflict-api/internal/dto"
	"github.com/noah-isme/coaching-conflict-api/internal/middleware"
	"github.com/noah-isme/coaching-conflict-api/internal/service"
	appErrors "github.com/noah-isme/coaching-conflict-api/pkg/errors"
	"github.com/noah-isme/coaching-conflict-api/pkg/response"
)

type conflictService interface {
	CheckBatch(ctx context.Context, studentID, batchID string) (conflict.CheckResult, bool, error)
	ValidateCart(ctx context.Context, studentID string) (conflict.CartValidation, error)
	Evaluate(ctx context.Context, req dto.EvaluateRequest) (conflict.CheckResult, error)
	ValidateSnapshot(ctx context.Context, req dto.CartSnapshotRequest) (conflict.CartValidation, error)
	InvalidateBatch(ctx context.Context, batchID string) error
}

type conflictReporter interface {
	ExportCartConflicts(ctx context.Context, studentID, format string) (*service.Report, error)
}

// ConflictHandler exposes schedule conflict checks.
type ConflictHandler struct {
	service  conflictService
	reporter conflictReporter
}

// NewConflictHandler constructs the conflict handler. reporter may be nil when exports are not wired.
func NewConflictHandler(service conflictService, reporter conflictReporter) *ConflictHandler {
	return &ConflictHandler{service: service, reporter: reporter}
}

// CheckBatch godoc
// @Summary Check a batch against the student's cart and enrollments
// @Tags Conflicts
// @Produce json
// @Param studentId path string true "Student ID"
// @Param batchId path string true "Batch ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{studentId}/batches/{batchId}/conflicts [get]
func (h *ConflictHandler) CheckBatch(c *gin.Context) {
	studentID := requireParam(c, "studentId")
	if studentID == "" {
		return
	}
	batchID := requireParam(c, "batchId")
	if batchID == "" {
		return
	}
	result, cacheHit, err := h.service.CheckBatch(c.Request.Context(), studentID, batchID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// ValidateCart godoc
// @Summary Validate every item in the student's cart
// @Tags Conflicts
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{studentId}/cart/validation [get]
func (h *ConflictHandler) ValidateCart(c *gin.Context) {
	studentID := requireParam(c, "studentId")
	if studentID == "" {
		return
	}
	result, err := h.service.ValidateCart(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ExportCartValidation godoc
// @Summary Download the cart conflict report
// @Tags Conflicts
// @Produce text/csv
// @Produce application/pdf
// @Param studentId path string true "Student ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /students/{studentId}/cart/validation/export [get]
func (h *ConflictHandler) ExportCartValidation(c *gin.Context) {
	if h.reporter == nil {
		response.Error(c, appErrors.ErrFeatureDisabled)
		return
	}
	studentID := requireParam(c, "studentId")
	if studentID == "" {
		return
	}
	report, err := h.reporter.ExportCartConflicts(c.Request.Context(), studentID, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, report.Filename, report.ContentType, report.Payload)
}

// Evaluate godoc
// @Summary Evaluate an ad-hoc slot against an explicit schedule
// @Tags Conflicts
// @Accept json
// @Produce json
// @Param payload body dto.EvaluateRequest true "Candidate and schedule"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /conflicts/evaluate [post]
func (h *ConflictHandler) Evaluate(c *gin.Context) {
	var req dto.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid evaluation payload"))
		return
	}
	result, err := h.service.Evaluate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ValidateSnapshot godoc
// @Summary Validate an explicit cart against explicit passes
// @Tags Conflicts
// @Accept json
// @Produce json
// @Param payload body dto.CartSnapshotRequest true "Cart snapshot"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /conflicts/cart [post]
func (h *ConflictHandler) ValidateSnapshot(c *gin.Context) {
	var req dto.CartSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cart snapshot"))
		return
	}
	result, err := h.service.ValidateSnapshot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// InvalidateBatch godoc
// @Summary Drop the cached definition of a batch after it was edited
// @Tags Conflicts
// @Param batchId path string true "Batch ID"
// @Success 204
// @Router /batches/{batchId}/cache [delete]
func (h *ConflictHandler) InvalidateBatch(c *gin.Context) {
	batchID := requireParam(c, "batchId")
	if batchID == "" {
		return
	}
	if err := h.service.InvalidateBatch(c.Request.Context(), batchID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
