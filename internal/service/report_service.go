package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/coaching-conflict-api/internal/conflict"
	"github.com/noah-isme/coaching-conflict-api/pkg/export"
	appErrors "github.com/noah-isme/coaching-conflict-api/pkg/errors"
)

var conflictReportHeaders = []string{"Cart Item", "Clashes With", "Source", "Type", "Days", "Window", "Minutes", "Message"}

type cartValidator interface {
	ValidateCart(ctx context.Context, studentID string) (conflict.CartValidation, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string, subtitle ...string) ([]byte, error)
}

// Report is a rendered download.
type Report struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ReportService renders cart validation results as downloadable reports.
type ReportService struct {
	validator cartValidator
	csv       csvRenderer
	pdf       pdfRenderer
	enabled   bool
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService constructs the report service.
func NewReportService(validator cartValidator, csv csvRenderer, pdf pdfRenderer, enabled bool, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ReportService{validator: validator, csv: csv, pdf: pdf, enabled: enabled, logger: logger, now: time.Now}
}

// ExportCartConflicts validates the student's cart and renders every blocking conflict.
func (s *ReportService) ExportCartConflicts(ctx context.Context, studentID, rawFormat string) (*Report, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "conflict exports are disabled")
	}
	format, ok := export.ParseFormat(rawFormat)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", rawFormat))
	}

	validation, err := s.validator.ValidateCart(ctx, studentID)
	if err != nil {
		return nil, err
	}
	dataset := buildConflictDataset(validation)
	generatedAt := s.now().UTC()

	var payload []byte
	switch format {
	case export.FormatPDF:
		payload, err = s.pdf.Render(dataset, "Cart schedule conflicts",
			"Student: "+studentID,
			"Generated: "+generatedAt.Format(time.RFC1123),
			fmt.Sprintf("Blocking conflicts: %d, notes: %d", len(dataset.Rows), len(validation.InfoMessages)),
		)
	default:
		payload, err = s.csv.Render(dataset)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	s.logger.Info("cart conflict report rendered",
		zap.String("student_id", studentID),
		zap.String("format", string(format)),
		zap.Int("rows", len(dataset.Rows)),
	)
	return &Report{
		Filename:    fmt.Sprintf("cart-conflicts-%s-%s.%s", sanitizeFilename(studentID), generatedAt.Format("20060102-150405"), format),
		ContentType: format.ContentType(),
		Payload:     payload,
	}, nil
}

func buildConflictDataset(validation conflict.CartValidation) export.Dataset {
	rows := make([]map[string]string, 0, len(validation.CartPairConflicts)+len(validation.EnrollmentConflicts))
	for _, pair := range validation.CartPairConflicts {
		rows = append(rows, conflictRow(pair.CartItemID, pair.Conflict))
	}
	for _, enrolled := range validation.EnrollmentConflicts {
		rows = append(rows, conflictRow(enrolled.CartItemID, enrolled.Conflict))
	}
	return export.Dataset{
		Headers: conflictReportHeaders,
		Rows:    rows,
		Wide:    []string{"Message"},
	}
}

func conflictRow(itemID string, detail conflict.ConflictDetail) map[string]string {
	days := make([]string, 0, len(detail.OverlapDays))
	for _, d := range detail.OverlapDays {
		days = append(days, d.Name())
	}
	window := ""
	if detail.OverlapWindow != nil {
		window = detail.OverlapWindow.Label
	}
	return map[string]string{
		"Cart Item":    itemID,
		"Clashes With": detail.Existing.Label,
		"Source":       string(detail.Existing.Source),
		"Type":         string(detail.Type),
		"Days":         strings.Join(days, ", "),
		"Window":       window,
		"Minutes":      strconv.Itoa(detail.OverlapMinutes),
		"Message":      detail.Message,
	}
}

func sanitizeFilename(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "student"
	}
	return b.String()
}
