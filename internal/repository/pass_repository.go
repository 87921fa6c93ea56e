package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/coaching-conflict-api/internal/models"
)

// PassRepository reads the student's purchased passes across every vertical.
type PassRepository struct {
	db *sqlx.DB
}

// NewPassRepository constructs a PassRepository.
func NewPassRepository(db *sqlx.DB) *PassRepository {
	return &PassRepository{db: db}
}

// ListByStudent returns every pass regardless of status; callers decide which ones hold a seat.
func (r *PassRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Pass, error) {
	const query = `SELECT id, student_id, vertical, business_id, business_name, subject_id, subject_name, batch_id, batch_name, schedule_days, time_slot, status, starts_on, ends_on
        FROM passes WHERE student_id = $1 ORDER BY starts_on ASC NULLS LAST, id ASC`
	var passes []models.Pass
	if err := r.db.SelectContext(ctx, &passes, query, studentID); err != nil {
		return nil, fmt.Errorf("list passes: %w", err)
	}
	return passes, nil
}
