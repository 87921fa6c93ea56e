package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/coaching-conflict-api/internal/models"
)

// BatchRepository reads published coaching batches.
type BatchRepository struct {
	db *sqlx.DB
}

// NewBatchRepository constructs a BatchRepository.
func NewBatchRepository(db *sqlx.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// FindByID loads a batch with its business and subject names resolved.
func (r *BatchRepository) FindByID(ctx context.Context, id string) (*models.Batch, error) {
	const query = `SELECT b.id, b.name, b.business_id, biz.name AS business_name, b.subject_id, s.name AS subject_name,
        COALESCE(b.instructor_name, '') AS instructor_name, b.schedule_pattern, b.custom_days,
        to_char(b.start_time, 'HH24:MI') AS start_time, to_char(b.end_time, 'HH24:MI') AS end_time
        FROM batches b
        JOIN businesses biz ON biz.id = b.business_id
        LEFT JOIN subjects s ON s.id = b.subject_id
        WHERE b.id = $1`
	var batch models.Batch
	if err := r.db.GetContext(ctx, &batch, query, id); err != nil {
		return nil, err
	}
	return &batch, nil
}
