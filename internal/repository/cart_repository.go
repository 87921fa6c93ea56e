package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/coaching-conflict-api/internal/models"
)

const cartColumns = `id, student_id, vertical, business_id, business_name, subject_id, subject_name, batch_id, batch_name, schedule_days, time_slot, added_at`

// CartRepository manages persistence for student cart items.
type CartRepository struct {
	db *sqlx.DB
}

// NewCartRepository constructs a CartRepository.
func NewCartRepository(db *sqlx.DB) *CartRepository {
	return &CartRepository{db: db}
}

// LockStudent takes a Postgres advisory lock keyed on the student so that the
// count, conflict check and insert of a cart addition run one at a time per
// student across every API instance. The lock lives on a dedicated pooled
// connection until release is called.
func (r *CartRepository) LockStudent(ctx context.Context, studentID string) (func() error, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire cart lock connection: %w", err)
	}
	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock(hashtext($1))`, studentID); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("lock cart: %w", err)
	}
	release := func() error {
		defer conn.Close()
		if _, err := conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock(hashtext($1))`, studentID); err != nil {
			return fmt.Errorf("unlock cart: %w", err)
		}
		return nil
	}
	return release, nil
}

// ListByStudent returns the cart in the order items were added.
func (r *CartRepository) ListByStudent(ctx context.Context, studentID string) ([]models.CartItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM cart_items WHERE student_id = $1 ORDER BY added_at ASC, id ASC`, cartColumns)
	var items []models.CartItem
	if err := r.db.SelectContext(ctx, &items, query, studentID); err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return items, nil
}

// FindByID fetches a single cart item owned by the student.
func (r *CartRepository) FindByID(ctx context.Context, studentID, itemID string) (*models.CartItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM cart_items WHERE id = $1 AND student_id = $2`, cartColumns)
	var item models.CartItem
	if err := r.db.GetContext(ctx, &item, query, itemID, studentID); err != nil {
		return nil, err
	}
	return &item, nil
}

// CountByStudent returns how many items sit in the student's cart.
func (r *CartRepository) CountByStudent(ctx context.Context, studentID string) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM cart_items WHERE student_id = $1`, studentID); err != nil {
		return 0, fmt.Errorf("count cart items: %w", err)
	}
	return total, nil
}

// Create inserts a new cart item.
func (r *CartRepository) Create(ctx context.Context, item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	const query = `INSERT INTO cart_items (id, student_id, vertical, business_id, business_name, subject_id, subject_name, batch_id, batch_name, schedule_days, time_slot, added_at)
        VALUES (:id, :student_id, :vertical, :business_id, :business_name, :subject_id, :subject_name, :batch_id, :batch_name, :schedule_days, :time_slot, :added_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create cart item: %w", err)
	}
	return nil
}

// Delete removes an item from the student's cart. It reports whether a row was removed.
func (r *CartRepository) Delete(ctx context.Context, studentID, itemID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1 AND student_id = $2`, itemID, studentID)
	if err != nil {
		return false, fmt.Errorf("delete cart item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete cart item rows: %w", err)
	}
	return affected > 0, nil
}
