package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/studentportal/portal-api/internal/models"
)

// NotificationRepository manages persistence for payment-request
// notifications. Rows keep creation order so legacy index addressing maps
// onto a stable ordering.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs a NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type notificationRow struct {
	ID            string          `db:"id"`
	StudentCode   string          `db:"student_code"`
	Message       string          `db:"message"`
	Timestamp     string          `db:"timestamp"`
	ResponseHours sql.NullFloat64 `db:"response_hours"`
	ResponsePrice sql.NullFloat64 `db:"response_price"`
	ResponseTotal sql.NullString  `db:"response_total"`
	Paid          bool            `db:"paid"`
}

func (row notificationRow) toModel() models.Notification {
	n := models.Notification{
		ID:          row.ID,
		StudentCode: row.StudentCode,
		Message:     row.Message,
		Timestamp:   row.Timestamp,
		Paid:        row.Paid,
	}
	if row.ResponseHours.Valid {
		n.Response = &models.NotificationResponse{
			Hours: row.ResponseHours.Float64,
			Price: row.ResponsePrice.Float64,
			Total: row.ResponseTotal.String,
		}
	}
	return n
}

const notificationColumns = `id, student_code, message, timestamp, response_hours, response_price, response_total, paid`

// List returns every notification in creation order.
func (r *NotificationRepository) List(ctx context.Context) ([]models.Notification, error) {
	query := fmt.Sprintf(`SELECT %s FROM notifications ORDER BY created_at, id`, notificationColumns)
	var rows []notificationRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	out := make([]models.Notification, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, nil
}

// CreateIfNoPending inserts a notification unless the student already has an
// unanswered one. A per-student advisory lock held for the transaction
// serializes concurrent creates, so the pending check cannot race another
// insert at read-committed isolation. It returns false when a pending request
// blocked the insert.
func (r *NotificationRepository) CreateIfNoPending(ctx context.Context, n *models.Notification) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin create: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, n.StudentCode); err != nil {
		return false, fmt.Errorf("lock student: %w", err)
	}

	var pending bool
	check := `SELECT EXISTS(SELECT 1 FROM notifications WHERE student_code = $1 AND response_hours IS NULL)`
	if err := tx.GetContext(ctx, &pending, check, n.StudentCode); err != nil {
		return false, fmt.Errorf("check pending: %w", err)
	}
	if pending {
		return false, nil
	}

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	insert := `INSERT INTO notifications (id, student_code, message, timestamp, paid, created_at)
        VALUES ($1, $2, $3, $4, FALSE, $5)`
	if _, err := tx.ExecContext(ctx, insert, n.ID, n.StudentCode, n.Message, n.Timestamp, time.Now().UTC()); err != nil {
		return false, fmt.Errorf("insert notification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit create: %w", err)
	}
	return true, nil
}

// FindByID fetches one notification. Returns sql.ErrNoRows when absent.
func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE id = $1`, notificationColumns)
	var row notificationRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	n := row.toModel()
	return &n, nil
}

// FindByIndex resolves legacy positional addressing against the creation
// ordering. Returns sql.ErrNoRows when the index is out of range.
func (r *NotificationRepository) FindByIndex(ctx context.Context, index int) (*models.Notification, error) {
	if index < 0 {
		return nil, sql.ErrNoRows
	}
	query := fmt.Sprintf(`SELECT %s FROM notifications ORDER BY created_at, id OFFSET $1 LIMIT 1`, notificationColumns)
	var row notificationRow
	if err := r.db.GetContext(ctx, &row, query, index); err != nil {
		return nil, err
	}
	n := row.toModel()
	return &n, nil
}

// SetResponse records the organizer's quote. The guard keeps the
// Created -> Responded transition single-shot; false means the row was
// already responded to (or vanished).
func (r *NotificationRepository) SetResponse(ctx context.Context, id string, resp models.NotificationResponse) (bool, error) {
	query := `UPDATE notifications
        SET response_hours = $2, response_price = $3, response_total = $4
        WHERE id = $1 AND response_hours IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, resp.Hours, resp.Price, resp.Total)
	if err != nil {
		return false, fmt.Errorf("set response: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set response result: %w", err)
	}
	return affected == 1, nil
}

// SetPaid marks a responded notification as paid. false means no responded
// row matched.
func (r *NotificationRepository) SetPaid(ctx context.Context, id string) (bool, error) {
	query := `UPDATE notifications SET paid = TRUE
        WHERE id = $1 AND response_hours IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("set paid: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set paid result: %w", err)
	}
	return affected == 1, nil
}
