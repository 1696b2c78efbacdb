package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kadpoly-ict/ards-api/internal/models"
)

const pendingResultColumns = `r.id, r.student_id, r.course_id, r.score, r.grade, r.remarks, r.status, r.created_at, r.sent_at,
        s.full_name AS student_name, s.email AS student_email, c.code AS course_code, c.name AS course_name`

// ResultRepository handles result record persistence.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new result repository.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// ListPending returns every pending result joined with student and course
// display fields, in creation order.
func (r *ResultRepository) ListPending(ctx context.Context) ([]models.PendingResult, error) {
	query := `SELECT ` + pendingResultColumns + `
        FROM results r
        JOIN students s ON s.id = r.student_id
        JOIN courses c ON c.id = r.course_id
        WHERE r.status = $1
        ORDER BY r.created_at ASC, r.id ASC`
	var results []models.PendingResult
	if err := r.db.SelectContext(ctx, &results, query, models.ResultStatusPending); err != nil {
		return nil, fmt.Errorf("list pending results: %w", err)
	}
	return results, nil
}

// ListPendingForStudent returns one student's pending results in creation order.
func (r *ResultRepository) ListPendingForStudent(ctx context.Context, studentID string) ([]models.PendingResult, error) {
	query := `SELECT ` + pendingResultColumns + `
        FROM results r
        JOIN students s ON s.id = r.student_id
        JOIN courses c ON c.id = r.course_id
        WHERE r.status = $1 AND r.student_id = $2
        ORDER BY r.created_at ASC, r.id ASC`
	var results []models.PendingResult
	if err := r.db.SelectContext(ctx, &results, query, models.ResultStatusPending, studentID); err != nil {
		return nil, fmt.Errorf("list pending results for student %s: %w", studentID, err)
	}
	return results, nil
}

// UpdateStatus transitions the listed records out of pending. The condition on
// the current status keeps sent terminal when two dispatchers race over the
// same records.
func (r *ResultRepository) UpdateStatus(ctx context.Context, ids []string, status models.ResultStatus, sentAt *time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(
		`UPDATE results SET status = ?, sent_at = ? WHERE id IN (?) AND status = ?`,
		status, sentAt, ids, models.ResultStatusPending,
	)
	if err != nil {
		return fmt.Errorf("build status update: %w", err)
	}
	query = r.db.Rebind(query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update result status: %w", err)
	}
	return nil
}

// Requeue flips failed records back to pending so a later dispatch run picks
// them up again.
func (r *ResultRepository) Requeue(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(
		`UPDATE results SET status = ?, sent_at = NULL WHERE id IN (?) AND status = ?`,
		models.ResultStatusPending, ids, models.ResultStatusFailed,
	)
	if err != nil {
		return 0, fmt.Errorf("build requeue update: %w", err)
	}
	query = r.db.Rebind(query)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("requeue results: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("requeue rows affected: %w", err)
	}
	return int(affected), nil
}

// Create inserts a new result record in pending state.
func (r *ResultRepository) Create(ctx context.Context, record *models.ResultRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Status == "" {
		record.Status = models.ResultStatusPending
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO results (id, student_id, course_id, score, grade, remarks, status, created_at)
        VALUES (:id, :student_id, :course_id, :score, :grade, :remarks, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create result: %w", err)
	}
	return nil
}

// List returns result register rows matching the filter with a total count.
func (r *ResultRepository) List(ctx context.Context, filter models.ResultFilter) ([]models.ResultDetail, int, error) {
	base := ` FROM results r
        JOIN students s ON s.id = r.student_id
        JOIN courses c ON c.id = r.course_id
        WHERE 1=1`
	var args []interface{}
	if filter.Search != "" {
		base += fmt.Sprintf(" AND (s.full_name ILIKE $%d OR s.email ILIKE $%d OR s.regno ILIKE $%d OR c.code ILIKE $%d)",
			len(args)+1, len(args)+1, len(args)+1, len(args)+1)
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.StudentID != "" {
		base += fmt.Sprintf(" AND r.student_id = $%d", len(args)+1)
		args = append(args, filter.StudentID)
	}
	if filter.Status != "" {
		base += fmt.Sprintf(" AND r.status = $%d", len(args)+1)
		args = append(args, filter.Status)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*)"+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count results: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	query := `SELECT r.id, r.student_id, r.course_id, r.score, r.grade, r.remarks, r.status, r.created_at, r.sent_at,
        s.full_name AS student_name, s.email AS student_email, s.regno, c.code AS course_code, c.name AS course_name` +
		base + fmt.Sprintf(" ORDER BY r.created_at DESC LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)

	var rows []models.ResultDetail
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list results: %w", err)
	}
	return rows, total, nil
}

// Delete removes a result record.
func (r *ResultRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM results WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStatus aggregates the register by lifecycle state.
func (r *ResultRepository) CountByStatus(ctx context.Context) (*models.DashboardStats, error) {
	const query = `SELECT
        COUNT(*) AS total,
        COUNT(*) FILTER (WHERE status = 'sent') AS sent,
        COUNT(*) FILTER (WHERE status = 'pending') AS pending,
        COUNT(*) FILTER (WHERE status = 'failed') AS failed
        FROM results`
	var stats models.DashboardStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("count results by status: %w", err)
	}
	stats.GeneratedAt = time.Now().UTC()
	return &stats, nil
}
