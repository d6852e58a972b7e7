package repository

import (
	"context"
	"errors"
	"fmt"

	"hostel_complaints/internal/model"

	"github.com/jackc/pgx/v5"
)

// ComplaintRepository defines operations for complaint data
type ComplaintRepository interface {
	Create(ctx context.Context, c *model.Complaint) error
	FindAll(ctx context.Context) ([]model.Complaint, error)
	FindByStudent(ctx context.Context, studentID int) ([]model.Complaint, error)
	ToggleCompleted(ctx context.Context, id int64) (*model.Complaint, error)
	Delete(ctx context.Context, id int64) error
}

type complaintRepository struct {
	db DBTX
}

// NewComplaintRepository creates a new ComplaintRepository
func NewComplaintRepository(db DBTX) ComplaintRepository {
	return &complaintRepository{db: db}
}

const complaintColumns = `id, name, description, COALESCE(room, ''), COALESCE(block_id, 0), COALESCE(student_id, 0), is_completed, created_at, assigned_at`

// Create inserts a new complaint and fills in the generated fields
func (r *complaintRepository) Create(ctx context.Context, c *model.Complaint) error {
	sql := `INSERT INTO complaint (name, block_id, student_id, description, room, is_completed, created_at, assigned_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, c.Name, c.BlockID, c.StudentID, c.Description, c.Room, c.IsCompleted, c.CreatedAt, c.AssignedAt).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

// FindAll returns every complaint, newest first
func (r *complaintRepository) FindAll(ctx context.Context) ([]model.Complaint, error) {
	sql := `SELECT ` + complaintColumns + ` FROM complaint ORDER BY created_at DESC, id DESC`
	return r.query(ctx, sql)
}

// FindByStudent returns the complaints one student filed, newest first
func (r *complaintRepository) FindByStudent(ctx context.Context, studentID int) ([]model.Complaint, error) {
	sql := `SELECT ` + complaintColumns + ` FROM complaint WHERE student_id = $1 ORDER BY created_at DESC, id DESC`
	return r.query(ctx, sql, studentID)
}

// ToggleCompleted flips is_completed and stamps assigned_at. Returns nil
// when no complaint has that id.
func (r *complaintRepository) ToggleCompleted(ctx context.Context, id int64) (*model.Complaint, error) {
	sql := `UPDATE complaint SET is_completed = NOT is_completed, assigned_at = CURRENT_TIMESTAMP
            WHERE id = $1 RETURNING ` + complaintColumns
	c := &model.Complaint{}
	err := scanComplaint(r.db.QueryRow(ctx, sql, id), c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to toggle complaint: %w", err)
	}
	return c, nil
}

// Delete removes a complaint. Deleting a missing id is not an error.
func (r *complaintRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM complaint WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete complaint: %w", err)
	}
	return nil
}

func (r *complaintRepository) query(ctx context.Context, sql string, args ...any) ([]model.Complaint, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer rows.Close()

	complaints := []model.Complaint{}
	for rows.Next() {
		var c model.Complaint
		if err := scanComplaint(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan complaint row: %w", err)
		}
		complaints = append(complaints, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating complaint rows: %w", err)
	}
	return complaints, nil
}

func scanComplaint(row pgx.Row, c *model.Complaint) error {
	return row.Scan(&c.ID, &c.Name, &c.Description, &c.Room, &c.BlockID, &c.StudentID, &c.IsCompleted, &c.CreatedAt, &c.AssignedAt)
}
