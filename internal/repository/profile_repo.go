package repository

import (
	"context"
	"errors"
	"fmt"

	"hostel_complaints/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProfileRepository covers the role-specific student and warden rows
type ProfileRepository interface {
	FindStudent(ctx context.Context, id int) (*model.Student, error)
	FindWarden(ctx context.Context, id int) (*model.Warden, error)
	CreateStudent(ctx context.Context, s *model.Student) error
	CreateWarden(ctx context.Context, w *model.Warden) error
	ProvisionStudent(ctx context.Context, id, blockID int) (*model.Student, error)
	ProvisionWarden(ctx context.Context, id, blockID int) (*model.Warden, error)
}

type profileRepository struct {
	db DBTX
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db DBTX) ProfileRepository {
	return &profileRepository{db: db}
}

// FindStudent returns the student row, nil when absent
func (r *profileRepository) FindStudent(ctx context.Context, id int) (*model.Student, error) {
	s := &model.Student{}
	sql := `SELECT student_id, room, block_id, usn FROM student WHERE student_id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&s.ID, &s.Room, &s.BlockID, &s.USN)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return s, nil
}

// FindWarden returns the warden row, nil when absent
func (r *profileRepository) FindWarden(ctx context.Context, id int) (*model.Warden, error) {
	w := &model.Warden{}
	sql := `SELECT warden_id, block_id FROM warden WHERE warden_id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&w.ID, &w.BlockID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find warden: %w", err)
	}
	return w, nil
}

func (r *profileRepository) CreateStudent(ctx context.Context, s *model.Student) error {
	sql := `INSERT INTO student (student_id, block_id, usn, room) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.Exec(ctx, sql, s.ID, s.BlockID, s.USN, s.Room); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create student: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (r *profileRepository) CreateWarden(ctx context.Context, w *model.Warden) error {
	sql := `INSERT INTO warden (warden_id, block_id) VALUES ($1, $2)`
	if _, err := r.db.Exec(ctx, sql, w.ID, w.BlockID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create warden: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create warden: %w", err)
	}
	return nil
}

// ProvisionStudent inserts a placeholder student row unless one already
// exists and returns whichever row ends up stored.
func (r *profileRepository) ProvisionStudent(ctx context.Context, id, blockID int) (*model.Student, error) {
	s := &model.Student{}
	sql := `INSERT INTO student (student_id, room, block_id) VALUES ($1, $2, $3)
            ON CONFLICT (student_id) DO NOTHING
            RETURNING student_id, room, block_id, usn`
	err := r.db.QueryRow(ctx, sql, id, model.UnassignedRoom, blockID).Scan(&s.ID, &s.Room, &s.BlockID, &s.USN)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to provision student: %w", err)
	}
	return r.FindStudent(ctx, id)
}

// ProvisionWarden is ProvisionStudent for wardens
func (r *profileRepository) ProvisionWarden(ctx context.Context, id, blockID int) (*model.Warden, error) {
	w := &model.Warden{}
	sql := `INSERT INTO warden (warden_id, block_id) VALUES ($1, $2)
            ON CONFLICT (warden_id) DO NOTHING
            RETURNING warden_id, block_id`
	err := r.db.QueryRow(ctx, sql, id, blockID).Scan(&w.ID, &w.BlockID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to provision warden: %w", err)
	}
	return r.FindWarden(ctx, id)
}
