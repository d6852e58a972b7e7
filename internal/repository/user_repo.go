package repository

import (
	"context"
	"errors"
	"fmt"

	"hostel_complaints/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindStudentDetails(ctx context.Context, id int) (*model.UserDetails, error)
	FindWardenDetails(ctx context.Context, id int) (*model.UserDetails, error)
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user and fills in its generated ID
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (full_name, email, phone, password, role)
            VALUES ($1, $2, $3, $4, $5) RETURNING user_id`
	err := r.db.QueryRow(ctx, sql, user.FullName, user.Email, user.Phone, user.PasswordHash, string(user.Role)).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create user: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email, nil when there is none
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	sql := `SELECT user_id, full_name, email, phone, password, role FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, email))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindStudentDetails joins a student's account, profile and block
func (r *userRepository) FindStudentDetails(ctx context.Context, id int) (*model.UserDetails, error) {
	d := &model.UserDetails{}
	sql := `SELECT u.full_name, u.email, u.phone, s.usn, b.block_id, b.block_name, s.room
            FROM users u
            JOIN student s ON u.user_id = s.student_id
            JOIN block b ON s.block_id = b.block_id
            WHERE u.user_id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&d.FullName, &d.Email, &d.Phone, &d.USN, &d.BlockID, &d.BlockName, &d.Room)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find student details: %w", err)
	}
	return d, nil
}

// FindWardenDetails joins a warden's account and block
func (r *userRepository) FindWardenDetails(ctx context.Context, id int) (*model.UserDetails, error) {
	d := &model.UserDetails{}
	sql := `SELECT u.full_name, u.email, u.phone, b.block_id, b.block_name
            FROM users u
            JOIN warden w ON u.user_id = w.warden_id
            JOIN block b ON w.block_id = b.block_id
            WHERE u.user_id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&d.FullName, &d.Email, &d.Phone, &d.BlockID, &d.BlockName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find warden details: %w", err)
	}
	return d, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	var role string
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.Phone, &user.PasswordHash, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // not found is not an error here, the service layer decides
		}
		return nil, err
	}
	user.Role = model.Role(role)
	return user, nil
}
