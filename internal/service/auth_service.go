package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"hostel_complaints/internal/model"
	"hostel_complaints/internal/repository"
	"hostel_complaints/internal/utils"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// AuthService provides registration and login
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	store   *repository.Store
	jwtUtil *utils.JWTUtil
	logger  *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(store *repository.Store, jwtUtil *utils.JWTUtil, logger *slog.Logger) AuthService {
	return &authService{
		store:   store,
		jwtUtil: jwtUtil,
		logger:  logger,
	}
}

// Register creates the user row and its role row in one transaction and
// returns a token for the new account.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	req.Email = normalizeEmail(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.USN = strings.TrimSpace(req.USN)
	req.Room = strings.TrimSpace(req.Room)
	s.logger.DebugContext(ctx, "registering user", "email", req.Email)

	var user *model.User
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		existing, err := tx.Users.FindByEmail(ctx, req.Email)
		if err != nil {
			return storeFailure(err)
		}
		if existing != nil {
			return ErrDuplicateUser
		}

		if err := validateRegistration(req); err != nil {
			return err
		}
		role, err := model.ParseRole(req.Role)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRole, err)
		}

		hashedPassword, err := utils.HashPassword(req.Password)
		if err != nil {
			return err
		}

		u := &model.User{
			FullName:     req.FullName,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: hashedPassword,
			Role:         role,
		}
		if err := tx.Users.Create(ctx, u); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrDuplicateUser
			}
			return storeFailure(err)
		}

		switch role {
		case model.RoleStudent:
			err = s.createStudent(ctx, tx, u.ID, req)
		case model.RoleWarden:
			err = s.createWarden(ctx, tx, u.ID, req)
		}
		if err != nil {
			return err
		}

		user = u
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			s.logger.WarnContext(ctx, "registration rejected, user already exists", "email", req.Email)
		}
		return nil, "", err
	}
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}
	return user, token, nil
}

func (s *authService) createStudent(ctx context.Context, tx *repository.Store, userID int, req model.RegisterRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.BlockID, validation.Required),
		validation.Field(&req.USN, validation.Required),
		validation.Field(&req.Room, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: student registration requires block_id, usn and room: %w", ErrValidation, err)
	}
	if err := s.checkBlock(ctx, tx, *req.BlockID); err != nil {
		return err
	}

	usn := req.USN
	student := &model.Student{ID: userID, BlockID: *req.BlockID, USN: &usn, Room: req.Room}
	if err := tx.Profiles.CreateStudent(ctx, student); err != nil {
		return storeFailure(err)
	}
	return nil
}

func (s *authService) createWarden(ctx context.Context, tx *repository.Store, userID int, req model.RegisterRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.BlockID, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: warden registration requires block_id: %w", ErrValidation, err)
	}
	if err := s.checkBlock(ctx, tx, *req.BlockID); err != nil {
		return err
	}

	if err := tx.Profiles.CreateWarden(ctx, &model.Warden{ID: userID, BlockID: *req.BlockID}); err != nil {
		return storeFailure(err)
	}
	return nil
}

func (s *authService) checkBlock(ctx context.Context, tx *repository.Store, blockID int) error {
	ok, err := tx.Blocks.Exists(ctx, blockID)
	if err != nil {
		return storeFailure(err)
	}
	if !ok {
		return fmt.Errorf("%w: block with id %d does not exist", ErrUnknownBlock, blockID)
	}
	return nil
}

// Login authenticates a user and returns a JWT token. Unknown email and
// wrong password are reported identically.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)

	user, err := s.store.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", storeFailure(err)
	}
	if user == nil {
		s.logger.WarnContext(ctx, "login failed, unknown email", "email", email)
		return nil, "", ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.logger.WarnContext(ctx, "login failed, password mismatch", "email", email)
		return nil, "", ErrInvalidCredentials
	}

	var found bool
	switch user.Role {
	case model.RoleStudent:
		student, err := s.store.Profiles.FindStudent(ctx, user.ID)
		if err != nil {
			return nil, "", storeFailure(err)
		}
		found = student != nil
	case model.RoleWarden:
		warden, err := s.store.Profiles.FindWarden(ctx, user.ID)
		if err != nil {
			return nil, "", storeFailure(err)
		}
		found = warden != nil
	}
	if !found {
		s.logger.ErrorContext(ctx, "login failed, no role record for user", "user_id", user.ID, "role", user.Role)
		return nil, "", ErrAccountSetupIncomplete
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

func validateRegistration(req model.RegisterRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.FullName, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Required),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Role, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
