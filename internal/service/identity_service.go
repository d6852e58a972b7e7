package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hostel_complaints/internal/metrics"
	"hostel_complaints/internal/model"
	"hostel_complaints/internal/repository"
	"hostel_complaints/internal/utils"
)

// IdentityService turns a token into the principal acting on a request
type IdentityService interface {
	Resolve(ctx context.Context, token string) (*model.Principal, error)
}

type identityService struct {
	store   *repository.Store
	jwtUtil *utils.JWTUtil
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(store *repository.Store, jwtUtil *utils.JWTUtil, logger *slog.Logger, m *metrics.Metrics) IdentityService {
	return &identityService{
		store:   store,
		jwtUtil: jwtUtil,
		logger:  logger,
		metrics: m,
	}
}

// Resolve decodes token and loads the caller's student or warden row.
// A validly signed token is never rejected because that row is missing:
// a placeholder row (and, if needed, a default block) is created instead.
func (s *identityService) Resolve(ctx context.Context, token string) (*model.Principal, error) {
	claims, err := s.jwtUtil.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	p := &model.Principal{UserID: claims.UserID, Role: claims.Role}
	switch claims.Role {
	case model.RoleStudent:
		p.Student, err = s.resolveStudent(ctx, claims.UserID)
	case model.RoleWarden:
		p.Warden, err = s.resolveWarden(ctx, claims.UserID)
	default:
		err = ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *identityService) resolveStudent(ctx context.Context, userID int) (*model.Student, error) {
	student, err := s.store.Profiles.FindStudent(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	if student != nil {
		return student, nil
	}

	s.logger.WarnContext(ctx, "no student record for user, creating one", "user_id", userID)
	err = s.store.WithTx(ctx, func(tx *repository.Store) error {
		blockID, err := tx.Blocks.EnsureDefault(ctx)
		if err != nil {
			return err
		}
		student, err = tx.Profiles.ProvisionStudent(ctx, userID, blockID)
		return err
	})
	if err == nil && student == nil {
		err = errors.New("student record missing after provisioning")
	}
	if err != nil {
		return nil, storeFailure(err)
	}

	s.metrics.ProfileRepairs.WithLabelValues(string(model.RoleStudent)).Inc()
	s.logger.InfoContext(ctx, "created missing student record", "user_id", userID, "block_id", student.BlockID)
	return student, nil
}

func (s *identityService) resolveWarden(ctx context.Context, userID int) (*model.Warden, error) {
	warden, err := s.store.Profiles.FindWarden(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	if warden != nil {
		return warden, nil
	}

	s.logger.WarnContext(ctx, "no warden record for user, creating one", "user_id", userID)
	err = s.store.WithTx(ctx, func(tx *repository.Store) error {
		blockID, err := tx.Blocks.EnsureDefault(ctx)
		if err != nil {
			return err
		}
		warden, err = tx.Profiles.ProvisionWarden(ctx, userID, blockID)
		return err
	})
	if err == nil && warden == nil {
		err = errors.New("warden record missing after provisioning")
	}
	if err != nil {
		return nil, storeFailure(err)
	}

	s.metrics.ProfileRepairs.WithLabelValues(string(model.RoleWarden)).Inc()
	s.logger.InfoContext(ctx, "created missing warden record", "user_id", userID, "block_id", warden.BlockID)
	return warden, nil
}
