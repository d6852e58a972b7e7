package service

import (
	"context"

	"hostel_complaints/internal/model"
	"hostel_complaints/internal/repository"
)

// UserService exposes the caller's own profile and the block directory
type UserService interface {
	Details(ctx context.Context, p *model.Principal) (*model.UserDetails, error)
	Blocks(ctx context.Context) ([]model.Block, error)
}

type userService struct {
	users  repository.UserRepository
	blocks repository.BlockRepository
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository, blocks repository.BlockRepository) UserService {
	return &userService{users: users, blocks: blocks}
}

func (s *userService) Details(ctx context.Context, p *model.Principal) (*model.UserDetails, error) {
	var (
		details *model.UserDetails
		err     error
	)
	switch p.Role {
	case model.RoleStudent:
		details, err = s.users.FindStudentDetails(ctx, p.UserID)
	case model.RoleWarden:
		details, err = s.users.FindWardenDetails(ctx, p.UserID)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	if details == nil {
		return nil, ErrAccountSetupIncomplete
	}
	return details, nil
}

func (s *userService) Blocks(ctx context.Context) ([]model.Block, error) {
	blocks, err := s.blocks.List(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}
	return blocks, nil
}
