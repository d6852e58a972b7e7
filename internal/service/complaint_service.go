package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hostel_complaints/internal/model"
	"hostel_complaints/internal/repository"
)

// ComplaintService defines operations for complaints
type ComplaintService interface {
	Create(ctx context.Context, p *model.Principal, req model.CreateComplaintRequest) (*model.Complaint, error)
	Toggle(ctx context.Context, p *model.Principal, complaintID int64) (*model.Complaint, error)
	List(ctx context.Context, p *model.Principal) ([]model.Complaint, error)
	Remove(ctx context.Context, p *model.Principal, complaintID int64) error
}

type complaintService struct {
	repo repository.ComplaintRepository
}

// NewComplaintService creates a new ComplaintService
func NewComplaintService(repo repository.ComplaintRepository) ComplaintService {
	return &complaintService{repo: repo}
}

// Create files a complaint for a student against their own block. The
// student's recorded room is used when the request leaves room empty.
func (s *complaintService) Create(ctx context.Context, p *model.Principal, req model.CreateComplaintRequest) (*model.Complaint, error) {
	if p.Role != model.RoleStudent || p.Student == nil {
		return nil, ErrForbidden
	}

	room := strings.TrimSpace(req.Room)
	if room == "" {
		room = p.Student.Room
	}

	complaint := &model.Complaint{
		Name:        req.Name,
		Description: req.Description,
		Room:        room,
		BlockID:     p.Student.BlockID,
		StudentID:   p.Student.ID,
		IsCompleted: false,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, storeFailure(err)
	}
	return complaint, nil
}

func (s *complaintService) Toggle(ctx context.Context, p *model.Principal, complaintID int64) (*model.Complaint, error) {
	if p.Role != model.RoleWarden {
		return nil, ErrForbidden
	}

	complaint, err := s.repo.ToggleCompleted(ctx, complaintID)
	if err != nil {
		return nil, storeFailure(err)
	}
	if complaint == nil {
		return nil, ErrComplaintNotFound
	}
	return complaint, nil
}

// List returns every complaint to wardens and only their own to students,
// newest first in both cases.
func (s *complaintService) List(ctx context.Context, p *model.Principal) ([]model.Complaint, error) {
	var (
		complaints []model.Complaint
		err        error
	)
	switch p.Role {
	case model.RoleWarden:
		complaints, err = s.repo.FindAll(ctx)
	case model.RoleStudent:
		complaints, err = s.repo.FindByStudent(ctx, p.UserID)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, storeFailure(fmt.Errorf("failed to list complaints: %w", err))
	}
	return complaints, nil
}

func (s *complaintService) Remove(ctx context.Context, p *model.Principal, complaintID int64) error {
	if p.Role != model.RoleWarden {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, complaintID); err != nil {
		return storeFailure(err)
	}
	return nil
}
