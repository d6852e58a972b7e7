package service

import (
	"context"

	"hostel_complaints/internal/model"

	"github.com/stretchr/testify/mock"
)

type mockComplaintRepo struct {
	mock.Mock
}

func (m *mockComplaintRepo) Create(ctx context.Context, c *model.Complaint) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = 1
	}
	return args.Error(0)
}

func (m *mockComplaintRepo) FindAll(ctx context.Context) ([]model.Complaint, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Complaint), args.Error(1)
}

func (m *mockComplaintRepo) FindByStudent(ctx context.Context, studentID int) ([]model.Complaint, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]model.Complaint), args.Error(1)
}

func (m *mockComplaintRepo) ToggleCompleted(ctx context.Context, id int64) (*model.Complaint, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Complaint)
	return c, args.Error(1)
}

func (m *mockComplaintRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindStudentDetails(ctx context.Context, id int) (*model.UserDetails, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*model.UserDetails)
	return d, args.Error(1)
}

func (m *mockUserRepo) FindWardenDetails(ctx context.Context, id int) (*model.UserDetails, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*model.UserDetails)
	return d, args.Error(1)
}

type mockBlockRepo struct {
	mock.Mock
}

func (m *mockBlockRepo) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockBlockRepo) List(ctx context.Context) ([]model.Block, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).([]model.Block)
	return b, args.Error(1)
}

func (m *mockBlockRepo) EnsureDefault(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
