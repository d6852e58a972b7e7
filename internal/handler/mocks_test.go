package handler

import (
	"context"
	"io"
	"log/slog"

	"hostel_complaints/internal/middleware"
	"hostel_complaints/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withPrincipal stands in for the auth middleware
func withPrincipal(p *model.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			c.Set(middleware.AuthPrincipalKey, p)
		}
		c.Next()
	}
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*model.User)
	return u, args.String(1), args.Error(2)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(0).(*model.User)
	return u, args.String(1), args.Error(2)
}

type mockComplaintService struct {
	mock.Mock
}

func (m *mockComplaintService) Create(ctx context.Context, p *model.Principal, req model.CreateComplaintRequest) (*model.Complaint, error) {
	args := m.Called(ctx, p, req)
	c, _ := args.Get(0).(*model.Complaint)
	return c, args.Error(1)
}

func (m *mockComplaintService) Toggle(ctx context.Context, p *model.Principal, id int64) (*model.Complaint, error) {
	args := m.Called(ctx, p, id)
	c, _ := args.Get(0).(*model.Complaint)
	return c, args.Error(1)
}

func (m *mockComplaintService) List(ctx context.Context, p *model.Principal) ([]model.Complaint, error) {
	args := m.Called(ctx, p)
	cs, _ := args.Get(0).([]model.Complaint)
	return cs, args.Error(1)
}

func (m *mockComplaintService) Remove(ctx context.Context, p *model.Principal, id int64) error {
	return m.Called(ctx, p, id).Error(0)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Details(ctx context.Context, p *model.Principal) (*model.UserDetails, error) {
	args := m.Called(ctx, p)
	d, _ := args.Get(0).(*model.UserDetails)
	return d, args.Error(1)
}

func (m *mockUserService) Blocks(ctx context.Context) ([]model.Block, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).([]model.Block)
	return b, args.Error(1)
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}
