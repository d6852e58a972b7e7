package service

import (
	"context"
	"errors"
	"testing"

	"hostel_complaints/internal/model"
	"hostel_complaints/internal/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	userCols    = []string{"user_id", "full_name", "email", "phone", "password", "role"}
	studentCols = []string{"student_id", "room", "block_id", "usn"}
	wardenCols  = []string{"warden_id", "block_id"}
)

func studentRequest() model.RegisterRequest {
	return model.RegisterRequest{
		FullName: "Asha Rao",
		Email:    "Asha@Hostel.test",
		Phone:    "9000000001",
		Password: "s3cret-pass",
		Role:     "student",
		BlockID:  intPtr(1),
		USN:      "1XX21CS001",
		Room:     "A-101",
	}
}

func expectNoUser(mock pgxmock.PgxPoolIface, email string) {
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").WithArgs(email).WillReturnRows(pgxmock.NewRows(userCols))
}

func TestAuthService_Register_Student(t *testing.T) {
	mock, store := newMockStore(t)
	jwtUtil := newTestJWT()
	svc := NewAuthService(store, jwtUtil, discardLogger())

	mock.ExpectBegin()
	expectNoUser(mock, "asha@hostel.test")
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Asha Rao", "asha@hostel.test", "9000000001", pgxmock.AnyArg(), "student").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(21))
	mock.ExpectQuery("SELECT EXISTS").WithArgs(1).WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("INSERT INTO student").
		WithArgs(21, 1, pgxmock.AnyArg(), "A-101").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	user, token, err := svc.Register(context.Background(), studentRequest())
	require.NoError(t, err)
	assert.Equal(t, 21, user.ID)
	assert.Equal(t, model.RoleStudent, user.Role)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	claims, err := jwtUtil.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 21, claims.UserID)
	assert.Equal(t, model.RoleStudent, claims.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Register_Warden(t *testing.T) {
	mock, store := newMockStore(t)
	svc := NewAuthService(store, newTestJWT(), discardLogger())

	req := model.RegisterRequest{FullName: "Ravi K", Email: "ravi@hostel.test", Phone: "9000000002", Password: "pw", Role: "warden", BlockID: intPtr(1)}

	mock.ExpectBegin()
	expectNoUser(mock, "ravi@hostel.test")
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Ravi K", "ravi@hostel.test", "9000000002", pgxmock.AnyArg(), "warden").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(5))
	mock.ExpectQuery("SELECT EXISTS").WithArgs(1).WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("INSERT INTO warden").WithArgs(5, 1).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	user, token, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.RoleWarden, user.Role)
	assert.NotEmpty(t, token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	mock, store := newMockStore(t)
	svc := NewAuthService(store, newTestJWT(), discardLogger())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("asha@hostel.test").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(3, "Asha Rao", "asha@hostel.test", "9000000001", "hash", "student"))
	mock.ExpectRollback()

	_, _, err := svc.Register(context.Background(), studentRequest())
	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Register_DuplicateOnInsertRace(t *testing.T) {
	mock, store := newMockStore(t)
	svc := NewAuthService(store, newTestJWT(), discardLogger())

	mock.ExpectBegin()
	expectNoUser(mock, "asha@hostel.test")
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, _, err := svc.Register(context.Background(), studentRequest())
	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *model.RegisterRequest)
		wantMsg string
	}{
		{"empty phone", func(req *model.RegisterRequest) { req.Phone = "" }, "phone"},
		{"blank phone", func(req *model.RegisterRequest) { req.Phone = "  \t" }, "phone"},
		{"blank full name", func(req *model.RegisterRequest) { req.FullName = "   " }, "full_name"},
		{"empty password", func(req *model.RegisterRequest) { req.Password = "" }, "password"},
		{"malformed email", func(req *model.RegisterRequest) { req.Email = "not-an-email" }, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, store := newMockStore(t)
			svc := NewAuthService(store, newTestJWT(), discardLogger())

			req := studentRequest()
			tt.mutate(&req)

			mock.ExpectBegin()
			expectNoUser(mock, normalizeEmail(req.Email))
			mock.ExpectRollback()

			_, _, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	mock, store := newMockStore(t)
	svc := NewAuthService(store, newTestJWT(), discardLogger())

	req := studentRequest()
	req.Role = "janitor"

	mock.ExpectBegin()
	expectNoUser(mock, "asha@hostel.test")
	mock.ExpectRollback()

	_, _, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Register_StudentMissingRoleFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *model.RegisterRequest)
		wantMsg string
	}{
		{"empty usn", func(req *model.RegisterRequest) { req.USN = "" }, "usn"},
		{"blank room", func(req *model.RegisterRequest) { req.Room = "   " }, "room"},
		{"missing block", func(req *model.RegisterRequest) { req.BlockID = nil }, "block_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, store := newMockStore(t)
			svc := NewAuthService(store, newTestJWT(), discardLogger())

			req := studentRequest()
			tt.mutate(&req)

			mock.ExpectBegin()
			expectNoUser(mock, "asha@hostel.test")
			mock.ExpectQuery("INSERT INTO users").
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(21))
			mock.ExpectRollback()

			_, _, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAuthService_Register_UnknownBlockRollsBackUser(t *testing.T) {
	mock, store := newMockStore(t)
	svc := NewAuthService(store, newTestJWT(), discardLogger())

	req := studentRequest()
	req.BlockID = intPtr(77)

	mock.ExpectBegin()
	expectNoUser(mock, "asha@hostel.test")
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(21))
	mock.ExpectQuery("SELECT EXISTS").WithArgs(77).WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, _, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownBlock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	mock, store := newMockStore(t)
	svc := NewAuthService(store, newTestJWT(), discardLogger())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").WithArgs("asha@hostel.test").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, _, err := svc.Register(context.Background(), studentRequest())
	assert.ErrorIs(t, err, ErrStoreFailure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Login_Student(t *testing.T) {
	mock, store := newMockStore(t)
	jwtUtil := newTestJWT()
	svc := NewAuthService(store, jwtUtil, discardLogger())

	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("asha@hostel.test").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(21, "Asha Rao", "asha@hostel.test", "9000000001", hash, "student"))
	mock.ExpectQuery("FROM student WHERE student_id").
		WithArgs(21).
		WillReturnRows(pgxmock.NewRows(studentCols).AddRow(21, "A-101", 1, (*string)(nil)))

	user, token, err := svc.Login(context.Background(), " ASHA@hostel.test ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, 21, user.ID)

	claims, err := jwtUtil.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, claims.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// capturedString records the value a query argument was called with
type capturedString struct {
	value *string
}

func (c capturedString) Match(v any) bool {
	s, ok := v.(string)
	if ok {
		*c.value = s
	}
	return ok
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	mock, store := newMockStore(t)
	jwtUtil := newTestJWT()
	svc := NewAuthService(store, jwtUtil, discardLogger())

	var storedHash string
	mock.ExpectBegin()
	expectNoUser(mock, "asha@hostel.test")
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Asha Rao", "asha@hostel.test", "9000000001", capturedString{&storedHash}, "student").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(21))
	mock.ExpectQuery("SELECT EXISTS").WithArgs(1).WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("INSERT INTO student").
		WithArgs(21, 1, pgxmock.AnyArg(), "A-101").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	registered, _, err := svc.Register(context.Background(), studentRequest())
	require.NoError(t, err)
	require.NotEmpty(t, storedHash)

	usn := "1XX21CS001"
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("asha@hostel.test").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(21, "Asha Rao", "asha@hostel.test", "9000000001", storedHash, "student"))
	mock.ExpectQuery("FROM student WHERE student_id").
		WithArgs(21).
		WillReturnRows(pgxmock.NewRows(studentCols).AddRow(21, "A-101", 1, &usn))

	user, token, err := svc.Login(context.Background(), "Asha@Hostel.test", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := jwtUtil.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.Role, claims.Role)
	assert.Equal(t, 21, claims.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	mock, store := newMockStore(t)
	svc := NewAuthService(store, newTestJWT(), discardLogger())

	hash, err := utils.HashPassword("right")
	require.NoError(t, err)

	expectNoUser(mock, "ghost@hostel.test")
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("asha@hostel.test").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(21, "Asha Rao", "asha@hostel.test", "9000000001", hash, "student"))

	_, _, errUnknown := svc.Login(context.Background(), "ghost@hostel.test", "right")
	_, _, errWrong := svc.Login(context.Background(), "asha@hostel.test", "wrong")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Login_AccountSetupIncomplete(t *testing.T) {
	mock, store := newMockStore(t)
	svc := NewAuthService(store, newTestJWT(), discardLogger())

	hash, err := utils.HashPassword("pw")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("ravi@hostel.test").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(5, "Ravi K", "ravi@hostel.test", "9000000002", hash, "warden"))
	mock.ExpectQuery("FROM warden WHERE warden_id").WithArgs(5).WillReturnRows(pgxmock.NewRows(wardenCols))

	_, _, err = svc.Login(context.Background(), "ravi@hostel.test", "pw")
	assert.ErrorIs(t, err, ErrAccountSetupIncomplete)
	assert.NoError(t, mock.ExpectationsWereMet())
}
