package auth

import (
	"context"
	"database/sql"
	"testing"

	autherrors "go-absensi/internal/auth/errors"
	"go-absensi/internal/employee"
	"go-absensi/internal/token"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byID    map[uuid.UUID]*User
	byEmail map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*User),
		byEmail: make(map[string]*User),
	}
}

func (f *fakeUserRepo) WithTx(_ *sql.Tx) Repository { return f }

func (f *fakeUserRepo) Create(_ context.Context, user *User) error {
	if user.Email != nil {
		if _, exists := f.byEmail[*user.Email]; exists {
			return gorm.ErrDuplicatedKey
		}
		f.byEmail[*user.Email] = user
	}
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *User) error {
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindResetRequested(_ context.Context) ([]User, error) {
	var users []User
	for _, u := range f.byID {
		if u.ResetRequestedAt != nil {
			users = append(users, *u)
		}
	}
	return users, nil
}

type noEmployeeRepo struct{}

func (noEmployeeRepo) WithTx(_ *sql.Tx) employee.Repository { return noEmployeeRepo{} }
func (noEmployeeRepo) Create(_ context.Context, _ *employee.Employee) error {
	return nil
}
func (noEmployeeRepo) FindAll(_ context.Context) ([]employee.Employee, error) { return nil, nil }
func (noEmployeeRepo) FindByID(_ context.Context, _ string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (noEmployeeRepo) FindByUserID(_ context.Context, _ string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (noEmployeeRepo) Update(_ context.Context, _ *employee.Employee) error { return nil }

func seedUser(t *testing.T, repo *fakeUserRepo, email, password, role string) *User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &User{
		ID:       uuid.New(),
		Name:     "Budi",
		Email:    &email,
		Password: string(hashed),
		Role:     role,
	}
	repo.byEmail[email] = u
	repo.byID[u.ID] = u
	return u
}

func newIssuer() *token.Issuer {
	return token.NewIssuer("test-secret", 0)
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "budi@example.com", "rahasia123", "USER")
	svc := NewService(nil, repo, noEmployeeRepo{}, newIssuer())

	accessToken, resp, err := svc.Login(context.Background(), "budi@example.com", "rahasia123")
	require.NoError(t, err)

	assert.NotEmpty(t, accessToken)
	assert.Equal(t, "USER", resp.Role)

	claims, err := newIssuer().Verify(accessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, claims.UserID)
	assert.Equal(t, "USER", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "budi@example.com", "rahasia123", "USER")
	svc := NewService(nil, repo, noEmployeeRepo{}, newIssuer())

	_, _, err := svc.Login(context.Background(), "budi@example.com", "salah")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(nil, newFakeUserRepo(), noEmployeeRepo{}, newIssuer())

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "apapun")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestChangePassword_ClearsResetFlag(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeUserRepo()
	u := seedUser(t, repo, "budi@example.com", "lama123", "USER")
	u.NeedPasswordReset = true

	svc := NewService(db, repo, noEmployeeRepo{}, newIssuer())
	err = svc.ChangePassword(context.Background(), u.ID.String(), ChangePasswordRequest{
		OldPassword: "lama123",
		NewPassword: "baru456",
	})
	require.NoError(t, err)

	assert.False(t, u.NeedPasswordReset)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("baru456")))
	require.NoError(t, mock.ExpectationsWereMet())
}

// Lewat repository asli di atas sqlmock: SELECT dan UPDATE user harus
// berjalan di dalam transaksi yang dibuka service, bukan di pool.
func TestChangePassword_StatementsRideCallerTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("lama123"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, email, password, role, need_password_reset, reset_requested_at").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "password", "role", "need_password_reset", "reset_requested_at",
		}).AddRow(id.String(), "Budi", "budi@example.com", string(hashed), "USER", true, nil))
	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := NewService(db, NewRepository(nil, db), noEmployeeRepo{}, newIssuer())
	err = svc.ChangePassword(context.Background(), id.String(), ChangePasswordRequest{
		OldPassword: "lama123",
		NewPassword: "baru456",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := newFakeUserRepo()
	u := seedUser(t, repo, "budi@example.com", "lama123", "USER")

	svc := NewService(db, repo, noEmployeeRepo{}, newIssuer())
	err = svc.ChangePassword(context.Background(), u.ID.String(), ChangePasswordRequest{
		OldPassword: "bukan-lama",
		NewPassword: "baru456",
	})
	assert.ErrorIs(t, err, autherrors.ErrWrongOldPassword)
}

func TestResetPassword_SetsFlagAndClearsRequest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeUserRepo()
	u := seedUser(t, repo, "budi@example.com", "lama123", "USER")

	svc := NewService(db, repo, noEmployeeRepo{}, newIssuer())
	require.NoError(t, svc.RequestReset(context.Background(), u.ID.String()))
	require.NotNil(t, u.ResetRequestedAt)

	err = svc.ResetPassword(context.Background(), ResetPasswordRequest{
		UserID:      u.ID.String(),
		NewPassword: "sementara789",
	})
	require.NoError(t, err)

	assert.True(t, u.NeedPasswordReset)
	assert.Nil(t, u.ResetRequestedAt)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("sementara789")))
}

func TestListResetRequests(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, "budi@example.com", "lama123", "USER")
	seedUser(t, repo, "lain@example.com", "lama123", "USER")

	svc := NewService(nil, repo, noEmployeeRepo{}, newIssuer())
	require.NoError(t, svc.RequestReset(context.Background(), u.ID.String()))

	rows, err := svc.ListResetRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, u.ID.String(), rows[0].UserID)
}

func TestGetMe_WithoutEmployee(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, "admin@example.com", "rahasia123", "ADMIN")

	svc := NewService(nil, repo, noEmployeeRepo{}, newIssuer())
	resp, err := svc.GetMe(context.Background(), u.ID.String())
	require.NoError(t, err)

	assert.Equal(t, u.ID.String(), resp.User.ID)
	assert.Nil(t, resp.Employee)
}
