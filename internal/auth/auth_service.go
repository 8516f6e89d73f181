package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	autherrors "go-absensi/internal/auth/errors"
	"go-absensi/internal/employee"
	"go-absensi/internal/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service interface {
	Login(ctx context.Context, email, password string) (accessToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*MeResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
	RequestReset(ctx context.Context, userID string) error
	ListResetRequests(ctx context.Context) ([]ResetRequestResponse, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	issuer       *token.Issuer
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employeeRepo employee.Repository, issuer *token.Issuer, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{db: db, repo: repo, employeeRepo: employeeRepo, issuer: issuer, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Jangan bocorkan apakah email terdaftar
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.issuer.Issue(user.ID.String(), user.Role)
	if err != nil {
		s.logger.Error("issue token failed", zap.Error(err))
		return "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)

	return accessToken, mapToAuthResponse(*user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*MeResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := &MeResponse{User: mapToAuthResponse(*user)}

	emp, err := s.employeeRepo.FindByUserID(ctx, user.ID.String())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// User tanpa karyawan (admin murni) tetap valid
		return resp, nil
	}

	profile := &EmployeeProfile{
		ID:       emp.ID.String(),
		NIP:      emp.NIP,
		FullName: emp.FullName,
		Status:   emp.Status,
	}
	if emp.EmployeeType != nil {
		profile.TypeName = emp.EmployeeType.TypeName
	}
	resp.Employee = profile
	return resp, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	email := req.Email
	user := &User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    &email,
		Password: string(hashed),
		Role:     req.Role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return mapToAuthResponse(*user), nil
}

// ChangePassword mengganti password sendiri dan menurunkan flag
// need_password_reset dalam satu transaksi.
func (s *service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return autherrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	user, err := qtx.GetByID(ctx, id)
	if err != nil {
		return autherrors.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return autherrors.ErrWrongOldPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	user.NeedPasswordReset = false
	if err := qtx.Update(ctx, user); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("password changed", zap.String("user_id", userID))
	return nil
}

func (s *service) RequestReset(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return autherrors.ErrUserNotFound
	}

	now := time.Now().UTC()
	user.ResetRequestedAt = &now
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info("password reset requested", zap.String("user_id", userID))
	return nil
}

func (s *service) ListResetRequests(ctx context.Context) ([]ResetRequestResponse, error) {
	users, err := s.repo.FindResetRequested(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]ResetRequestResponse, len(users))
	for i, u := range users {
		res[i] = ResetRequestResponse{
			UserID:      u.ID.String(),
			Name:        u.Name,
			Email:       u.Email,
			RequestedAt: u.ResetRequestedAt.Format(time.RFC3339),
		}
	}
	return res, nil
}

// ResetPassword (admin) menyetel password baru, menyalakan
// need_password_reset, dan menghapus reset_requested_at — satu transaksi
// supaya tidak ada state setengah jadi.
func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	id, err := uuid.Parse(req.UserID)
	if err != nil {
		return autherrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	user, err := qtx.GetByID(ctx, id)
	if err != nil {
		return autherrors.ErrUserNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	user.NeedPasswordReset = true
	user.ResetRequestedAt = nil
	if err := qtx.Update(ctx, user); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("password reset by admin", zap.String("user_id", req.UserID))
	return nil
}

func mapToAuthResponse(u User) AuthResponse {
	return AuthResponse{
		ID:                u.ID.String(),
		Name:              u.Name,
		Email:             u.Email,
		Role:              u.Role,
		NeedPasswordReset: u.NeedPasswordReset,
	}
}
