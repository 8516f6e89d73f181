package auth

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Update(ctx context.Context, user *User) error
	FindResetRequested(ctx context.Context) ([]User, error)
}

type repository struct {
	db  *gorm.DB
	sdb *sql.DB
	tx  *sql.Tx
}

func NewRepository(db *gorm.DB, sdb *sql.DB) Repository {
	return &repository{db: db, sdb: sdb}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sdb: r.sdb, tx: tx}
}

type queryer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func (r *repository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.sdb
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

// GetByID dan Update lewat SQL mentah di atas queryer supaya read-modify-write
// password (ganti/reset) ikut *sql.Tx milik caller.
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
SELECT id, name, email, password, role, need_password_reset, reset_requested_at
FROM users
WHERE id = $1 AND deleted_at IS NULL
`
	var user User
	err := r.queryer().QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.Role, &user.NeedPasswordReset, &user.ResetRequestedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
UPDATE users
SET name = $2, email = $3, password = $4, role = $5,
    need_password_reset = $6, reset_requested_at = $7, updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL
`
	_, err := r.queryer().ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Password,
		user.Role, user.NeedPasswordReset, user.ResetRequestedAt,
	)
	return err
}

func (r *repository) FindResetRequested(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("reset_requested_at IS NOT NULL").
		Order("reset_requested_at ASC").
		Find(&users).Error
	return users, err
}
