package leave

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	Search(ctx context.Context, f ListFilter) ([]Leave, error)
	// UpdateDecision menulis keputusan hanya bila status masih PENDING.
	// Mengembalikan false bila baris sudah diputuskan request lain.
	UpdateDecision(ctx context.Context, id uuid.UUID, status string, decidedBy uuid.UUID) (bool, error)
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

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sdb
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Search(ctx context.Context, f ListFilter) ([]Leave, error) {
	q := r.db.WithContext(ctx).Preload("Employee")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.EmployeeID != "" {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}

	var rows []Leave
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateDecision(ctx context.Context, id uuid.UUID, status string, decidedBy uuid.UUID) (bool, error) {
	query := `
UPDATE leaves
SET status = $2, decided_by = $3, decided_at = NOW(), updated_at = NOW()
WHERE id = $1 AND status = $4 AND deleted_at IS NULL
`
	res, err := r.execer().ExecContext(ctx, query, id, status, decidedBy, StatusPending)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
