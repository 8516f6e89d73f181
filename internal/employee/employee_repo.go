package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, emp *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByUserID(ctx context.Context, userID string) (*Employee, error)
	Update(ctx context.Context, emp *Employee) error
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

// Create lewat SQL mentah di atas execer supaya INSERT ikut *sql.Tx
// milik caller (satu transaksi dengan baris outbox).
func (r *repository) Create(ctx context.Context, emp *Employee) error {
	query := `
INSERT INTO employees (id, nip, full_name, phone, address, status, employee_type_id, user_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
`
	_, err := r.execer().ExecContext(ctx, query,
		emp.ID, emp.NIP, emp.FullName, emp.Phone, emp.Address,
		emp.Status, emp.EmployeeTypeID, emp.UserID,
	)
	return err
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Preload("EmployeeType").
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Preload("EmployeeType").
		First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Preload("EmployeeType").
		First(&emp, "user_id = ?", userID).Error
	return &emp, err
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}
