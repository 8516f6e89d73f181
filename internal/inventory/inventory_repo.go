package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementSum adalah total ekor per perusahaan untuk satu jenis mutasi.
type MovementSum struct {
	CompanyID   uuid.UUID
	CompanyName string
	HeadCount   int64
}

// MortalitySum adalah agregat mortalitas per perusahaan per status klaim.
type MortalitySum struct {
	CompanyID   uuid.UUID
	CompanyName string
	ClaimStatus string
	Records     int64
	HeadCount   int64
}

type Repository interface {
	CreateStockIn(ctx context.Context, row *StockIn) error
	CreateMortality(ctx context.Context, row *Mortality) error
	CreateStockOut(ctx context.Context, row *StockOut) error
	ListStockIn(ctx context.Context, f StockFilter) ([]StockIn, error)
	ListMortality(ctx context.Context, f StockFilter) ([]Mortality, error)
	ListStockOut(ctx context.Context, f StockFilter) ([]StockOut, error)
	SumStockIn(ctx context.Context, f StockFilter) ([]MovementSum, error)
	SumMortality(ctx context.Context, f StockFilter) ([]MovementSum, error)
	SumStockOut(ctx context.Context, f StockFilter) ([]MovementSum, error)
	SumMortalityByClaim(ctx context.Context, f StockFilter) ([]MortalitySum, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateStockIn(ctx context.Context, row *StockIn) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) CreateMortality(ctx context.Context, row *Mortality) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) CreateStockOut(ctx context.Context, row *StockOut) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) listQuery(ctx context.Context, f StockFilter) *gorm.DB {
	q := r.db.WithContext(ctx)
	if f.CompanyID != "" {
		q = q.Where("company_id = ?", f.CompanyID)
	}
	if f.StartDate != "" {
		q = q.Where("entry_date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("entry_date <= ?", f.EndDate)
	}
	return q.Order("entry_date DESC")
}

func (r *repository) ListStockIn(ctx context.Context, f StockFilter) ([]StockIn, error) {
	var rows []StockIn
	err := r.listQuery(ctx, f).Find(&rows).Error
	return rows, err
}

func (r *repository) ListMortality(ctx context.Context, f StockFilter) ([]Mortality, error) {
	var rows []Mortality
	err := r.listQuery(ctx, f).Find(&rows).Error
	return rows, err
}

func (r *repository) ListStockOut(ctx context.Context, f StockFilter) ([]StockOut, error) {
	var rows []StockOut
	err := r.listQuery(ctx, f).Find(&rows).Error
	return rows, err
}

func (r *repository) sumMovement(ctx context.Context, table string, f StockFilter) ([]MovementSum, error) {
	q := r.db.WithContext(ctx).
		Table(table+" AS m").
		Select("m.company_id AS company_id, c.name AS company_name, COALESCE(SUM(m.head_count), 0) AS head_count").
		Joins("JOIN companies c ON c.id = m.company_id").
		Group("m.company_id, c.name").
		Order("c.name ASC")
	q = applyFilter(q, f)

	var rows []MovementSum
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *repository) SumStockIn(ctx context.Context, f StockFilter) ([]MovementSum, error) {
	return r.sumMovement(ctx, "stock_ins", f)
}

func (r *repository) SumMortality(ctx context.Context, f StockFilter) ([]MovementSum, error) {
	return r.sumMovement(ctx, "mortalities", f)
}

func (r *repository) SumStockOut(ctx context.Context, f StockFilter) ([]MovementSum, error) {
	return r.sumMovement(ctx, "stock_outs", f)
}

func (r *repository) SumMortalityByClaim(ctx context.Context, f StockFilter) ([]MortalitySum, error) {
	q := r.db.WithContext(ctx).
		Table("mortalities AS m").
		Select("m.company_id AS company_id, c.name AS company_name, m.claim_status AS claim_status, COUNT(*) AS records, COALESCE(SUM(m.head_count), 0) AS head_count").
		Joins("JOIN companies c ON c.id = m.company_id").
		Group("m.company_id, c.name, m.claim_status").
		Order("c.name ASC")
	q = applyFilter(q, f)

	var rows []MortalitySum
	err := q.Scan(&rows).Error
	return rows, err
}

func applyFilter(q *gorm.DB, f StockFilter) *gorm.DB {
	if f.CompanyID != "" {
		q = q.Where("m.company_id = ?", f.CompanyID)
	}
	if f.StartDate != "" {
		q = q.Where("m.entry_date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("m.entry_date <= ?", f.EndDate)
	}
	return q
}
