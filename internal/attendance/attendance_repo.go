package attendance

import (
	"context"

	"go-absensi/internal/shared/dateutil"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date dateutil.Date) (*Attendance, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	Search(ctx context.Context, f SummaryFilter) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date dateutil.Date) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.String()).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Search(ctx context.Context, f SummaryFilter) ([]Attendance, error) {
	q := r.db.WithContext(ctx).Preload("Employee")

	if f.StartDate != "" {
		q = q.Where("attendance_date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("attendance_date <= ?", f.EndDate)
	}
	if f.EmployeeID != "" {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var rows []Attendance
	err := q.Order("attendance_date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}
