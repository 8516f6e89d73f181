package employeetype

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, et *EmployeeType) error
	FindAll(ctx context.Context) ([]EmployeeType, error)
	FindByID(ctx context.Context, id string) (*EmployeeType, error)
	Update(ctx context.Context, et *EmployeeType) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, et *EmployeeType) error {
	return r.db.WithContext(ctx).Create(et).Error
}

func (r *repository) FindAll(ctx context.Context) ([]EmployeeType, error) {
	var rows []EmployeeType
	err := r.db.WithContext(ctx).Order("type_name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*EmployeeType, error) {
	var et EmployeeType
	err := r.db.WithContext(ctx).First(&et, "id = ?", id).Error
	return &et, err
}

func (r *repository) Update(ctx context.Context, et *EmployeeType) error {
	return r.db.WithContext(ctx).Save(et).Error
}
