package employee

import (
	"time"

	"go-absensi/internal/employeetype"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "AKTIF"
	StatusInactive = "NONAKTIF"
)

// Employee tidak pernah di-hard-delete; lifecycle lewat kolom status.
type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NIP            string     `gorm:"type:varchar(30);not null;uniqueIndex:uq_employee_nip"`
	FullName       string     `gorm:"type:varchar(255);not null"`
	Phone          string     `gorm:"type:varchar(20)"`
	Address        string     `gorm:"type:text"`
	Status         string     `gorm:"type:varchar(20);not null;default:'AKTIF';index"`
	EmployeeTypeID uuid.UUID  `gorm:"type:uuid;not null"`
	UserID         *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_employee_user"` // one-to-one dengan User

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	EmployeeType *employeetype.EmployeeType `gorm:"foreignKey:EmployeeTypeID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}
