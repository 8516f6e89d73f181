package employeetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeType mengelompokkan jam kerja standar. Dipakai attendance
// untuk menentukan HADIR vs TERLAMBAT.
type EmployeeType struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TypeName     string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_employee_type_name"`
	ClockInTime  string    `gorm:"type:varchar(5);not null;default:'08:00'"` // format 15:04
	ClockOutTime string    `gorm:"type:varchar(5);not null;default:'17:00'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (EmployeeType) TableName() string {
	return "employee_types"
}
