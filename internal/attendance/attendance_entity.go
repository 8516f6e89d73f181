package attendance

import (
	"time"

	"go-absensi/internal/shared/dateutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "HADIR"
	StatusLate    = "TERLAMBAT"
	StatusPermit  = "IZIN"
	StatusAnnual  = "CUTI"
	StatusSick    = "SAKIT"
)

// Attendance adalah satu baris ledger per (karyawan, tanggal).
// Unique index uq_attendance_employee_date menjamin invariannya di store,
// bukan cuma di pola find-then-create.
type Attendance struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate dateutil.Date `gorm:"type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	ClockIn        *time.Time    `gorm:"type:timestamptz"` // null untuk baris hasil approval cuti
	ClockOut       *time.Time    `gorm:"type:timestamptz"`
	Latitude       *float64      `gorm:"column:latitude"`
	Longitude      *float64      `gorm:"column:longitude"`
	Status         string        `gorm:"type:varchar(20);not null;default:'HADIR'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
	Employee       *EmployeeRef   `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	NIP      string    `gorm:"column:nip"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// IsLeaveStatus menandai status yang berasal dari workflow cuti/izin.
func IsLeaveStatus(status string) bool {
	switch status {
	case StatusPermit, StatusAnnual, StatusSick:
		return true
	default:
		return false
	}
}
