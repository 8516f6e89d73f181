package leave

import (
	"time"

	"go-absensi/internal/attendance"
	"go-absensi/internal/shared/dateutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypePermit = "IZIN"
	TypeAnnual = "CUTI"
	TypeSick   = "SAKIT"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Leave adalah satu pengajuan cuti/izin untuk rentang tanggal inklusif.
// APPROVED dan REJECTED bersifat terminal.
type Leave struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID     `gorm:"type:uuid;not null;index"`
	LeaveType  string        `gorm:"type:varchar(20);not null"`
	StartDate  dateutil.Date `gorm:"type:date;not null"`
	EndDate    dateutil.Date `gorm:"type:date;not null"`
	Reason     string        `gorm:"type:text"`
	Status     string        `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DecidedBy  *uuid.UUID    `gorm:"type:uuid"`
	DecidedAt  *time.Time    `gorm:"type:timestamptz"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Employee *attendance.EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Leave) TableName() string {
	return "leaves"
}

// IsValidType memvalidasi jenis pengajuan.
func IsValidType(leaveType string) bool {
	switch leaveType {
	case TypePermit, TypeAnnual, TypeSick:
		return true
	default:
		return false
	}
}

// AttendanceStatus memetakan jenis cuti ke status ledger absensi.
// String-nya memang sama, tapi pemetaan eksplisit menjaga keduanya
// boleh berubah sendiri-sendiri.
func AttendanceStatus(leaveType string) string {
	switch leaveType {
	case TypePermit:
		return attendance.StatusPermit
	case TypeAnnual:
		return attendance.StatusAnnual
	case TypeSick:
		return attendance.StatusSick
	default:
		return attendance.StatusPermit
	}
}
