package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company adalah perusahaan/kandang tempat stok ternak dicatat.
type Company struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name    string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_company_name"`
	Address string    `gorm:"type:text"`
	Phone   string    `gorm:"type:varchar(20)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
