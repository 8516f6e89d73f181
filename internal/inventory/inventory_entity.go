package inventory

import (
	"time"

	"go-absensi/internal/shared/dateutil"

	"github.com/google/uuid"
)

const (
	ClaimClaimable    = "BISA_CLAIM"
	ClaimNotClaimable = "TIDAK_BISA"
)

// Catatan stok bersifat append-only: tidak pernah di-update atau
// di-delete, hanya dijumlahkan.

// StockIn adalah barang masuk (ekor).
type StockIn struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID     `gorm:"type:uuid;not null;index"`
	EntryDate dateutil.Date `gorm:"type:date;not null;index"`
	HeadCount int           `gorm:"not null"`
	Note      string        `gorm:"type:text"`
	CreatedAt time.Time
}

func (StockIn) TableName() string {
	return "stock_ins"
}

// Mortality adalah catatan ayam mati, dengan status klaim ke mitra.
type Mortality struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	EntryDate   dateutil.Date `gorm:"type:date;not null;index"`
	HeadCount   int           `gorm:"not null"`
	ClaimStatus string        `gorm:"type:varchar(20);not null"`
	Note        string        `gorm:"type:text"`
	CreatedAt   time.Time
}

func (Mortality) TableName() string {
	return "mortalities"
}

// StockOut adalah barang keluar hidup (ekor).
type StockOut struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID     `gorm:"type:uuid;not null;index"`
	EntryDate dateutil.Date `gorm:"type:date;not null;index"`
	HeadCount int           `gorm:"not null"`
	Note      string        `gorm:"type:text"`
	CreatedAt time.Time
}

func (StockOut) TableName() string {
	return "stock_outs"
}

// IsValidClaimStatus memvalidasi status klaim mortalitas.
func IsValidClaimStatus(status string) bool {
	return status == ClaimClaimable || status == ClaimNotClaimable
}
