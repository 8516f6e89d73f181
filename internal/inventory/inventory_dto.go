package inventory

type RecordStockInRequest struct {
	CompanyID string `json:"company_id" binding:"required"`
	EntryDate string `json:"entry_date" binding:"required"`
	HeadCount int    `json:"head_count" binding:"required"`
	Note      string `json:"note"`
}

type RecordMortalityRequest struct {
	CompanyID   string `json:"company_id" binding:"required"`
	EntryDate   string `json:"entry_date" binding:"required"`
	HeadCount   int    `json:"head_count" binding:"required"`
	ClaimStatus string `json:"claim_status" binding:"required"`
	Note        string `json:"note"`
}

type RecordStockOutRequest struct {
	CompanyID string `json:"company_id" binding:"required"`
	EntryDate string `json:"entry_date" binding:"required"`
	HeadCount int    `json:"head_count" binding:"required"`
	Note      string `json:"note"`
}

type StockFilter struct {
	CompanyID string `form:"company_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type MovementResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	EntryDate   string `json:"entry_date"`
	HeadCount   int    `json:"head_count"`
	ClaimStatus string `json:"claim_status,omitempty"`
	Note        string `json:"note,omitempty"`
}

// CompanyStock adalah hasil agregasi stok satu perusahaan.
type CompanyStock struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Inbound     int64  `json:"inbound"`
	Mortality   int64  `json:"mortality"`
	Outbound    int64  `json:"outbound"`
	Stock       int64  `json:"stock"`
}

type StockReportResponse struct {
	Companies []CompanyStock `json:"companies"`
	Total     CompanyStock   `json:"total"`
}

// ClaimPartition adalah satu partisi status klaim: jumlah record dan
// total ekor.
type ClaimPartition struct {
	Records   int64 `json:"records"`
	HeadCount int64 `json:"head_count"`
}

type CompanyMortalityRecap struct {
	CompanyID    string         `json:"company_id"`
	CompanyName  string         `json:"company_name"`
	Claimable    ClaimPartition `json:"claimable"`
	NotClaimable ClaimPartition `json:"not_claimable"`
	Total        ClaimPartition `json:"total"`
}

type MortalityRecapResponse struct {
	Companies         []CompanyMortalityRecap `json:"companies"`
	TotalClaimable    ClaimPartition          `json:"total_claimable"`
	TotalNotClaimable ClaimPartition          `json:"total_not_claimable"`
	Total             ClaimPartition          `json:"total"`
}
