package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	companyrepo "go-absensi/internal/company"
	inventoryerrors "go-absensi/internal/inventory/errors"
	"go-absensi/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type Service interface {
	RecordStockIn(ctx context.Context, req RecordStockInRequest) (MovementResponse, error)
	RecordMortality(ctx context.Context, req RecordMortalityRequest) (MovementResponse, error)
	RecordStockOut(ctx context.Context, req RecordStockOutRequest) (MovementResponse, error)
	ListStockIn(ctx context.Context, f StockFilter) ([]MovementResponse, error)
	ListMortality(ctx context.Context, f StockFilter) ([]MovementResponse, error)
	ListStockOut(ctx context.Context, f StockFilter) ([]MovementResponse, error)
	StockReport(ctx context.Context, f StockFilter) (StockReportResponse, error)
	MortalityRecap(ctx context.Context, f StockFilter) (MortalityRecapResponse, error)
}

type service struct {
	repo      Repository
	companies companyrepo.Repository
	group     singleflight.Group
	logger    *zap.Logger
}

func NewService(repo Repository, companies companyrepo.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("inventory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("inventory.service")
	}
	return &service{repo: repo, companies: companies, logger: l}
}

func (s *service) resolveCompany(ctx context.Context, id string) (uuid.UUID, error) {
	companyID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, inventoryerrors.ErrInvalidCompanyID
	}
	if _, err := s.companies.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, inventoryerrors.ErrCompanyNotFound
		}
		return uuid.Nil, err
	}
	return companyID, nil
}

func (s *service) RecordStockIn(ctx context.Context, req RecordStockInRequest) (MovementResponse, error) {
	companyID, err := s.resolveCompany(ctx, req.CompanyID)
	if err != nil {
		return MovementResponse{}, err
	}
	if req.HeadCount <= 0 {
		return MovementResponse{}, inventoryerrors.ErrInvalidHeadCount
	}
	entryDate, err := dateutil.Parse(req.EntryDate)
	if err != nil {
		return MovementResponse{}, inventoryerrors.ErrInvalidEntryDate
	}

	row := &StockIn{
		ID:        uuid.New(),
		CompanyID: companyID,
		EntryDate: entryDate,
		HeadCount: req.HeadCount,
		Note:      req.Note,
	}
	if err := s.repo.CreateStockIn(ctx, row); err != nil {
		return MovementResponse{}, err
	}

	s.logger.Info("stock-in recorded",
		zap.String("company_id", req.CompanyID),
		zap.Int("head_count", req.HeadCount),
	)
	return MovementResponse{
		ID:        row.ID.String(),
		CompanyID: row.CompanyID.String(),
		EntryDate: row.EntryDate.String(),
		HeadCount: row.HeadCount,
		Note:      row.Note,
	}, nil
}

func (s *service) RecordMortality(ctx context.Context, req RecordMortalityRequest) (MovementResponse, error) {
	companyID, err := s.resolveCompany(ctx, req.CompanyID)
	if err != nil {
		return MovementResponse{}, err
	}
	if req.HeadCount <= 0 {
		return MovementResponse{}, inventoryerrors.ErrInvalidHeadCount
	}
	if !IsValidClaimStatus(req.ClaimStatus) {
		return MovementResponse{}, inventoryerrors.ErrInvalidClaimStatus
	}
	entryDate, err := dateutil.Parse(req.EntryDate)
	if err != nil {
		return MovementResponse{}, inventoryerrors.ErrInvalidEntryDate
	}

	row := &Mortality{
		ID:          uuid.New(),
		CompanyID:   companyID,
		EntryDate:   entryDate,
		HeadCount:   req.HeadCount,
		ClaimStatus: req.ClaimStatus,
		Note:        req.Note,
	}
	if err := s.repo.CreateMortality(ctx, row); err != nil {
		return MovementResponse{}, err
	}

	s.logger.Info("mortality recorded",
		zap.String("company_id", req.CompanyID),
		zap.Int("head_count", req.HeadCount),
		zap.String("claim_status", req.ClaimStatus),
	)
	return MovementResponse{
		ID:          row.ID.String(),
		CompanyID:   row.CompanyID.String(),
		EntryDate:   row.EntryDate.String(),
		HeadCount:   row.HeadCount,
		ClaimStatus: row.ClaimStatus,
		Note:        row.Note,
	}, nil
}

func (s *service) RecordStockOut(ctx context.Context, req RecordStockOutRequest) (MovementResponse, error) {
	companyID, err := s.resolveCompany(ctx, req.CompanyID)
	if err != nil {
		return MovementResponse{}, err
	}
	if req.HeadCount <= 0 {
		return MovementResponse{}, inventoryerrors.ErrInvalidHeadCount
	}
	entryDate, err := dateutil.Parse(req.EntryDate)
	if err != nil {
		return MovementResponse{}, inventoryerrors.ErrInvalidEntryDate
	}

	row := &StockOut{
		ID:        uuid.New(),
		CompanyID: companyID,
		EntryDate: entryDate,
		HeadCount: req.HeadCount,
		Note:      req.Note,
	}
	if err := s.repo.CreateStockOut(ctx, row); err != nil {
		return MovementResponse{}, err
	}

	s.logger.Info("stock-out recorded",
		zap.String("company_id", req.CompanyID),
		zap.Int("head_count", req.HeadCount),
	)
	return MovementResponse{
		ID:        row.ID.String(),
		CompanyID: row.CompanyID.String(),
		EntryDate: row.EntryDate.String(),
		HeadCount: row.HeadCount,
		Note:      row.Note,
	}, nil
}

func (s *service) ListStockIn(ctx context.Context, f StockFilter) ([]MovementResponse, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListStockIn(ctx, f)
	if err != nil {
		return nil, err
	}
	res := make([]MovementResponse, len(rows))
	for i, row := range rows {
		res[i] = MovementResponse{
			ID:        row.ID.String(),
			CompanyID: row.CompanyID.String(),
			EntryDate: row.EntryDate.String(),
			HeadCount: row.HeadCount,
			Note:      row.Note,
		}
	}
	return res, nil
}

func (s *service) ListMortality(ctx context.Context, f StockFilter) ([]MovementResponse, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListMortality(ctx, f)
	if err != nil {
		return nil, err
	}
	res := make([]MovementResponse, len(rows))
	for i, row := range rows {
		res[i] = MovementResponse{
			ID:          row.ID.String(),
			CompanyID:   row.CompanyID.String(),
			EntryDate:   row.EntryDate.String(),
			HeadCount:   row.HeadCount,
			ClaimStatus: row.ClaimStatus,
			Note:        row.Note,
		}
	}
	return res, nil
}

func (s *service) ListStockOut(ctx context.Context, f StockFilter) ([]MovementResponse, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListStockOut(ctx, f)
	if err != nil {
		return nil, err
	}
	res := make([]MovementResponse, len(rows))
	for i, row := range rows {
		res[i] = MovementResponse{
			ID:        row.ID.String(),
			CompanyID: row.CompanyID.String(),
			EntryDate: row.EntryDate.String(),
			HeadCount: row.HeadCount,
			Note:      row.Note,
		}
	}
	return res, nil
}

func validateFilter(f StockFilter) error {
	if f.CompanyID != "" {
		if _, err := uuid.Parse(f.CompanyID); err != nil {
			return inventoryerrors.ErrInvalidCompanyID
		}
	}
	for _, v := range []string{f.StartDate, f.EndDate} {
		if v == "" {
			continue
		}
		if _, err := dateutil.Parse(v); err != nil {
			return inventoryerrors.ErrInvalidDateFilter
		}
	}
	return nil
}

func filterKey(prefix string, f StockFilter) string {
	return fmt.Sprintf("%s:%s:%s:%s", prefix, f.CompanyID, f.StartDate, f.EndDate)
}

// StockReport menghitung stok per perusahaan:
// stok = masuk − mati − keluar. Grand total dijumlahkan dari hasil
// per-perusahaan, bukan query agregat terpisah, supaya keduanya tidak
// mungkin berbeda. Request identik yang datang bersamaan digabung
// lewat singleflight.
func (s *service) StockReport(ctx context.Context, f StockFilter) (StockReportResponse, error) {
	if err := validateFilter(f); err != nil {
		return StockReportResponse{}, err
	}

	v, err, _ := s.group.Do(filterKey("stock", f), func() (any, error) {
		return s.computeStockReport(ctx, f)
	})
	if err != nil {
		return StockReportResponse{}, err
	}
	return v.(StockReportResponse), nil
}

func (s *service) computeStockReport(ctx context.Context, f StockFilter) (StockReportResponse, error) {
	inbound, err := s.repo.SumStockIn(ctx, f)
	if err != nil {
		return StockReportResponse{}, err
	}
	mortality, err := s.repo.SumMortality(ctx, f)
	if err != nil {
		return StockReportResponse{}, err
	}
	outbound, err := s.repo.SumStockOut(ctx, f)
	if err != nil {
		return StockReportResponse{}, err
	}

	byCompany := make(map[uuid.UUID]*CompanyStock)
	upsert := func(sum MovementSum) *CompanyStock {
		if row, ok := byCompany[sum.CompanyID]; ok {
			return row
		}
		row := &CompanyStock{
			CompanyID:   sum.CompanyID.String(),
			CompanyName: sum.CompanyName,
		}
		byCompany[sum.CompanyID] = row
		return row
	}

	for _, sum := range inbound {
		upsert(sum).Inbound = sum.HeadCount
	}
	for _, sum := range mortality {
		upsert(sum).Mortality = sum.HeadCount
	}
	for _, sum := range outbound {
		upsert(sum).Outbound = sum.HeadCount
	}

	resp := StockReportResponse{Companies: make([]CompanyStock, 0, len(byCompany))}
	for _, row := range byCompany {
		row.Stock = row.Inbound - row.Mortality - row.Outbound
		resp.Companies = append(resp.Companies, *row)

		resp.Total.Inbound += row.Inbound
		resp.Total.Mortality += row.Mortality
		resp.Total.Outbound += row.Outbound
		resp.Total.Stock += row.Stock
	}
	sort.Slice(resp.Companies, func(i, j int) bool {
		return resp.Companies[i].CompanyName < resp.Companies[j].CompanyName
	})
	return resp, nil
}

// MortalityRecap mempartisi mortalitas per status klaim per perusahaan,
// plus total gabungan dan grand total per partisi.
func (s *service) MortalityRecap(ctx context.Context, f StockFilter) (MortalityRecapResponse, error) {
	if err := validateFilter(f); err != nil {
		return MortalityRecapResponse{}, err
	}

	v, err, _ := s.group.Do(filterKey("mortality", f), func() (any, error) {
		return s.computeMortalityRecap(ctx, f)
	})
	if err != nil {
		return MortalityRecapResponse{}, err
	}
	return v.(MortalityRecapResponse), nil
}

func (s *service) computeMortalityRecap(ctx context.Context, f StockFilter) (MortalityRecapResponse, error) {
	sums, err := s.repo.SumMortalityByClaim(ctx, f)
	if err != nil {
		return MortalityRecapResponse{}, err
	}

	byCompany := make(map[uuid.UUID]*CompanyMortalityRecap)
	for _, sum := range sums {
		row, ok := byCompany[sum.CompanyID]
		if !ok {
			row = &CompanyMortalityRecap{
				CompanyID:   sum.CompanyID.String(),
				CompanyName: sum.CompanyName,
			}
			byCompany[sum.CompanyID] = row
		}

		part := ClaimPartition{Records: sum.Records, HeadCount: sum.HeadCount}
		switch sum.ClaimStatus {
		case ClaimClaimable:
			row.Claimable = part
		case ClaimNotClaimable:
			row.NotClaimable = part
		}
		row.Total.Records += part.Records
		row.Total.HeadCount += part.HeadCount
	}

	resp := MortalityRecapResponse{Companies: make([]CompanyMortalityRecap, 0, len(byCompany))}
	for _, row := range byCompany {
		resp.Companies = append(resp.Companies, *row)

		resp.TotalClaimable.Records += row.Claimable.Records
		resp.TotalClaimable.HeadCount += row.Claimable.HeadCount
		resp.TotalNotClaimable.Records += row.NotClaimable.Records
		resp.TotalNotClaimable.HeadCount += row.NotClaimable.HeadCount
		resp.Total.Records += row.Total.Records
		resp.Total.HeadCount += row.Total.HeadCount
	}
	sort.Slice(resp.Companies, func(i, j int) bool {
		return resp.Companies[i].CompanyName < resp.Companies[j].CompanyName
	})
	return resp, nil
}
