package inventory

import (
	"context"
	"testing"
	"time"

	"go-absensi/internal/company"
	inventoryerrors "go-absensi/internal/inventory/errors"
	"go-absensi/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeInventoryRepo struct {
	stockIns    []StockIn
	mortalities []Mortality
	stockOuts   []StockOut
	names       map[uuid.UUID]string
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{names: make(map[uuid.UUID]string)}
}

func (f *fakeInventoryRepo) CreateStockIn(_ context.Context, row *StockIn) error {
	f.stockIns = append(f.stockIns, *row)
	return nil
}

func (f *fakeInventoryRepo) CreateMortality(_ context.Context, row *Mortality) error {
	f.mortalities = append(f.mortalities, *row)
	return nil
}

func (f *fakeInventoryRepo) CreateStockOut(_ context.Context, row *StockOut) error {
	f.stockOuts = append(f.stockOuts, *row)
	return nil
}

func (f *fakeInventoryRepo) ListStockIn(_ context.Context, filter StockFilter) ([]StockIn, error) {
	var rows []StockIn
	for _, row := range f.stockIns {
		if f.matches(row.CompanyID, filter) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeInventoryRepo) ListMortality(_ context.Context, filter StockFilter) ([]Mortality, error) {
	var rows []Mortality
	for _, row := range f.mortalities {
		if f.matches(row.CompanyID, filter) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeInventoryRepo) ListStockOut(_ context.Context, filter StockFilter) ([]StockOut, error) {
	var rows []StockOut
	for _, row := range f.stockOuts {
		if f.matches(row.CompanyID, filter) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeInventoryRepo) matches(companyID uuid.UUID, filter StockFilter) bool {
	return filter.CompanyID == "" || filter.CompanyID == companyID.String()
}

func (f *fakeInventoryRepo) SumStockIn(_ context.Context, filter StockFilter) ([]MovementSum, error) {
	sums := make(map[uuid.UUID]int64)
	for _, row := range f.stockIns {
		if f.matches(row.CompanyID, filter) {
			sums[row.CompanyID] += int64(row.HeadCount)
		}
	}
	return f.toMovementSums(sums), nil
}

func (f *fakeInventoryRepo) SumMortality(_ context.Context, filter StockFilter) ([]MovementSum, error) {
	sums := make(map[uuid.UUID]int64)
	for _, row := range f.mortalities {
		if f.matches(row.CompanyID, filter) {
			sums[row.CompanyID] += int64(row.HeadCount)
		}
	}
	return f.toMovementSums(sums), nil
}

func (f *fakeInventoryRepo) SumStockOut(_ context.Context, filter StockFilter) ([]MovementSum, error) {
	sums := make(map[uuid.UUID]int64)
	for _, row := range f.stockOuts {
		if f.matches(row.CompanyID, filter) {
			sums[row.CompanyID] += int64(row.HeadCount)
		}
	}
	return f.toMovementSums(sums), nil
}

func (f *fakeInventoryRepo) SumMortalityByClaim(_ context.Context, filter StockFilter) ([]MortalitySum, error) {
	type key struct {
		companyID uuid.UUID
		claim     string
	}
	records := make(map[key]int64)
	heads := make(map[key]int64)
	for _, row := range f.mortalities {
		if !f.matches(row.CompanyID, filter) {
			continue
		}
		k := key{companyID: row.CompanyID, claim: row.ClaimStatus}
		records[k]++
		heads[k] += int64(row.HeadCount)
	}

	var out []MortalitySum
	for k, count := range records {
		out = append(out, MortalitySum{
			CompanyID:   k.companyID,
			CompanyName: f.names[k.companyID],
			ClaimStatus: k.claim,
			Records:     count,
			HeadCount:   heads[k],
		})
	}
	return out, nil
}

func (f *fakeInventoryRepo) toMovementSums(sums map[uuid.UUID]int64) []MovementSum {
	var out []MovementSum
	for id, total := range sums {
		out = append(out, MovementSum{
			CompanyID:   id,
			CompanyName: f.names[id],
			HeadCount:   total,
		})
	}
	return out
}

type fakeCompanyRepo struct {
	byID map[string]*company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{byID: make(map[string]*company.Company)}
}

func (f *fakeCompanyRepo) Create(_ context.Context, c *company.Company) error {
	f.byID[c.ID.String()] = c
	return nil
}

func (f *fakeCompanyRepo) FindAll(_ context.Context) ([]company.Company, error) { return nil, nil }

func (f *fakeCompanyRepo) FindByID(_ context.Context, id string) (*company.Company, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepo) Update(_ context.Context, c *company.Company) error { return nil }

func (f *fakeCompanyRepo) Delete(_ context.Context, _ string) error { return nil }

type fixture struct {
	repo      *fakeInventoryRepo
	companies *fakeCompanyRepo
	svc       Service
}

func newFixture() *fixture {
	repo := newFakeInventoryRepo()
	companies := newFakeCompanyRepo()
	return &fixture{
		repo:      repo,
		companies: companies,
		svc:       NewService(repo, companies),
	}
}

func (fx *fixture) addCompany(name string) uuid.UUID {
	c := &company.Company{ID: uuid.New(), Name: name}
	fx.companies.byID[c.ID.String()] = c
	fx.repo.names[c.ID] = name
	return c.ID
}

func (fx *fixture) seed(t *testing.T, companyID uuid.UUID, in []int, mortality []int, out []int) {
	t.Helper()
	ctx := context.Background()
	date := dateutil.Today(time.UTC).String()

	for _, qty := range in {
		_, err := fx.svc.RecordStockIn(ctx, RecordStockInRequest{
			CompanyID: companyID.String(),
			EntryDate: date,
			HeadCount: qty,
		})
		require.NoError(t, err)
	}
	for _, qty := range mortality {
		_, err := fx.svc.RecordMortality(ctx, RecordMortalityRequest{
			CompanyID:   companyID.String(),
			EntryDate:   date,
			HeadCount:   qty,
			ClaimStatus: ClaimClaimable,
		})
		require.NoError(t, err)
	}
	for _, qty := range out {
		_, err := fx.svc.RecordStockOut(ctx, RecordStockOutRequest{
			CompanyID: companyID.String(),
			EntryDate: date,
			HeadCount: qty,
		})
		require.NoError(t, err)
	}
}

func TestStockReport_Formula(t *testing.T) {
	fx := newFixture()
	companyID := fx.addCompany("Kandang A")
	fx.seed(t, companyID, []int{100, 50}, []int{10}, []int{5})

	resp, err := fx.svc.StockReport(context.Background(), StockFilter{})
	require.NoError(t, err)

	require.Len(t, resp.Companies, 1)
	row := resp.Companies[0]
	assert.Equal(t, int64(150), row.Inbound)
	assert.Equal(t, int64(10), row.Mortality)
	assert.Equal(t, int64(5), row.Outbound)
	assert.Equal(t, int64(135), row.Stock)
}

func TestStockReport_GrandTotalIsSumOfCompanies(t *testing.T) {
	fx := newFixture()
	companyA := fx.addCompany("Kandang A")
	companyB := fx.addCompany("Kandang B")
	fx.seed(t, companyA, []int{100, 50}, []int{10}, []int{5})
	fx.seed(t, companyB, []int{200}, []int{20}, []int{30})

	resp, err := fx.svc.StockReport(context.Background(), StockFilter{})
	require.NoError(t, err)

	require.Len(t, resp.Companies, 2)
	var sum int64
	for _, row := range resp.Companies {
		sum += row.Stock
	}
	assert.Equal(t, sum, resp.Total.Stock)
	assert.Equal(t, int64(135+150), resp.Total.Stock)
}

func TestStockReport_CompanyFilter(t *testing.T) {
	fx := newFixture()
	companyA := fx.addCompany("Kandang A")
	companyB := fx.addCompany("Kandang B")
	fx.seed(t, companyA, []int{100}, nil, nil)
	fx.seed(t, companyB, []int{999}, nil, nil)

	resp, err := fx.svc.StockReport(context.Background(), StockFilter{CompanyID: companyA.String()})
	require.NoError(t, err)

	require.Len(t, resp.Companies, 1)
	assert.Equal(t, int64(100), resp.Total.Stock)
}

func TestMortalityRecap_Partitions(t *testing.T) {
	fx := newFixture()
	companyID := fx.addCompany("Kandang A")
	ctx := context.Background()
	date := dateutil.Today(time.UTC).String()

	for _, m := range []struct {
		qty   int
		claim string
	}{
		{10, ClaimClaimable},
		{7, ClaimClaimable},
		{3, ClaimNotClaimable},
	} {
		_, err := fx.svc.RecordMortality(ctx, RecordMortalityRequest{
			CompanyID:   companyID.String(),
			EntryDate:   date,
			HeadCount:   m.qty,
			ClaimStatus: m.claim,
		})
		require.NoError(t, err)
	}

	resp, err := fx.svc.MortalityRecap(ctx, StockFilter{})
	require.NoError(t, err)

	require.Len(t, resp.Companies, 1)
	row := resp.Companies[0]
	assert.Equal(t, int64(2), row.Claimable.Records)
	assert.Equal(t, int64(17), row.Claimable.HeadCount)
	assert.Equal(t, int64(1), row.NotClaimable.Records)
	assert.Equal(t, int64(3), row.NotClaimable.HeadCount)
	assert.Equal(t, int64(3), row.Total.Records)
	assert.Equal(t, int64(20), row.Total.HeadCount)

	assert.Equal(t, row.Claimable, resp.TotalClaimable)
	assert.Equal(t, row.NotClaimable, resp.TotalNotClaimable)
	assert.Equal(t, row.Total, resp.Total)
}

func TestRecordMortality_Validation(t *testing.T) {
	fx := newFixture()
	companyID := fx.addCompany("Kandang A")
	ctx := context.Background()
	date := dateutil.Today(time.UTC).String()

	_, err := fx.svc.RecordMortality(ctx, RecordMortalityRequest{
		CompanyID:   companyID.String(),
		EntryDate:   date,
		HeadCount:   5,
		ClaimStatus: "MUNGKIN",
	})
	assert.ErrorIs(t, err, inventoryerrors.ErrInvalidClaimStatus)

	_, err = fx.svc.RecordMortality(ctx, RecordMortalityRequest{
		CompanyID:   companyID.String(),
		EntryDate:   date,
		HeadCount:   -1,
		ClaimStatus: ClaimClaimable,
	})
	assert.ErrorIs(t, err, inventoryerrors.ErrInvalidHeadCount)

	_, err = fx.svc.RecordMortality(ctx, RecordMortalityRequest{
		CompanyID:   uuid.NewString(),
		EntryDate:   date,
		HeadCount:   5,
		ClaimStatus: ClaimClaimable,
	})
	assert.ErrorIs(t, err, inventoryerrors.ErrCompanyNotFound)
}

func TestRecordStockIn_InvalidDate(t *testing.T) {
	fx := newFixture()
	companyID := fx.addCompany("Kandang A")

	_, err := fx.svc.RecordStockIn(context.Background(), RecordStockInRequest{
		CompanyID: companyID.String(),
		EntryDate: "31/08/2026",
		HeadCount: 10,
	})
	assert.ErrorIs(t, err, inventoryerrors.ErrInvalidEntryDate)
}
