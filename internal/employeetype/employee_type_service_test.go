package employeetype

import (
	"context"
	"testing"

	employeetypeerrors "go-absensi/internal/employeetype/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTypeRepo struct {
	byID map[string]*EmployeeType
}

func newFakeTypeRepo() *fakeTypeRepo {
	return &fakeTypeRepo{byID: make(map[string]*EmployeeType)}
}

func (f *fakeTypeRepo) Create(_ context.Context, et *EmployeeType) error {
	f.byID[et.ID.String()] = et
	return nil
}

func (f *fakeTypeRepo) FindAll(_ context.Context) ([]EmployeeType, error) {
	var rows []EmployeeType
	for _, et := range f.byID {
		rows = append(rows, *et)
	}
	return rows, nil
}

func (f *fakeTypeRepo) FindByID(_ context.Context, id string) (*EmployeeType, error) {
	if et, ok := f.byID[id]; ok {
		return et, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTypeRepo) Update(_ context.Context, et *EmployeeType) error {
	f.byID[et.ID.String()] = et
	return nil
}

func TestCreateEmployeeType(t *testing.T) {
	svc := NewService(newFakeTypeRepo())

	resp, err := svc.Create(context.Background(), CreateEmployeeTypeRequest{
		TypeName:     "  Kandang  ",
		ClockInTime:  "07:30",
		ClockOutTime: "16:30",
	})
	require.NoError(t, err)

	assert.Equal(t, "Kandang", resp.TypeName)
	assert.Equal(t, "07:30", resp.ClockInTime)
}

func TestCreateEmployeeType_InvalidClockTime(t *testing.T) {
	svc := NewService(newFakeTypeRepo())

	_, err := svc.Create(context.Background(), CreateEmployeeTypeRequest{
		TypeName:     "Kandang",
		ClockInTime:  "7.30",
		ClockOutTime: "16:30",
	})
	assert.ErrorIs(t, err, employeetypeerrors.ErrInvalidClockTime)

	_, err = svc.Create(context.Background(), CreateEmployeeTypeRequest{
		TypeName:     "Kandang",
		ClockInTime:  "07:30",
		ClockOutTime: "25:00",
	})
	assert.ErrorIs(t, err, employeetypeerrors.ErrInvalidClockTime)
}

func TestGetEmployeeType_NotFound(t *testing.T) {
	svc := NewService(newFakeTypeRepo())

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, employeetypeerrors.ErrEmployeeTypeNotFound)
}

func TestUpdateEmployeeType(t *testing.T) {
	repo := newFakeTypeRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateEmployeeTypeRequest{
		TypeName:     "Kandang",
		ClockInTime:  "07:30",
		ClockOutTime: "16:30",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateEmployeeTypeRequest{
		TypeName:     "Gudang",
		ClockInTime:  "08:00",
		ClockOutTime: "17:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "Gudang", updated.TypeName)
	assert.Equal(t, "08:00", updated.ClockInTime)
}
