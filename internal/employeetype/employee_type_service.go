package employeetype

import (
	"context"
	"errors"
	"strings"
	"time"

	employeetypeerrors "go-absensi/internal/employeetype/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeTypeRequest) (EmployeeTypeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeTypeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeTypeRequest) (EmployeeTypeResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeTypeRequest) (EmployeeTypeResponse, error) {
	clockIn, clockOut, err := validateClockTimes(req.ClockInTime, req.ClockOutTime)
	if err != nil {
		return EmployeeTypeResponse{}, err
	}

	et := &EmployeeType{
		ID:           uuid.New(),
		TypeName:     strings.TrimSpace(req.TypeName),
		ClockInTime:  clockIn,
		ClockOutTime: clockOut,
	}
	if err := s.repo.Create(ctx, et); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "uq_employee_type_name") {
			return EmployeeTypeResponse{}, employeetypeerrors.ErrEmployeeTypeNameTaken
		}
		return EmployeeTypeResponse{}, err
	}
	return mapToResponse(*et), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeTypeResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]EmployeeTypeResponse, len(rows))
	for i, et := range rows {
		res[i] = mapToResponse(et)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeTypeResponse, error) {
	et, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeTypeResponse{}, employeetypeerrors.ErrEmployeeTypeNotFound
		}
		return EmployeeTypeResponse{}, err
	}
	return mapToResponse(*et), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeTypeRequest) (EmployeeTypeResponse, error) {
	clockIn, clockOut, err := validateClockTimes(req.ClockInTime, req.ClockOutTime)
	if err != nil {
		return EmployeeTypeResponse{}, err
	}

	et, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeTypeResponse{}, employeetypeerrors.ErrEmployeeTypeNotFound
		}
		return EmployeeTypeResponse{}, err
	}

	et.TypeName = strings.TrimSpace(req.TypeName)
	et.ClockInTime = clockIn
	et.ClockOutTime = clockOut
	if err := s.repo.Update(ctx, et); err != nil {
		return EmployeeTypeResponse{}, err
	}
	return mapToResponse(*et), nil
}

func validateClockTimes(clockIn, clockOut string) (string, string, error) {
	for _, v := range []string{clockIn, clockOut} {
		if _, err := time.Parse("15:04", v); err != nil {
			return "", "", employeetypeerrors.ErrInvalidClockTime
		}
	}
	return clockIn, clockOut, nil
}

func mapToResponse(et EmployeeType) EmployeeTypeResponse {
	return EmployeeTypeResponse{
		ID:           et.ID.String(),
		TypeName:     et.TypeName,
		ClockInTime:  et.ClockInTime,
		ClockOutTime: et.ClockOutTime,
	}
}
