package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	attendanceerrors "go-absensi/internal/attendance/errors"
	"go-absensi/internal/employee"
	"go-absensi/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultClockInTime = "08:00"

type Service interface {
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	AdminSummary(ctx context.Context, f SummaryFilter) (SummaryResponse, error)
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	loc          *time.Location
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if loc == nil {
		loc = dateutil.AppLocation()
	}
	return &service{repo: repo, employeeRepo: employeeRepo, loc: loc, logger: l}
}

func (s *service) CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	// "Hari ini" dihitung sekali; check-out memakai jalur yang sama
	// sehingga keduanya selalu sepakat soal tanggal.
	now := time.Now().In(s.loc)
	today := dateutil.FromTime(now)

	existing, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil && existing.ID != uuid.Nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	status, err := s.resolveCheckInStatus(ctx, employeeID, now)
	if err != nil {
		return AttendanceResponse{}, err
	}

	clockIn := now.UTC()
	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     empUUID,
		AttendanceDate: today,
		ClockIn:        &clockIn,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Status:         status,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		// Dua check-in bersamaan: constraint unik yang menang, bukan
		// pre-check di atas.
		return AttendanceResponse{}, mapCreateError(err)
	}

	s.logger.Info("check-in recorded",
		zap.String("employee_id", employeeID),
		zap.String("date", today.String()),
		zap.String("status", status),
	)
	return mapToResponse(*row), nil
}

func (s *service) resolveCheckInStatus(ctx context.Context, employeeID string, now time.Time) (string, error) {
	standard := defaultClockInTime

	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
	} else if emp.EmployeeType != nil && emp.EmployeeType.ClockInTime != "" {
		standard = emp.EmployeeType.ClockInTime
	}

	std, err := time.Parse("15:04", standard)
	if err != nil {
		std, _ = time.Parse("15:04", defaultClockInTime)
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	stdMinutes := std.Hour()*60 + std.Minute()
	if nowMinutes > stdMinutes {
		return StatusLate, nil
	}
	return StatusPresent, nil
}

func (s *service) CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := time.Now().In(s.loc)
	today := dateutil.FromTime(now)

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return AttendanceResponse{}, err
	}
	if row.ClockIn == nil {
		// Baris hasil approval cuti bukan kehadiran fisik
		return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
	}
	if row.ClockOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	clockOut := now.UTC()
	row.ClockOut = &clockOut
	// Status tidak berubah saat check-out

	if err := s.repo.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out recorded",
		zap.String("employee_id", employeeID),
		zap.String("date", today.String()),
	)
	return mapToResponse(*row), nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) AdminSummary(ctx context.Context, f SummaryFilter) (SummaryResponse, error) {
	for _, v := range []string{f.StartDate, f.EndDate} {
		if v == "" {
			continue
		}
		if _, err := dateutil.Parse(v); err != nil {
			return SummaryResponse{}, attendanceerrors.ErrInvalidDateFilter
		}
	}
	if f.EmployeeID != "" {
		if _, err := uuid.Parse(f.EmployeeID); err != nil {
			return SummaryResponse{}, attendanceerrors.ErrInvalidEmployeeID
		}
	}

	rows, err := s.repo.Search(ctx, f)
	if err != nil {
		return SummaryResponse{}, err
	}

	resp := SummaryResponse{
		Records:      make([]AttendanceResponse, len(rows)),
		StatusCounts: make(map[string]int),
		Total:        len(rows),
	}
	for i, r := range rows {
		resp.Records[i] = mapToResponse(r)
		resp.StatusCounts[r.Status]++
	}
	return resp, nil
}

func mapCreateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_employee_date" {
			return attendanceerrors.ErrAlreadyCheckedIn
		}
	}
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_employee_date") {
		return attendanceerrors.ErrAlreadyCheckedIn
	}
	return err
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.String(),
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		Status:         a.Status,
	}
	if a.ClockIn != nil {
		v := a.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if a.ClockOut != nil {
		v := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	if a.Employee != nil {
		resp.EmployeeNIP = a.Employee.NIP
		resp.EmployeeName = a.Employee.FullName
	}
	return resp
}
