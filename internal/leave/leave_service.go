package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-absensi/internal/attendance"
	"go-absensi/internal/events"
	leaveerrors "go-absensi/internal/leave/errors"
	"go-absensi/internal/messaging/kafka"
	"go-absensi/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	Search(ctx context.Context, f ListFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Decide(ctx context.Context, leaveID, decidedByUserID string, req DecideLeaveRequest) (LeaveResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	ledger     attendance.LedgerWriter
	outboxRepo kafka.OutboxRepository
	loc        *time.Location
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	ledger attendance.LedgerWriter,
	outboxRepo kafka.OutboxRepository,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if loc == nil {
		loc = dateutil.AppLocation()
	}
	return &service{
		db:         db,
		repo:       repo,
		ledger:     ledger,
		outboxRepo: outboxRepo,
		loc:        loc,
		logger:     l,
	}
}

func (s *service) Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	if !IsValidType(req.LeaveType) {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	start, err := dateutil.Parse(req.StartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	end, err := dateutil.Parse(req.EndDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if start.After(end) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if start.Before(dateutil.Today(s.loc)) {
		return LeaveResponse{}, leaveerrors.ErrStartDateInPast
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: empUUID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     StatusPending,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave submitted",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("leave_type", l.LeaveType),
		zap.Int("total_days", start.DaysUntil(end)),
	)
	return mapToResponse(*l), nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	res := make([]LeaveResponse, len(rows))
	for i, l := range rows {
		res[i] = mapToResponse(l)
	}
	return res, nil
}

func (s *service) Search(ctx context.Context, f ListFilter) ([]LeaveResponse, error) {
	rows, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	res := make([]LeaveResponse, len(rows))
	for i, l := range rows {
		res[i] = mapToResponse(l)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

// Decide menulis keputusan, fan-out baris ledger per hari (bila APPROVED),
// dan event outbox dalam satu transaksi. Gagal di hari mana pun
// membatalkan semuanya.
func (s *service) Decide(ctx context.Context, leaveID, decidedByUserID string, req DecideLeaveRequest) (LeaveResponse, error) {
	if req.Status != StatusApproved && req.Status != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}
	leaveUUID, err := uuid.Parse(leaveID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	deciderUUID, err := uuid.Parse(decidedByUserID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	decided, err := s.repo.WithTx(tx).UpdateDecision(ctx, leaveUUID, req.Status, deciderUUID)
	if err != nil {
		s.logger.Error("decide leave update failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !decided {
		// Request lain menang duluan
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	if req.Status == StatusApproved {
		if err := s.fanOutLedger(ctx, tx, l); err != nil {
			s.logger.Error("decide leave ledger fan-out failed",
				zap.String("leave_id", leaveID),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := s.writeDecidedEvent(ctx, tx, l, req.Status, decidedByUserID); err != nil {
		s.logger.Error("decide leave outbox write failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	now := time.Now().UTC()
	l.Status = req.Status
	l.DecidedBy = &deciderUUID
	l.DecidedAt = &now

	s.logger.Info("leave decided",
		zap.String("leave_id", leaveID),
		zap.String("status", req.Status),
		zap.String("decided_by", decidedByUserID),
	)
	return mapToResponse(*l), nil
}

// fanOutLedger menulis satu baris absensi per hari dalam rentang.
// Hari yang sudah punya clock-in tidak disentuh; hari yang sudah punya
// baris tanpa clock-in ditimpa statusnya.
func (s *service) fanOutLedger(ctx context.Context, tx *sql.Tx, l *Leave) error {
	ledger := s.ledger.WithTx(tx)
	status := AttendanceStatus(l.LeaveType)

	for d := l.StartDate; !d.After(l.EndDate); d = d.AddDays(1) {
		rec, err := ledger.GetForDate(ctx, l.EmployeeID, d)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				if err := ledger.InsertLeaveDay(ctx, l.EmployeeID, d, status); err != nil {
					return err
				}
				continue
			}
			return err
		}

		if rec.HasClockIn {
			continue
		}
		if err := ledger.OverwriteStatus(ctx, rec.ID, status); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) writeDecidedEvent(ctx context.Context, tx *sql.Tx, l *Leave, status, decidedBy string) error {
	payload, err := json.Marshal(events.LeaveDecidedEvent{
		EventType:  "leave_decided",
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		Status:     status,
		StartDate:  l.StartDate.String(),
		EndDate:    l.EndDate.String(),
		DecidedBy:  decidedBy,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     "leave_decided",
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.String(),
		EndDate:    l.EndDate.String(),
		TotalDays:  l.StartDate.DaysUntil(l.EndDate),
		Reason:     l.Reason,
		Status:     l.Status,
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	if l.Employee != nil {
		resp.EmployeeNIP = l.Employee.NIP
		resp.EmployeeName = l.Employee.FullName
	}
	return resp
}
