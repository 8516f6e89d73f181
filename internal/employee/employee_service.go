package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	employeeerrors "go-absensi/internal/employee/errors"
	"go-absensi/internal/events"
	"go-absensi/internal/messaging/kafka"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	SetStatus(ctx context.Context, id string, req SetEmployeeStatusRequest) (EmployeeResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	outboxRepo kafka.OutboxRepository
	logger     *zap.Logger
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, outboxRepo: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("create employee requested",
		zap.String("nip", req.NIP),
		zap.String("full_name", req.FullName),
	)

	typeID, err := uuid.Parse(req.EmployeeTypeID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeTypeNotFound
	}

	var userID *uuid.UUID
	if req.UserID != nil && *req.UserID != "" {
		parsed, err := uuid.Parse(*req.UserID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		userID = &parsed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp := &Employee{
		ID:             uuid.New(),
		NIP:            strings.TrimSpace(req.NIP),
		FullName:       strings.TrimSpace(req.FullName),
		Phone:          req.Phone,
		Address:        req.Address,
		Status:         StatusActive,
		EmployeeTypeID: typeID,
		UserID:         userID,
	}

	if err := qtx.Create(ctx, emp); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.writeCreatedEvent(ctx, tx, emp); err != nil {
		s.logger.Error("create employee outbox write failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("create employee success",
		zap.String("employee_id", emp.ID.String()),
		zap.String("nip", emp.NIP),
	)

	return mapToResponse(*emp), nil
}

func (s *service) writeCreatedEvent(ctx context.Context, tx *sql.Tx, emp *Employee) error {
	payload, err := json.Marshal(events.EmployeeCreatedEvent{
		EventType:  "employee_created",
		EmployeeID: emp.ID.String(),
		NIP:        emp.NIP,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "employee",
		AggregateID:   emp.ID.String(),
		EventType:     "employee_created",
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]EmployeeResponse, len(rows))
	for i, emp := range rows {
		res[i] = mapToResponse(emp)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*emp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	typeID, err := uuid.Parse(req.EmployeeTypeID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeTypeNotFound
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	emp.FullName = strings.TrimSpace(req.FullName)
	emp.Phone = req.Phone
	emp.Address = req.Address
	emp.EmployeeTypeID = typeID

	if err := s.repo.Update(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*emp), nil
}

func (s *service) SetStatus(ctx context.Context, id string, req SetEmployeeStatusRequest) (EmployeeResponse, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	emp.Status = req.Status
	if err := s.repo.Update(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	s.logger.Info("employee status changed",
		zap.String("employee_id", emp.ID.String()),
		zap.String("status", emp.Status),
	)
	return mapToResponse(*emp), nil
}

func mapToResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             emp.ID.String(),
		NIP:            emp.NIP,
		FullName:       emp.FullName,
		Phone:          emp.Phone,
		Address:        emp.Address,
		Status:         emp.Status,
		EmployeeTypeID: emp.EmployeeTypeID.String(),
	}
	if emp.EmployeeType != nil {
		resp.EmployeeTypeName = emp.EmployeeType.TypeName
	}
	if emp.UserID != nil {
		v := emp.UserID.String()
		resp.UserID = &v
	}
	return resp
}
