package company

import (
	"context"
	"errors"
	"strings"

	companyerrors "go-absensi/internal/company/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetAll(ctx context.Context) ([]CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error) {
	c := &Company{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("company created",
		zap.String("company_id", c.ID.String()),
		zap.String("name", c.Name),
	)
	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context) ([]CompanyResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]CompanyResponse, len(rows))
	for i, c := range rows {
		res[i] = mapToResponse(c)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	c.Name = strings.TrimSpace(req.Name)
	c.Address = req.Address
	c.Phone = req.Phone

	if err := s.repo.Update(ctx, c); err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return companyerrors.ErrInvalidCompanyID
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("company deleted", zap.String("company_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return companyerrors.ErrCompanyNameTaken
	}
	if strings.Contains(strings.ToLower(err.Error()), "uq_company_name") {
		return companyerrors.ErrCompanyNameTaken
	}
	return err
}

func mapToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:      c.ID.String(),
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
	}
}
