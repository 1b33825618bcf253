package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/repository/dao"
)

var (
	ErrApplicationNotFound = dao.ErrApplicationNotFound
)

type ApplicationDAO interface {
	Insert(ctx context.Context, app dao.Application) (dao.Application, error)
	FindByID(ctx context.Context, id string) (dao.Application, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Application, error)
	FindAll(ctx context.Context) ([]dao.Application, error)
	UpdateStatus(ctx context.Context, app dao.Application) (dao.Application, error)
}

type ApplicationRepository struct {
	dao ApplicationDAO
}

func NewApplicationRepository(dao ApplicationDAO) *ApplicationRepository {
	return &ApplicationRepository{
		dao: dao,
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, app domain.Application) (domain.Application, error) {
	row, err := r.domainToDAO(app)
	if err != nil {
		return domain.Application{}, err
	}

	created, err := r.dao.Insert(ctx, row)
	if err != nil {
		return domain.Application{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created)
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (domain.Application, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Application{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *ApplicationRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Application, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return r.daosToDomain(found)
}

func (r *ApplicationRepository) FindAll(ctx context.Context) ([]domain.Application, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found)
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, app domain.Application) (domain.Application, error) {
	row, err := r.domainToDAO(app)
	if err != nil {
		return domain.Application{}, err
	}

	updated, err := r.dao.UpdateStatus(ctx, row)
	if err != nil {
		return domain.Application{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.daoToDomain(updated)
}

func (r *ApplicationRepository) domainToDAO(a domain.Application) (dao.Application, error) {
	data, err := json.Marshal(a.Data)
	if err != nil {
		return dao.Application{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	var payment *string
	if a.PaymentStatus != nil {
		s := string(*a.PaymentStatus)
		payment = &s
	}

	return dao.Application{
		ID:             a.ID,
		UserID:         a.UserID,
		Sport:          a.Sport,
		Status:         string(a.Status),
		PaymentStatus:  payment,
		MembershipType: string(a.Data.PersonalInfo.MembershipType),
		MembershipFee:  a.MembershipFee,
		FormData:       data,
		SubmittedAt:    a.SubmittedAt,
	}, nil
}

func (r *ApplicationRepository) daoToDomain(a dao.Application) (domain.Application, error) {
	var data domain.FormData
	if len(a.FormData) > 0 {
		if err := json.Unmarshal(a.FormData, &data); err != nil {
			return domain.Application{}, fmt.Errorf("json.Unmarshal application %s -> %w", a.ID, err)
		}
	}

	var payment *domain.PaymentStatus
	if a.PaymentStatus != nil {
		p := domain.PaymentStatus(*a.PaymentStatus)
		payment = &p
	}

	return domain.Application{
		ID:            a.ID,
		UserID:        a.UserID,
		Sport:         a.Sport,
		Status:        domain.ApplicationStatus(a.Status),
		PaymentStatus: payment,
		MembershipFee: a.MembershipFee,
		SubmittedAt:   a.SubmittedAt,
		Data:          data,
	}, nil
}

func (r *ApplicationRepository) daosToDomain(rows []dao.Application) ([]domain.Application, error) {
	apps := make([]domain.Application, 0, len(rows))
	for _, row := range rows {
		app, err := r.daoToDomain(row)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, nil
}
