package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	Update(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) domainToDAO(u domain.User) dao.User {
	out := dao.User{
		ID:        u.ID,
		Email:     strings.ToLower(strings.TrimSpace(u.Email)),
		Password:  u.Password,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if p := u.Profile; p != nil {
		out.HasProfile = true
		out.Profile = dao.Profile{
			Name:             p.Name,
			Mobile:           p.Mobile,
			Profession:       p.Profession,
			LocalAddress:     p.Address.Local,
			PermanentAddress: p.Address.Permanent,
			OfficeAddress:    p.Address.Office,
			OfficePhone:      p.Contact.Office,
			ResidencePhone:   p.Contact.Residence,
			Position:         p.Position,
			Education:        p.Education,
			DateOfBirth:      p.DateOfBirth,
		}
	}

	return out
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	user := domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      domain.Role(u.Role),
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.HasProfile {
		p := u.Profile
		user.Profile = &domain.Profile{
			Name:       p.Name,
			Mobile:     p.Mobile,
			Profession: p.Profession,
			Address: domain.Address{
				Local:     p.LocalAddress,
				Permanent: p.PermanentAddress,
				Office:    p.OfficeAddress,
			},
			Contact: domain.ProfileContact{
				Office:    p.OfficePhone,
				Residence: p.ResidencePhone,
			},
			Position:    p.Position,
			Education:   p.Education,
			DateOfBirth: p.DateOfBirth,
		}
	}

	return user
}
