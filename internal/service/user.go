package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
}

type UserService struct {
	repo     UserRepository
	sessions SessionStore
}

func NewUserService(repo UserRepository, sessions SessionStore) *UserService {
	return &UserService{
		repo:     repo,
		sessions: sessions,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// UpdateProfile replaces the user's profile. The display name follows the
// profile name and the email is never changed here. The session snapshot is
// refreshed so later requests see the new profile.
func (s *UserService) UpdateProfile(ctx context.Context, sid string, userID uint, profile domain.Profile) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	profile.Name = strings.TrimSpace(profile.Name)
	user.Profile = &profile
	if profile.Name != "" {
		user.Name = profile.Name
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	if err = s.sessions.Save(ctx, sid, domain.NewSessionUser(updated)); err != nil {
		return domain.User{}, fmt.Errorf("s.sessions.Save -> %w", err)
	}

	return updated, nil
}
