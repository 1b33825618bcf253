package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/metrics"
	"github.com/blwclub/membership-portal/internal/repository"
	"github.com/blwclub/membership-portal/internal/session"
)

var (
	ErrUserEmailExists    = repository.ErrUserEmailExists
	ErrWrongPassword      = errors.New("wrong password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordPolicy     = errors.New("password does not meet the password policy")
	ErrSessionNotFound    = session.ErrNotFound
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLength = 6

type demoUser struct {
	email    string
	password string
	name     string
	role     domain.Role
}

var demoUsers = []demoUser{
	{email: "admin@club.com", password: "admin123", name: "Admin User", role: domain.RoleAdmin},
	{email: "member@club.com", password: "member123", name: "John Doe", role: domain.RoleMember},
}

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, user domain.SessionUser) (string, error)
	Save(ctx context.Context, sid string, user domain.SessionUser) error
	Load(ctx context.Context, sid string) (domain.SessionUser, error)
	Destroy(ctx context.Context, sid string) error
}

type AuthService struct {
	repo     AuthUserRepository
	sessions SessionStore
	policy   *regexp2.Regexp
}

// NewAuthService compiles passwordPattern with regexp2 so that policies may
// use lookarounds, e.g. `^(?=.*[A-Za-z])(?=.*\d).{6,}$`.
func NewAuthService(repo AuthUserRepository, sessions SessionStore, passwordPattern string) (*AuthService, error) {
	s := &AuthService{
		repo:     repo,
		sessions: sessions,
	}

	if passwordPattern != "" {
		policy, err := regexp2.Compile(passwordPattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("regexp2.Compile -> %w", err)
		}
		s.policy = policy
	}

	return s, nil
}

// Register creates a member account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, name, email, password, confirm string) (domain.User, string, error) {
	if password != confirm {
		return domain.User{}, "", ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return domain.User{}, "", ErrPasswordTooShort
	}
	if err := s.checkPolicy(password); err != nil {
		return domain.User{}, "", err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return domain.User{}, "", err
	}

	created, err := s.repo.Create(ctx, domain.User{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hash,
		Name:     strings.TrimSpace(name),
		Role:     domain.RoleMember,
	})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("s.repo.Create -> %w", err)
	}

	sid, err := s.sessions.Create(ctx, domain.NewSessionUser(created))
	if err != nil {
		return domain.User{}, "", fmt.Errorf("s.sessions.Create -> %w", err)
	}

	return created, sid, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			metrics.RecordLogin(false)
			return domain.User{}, "", ErrUserNotFound
		}

		return domain.User{}, "", fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		metrics.RecordLogin(false)
		return domain.User{}, "", ErrWrongPassword
	}

	sid, err := s.sessions.Create(ctx, domain.NewSessionUser(user))
	if err != nil {
		return domain.User{}, "", fmt.Errorf("s.sessions.Create -> %w", err)
	}
	metrics.RecordLogin(true)

	return user, sid, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if err := s.sessions.Destroy(ctx, sid); err != nil {
		return fmt.Errorf("s.sessions.Destroy -> %w", err)
	}

	return nil
}

// Session rehydrates the snapshot stored for sid.
func (s *AuthService) Session(ctx context.Context, sid string) (domain.SessionUser, error) {
	user, err := s.sessions.Load(ctx, sid)
	if err != nil {
		return domain.SessionUser{}, fmt.Errorf("s.sessions.Load -> %w", err)
	}

	return user, nil
}

// SeedDemoUsers creates the two demo accounts when they are missing.
func (s *AuthService) SeedDemoUsers(ctx context.Context) error {
	for _, demo := range demoUsers {
		_, err := s.repo.FindByEmail(ctx, demo.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("s.repo.FindByEmail -> %w", err)
		}

		hash, err := hashPassword(demo.password)
		if err != nil {
			return err
		}

		created, err := s.repo.Create(ctx, domain.User{
			Email:    demo.email,
			Password: hash,
			Name:     demo.name,
			Role:     demo.role,
		})
		if err != nil && !errors.Is(err, repository.ErrUserEmailExists) {
			return fmt.Errorf("s.repo.Create -> %w", err)
		}

		zap.L().Info("seeded demo user", zap.String("email", demo.email), zap.Uint("id", created.ID))
	}

	return nil
}

func (s *AuthService) checkPolicy(password string) error {
	if s.policy == nil {
		return nil
	}

	ok, err := s.policy.MatchString(password)
	if err != nil {
		return fmt.Errorf("s.policy.MatchString -> %w", err)
	}
	if !ok {
		return ErrPasswordPolicy
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}
