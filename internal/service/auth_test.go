package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/repository"
	"github.com/blwclub/membership-portal/internal/session"
)

func newSessions() *session.Store {
	return session.NewStore(session.NewMemoryBackend(), time.Hour, time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success opens a session", func(t *testing.T) {
		repo := new(MockUserRepo)
		sessions := newSessions()
		svc, err := NewAuthService(repo, sessions, `^(?=.*[A-Za-z])(?=.*\d).{6,}$`)
		require.NoError(t, err)

		repo.On("Create", ctx, mock.MatchedBy(func(u domain.User) bool {
			return u.Email == "jane@example.com" && u.Role == domain.RoleMember &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")) == nil
		})).Return(domain.User{ID: 3, Email: "jane@example.com", Name: "Jane", Role: domain.RoleMember}, nil)

		user, sid, err := svc.Register(ctx, "Jane", " Jane@Example.com ", "secret1", "secret1")
		require.NoError(t, err)
		assert.Equal(t, uint(3), user.ID)

		snapshot, err := svc.Session(ctx, sid)
		require.NoError(t, err)
		assert.Equal(t, "Jane", snapshot.Name)
		repo.AssertExpectations(t)
	})

	t.Run("password checks", func(t *testing.T) {
		svc, err := NewAuthService(new(MockUserRepo), newSessions(), `^(?=.*[A-Za-z])(?=.*\d).{6,}$`)
		require.NoError(t, err)

		_, _, err = svc.Register(ctx, "Jane", "jane@example.com", "secret1", "secret2")
		assert.ErrorIs(t, err, ErrPasswordMismatch)

		_, _, err = svc.Register(ctx, "Jane", "jane@example.com", "abc1", "abc1")
		assert.ErrorIs(t, err, ErrPasswordTooShort)

		_, _, err = svc.Register(ctx, "Jane", "jane@example.com", "abcdefg", "abcdefg")
		assert.ErrorIs(t, err, ErrPasswordPolicy)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc, err := NewAuthService(repo, newSessions(), "")
		require.NoError(t, err)

		repo.On("Create", ctx, mock.Anything).Return(domain.User{}, repository.ErrUserEmailExists)

		_, _, err = svc.Register(ctx, "Jane", "member@club.com", "secret1", "secret1")
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})

	t.Run("bad policy", func(t *testing.T) {
		_, err := NewAuthService(new(MockUserRepo), newSessions(), `(?=`)
		assert.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(MockUserRepo)
	repo.On("FindByEmail", ctx, "member@club.com").
		Return(domain.User{ID: 2, Email: "member@club.com", Name: "John Doe", Role: domain.RoleMember, Password: string(hash)}, nil)
	repo.On("FindByEmail", ctx, "ghost@club.com").
		Return(domain.User{}, repository.ErrUserNotFound)

	svc, err := NewAuthService(repo, newSessions(), "")
	require.NoError(t, err)

	user, sid, err := svc.Login(ctx, "Member@Club.com", "member123")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", user.Name)

	snapshot, err := svc.Session(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, snapshot.Role)

	_, _, err = svc.Login(ctx, "member@club.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, _, err = svc.Login(ctx, "ghost@club.com", "member123")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, svc.Logout(ctx, sid))
	_, err = svc.Session(ctx, sid)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAuthService_SeedDemoUsers(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepo)

	repo.On("FindByEmail", ctx, "admin@club.com").Return(domain.User{ID: 1}, nil)
	repo.On("FindByEmail", ctx, "member@club.com").Return(domain.User{}, repository.ErrUserNotFound)
	repo.On("Create", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "member@club.com" && u.Name == "John Doe" && u.Role == domain.RoleMember
	})).Return(domain.User{ID: 2}, nil).Once()

	svc, err := NewAuthService(repo, newSessions(), "")
	require.NoError(t, err)

	require.NoError(t, svc.SeedDemoUsers(ctx))
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "Create", 1)
}
