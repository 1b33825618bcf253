package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/form"
)

const (
	userKeyPrefix  = "clubUser:"
	draftKeyPrefix = "clubDraft:"
)

var ErrDraftNotFound = errors.New("no application draft for this sport")

// Store keeps the session snapshot of each logged-in user and their
// in-progress application drafts.
type Store struct {
	backend  Backend
	ttl      time.Duration
	draftTTL time.Duration
}

func NewStore(backend Backend, ttl, draftTTL time.Duration) *Store {
	return &Store{
		backend:  backend,
		ttl:      ttl,
		draftTTL: draftTTL,
	}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create stores user under a fresh session id and returns the id.
func (s *Store) Create(ctx context.Context, user domain.SessionUser) (string, error) {
	sid := uuid.NewString()
	if err := s.Save(ctx, sid, user); err != nil {
		return "", err
	}

	return sid, nil
}

// Save overwrites the snapshot of an existing session and refreshes its TTL.
func (s *Store) Save(ctx context.Context, sid string, user domain.SessionUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err = s.backend.Set(ctx, userKey(sid), raw, s.ttl); err != nil {
		return fmt.Errorf("s.backend.Set -> %w", err)
	}

	return nil
}

func (s *Store) Load(ctx context.Context, sid string) (domain.SessionUser, error) {
	raw, err := s.backend.Get(ctx, userKey(sid))
	if err != nil {
		return domain.SessionUser{}, fmt.Errorf("s.backend.Get -> %w", err)
	}

	var user domain.SessionUser
	if err = json.Unmarshal(raw, &user); err != nil {
		return domain.SessionUser{}, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return user, nil
}

func (s *Store) Destroy(ctx context.Context, sid string) error {
	if err := s.backend.Delete(ctx, userKey(sid)); err != nil {
		return fmt.Errorf("s.backend.Delete -> %w", err)
	}

	return nil
}

func (s *Store) SaveDraft(ctx context.Context, userID uint, w *form.Wizard) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err = s.backend.Set(ctx, draftKey(userID, w.Sport), raw, s.draftTTL); err != nil {
		return fmt.Errorf("s.backend.Set -> %w", err)
	}

	return nil
}

func (s *Store) LoadDraft(ctx context.Context, userID uint, sport string) (*form.Wizard, error) {
	raw, err := s.backend.Get(ctx, draftKey(userID, sport))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrDraftNotFound
		}

		return nil, fmt.Errorf("s.backend.Get -> %w", err)
	}

	var w form.Wizard
	if err = json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("json.Unmarshal -> %w", err)
	}
	if w.Errors == nil {
		w.Errors = form.ValidationErrors{}
	}

	return &w, nil
}

func (s *Store) DeleteDraft(ctx context.Context, userID uint, sport string) error {
	if err := s.backend.Delete(ctx, draftKey(userID, sport)); err != nil {
		return fmt.Errorf("s.backend.Delete -> %w", err)
	}

	return nil
}

func userKey(sid string) string {
	return userKeyPrefix + sid
}

func draftKey(userID uint, sport string) string {
	return fmt.Sprintf("%s%d:%s", draftKeyPrefix, userID, domain.NormalizeSport(sport))
}
