package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/form"
	"github.com/blwclub/membership-portal/internal/metrics"
	"github.com/blwclub/membership-portal/internal/repository"
	"github.com/blwclub/membership-portal/internal/session"
)

var (
	ErrApplicationNotFound     = repository.ErrApplicationNotFound
	ErrDraftNotFound           = session.ErrDraftNotFound
	ErrNotFinalStep            = form.ErrNotFinalStep
	ErrInvalidStatusTransition = domain.ErrInvalidStatusTransition
	ErrPaymentNotApplicable    = domain.ErrPaymentNotApplicable
	ErrFeeMismatch             = errors.New("confirmed fee does not match the quoted fee")
	ErrNotApplicationOwner     = errors.New("application belongs to another user")
	ErrInvalidPaymentStatus    = errors.New("payment status must be pending, paid or failed")
	ErrInvalidSport            = errors.New("sport is required")
)

type ApplicationRepository interface {
	Create(ctx context.Context, app domain.Application) (domain.Application, error)
	FindByID(ctx context.Context, id string) (domain.Application, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Application, error)
	FindAll(ctx context.Context) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, app domain.Application) (domain.Application, error)
}

type DraftStore interface {
	SaveDraft(ctx context.Context, userID uint, w *form.Wizard) error
	LoadDraft(ctx context.Context, userID uint, sport string) (*form.Wizard, error)
	DeleteDraft(ctx context.Context, userID uint, sport string) error
}

// EventPublisher receives every change made to the application store.
type EventPublisher interface {
	Publish(event domain.ApplicationEvent)
}

type ApplicationService struct {
	repo   ApplicationRepository
	drafts DraftStore
	events EventPublisher
	now    func() time.Time
	newID  func() string
}

func NewApplicationService(repo ApplicationRepository, drafts DraftStore, events EventPublisher) *ApplicationService {
	return &ApplicationService{
		repo:   repo,
		drafts: drafts,
		events: events,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// StartDraft resumes the user's draft for sport or starts a new one
// pre-filled from the user's profile.
func (s *ApplicationService) StartDraft(ctx context.Context, user domain.User, sport string) (*form.Wizard, error) {
	sport = domain.NormalizeSport(sport)
	if sport == "" {
		return nil, ErrInvalidSport
	}

	w, err := s.drafts.LoadDraft(ctx, user.ID, sport)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, session.ErrDraftNotFound) {
		return nil, fmt.Errorf("s.drafts.LoadDraft -> %w", err)
	}

	w = form.NewWizard(sport, user)
	if err = s.drafts.SaveDraft(ctx, user.ID, w); err != nil {
		return nil, fmt.Errorf("s.drafts.SaveDraft -> %w", err)
	}

	return w, nil
}

func (s *ApplicationService) GetDraft(ctx context.Context, userID uint, sport string) (*form.Wizard, error) {
	w, err := s.drafts.LoadDraft(ctx, userID, sport)
	if err != nil {
		return nil, fmt.Errorf("s.drafts.LoadDraft -> %w", err)
	}

	return w, nil
}

func (s *ApplicationService) DiscardDraft(ctx context.Context, userID uint, sport string) error {
	if err := s.drafts.DeleteDraft(ctx, userID, sport); err != nil {
		return fmt.Errorf("s.drafts.DeleteDraft -> %w", err)
	}

	return nil
}

// EditDraft applies edit to the stored draft and saves it back.
func (s *ApplicationService) EditDraft(ctx context.Context, userID uint, sport string, edit func(w *form.Wizard)) (*form.Wizard, error) {
	w, err := s.GetDraft(ctx, userID, sport)
	if err != nil {
		return nil, err
	}

	edit(w)
	if err = s.drafts.SaveDraft(ctx, userID, w); err != nil {
		return nil, fmt.Errorf("s.drafts.SaveDraft -> %w", err)
	}

	return w, nil
}

// NextStep reports whether the wizard advanced. The draft is saved either
// way so the recorded errors survive.
func (s *ApplicationService) NextStep(ctx context.Context, userID uint, sport string) (*form.Wizard, bool, error) {
	var advanced bool
	w, err := s.EditDraft(ctx, userID, sport, func(w *form.Wizard) {
		advanced = w.Next()
	})
	if err != nil {
		return nil, false, err
	}

	return w, advanced, nil
}

func (s *ApplicationService) PreviousStep(ctx context.Context, userID uint, sport string) (*form.Wizard, error) {
	return s.EditDraft(ctx, userID, sport, func(w *form.Wizard) {
		w.Previous()
	})
}

// Submit turns a complete draft into a pending application with the fee
// frozen at the current table price. A failing draft is saved with its
// errors and returned alongside form.ValidationErrors.
func (s *ApplicationService) Submit(ctx context.Context, userID uint, sport string) (domain.Application, *form.Wizard, error) {
	w, err := s.GetDraft(ctx, userID, sport)
	if err != nil {
		return domain.Application{}, nil, err
	}

	data, err := w.Submit()
	if err != nil {
		var verrs form.ValidationErrors
		if errors.As(err, &verrs) {
			if saveErr := s.drafts.SaveDraft(ctx, userID, w); saveErr != nil {
				return domain.Application{}, nil, fmt.Errorf("s.drafts.SaveDraft -> %w", saveErr)
			}
		}

		return domain.Application{}, w, err
	}

	pending := domain.PaymentPending
	app := domain.Application{
		ID:            s.newID(),
		UserID:        userID,
		Sport:         w.Sport,
		Status:        domain.StatusPending,
		PaymentStatus: &pending,
		MembershipFee: domain.MembershipFee(w.Sport, data.PersonalInfo.MembershipType),
		SubmittedAt:   s.now().UTC(),
		Data:          data,
	}

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		return domain.Application{}, w, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if err = s.drafts.DeleteDraft(ctx, userID, w.Sport); err != nil {
		zap.L().Warn("failed to delete submitted draft",
			zap.Uint("userID", userID), zap.String("sport", w.Sport), zap.Error(err))
	}

	metrics.RecordSubmission(created.Sport)
	s.events.Publish(domain.NewApplicationEvent(domain.EventSubmitted, created, userID))

	return created, nil, nil
}

// ListByUser returns the user's applications in submission order, narrowed
// by the dashboard quick filter, plus stats over all of them.
func (s *ApplicationService) ListByUser(ctx context.Context, userID uint, active domain.QuickFilter) ([]domain.Application, domain.ApplicationStats, error) {
	apps, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, domain.ApplicationStats{}, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return domain.FilterApplications(apps, active.Match), domain.ComputeStats(apps), nil
}

// Get returns the application if viewer owns it or is an admin.
func (s *ApplicationService) Get(ctx context.Context, viewer domain.User, id string) (domain.Application, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Application{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if app.UserID != viewer.ID && !viewer.IsAdmin() {
		return domain.Application{}, ErrNotApplicationOwner
	}

	return app, nil
}

func (s *ApplicationService) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	apps, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return domain.FilterApplications(apps, filter.Match), nil
}

func (s *ApplicationService) Stats(ctx context.Context) (domain.ApplicationStats, error) {
	apps, err := s.repo.FindAll(ctx)
	if err != nil {
		return domain.ApplicationStats{}, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return domain.ComputeStats(apps), nil
}

// FeeQuote is the confirmation step shown before approving: the fee frozen
// at submission and what today's table would charge.
func (s *ApplicationService) FeeQuote(ctx context.Context, id string) (domain.FeeQuote, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.FeeQuote{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	membershipType := app.Data.PersonalInfo.MembershipType

	return domain.FeeQuote{
		ApplicationID:  app.ID,
		Sport:          app.Sport,
		MembershipType: membershipType,
		Fee:            app.MembershipFee,
		CurrentFee:     domain.MembershipFee(app.Sport, membershipType),
	}, nil
}

func (s *ApplicationService) Approve(ctx context.Context, actorID uint, id string, confirmedFee int64) (domain.Application, error) {
	return s.mutate(ctx, actorID, id, domain.EventApproved, func(app *domain.Application) error {
		if confirmedFee != app.MembershipFee {
			return ErrFeeMismatch
		}
		return app.Approve()
	})
}

func (s *ApplicationService) Reject(ctx context.Context, actorID uint, id string) (domain.Application, error) {
	return s.mutate(ctx, actorID, id, domain.EventRejected, func(app *domain.Application) error {
		return app.Reject()
	})
}

func (s *ApplicationService) UpdatePaymentStatus(ctx context.Context, actorID uint, id string, status domain.PaymentStatus) (domain.Application, error) {
	switch status {
	case domain.PaymentPending, domain.PaymentPaid, domain.PaymentFailed:
	default:
		return domain.Application{}, ErrInvalidPaymentStatus
	}

	return s.mutate(ctx, actorID, id, domain.EventPaymentUpdate, func(app *domain.Application) error {
		return app.SetPaymentStatus(status)
	})
}

func (s *ApplicationService) mutate(ctx context.Context, actorID uint, id string, event domain.EventType, change func(app *domain.Application) error) (domain.Application, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Application{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = change(&app); err != nil {
		return domain.Application{}, err
	}

	updated, err := s.repo.UpdateStatus(ctx, app)
	if err != nil {
		return domain.Application{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	switch event {
	case domain.EventApproved:
		metrics.RecordDecision("approved")
	case domain.EventRejected:
		metrics.RecordDecision("rejected")
	}
	s.events.Publish(domain.NewApplicationEvent(event, updated, actorID))

	return updated, nil
}
