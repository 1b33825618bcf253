package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/blwclub/membership-portal/internal/api/middleware"
	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/form"
)

var (
	testMember = domain.User{ID: 2, Email: "member@club.com", Name: "John Doe", Role: domain.RoleMember}
	testAdmin  = domain.User{ID: 1, Email: "admin@club.com", Name: "Admin User", Role: domain.RoleAdmin}
)

const (
	testAppID    = "7d8f4c2e-5b1a-4f3e-9c6d-2a1b3c4d5e6f"
	otherAppID   = "0b9e6a1c-3d2f-4e5a-8b7c-9d0e1f2a3b4c"
	missingAppID = "f1e2d3c4-b5a6-4978-8695-a4b3c2d1e0f9"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withUser stands in for middleware.Authenticator.VerifyJWT.
func withUser(user domain.User) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, user.ID)
		ctx.Set(middleware.ContextKeySessionID, "sid-1")
		ctx.Set(middleware.ContextKeySessionUser, domain.NewSessionUser(user))
		ctx.Next()
	}
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func doRequestWithHeader(router *gin.Engine, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header = header
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password, confirm string) (domain.User, string, error) {
	args := m.Called(ctx, name, email, password, confirm)
	return args.Get(0).(domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, sid string) error {
	return m.Called(ctx, sid).Error(0)
}

func (m *MockAuthService) Session(ctx context.Context, sid string) (domain.SessionUser, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(domain.SessionUser), args.Error(1)
}

type MockDraftService struct {
	mock.Mock
}

func (m *MockDraftService) StartDraft(ctx context.Context, user domain.User, sport string) (*form.Wizard, error) {
	args := m.Called(ctx, user, sport)
	w, _ := args.Get(0).(*form.Wizard)
	return w, args.Error(1)
}

func (m *MockDraftService) GetDraft(ctx context.Context, userID uint, sport string) (*form.Wizard, error) {
	args := m.Called(ctx, userID, sport)
	w, _ := args.Get(0).(*form.Wizard)
	return w, args.Error(1)
}

func (m *MockDraftService) DiscardDraft(ctx context.Context, userID uint, sport string) error {
	return m.Called(ctx, userID, sport).Error(0)
}

func (m *MockDraftService) EditDraft(ctx context.Context, userID uint, sport string, edit func(w *form.Wizard)) (*form.Wizard, error) {
	args := m.Called(ctx, userID, sport, edit)
	w, _ := args.Get(0).(*form.Wizard)
	if w != nil {
		edit(w)
	}
	return w, args.Error(1)
}

func (m *MockDraftService) NextStep(ctx context.Context, userID uint, sport string) (*form.Wizard, bool, error) {
	args := m.Called(ctx, userID, sport)
	w, _ := args.Get(0).(*form.Wizard)
	return w, args.Bool(1), args.Error(2)
}

func (m *MockDraftService) PreviousStep(ctx context.Context, userID uint, sport string) (*form.Wizard, error) {
	args := m.Called(ctx, userID, sport)
	w, _ := args.Get(0).(*form.Wizard)
	return w, args.Error(1)
}

func (m *MockDraftService) Submit(ctx context.Context, userID uint, sport string) (domain.Application, *form.Wizard, error) {
	args := m.Called(ctx, userID, sport)
	w, _ := args.Get(1).(*form.Wizard)
	return args.Get(0).(domain.Application), w, args.Error(2)
}

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) ListByUser(ctx context.Context, userID uint, active domain.QuickFilter) ([]domain.Application, domain.ApplicationStats, error) {
	args := m.Called(ctx, userID, active)
	apps, _ := args.Get(0).([]domain.Application)
	return apps, args.Get(1).(domain.ApplicationStats), args.Error(2)
}

func (m *MockApplicationService) Get(ctx context.Context, viewer domain.User, id string) (domain.Application, error) {
	args := m.Called(ctx, viewer, id)
	return args.Get(0).(domain.Application), args.Error(1)
}

func (m *MockApplicationService) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	args := m.Called(ctx, filter)
	apps, _ := args.Get(0).([]domain.Application)
	return apps, args.Error(1)
}

func (m *MockApplicationService) Stats(ctx context.Context) (domain.ApplicationStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ApplicationStats), args.Error(1)
}

func (m *MockApplicationService) FeeQuote(ctx context.Context, id string) (domain.FeeQuote, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.FeeQuote), args.Error(1)
}

func (m *MockApplicationService) Approve(ctx context.Context, actorID uint, id string, confirmedFee int64) (domain.Application, error) {
	args := m.Called(ctx, actorID, id, confirmedFee)
	return args.Get(0).(domain.Application), args.Error(1)
}

func (m *MockApplicationService) Reject(ctx context.Context, actorID uint, id string) (domain.Application, error) {
	args := m.Called(ctx, actorID, id)
	return args.Get(0).(domain.Application), args.Error(1)
}

func (m *MockApplicationService) UpdatePaymentStatus(ctx context.Context, actorID uint, id string, status domain.PaymentStatus) (domain.Application, error) {
	args := m.Called(ctx, actorID, id, status)
	return args.Get(0).(domain.Application), args.Error(1)
}
