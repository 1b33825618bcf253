package v1

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blwclub/membership-portal/internal/api/handler/v1/response"
	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/form"
	"github.com/blwclub/membership-portal/internal/service"
)

func newApplyRouter(svc *MockDraftService) *gin.Engine {
	h := NewApplyHandler(svc)

	router := gin.New()
	group := router.Group("/", withUser(testMember))
	group.POST("/apply/:sport", h.HandleStartDraft)
	group.GET("/apply/:sport", h.HandleGetDraft)
	group.DELETE("/apply/:sport", h.HandleDiscardDraft)
	group.PUT("/apply/:sport/personal-info", h.HandleUpdatePersonalInfo)
	group.PUT("/apply/:sport/documents", h.HandleUpdateDocuments)
	group.POST("/apply/:sport/next", h.HandleNextStep)
	group.POST("/apply/:sport/previous", h.HandlePreviousStep)
	group.POST("/apply/:sport/submit", h.HandleSubmit)

	return router
}

func TestApplyHandler_HandleStartDraft(t *testing.T) {
	svc := new(MockDraftService)
	svc.On("StartDraft", mock.Anything, testMember, "golf").Return(form.NewWizard("golf", testMember), nil)

	rec := doRequest(newApplyRouter(svc), http.MethodPost, "/apply/golf", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp response.WizardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, form.StepPersonalInfo, resp.Step)
	assert.Equal(t, "Personal Information", resp.StepName)
	assert.Equal(t, 4, resp.TotalSteps)
	assert.Equal(t, "John Doe", resp.Data.PersonalInfo.Name)
	assert.Equal(t, domain.MembershipFee("golf", domain.MembershipOutsider), resp.Fee)
}

func TestApplyHandler_HandleGetDraft_NotFound(t *testing.T) {
	svc := new(MockDraftService)
	svc.On("GetDraft", mock.Anything, testMember.ID, "tennis").Return(nil, service.ErrDraftNotFound)

	rec := doRequest(newApplyRouter(svc), http.MethodGet, "/apply/tennis", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplyHandler_HandleUpdatePersonalInfo(t *testing.T) {
	svc := new(MockDraftService)
	w := form.NewWizard("tennis", testMember)
	svc.On("EditDraft", mock.Anything, testMember.ID, "tennis", mock.Anything).Return(w, nil)

	rec := doRequest(newApplyRouter(svc), http.MethodPut, "/apply/tennis/personal-info",
		`{"name":"Ravi","membership_type":"railway"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp response.WizardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Ravi", resp.Data.PersonalInfo.Name)
	assert.Equal(t, domain.MembershipFee("tennis", domain.MembershipRailway), resp.Fee)
}

func TestApplyHandler_HandleNextStep(t *testing.T) {
	t.Run("blocked by validation", func(t *testing.T) {
		w := form.NewWizard("tennis", domain.User{})
		require.False(t, w.Next())

		svc := new(MockDraftService)
		svc.On("NextStep", mock.Anything, testMember.ID, "tennis").Return(w, false, nil)

		rec := doRequest(newApplyRouter(svc), http.MethodPost, "/apply/tennis/next", "")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp response.Err
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, form.StepPersonalInfo, resp.Step)
		assert.Contains(t, resp.Errors.Messages(form.StepPersonalInfo), "Name is required")
	})

	t.Run("advances", func(t *testing.T) {
		w := form.NewWizard("tennis", testMember)
		w.Step = form.StepFamilyDetails

		svc := new(MockDraftService)
		svc.On("NextStep", mock.Anything, testMember.ID, "tennis").Return(w, true, nil)

		rec := doRequest(newApplyRouter(svc), http.MethodPost, "/apply/tennis/next", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"step":2`)
	})
}

func TestApplyHandler_HandleSubmit(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockDraftService)
		app := domain.Application{ID: "app-1", UserID: testMember.ID, Sport: "tennis", Status: domain.StatusPending, MembershipFee: 5000}
		svc.On("Submit", mock.Anything, testMember.ID, "tennis").Return(app, nil, nil)

		rec := doRequest(newApplyRouter(svc), http.MethodPost, "/apply/tennis/submit", "")
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"app-1"`)
	})

	t.Run("validation failure reports the first failing step", func(t *testing.T) {
		w := form.NewWizard("tennis", testMember)
		w.Step = form.StepDocuments
		_, err := w.Submit()
		require.Error(t, err)

		svc := new(MockDraftService)
		svc.On("Submit", mock.Anything, testMember.ID, "tennis").Return(domain.Application{}, w, err)

		rec := doRequest(newApplyRouter(svc), http.MethodPost, "/apply/tennis/submit", "")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp response.Err
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, form.StepPersonalInfo, resp.Step)
		assert.NotEmpty(t, resp.Errors[form.StepDocuments])
	})

	t.Run("not on the last step", func(t *testing.T) {
		svc := new(MockDraftService)
		svc.On("Submit", mock.Anything, testMember.ID, "tennis").
			Return(domain.Application{}, form.NewWizard("tennis", testMember), service.ErrNotFinalStep)

		rec := doRequest(newApplyRouter(svc), http.MethodPost, "/apply/tennis/submit", "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestApplyHandler_HandleDiscardDraft(t *testing.T) {
	svc := new(MockDraftService)
	svc.On("DiscardDraft", mock.Anything, testMember.ID, "golf").Return(nil).Once()

	rec := doRequest(newApplyRouter(svc), http.MethodDelete, "/apply/golf", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}
