package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blwclub/membership-portal/internal/api/handler/v1/response"
	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/form"
	"github.com/blwclub/membership-portal/internal/service"
)

type DraftService interface {
	StartDraft(ctx context.Context, user domain.User, sport string) (*form.Wizard, error)
	GetDraft(ctx context.Context, userID uint, sport string) (*form.Wizard, error)
	DiscardDraft(ctx context.Context, userID uint, sport string) error
	EditDraft(ctx context.Context, userID uint, sport string, edit func(w *form.Wizard)) (*form.Wizard, error)
	NextStep(ctx context.Context, userID uint, sport string) (*form.Wizard, bool, error)
	PreviousStep(ctx context.Context, userID uint, sport string) (*form.Wizard, error)
	Submit(ctx context.Context, userID uint, sport string) (domain.Application, *form.Wizard, error)
}

// ApplyHandler drives the four step application form. Drafts are keyed by
// the signed-in user and the :sport path parameter.
type ApplyHandler struct {
	svc DraftService
}

func NewApplyHandler(svc DraftService) *ApplyHandler {
	return &ApplyHandler{
		svc: svc,
	}
}

// HandleStartDraft godoc
// @Summary      Start or resume an application
// @Description  Resumes the caller's draft for the sport, or starts one pre-filled from their profile.
// @Tags         apply
// @Produce      json
// @Param        sport path      string true "sport name"
// @Success      200   {object}  response.WizardResponse
// @Failure      400   {object}  response.Err
// @Failure      401   {object}  response.Err
// @Router       /apply/{sport} [post]
// @Security BearerAuth
func (h *ApplyHandler) HandleStartDraft(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	w, err := h.svc.StartDraft(ctx.Request.Context(), user, ctx.Param("sport"))
	if err != nil {
		h.renderDraftErr(ctx, "HandleStartDraft", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewWizardResponse(w))
}

// HandleGetDraft godoc
// @Summary      Get the current draft
// @Tags         apply
// @Produce      json
// @Param        sport path      string true "sport name"
// @Success      200   {object}  response.WizardResponse
// @Failure      404   {object}  response.Err
// @Router       /apply/{sport} [get]
// @Security BearerAuth
func (h *ApplyHandler) HandleGetDraft(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	w, err := h.svc.GetDraft(ctx.Request.Context(), user.ID, ctx.Param("sport"))
	if err != nil {
		h.renderDraftErr(ctx, "HandleGetDraft", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewWizardResponse(w))
}

// HandleDiscardDraft godoc
// @Summary      Discard the current draft
// @Tags         apply
// @Param        sport path      string true "sport name"
// @Success      204
// @Router       /apply/{sport} [delete]
// @Security BearerAuth
func (h *ApplyHandler) HandleDiscardDraft(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DiscardDraft(ctx.Request.Context(), user.ID, ctx.Param("sport")); err != nil {
		h.renderDraftErr(ctx, "HandleDiscardDraft", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUpdatePersonalInfo godoc
// @Summary      Save step 1
// @Tags         apply
// @Accept       json
// @Produce      json
// @Param        sport    path      string              true "sport name"
// @Param        request  body      domain.PersonalInfo true "personal information"
// @Success      200      {object}  response.WizardResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /apply/{sport}/personal-info [put]
// @Security BearerAuth
func (h *ApplyHandler) HandleUpdatePersonalInfo(ctx *gin.Context) {
	var req domain.PersonalInfo
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	h.edit(ctx, "HandleUpdatePersonalInfo", func(w *form.Wizard) { w.SetPersonalInfo(req) })
}

// HandleUpdateFamilyDetails godoc
// @Summary      Save step 2
// @Tags         apply
// @Accept       json
// @Produce      json
// @Param        sport    path      string               true "sport name"
// @Param        request  body      domain.FamilyDetails true "family details"
// @Success      200      {object}  response.WizardResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /apply/{sport}/family-details [put]
// @Security BearerAuth
func (h *ApplyHandler) HandleUpdateFamilyDetails(ctx *gin.Context) {
	var req domain.FamilyDetails
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	h.edit(ctx, "HandleUpdateFamilyDetails", func(w *form.Wizard) { w.SetFamilyDetails(req) })
}

// HandleUpdateSportSpecific godoc
// @Summary      Save step 3
// @Tags         apply
// @Accept       json
// @Produce      json
// @Param        sport    path      string               true "sport name"
// @Param        request  body      domain.SportSpecific true "sport specific details"
// @Success      200      {object}  response.WizardResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /apply/{sport}/sport-specific [put]
// @Security BearerAuth
func (h *ApplyHandler) HandleUpdateSportSpecific(ctx *gin.Context) {
	var req domain.SportSpecific
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	h.edit(ctx, "HandleUpdateSportSpecific", func(w *form.Wizard) { w.SetSportSpecific(req) })
}

// HandleUpdateDocuments godoc
// @Summary      Save step 4
// @Description  Document fields carry file names only. Uploads are out of scope.
// @Tags         apply
// @Accept       json
// @Produce      json
// @Param        sport    path      string           true "sport name"
// @Param        request  body      domain.Documents true "documents"
// @Success      200      {object}  response.WizardResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /apply/{sport}/documents [put]
// @Security BearerAuth
func (h *ApplyHandler) HandleUpdateDocuments(ctx *gin.Context) {
	var req domain.Documents
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	h.edit(ctx, "HandleUpdateDocuments", func(w *form.Wizard) { w.SetDocuments(req) })
}

// HandleNextStep godoc
// @Summary      Validate the current step and advance
// @Tags         apply
// @Produce      json
// @Param        sport path      string true "sport name"
// @Success      200   {object}  response.WizardResponse
// @Failure      404   {object}  response.Err
// @Failure      422   {object}  response.Err
// @Router       /apply/{sport}/next [post]
// @Security BearerAuth
func (h *ApplyHandler) HandleNextStep(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	w, advanced, err := h.svc.NextStep(ctx.Request.Context(), user.ID, ctx.Param("sport"))
	if err != nil {
		h.renderDraftErr(ctx, "HandleNextStep", err)
		return
	}

	if !advanced {
		response.RenderErr(ctx, response.ErrValidation(w.Step, w.Errors))
		return
	}

	ctx.JSON(http.StatusOK, response.NewWizardResponse(w))
}

// HandlePreviousStep godoc
// @Summary      Go back one step
// @Tags         apply
// @Produce      json
// @Param        sport path      string true "sport name"
// @Success      200   {object}  response.WizardResponse
// @Failure      404   {object}  response.Err
// @Router       /apply/{sport}/previous [post]
// @Security BearerAuth
func (h *ApplyHandler) HandlePreviousStep(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	w, err := h.svc.PreviousStep(ctx.Request.Context(), user.ID, ctx.Param("sport"))
	if err != nil {
		h.renderDraftErr(ctx, "HandlePreviousStep", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewWizardResponse(w))
}

// HandleSubmit godoc
// @Summary      Submit the application
// @Description  Revalidates every step. On failure the draft moves to the first failing step.
// @Tags         apply
// @Produce      json
// @Param        sport path      string true "sport name"
// @Success      201   {object}  domain.Application
// @Failure      404   {object}  response.Err
// @Failure      409   {object}  response.Err
// @Failure      422   {object}  response.Err
// @Router       /apply/{sport}/submit [post]
// @Security BearerAuth
func (h *ApplyHandler) HandleSubmit(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	app, w, err := h.svc.Submit(ctx.Request.Context(), user.ID, ctx.Param("sport"))
	if err != nil {
		var verrs form.ValidationErrors
		if errors.As(err, &verrs) && w != nil {
			response.RenderErr(ctx, response.ErrValidation(w.Step, verrs))
			return
		}

		h.renderDraftErr(ctx, "HandleSubmit", err)
		return
	}

	ctx.JSON(http.StatusCreated, app)
}

func (h *ApplyHandler) edit(ctx *gin.Context, op string, change func(w *form.Wizard)) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	w, err := h.svc.EditDraft(ctx.Request.Context(), user.ID, ctx.Param("sport"), change)
	if err != nil {
		h.renderDraftErr(ctx, op, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewWizardResponse(w))
}

func (h *ApplyHandler) renderDraftErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		response.RenderErr(ctx, response.ErrNotFound("draft", "sport", ctx.Param("sport")))
	case errors.Is(err, service.ErrInvalidSport):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrNotFinalStep):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		err = fmt.Errorf("v1.%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
