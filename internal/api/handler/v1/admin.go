package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blwclub/membership-portal/internal/api/handler/v1/request"
	"github.com/blwclub/membership-portal/internal/api/handler/v1/response"
	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/service"
)

type AdminApplicationService interface {
	List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error)
	Stats(ctx context.Context) (domain.ApplicationStats, error)
	FeeQuote(ctx context.Context, id string) (domain.FeeQuote, error)
	Approve(ctx context.Context, actorID uint, id string, confirmedFee int64) (domain.Application, error)
	Reject(ctx context.Context, actorID uint, id string) (domain.Application, error)
	UpdatePaymentStatus(ctx context.Context, actorID uint, id string, status domain.PaymentStatus) (domain.Application, error)
}

// AdminHandler serves the admin console. Every route sits behind
// middleware.RequireRole(domain.RoleAdmin).
type AdminHandler struct {
	svc AdminApplicationService
}

func NewAdminHandler(svc AdminApplicationService) *AdminHandler {
	return &AdminHandler{
		svc: svc,
	}
}

// HandleListApplications godoc
// @Summary      List all applications
// @Tags         admin
// @Produce      json
// @Param        status query     string false "all, pending, approved or rejected"
// @Param        sport  query     string false "sport name"
// @Param        q      query     string false "matches applicant name or email"
// @Param        active query     string false "all, pending, approved or payment-due"
// @Success      200    {object}  response.AdminApplicationsResponse
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Router       /admin/applications [get]
// @Security BearerAuth
func (h *AdminHandler) HandleListApplications(ctx *gin.Context) {
	var query request.AdminFilterQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := query.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	apps, err := h.svc.List(ctx.Request.Context(), query.ToDomain())
	if err != nil {
		err = fmt.Errorf("v1.HandleListApplications -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.AdminApplicationsResponse{
		Applications: emptyIfNil(apps),
		Count:        len(apps),
	})
}

// HandleGetStats godoc
// @Summary      Console stat cards
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.ApplicationStats
// @Router       /admin/stats [get]
// @Security BearerAuth
func (h *AdminHandler) HandleGetStats(ctx *gin.Context) {
	stats, err := h.svc.Stats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetStats -> h.svc.Stats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleGetFeeQuote godoc
// @Summary      Fee to confirm before approval
// @Tags         admin
// @Produce      json
// @Param        id   path      string true "application ID"
// @Success      200  {object}  domain.FeeQuote
// @Failure      404  {object}  response.Err
// @Router       /admin/applications/{id}/fee-quote [get]
// @Security BearerAuth
func (h *AdminHandler) HandleGetFeeQuote(ctx *gin.Context) {
	id, respErr := applicationID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	quote, err := h.svc.FeeQuote(ctx.Request.Context(), id)
	if err != nil {
		h.renderErr(ctx, "HandleGetFeeQuote", id, err)
		return
	}

	ctx.JSON(http.StatusOK, quote)
}

// HandleApprove godoc
// @Summary      Approve a pending application
// @Description  The confirmed fee must equal the fee from the quote.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true "application ID"
// @Param        request  body      request.ApproveRequest  true "confirmed fee"
// @Success      200      {object}  domain.Application
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /admin/applications/{id}/approve [post]
// @Security BearerAuth
func (h *AdminHandler) HandleApprove(ctx *gin.Context) {
	admin, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, respErr := applicationID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ApproveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	app, err := h.svc.Approve(ctx.Request.Context(), admin.ID, id, req.ConfirmedFee)
	if err != nil {
		h.renderErr(ctx, "HandleApprove", id, err)
		return
	}

	ctx.JSON(http.StatusOK, app)
}

// HandleReject godoc
// @Summary      Reject a pending application
// @Tags         admin
// @Produce      json
// @Param        id   path      string true "application ID"
// @Success      200  {object}  domain.Application
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /admin/applications/{id}/reject [post]
// @Security BearerAuth
func (h *AdminHandler) HandleReject(ctx *gin.Context) {
	admin, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, respErr := applicationID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	app, err := h.svc.Reject(ctx.Request.Context(), admin.ID, id)
	if err != nil {
		h.renderErr(ctx, "HandleReject", id, err)
		return
	}

	ctx.JSON(http.StatusOK, app)
}

// HandleUpdatePayment godoc
// @Summary      Record a payment outcome
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true "application ID"
// @Param        request  body      request.PaymentRequest  true "payment status"
// @Success      200      {object}  domain.Application
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /admin/applications/{id}/payment [put]
// @Security BearerAuth
func (h *AdminHandler) HandleUpdatePayment(ctx *gin.Context) {
	admin, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, respErr := applicationID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	app, err := h.svc.UpdatePaymentStatus(ctx.Request.Context(), admin.ID, id, req.PaymentStatus)
	if err != nil {
		h.renderErr(ctx, "HandleUpdatePayment", id, err)
		return
	}

	ctx.JSON(http.StatusOK, app)
}

func (h *AdminHandler) renderErr(ctx *gin.Context, op, id string, err error) {
	switch {
	case errors.Is(err, service.ErrApplicationNotFound):
		response.RenderErr(ctx, response.ErrNotFound("application", "ID", id))
	case errors.Is(err, service.ErrInvalidStatusTransition),
		errors.Is(err, service.ErrPaymentNotApplicable),
		errors.Is(err, service.ErrFeeMismatch):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrInvalidPaymentStatus):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("v1.%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
