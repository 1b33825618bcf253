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

type MemberApplicationService interface {
	ListByUser(ctx context.Context, userID uint, active domain.QuickFilter) ([]domain.Application, domain.ApplicationStats, error)
	Get(ctx context.Context, viewer domain.User, id string) (domain.Application, error)
}

type ApplicationHandler struct {
	svc MemberApplicationService
}

func NewApplicationHandler(svc MemberApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		svc: svc,
	}
}

// HandleListMine godoc
// @Summary      The member dashboard
// @Description  The caller's applications oldest first, narrowed by the selected stat card, plus counts over all of them.
// @Tags         applications
// @Produce      json
// @Param        active query     string false "all, pending, approved or payment-due"
// @Success      200    {object}  response.MemberApplicationsResponse
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Router       /applications [get]
// @Security BearerAuth
func (h *ApplicationHandler) HandleListMine(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var query request.MemberFilterQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := query.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	apps, stats, err := h.svc.ListByUser(ctx.Request.Context(), user.ID, domain.QuickFilter(query.Active))
	if err != nil {
		err = fmt.Errorf("v1.HandleListMine -> h.svc.ListByUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MemberApplicationsResponse{
		Applications: emptyIfNil(apps),
		Stats:        stats,
	})
}

// HandleGetApplication godoc
// @Summary      Get one application
// @Tags         applications
// @Produce      json
// @Param        id   path      string true "application ID"
// @Success      200  {object}  domain.Application
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /applications/{id} [get]
// @Security BearerAuth
func (h *ApplicationHandler) HandleGetApplication(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, respErr := applicationID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	app, err := h.svc.Get(ctx.Request.Context(), user, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("application", "ID", id))
		case errors.Is(err, service.ErrNotApplicationOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleGetApplication -> h.svc.Get -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, app)
}

func emptyIfNil(apps []domain.Application) []domain.Application {
	if apps == nil {
		return []domain.Application{}
	}
	return apps
}
