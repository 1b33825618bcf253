package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blwclub/membership-portal/internal/api/handler/v1/request"
	"github.com/blwclub/membership-portal/internal/api/handler/v1/response"
	"github.com/blwclub/membership-portal/internal/api/middleware"
	"github.com/blwclub/membership-portal/internal/config"
	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/pkg/jwthelper"
	"github.com/blwclub/membership-portal/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password, confirm string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	Logout(ctx context.Context, sid string) error
	Session(ctx context.Context, sid string) (domain.SessionUser, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleRegister godoc
// @Summary      Register a new member
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.RegisterRequest true "request body"
// @Success      201      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, sid, err := h.svc.Register(ctx.Request.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserEmailExists),
			errors.Is(err, service.ErrPasswordMismatch),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrPasswordPolicy):
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.renderToken(ctx, http.StatusCreated, user, sid)
}

// HandleLogin godoc
// @Summary      Login a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      401      {object}   response.Err
// @Failure      429      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, sid, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(service.ErrInvalidCredentials))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	h.renderToken(ctx, http.StatusOK, user, sid)
}

// HandleLogout godoc
// @Summary      Logout and drop the session
// @Tags         auth
// @Success      204
// @Failure      401      {object}   response.Err
// @Router       /auth/logout [post]
// @Security BearerAuth
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	if err := h.svc.Logout(ctx.Request.Context(), middleware.SessionID(ctx)); err != nil {
		err = fmt.Errorf("v1.HandleLogout -> h.svc.Logout -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSession godoc
// @Summary      Current session
// @Description  Reports whether the caller holds a live session and where the client should route them.
// @Tags         auth
// @Produce      json
// @Success      200      {object}   response.SessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) HandleSession(ctx *gin.Context) {
	guest := response.SessionResponse{Authenticated: false, Home: "/login"}

	raw := middleware.BearerToken(ctx)
	if raw == "" {
		ctx.JSON(http.StatusOK, guest)
		return
	}

	claims, err := jwthelper.ParseToken([]byte(h.conf.JWTSigningKey), raw)
	if err != nil {
		ctx.JSON(http.StatusOK, guest)
		return
	}

	user, err := h.svc.Session(ctx.Request.Context(), claims.SessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			ctx.JSON(http.StatusOK, guest)
			return
		}

		err = fmt.Errorf("v1.HandleSession -> h.svc.Session -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	if user.ID != claims.UserID {
		ctx.JSON(http.StatusOK, guest)
		return
	}

	ctx.JSON(http.StatusOK, response.SessionResponse{
		Authenticated: true,
		User:          &user,
		Home:          homeFor(user.Role),
	})
}

func (h *AuthHandler) renderToken(ctx *gin.Context, status int, user domain.User, sid string) {
	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user.ID, sid, ctx.Request.UserAgent(), h.conf.TokenTTL)
	if err != nil {
		err = fmt.Errorf("v1.renderToken -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(status, response.LoginResponse{
		Token:     token,
		ExpiresIn: int64(h.conf.TokenTTL.Seconds()),
		User:      user,
	})
}
