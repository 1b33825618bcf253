package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blwclub/membership-portal/internal/api/handler/v1/response"
	"github.com/blwclub/membership-portal/internal/domain"
	"github.com/blwclub/membership-portal/internal/pkg/jwthelper"
	"github.com/blwclub/membership-portal/internal/session"
)

const (
	ContextKeyUserID      = "userID"
	ContextKeySessionID   = "sessionID"
	ContextKeySessionUser = "sessionUser"
)

var (
	errMissingToken   = errors.New("missing bearer token")
	errSessionExpired = errors.New("session expired, please log in again")
)

type SessionLoader interface {
	Load(ctx context.Context, sid string) (domain.SessionUser, error)
}

type Authenticator struct {
	key      []byte
	sessions SessionLoader
}

func NewAuthenticator(key string, sessions SessionLoader) *Authenticator {
	return &Authenticator{
		key:      []byte(key),
		sessions: sessions,
	}
}

// VerifyJWT requires a valid token whose session is still alive and stores
// the session snapshot on the gin context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw := BearerToken(ctx)
		if raw == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.key, raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(jwthelper.ErrInvalidToken))
			return
		}

		user, err := a.sessions.Load(ctx.Request.Context(), claims.SessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				response.RenderErr(ctx, response.ErrUnauthorized(errSessionExpired))
				return
			}

			err = fmt.Errorf("middleware.VerifyJWT -> a.sessions.Load -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}
		if user.ID != claims.UserID {
			response.RenderErr(ctx, response.ErrUnauthorized(jwthelper.ErrInvalidToken))
			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Set(ContextKeySessionID, claims.SessionID)
		ctx.Set(ContextKeySessionUser, user)
		ctx.Next()
	}
}

// RequireRole must run after VerifyJWT.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := SessionUser(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}
		if user.Role != role {
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an %s", user.ID, role)))
			return
		}

		ctx.Next()
	}
}

func SessionUser(ctx *gin.Context) (domain.SessionUser, bool) {
	v, ok := ctx.Get(ContextKeySessionUser)
	if !ok {
		return domain.SessionUser{}, false
	}
	user, ok := v.(domain.SessionUser)

	return user, ok
}

func SessionID(ctx *gin.Context) string {
	return ctx.GetString(ContextKeySessionID)
}

// BearerToken reads the Authorization header, falling back to the
// access_token query parameter that browser websocket clients must use.
func BearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ctx.Query("access_token")
}
