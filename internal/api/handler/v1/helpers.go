package v1

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/blwclub/membership-portal/internal/api/handler/v1/response"
	"github.com/blwclub/membership-portal/internal/api/middleware"
	"github.com/blwclub/membership-portal/internal/domain"
)

var errNoSession = errors.New("no active session")

func getUserFromContext(ctx *gin.Context) (domain.User, *response.Err) {
	user, ok := middleware.SessionUser(ctx)
	if !ok {
		return domain.User{}, response.ErrUnauthorized(errNoSession)
	}

	return user.User(), nil
}

// homeFor is where a signed-in user lands: admins on the console, members on
// their dashboard.
func homeFor(role domain.Role) string {
	if role == domain.RoleAdmin {
		return "/admin"
	}

	return "/dashboard"
}

// applicationID reads the :id path parameter. Application ids are uuids, so
// anything else cannot exist and is reported as not found.
func applicationID(ctx *gin.Context) (string, *response.Err) {
	id := ctx.Param("id")
	if err := validation.Validate(id, validation.Required, is.UUID); err != nil {
		return "", response.ErrNotFound("application", "ID", id)
	}

	return id, nil
}
