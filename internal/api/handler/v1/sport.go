package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blwclub/membership-portal/internal/domain"
)

// HandleGetSports godoc
// @Summary      List the club's sports
// @Description  Catalog shown on the landing page with each sport's fee tier.
// @Tags         sports
// @Produce      json
// @Success      200  {array}   domain.Sport
// @Router       /sports [get]
func HandleGetSports(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, domain.Sports())
}
