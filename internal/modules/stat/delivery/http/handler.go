package handler

import (
	"net/http"

	"anoa.com/bookcommunity/internal/middleware"
	statService "anoa.com/bookcommunity/internal/modules/stat/service"
	"anoa.com/bookcommunity/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	statService statService.StatService
}

func NewStatHandler(statService statService.StatService) *StatHandler {
	return &StatHandler{
		statService: statService,
	}
}

func (h *StatHandler) GetCatalogStats(c *gin.Context) {
	stats, err := h.statService.GetCatalogStats(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
