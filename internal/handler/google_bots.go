package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adboard/internal/service"
)

type GoogleBotHandler struct {
	Service *service.BotService
	Logger  *zap.Logger
}

func (h *GoogleBotHandler) Register(r *gin.Engine) {
	group := r.Group("/google/bots")
	group.GET("", h.listBots)
	group.GET("/:username", h.getBot)
}

// @Summary List google bots
// @Tags google
// @Success 200 {array} models.GoogleBot
// @Router /google/bots [get]
func (h *GoogleBotHandler) listBots(c *gin.Context) {
	bots, err := h.Service.ListGoogleBots(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("google bot listing failed", zap.Error(err))
		}
		ServiceError(c, err)
		return
	}
	Ok(c, bots)
}

// @Summary Get a google bot
// @Tags google
// @Param username path string true "bot username"
// @Success 200 {object} models.GoogleBot
// @Failure 404 {object} errorResponse
// @Router /google/bots/{username} [get]
func (h *GoogleBotHandler) getBot(c *gin.Context) {
	bot, err := h.Service.GetGoogleBot(c.Request.Context(), c.Param("username"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, bot)
}
