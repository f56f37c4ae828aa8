package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adboard/internal/fleet"
	"adboard/internal/service"
)

type TwitterBotHandler struct {
	Service *service.BotService
	Fleet   fleet.Controller
	Logger  *zap.Logger
}

func (h *TwitterBotHandler) Register(r *gin.Engine) {
	group := r.Group("/twitter/bots")
	group.GET("", h.listBots)
	group.GET("/status", h.fleetStatus)
	group.GET("/manage", h.fleetManage)
	group.GET("/:username", h.getBot)
}

// @Summary List twitter bots
// @Tags twitter
// @Success 200 {array} models.TwitterBot
// @Router /twitter/bots [get]
func (h *TwitterBotHandler) listBots(c *gin.Context) {
	bots, err := h.Service.ListTwitterBots(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("twitter bot listing failed", zap.Error(err))
		}
		ServiceError(c, err)
		return
	}
	Ok(c, bots)
}

// @Summary Get a twitter bot
// @Tags twitter
// @Param username path string true "bot username"
// @Success 200 {object} models.TwitterBot
// @Failure 404 {object} errorResponse
// @Router /twitter/bots/{username} [get]
func (h *TwitterBotHandler) getBot(c *gin.Context) {
	bot, err := h.Service.GetTwitterBot(c.Request.Context(), c.Param("username"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, bot)
}

// @Summary Fleet instance states
// @Tags twitter
// @Success 200 {array} fleet.InstanceStatus
// @Router /twitter/bots/status [get]
func (h *TwitterBotHandler) fleetStatus(c *gin.Context) {
	if h.Fleet == nil {
		Error(c, http.StatusServiceUnavailable, "fleet control disabled")
		return
	}
	statuses, err := h.Fleet.Status(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("fleet status failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error())
		return
	}
	Ok(c, statuses)
}

// @Summary Start or stop fleet instances
// @Tags twitter
// @Param action query string true "start or stop"
// @Param id query []string true "instance ids"
// @Success 200 {object} fleet.ManageResult
// @Router /twitter/bots/manage [get]
func (h *TwitterBotHandler) fleetManage(c *gin.Context) {
	if h.Fleet == nil {
		Error(c, http.StatusServiceUnavailable, "fleet control disabled")
		return
	}
	result := h.Fleet.Manage(c.Request.Context(), c.Query("action"), strArrayQuery(c, "id"))
	Ok(c, result)
}
