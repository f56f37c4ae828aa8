package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adboard/internal/repository"
)

// StatsHandler serves the aggregate dashboard figures straight from the
// store; there is no intermediate service because every endpoint is a single
// read.
type StatsHandler struct {
	Store  repository.Store
	Logger *zap.Logger
}

func (h *StatsHandler) Register(r *gin.Engine) {
	google := r.Group("/google/stats")
	google.GET("/bot-alignment", h.googleBotAlignment)
	google.GET("/category", h.googleCategory)
	google.GET("/category-bot", h.googleCategoryBot)
	google.GET("/ad-count", h.googleAdCount)
	google.GET("/ad-stat", h.googleAdStat)

	twitter := r.Group("/twitter/stats")
	twitter.GET("/bot-alignment", h.twitterBotAlignment)
	twitter.GET("/category", h.twitterCategory)
	twitter.GET("/category-bot", h.twitterCategoryBot)
	twitter.GET("/ad-count", h.twitterAdCount)
	twitter.GET("/ad-stat", h.twitterAdStat)
}

func (h *StatsHandler) respond(c *gin.Context, what string, data any, err error) {
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("stat query failed", zap.String("stat", what), zap.Error(err))
		}
		ServiceError(c, err)
		return
	}
	Ok(c, data)
}

// statMonth resolves the month window for daily counts: the month containing
// startDate, defaulting to the current month.
func statMonth(c *gin.Context) time.Time {
	if t := msEpochQuery(c, "startDate"); t != nil {
		return *t
	}
	return time.Now().UTC()
}

// @Summary Bot counts per demographic value
// @Tags google
// @Success 200 {array} repository.AlignmentGroup
// @Router /google/stats/bot-alignment [get]
func (h *StatsHandler) googleBotAlignment(c *gin.Context) {
	data, err := h.Store.GoogleBotAlignmentStats(c.Request.Context())
	h.respond(c, "google bot-alignment", data, err)
}

// @Summary Ad counts per tag
// @Tags google
// @Success 200 {array} repository.LabelCount
// @Router /google/stats/category [get]
func (h *StatsHandler) googleCategory(c *gin.Context) {
	data, err := h.Store.GoogleCategoryStats(c.Request.Context())
	h.respond(c, "google category", data, err)
}

// @Summary Average bot demographics per tag
// @Tags google
// @Success 200 {array} repository.CategoryBotRow
// @Router /google/stats/category-bot [get]
func (h *StatsHandler) googleCategoryBot(c *gin.Context) {
	data, err := h.Store.GoogleCategoryBotStats(c.Request.Context())
	h.respond(c, "google category-bot", data, err)
}

// @Summary Daily ad counts for the month containing startDate
// @Tags google
// @Param startDate query int false "ms epoch inside the wanted month"
// @Success 200 {array} repository.DailyAdCount
// @Router /google/stats/ad-count [get]
func (h *StatsHandler) googleAdCount(c *gin.Context) {
	data, err := h.Store.GoogleMonthlyAdCounts(c.Request.Context(), statMonth(c))
	h.respond(c, "google ad-count", data, err)
}

// @Summary Ad totals and per-bot ratio
// @Tags google
// @Success 200 {object} repository.GoogleAdSummary
// @Router /google/stats/ad-stat [get]
func (h *StatsHandler) googleAdStat(c *gin.Context) {
	data, err := h.Store.GoogleAdSummaryStats(c.Request.Context())
	h.respond(c, "google ad-stat", data, err)
}

// @Summary Bot counts per political ranking
// @Tags twitter
// @Success 200 {array} repository.AlignmentGroup
// @Router /twitter/stats/bot-alignment [get]
func (h *StatsHandler) twitterBotAlignment(c *gin.Context) {
	data, err := h.Store.TwitterBotAlignmentStats(c.Request.Context())
	h.respond(c, "twitter bot-alignment", data, err)
}

// @Summary Ad counts per tag
// @Tags twitter
// @Success 200 {array} repository.LabelCount
// @Router /twitter/stats/category [get]
func (h *StatsHandler) twitterCategory(c *gin.Context) {
	data, err := h.Store.TwitterCategoryStats(c.Request.Context())
	h.respond(c, "twitter category", data, err)
}

// @Summary Average bot politics per tag
// @Tags twitter
// @Success 200 {array} repository.CategoryBotRow
// @Router /twitter/stats/category-bot [get]
func (h *StatsHandler) twitterCategoryBot(c *gin.Context) {
	data, err := h.Store.TwitterCategoryBotStats(c.Request.Context())
	h.respond(c, "twitter category-bot", data, err)
}

// @Summary Daily sighting counts for the month containing startDate
// @Tags twitter
// @Param startDate query int false "ms epoch inside the wanted month"
// @Success 200 {array} repository.DailyAdCount
// @Router /twitter/stats/ad-count [get]
func (h *StatsHandler) twitterAdCount(c *gin.Context) {
	data, err := h.Store.TwitterMonthlyAdCounts(c.Request.Context(), statMonth(c))
	h.respond(c, "twitter ad-count", data, err)
}

// @Summary Ad totals and per-bot ratios
// @Tags twitter
// @Success 200 {object} repository.TwitterAdSummary
// @Router /twitter/stats/ad-stat [get]
func (h *StatsHandler) twitterAdStat(c *gin.Context) {
	data, err := h.Store.TwitterAdSummaryStats(c.Request.Context())
	h.respond(c, "twitter ad-stat", data, err)
}
