package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adboard/internal/models"
	"adboard/internal/pagination"
	"adboard/internal/query"
	"adboard/internal/service"
)

type TwitterAdHandler struct {
	Service      *service.TwitterAdService
	Logger       *zap.Logger
	DefaultLimit int
	MaxLimit     int
}

func (h *TwitterAdHandler) Register(r *gin.Engine) {
	group := r.Group("/twitter")
	group.GET("/ads", h.listAds)
	group.GET("/ads/:id", h.getAd)
	group.POST("/ads/:id/tags/:tagId", h.attachTag)
	group.DELETE("/ads/:id/tags/:tagId", h.detachTag)
}

// twitterSightingResponse flattens the sighted ad's fields onto the sighting
// record, so each row reads like an ad that happens to carry observation
// context.
type twitterSightingResponse struct {
	ID             string              `json:"id"`
	AdID           string              `json:"adId"`
	BotID          string              `json:"botId"`
	Bot            *models.TwitterBot  `json:"bot,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	PromoterHandle string              `json:"promoterHandle"`
	Content        *string             `json:"content"`
	OfficialLink   *string             `json:"officialLink"`
	TweetLink      *string             `json:"tweetLink"`
	Image          *string             `json:"image"`
	AdType         string              `json:"adType"`
	Tags           []models.TwitterTag `json:"tags"`
}

func newTwitterSightingResponse(s models.TwitterAdSighting) twitterSightingResponse {
	resp := twitterSightingResponse{
		ID:        s.ID,
		AdID:      s.AdID,
		BotID:     s.BotID,
		Bot:       s.Bot,
		CreatedAt: s.CreatedAt,
		Tags:      []models.TwitterTag{},
	}
	if s.Ad != nil {
		resp.PromoterHandle = s.Ad.PromoterHandle
		resp.Content = s.Ad.Content
		resp.OfficialLink = s.Ad.OfficialLink
		resp.TweetLink = s.Ad.TweetLink
		resp.Image = s.Ad.Image
		resp.AdType = s.Ad.AdType
		for _, at := range s.Ad.AdTags {
			if at.Tag != nil {
				resp.Tags = append(resp.Tags, *at.Tag)
			}
		}
	}
	return resp
}

// twitterAdResponse is the unique-ad shape: tags flattened, every sighting
// listed under seenInstances.
type twitterAdResponse struct {
	models.TwitterAd
	Tags          []models.TwitterTag        `json:"tags"`
	SeenInstances []models.TwitterAdSighting `json:"seenInstances"`
}

func newTwitterAdResponse(ad models.TwitterAd) twitterAdResponse {
	tags := make([]models.TwitterTag, 0, len(ad.AdTags))
	for _, at := range ad.AdTags {
		if at.Tag != nil {
			tags = append(tags, *at.Tag)
		}
	}
	sightings := ad.Sightings
	if sightings == nil {
		sightings = []models.TwitterAdSighting{}
	}
	return twitterAdResponse{TwitterAd: ad, Tags: tags, SeenInstances: sightings}
}

func twitterFilters(c *gin.Context) query.AdFilters {
	return query.AdFilters{
		Tags:      strArrayQuery(c, "tag"),
		Bots:      strArrayQuery(c, "bots"),
		Political: int64ArrayQuery(c, "political"),
		BotTypes:  strArrayQuery(c, "botType"),
		AdTypes:   strArrayQuery(c, "adType"),
		StartDate: msEpochQuery(c, "startDate"),
		EndDate:   msEpochQuery(c, "endDate"),
	}
}

// @Summary List twitter ads
// @Tags twitter
// @Param offset query int false "page offset"
// @Param limit query int false "page size (default 30, max 100)"
// @Param tag query []string false "tag names, case-insensitive"
// @Param bots query []string false "bot usernames"
// @Param political query []int false "bot political rankings"
// @Param botType query []string false "bot types"
// @Param adType query []string false "ad types"
// @Param startDate query int false "inclusive lower bound, ms epoch"
// @Param endDate query int false "inclusive upper bound, ms epoch"
// @Param groupUnique query bool false "one record per unique ad"
// @Success 200 {object} map[string]any
// @Router /twitter/ads [get]
func (h *TwitterAdHandler) listAds(c *gin.Context) {
	w := pageWindow(c, h.DefaultLimit, h.MaxLimit)
	if w.Offset < 0 || w.Limit < 0 {
		c.JSON(http.StatusOK, gin.H{"records": []twitterSightingResponse{}})
		return
	}
	filters := twitterFilters(c)
	ctx := c.Request.Context()

	if boolQueryDefault(c, "groupUnique", false) {
		res, err := h.Service.ListUnique(ctx, filters, w)
		if err != nil {
			if h.Logger != nil {
				h.Logger.Warn("twitter unique ad listing failed", zap.Error(err))
			}
			ServiceError(c, err)
			return
		}
		records := make([]twitterAdResponse, 0, len(res.Records))
		for _, ad := range res.Records {
			records = append(records, newTwitterAdResponse(ad))
		}
		c.JSON(http.StatusOK, gin.H{
			"metadata": pagination.Build(c.Request.URL.RequestURI(), w.Offset, w.Limit, res.TotalCount, res.RecordCount()),
			"records":  records,
		})
		return
	}

	res, err := h.Service.ListSightings(ctx, filters, w)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("twitter sighting listing failed", zap.Error(err))
		}
		ServiceError(c, err)
		return
	}
	records := make([]twitterSightingResponse, 0, len(res.Records))
	for _, s := range res.Records {
		records = append(records, newTwitterSightingResponse(s))
	}
	c.JSON(http.StatusOK, gin.H{
		"metadata": pagination.Build(c.Request.URL.RequestURI(), w.Offset, w.Limit, res.TotalCount, res.RecordCount()),
		"records":  records,
	})
}

// @Summary Get a twitter ad
// @Tags twitter
// @Param id path string true "ad id"
// @Success 200 {object} twitterAdResponse
// @Failure 404 {object} errorResponse
// @Router /twitter/ads/{id} [get]
func (h *TwitterAdHandler) getAd(c *gin.Context) {
	ad, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, newTwitterAdResponse(*ad))
}

// @Summary Attach a tag to a twitter ad
// @Tags twitter
// @Param id path string true "ad id"
// @Param tagId path int true "tag id"
// @Success 200 {object} twitterAdResponse
// @Failure 404 {object} errorResponse
// @Router /twitter/ads/{id}/tags/{tagId} [post]
func (h *TwitterAdHandler) attachTag(c *gin.Context) {
	tagID, err := strconv.ParseInt(c.Param("tagId"), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid tag id")
		return
	}
	ad, err := h.Service.AttachTag(c.Request.Context(), c.Param("id"), tagID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("twitter tag attach failed", zap.Error(err))
		}
		ServiceError(c, err)
		return
	}
	Ok(c, newTwitterAdResponse(*ad))
}

// @Summary Detach a tag from a twitter ad
// @Tags twitter
// @Param id path string true "ad id"
// @Param tagId path int true "tag id"
// @Success 200 {object} twitterAdResponse
// @Failure 404 {object} errorResponse
// @Router /twitter/ads/{id}/tags/{tagId} [delete]
func (h *TwitterAdHandler) detachTag(c *gin.Context) {
	tagID, err := strconv.ParseInt(c.Param("tagId"), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid tag id")
		return
	}
	ad, err := h.Service.DetachTag(c.Request.Context(), c.Param("id"), tagID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, newTwitterAdResponse(*ad))
}
