package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adboard/internal/models"
	"adboard/internal/pagination"
	"adboard/internal/query"
	"adboard/internal/service"
)

type GoogleAdHandler struct {
	Service      *service.GoogleAdService
	Logger       *zap.Logger
	DefaultLimit int
	MaxLimit     int
}

func (h *GoogleAdHandler) Register(r *gin.Engine) {
	group := r.Group("/google")
	group.GET("/ads", h.listAds)
	group.GET("/ads/:id", h.getAd)
	group.POST("/ads/:id/tags/:tagId", h.attachTag)
	group.DELETE("/ads/:id/tags/:tagId", h.detachTag)
}

// googleAdResponse flattens the tag assignments into a plain tag list.
type googleAdResponse struct {
	models.GoogleAd
	Tags []models.GoogleTag `json:"tags"`
}

func newGoogleAdResponse(ad models.GoogleAd) googleAdResponse {
	tags := make([]models.GoogleTag, 0, len(ad.AdTags))
	for _, at := range ad.AdTags {
		if at.Tag != nil {
			tags = append(tags, *at.Tag)
		}
	}
	return googleAdResponse{GoogleAd: ad, Tags: tags}
}

type googleAdListResponse struct {
	Metadata pagination.Metadata `json:"metadata"`
	Records  []googleAdResponse  `json:"records"`
}

// @Summary List google ads
// @Tags google
// @Param offset query int false "page offset"
// @Param limit query int false "page size (default 30, max 100)"
// @Param tag query []string false "tag names, case-insensitive"
// @Param bots query []string false "bot ids"
// @Param gender query []string false "bot genders"
// @Param political query []int false "bot political rankings"
// @Param startDate query int false "inclusive lower bound, ms epoch"
// @Param endDate query int false "inclusive upper bound, ms epoch"
// @Success 200 {object} googleAdListResponse
// @Router /google/ads [get]
func (h *GoogleAdHandler) listAds(c *gin.Context) {
	w := pageWindow(c, h.DefaultLimit, h.MaxLimit)
	if w.Offset < 0 || w.Limit < 0 {
		c.JSON(http.StatusOK, gin.H{"records": []googleAdResponse{}})
		return
	}
	filters := query.AdFilters{
		Tags:      strArrayQuery(c, "tag"),
		Bots:      strArrayQuery(c, "bots"),
		Genders:   strArrayQuery(c, "gender"),
		Political: int64ArrayQuery(c, "political"),
		StartDate: msEpochQuery(c, "startDate"),
		EndDate:   msEpochQuery(c, "endDate"),
	}
	res, err := h.Service.List(c.Request.Context(), filters, w)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("google ad listing failed", zap.Error(err))
		}
		ServiceError(c, err)
		return
	}
	records := make([]googleAdResponse, 0, len(res.Records))
	for _, ad := range res.Records {
		records = append(records, newGoogleAdResponse(ad))
	}
	c.JSON(http.StatusOK, googleAdListResponse{
		Metadata: pagination.Build(c.Request.URL.RequestURI(), w.Offset, w.Limit, res.TotalCount, res.RecordCount()),
		Records:  records,
	})
}

// @Summary Get a google ad
// @Tags google
// @Param id path string true "ad id"
// @Success 200 {object} googleAdResponse
// @Failure 404 {object} errorResponse
// @Router /google/ads/{id} [get]
func (h *GoogleAdHandler) getAd(c *gin.Context) {
	ad, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, newGoogleAdResponse(*ad))
}

// @Summary Attach a tag to a google ad
// @Tags google
// @Param id path string true "ad id"
// @Param tagId path int true "tag id"
// @Success 200 {object} googleAdResponse
// @Failure 404 {object} errorResponse
// @Router /google/ads/{id}/tags/{tagId} [post]
func (h *GoogleAdHandler) attachTag(c *gin.Context) {
	tagID, err := strconv.ParseInt(c.Param("tagId"), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid tag id")
		return
	}
	ad, err := h.Service.AttachTag(c.Request.Context(), c.Param("id"), tagID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("google tag attach failed", zap.Error(err))
		}
		ServiceError(c, err)
		return
	}
	Ok(c, newGoogleAdResponse(*ad))
}

// @Summary Detach a tag from a google ad
// @Tags google
// @Param id path string true "ad id"
// @Param tagId path int true "tag id"
// @Success 200 {object} googleAdResponse
// @Failure 404 {object} errorResponse
// @Router /google/ads/{id}/tags/{tagId} [delete]
func (h *GoogleAdHandler) detachTag(c *gin.Context) {
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
	Ok(c, newGoogleAdResponse(*ad))
}
