package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adboard/internal/service"
)

type createTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// TagHandler serves the tag vocabularies of both sources.
type TagHandler struct {
	Service *service.TagService
	Logger  *zap.Logger
}

func (h *TagHandler) Register(r *gin.Engine) {
	google := r.Group("/google/tags")
	google.GET("", h.listGoogleTags)
	google.POST("", h.createGoogleTag)
	google.GET("/:id", h.getGoogleTag)

	twitter := r.Group("/twitter/tags")
	twitter.GET("", h.listTwitterTags)
	twitter.POST("", h.createTwitterTag)
	twitter.GET("/:id", h.getTwitterTag)
}

// @Summary List google tags
// @Tags google
// @Success 200 {array} models.GoogleTag
// @Router /google/tags [get]
func (h *TagHandler) listGoogleTags(c *gin.Context) {
	tags, err := h.Service.ListGoogleTags(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, tags)
}

// @Summary Get a google tag
// @Tags google
// @Param id path int true "tag id"
// @Success 200 {object} models.GoogleTag
// @Failure 404 {object} errorResponse
// @Router /google/tags/{id} [get]
func (h *TagHandler) getGoogleTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid tag id")
		return
	}
	tag, err := h.Service.GetGoogleTag(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, tag)
}

// @Summary Create a google tag
// @Tags google
// @Param body body createTagRequest true "tag name, lowercased on save"
// @Success 200 {object} models.GoogleTag
// @Router /google/tags [post]
func (h *TagHandler) createGoogleTag(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	tag, err := h.Service.CreateGoogleTag(c.Request.Context(), req.Name)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("google tag create failed", zap.Error(err))
		}
		ServiceError(c, err)
		return
	}
	Ok(c, tag)
}

// @Summary List twitter tags
// @Tags twitter
// @Success 200 {array} models.TwitterTag
// @Router /twitter/tags [get]
func (h *TagHandler) listTwitterTags(c *gin.Context) {
	tags, err := h.Service.ListTwitterTags(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, tags)
}

// @Summary Get a twitter tag
// @Tags twitter
// @Param id path int true "tag id"
// @Success 200 {object} models.TwitterTag
// @Failure 404 {object} errorResponse
// @Router /twitter/tags/{id} [get]
func (h *TagHandler) getTwitterTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid tag id")
		return
	}
	tag, err := h.Service.GetTwitterTag(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, tag)
}

// @Summary Create a twitter tag
// @Tags twitter
// @Param body body createTagRequest true "tag name, lowercased on save"
// @Success 200 {object} models.TwitterTag
// @Router /twitter/tags [post]
func (h *TagHandler) createTwitterTag(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	tag, err := h.Service.CreateTwitterTag(c.Request.Context(), req.Name)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("twitter tag create failed", zap.Error(err))
		}
		ServiceError(c, err)
		return
	}
	Ok(c, tag)
}
