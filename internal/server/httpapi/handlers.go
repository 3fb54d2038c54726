package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/hopekeeper/internal/common"
	"github.com/dmitrijs2005/hopekeeper/internal/content"
	"github.com/dmitrijs2005/hopekeeper/internal/logging"
)

type handlers struct {
	catalog *content.Catalog
	audio   AudioLinker
	logger  logging.Logger
}

type educationResponse struct {
	Categories []content.Category      `json:"categories"`
	Items      []content.EducationItem `json:"items"`
}

type audioResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"`
}

// listEducation accepts ?category=<id>; "all" or nothing lists everything.
func (h *handlers) listEducation(c *gin.Context) {
	c.JSON(http.StatusOK, educationResponse{
		Categories: h.catalog.Education.Categories,
		Items:      h.catalog.EducationByCategory(c.Query("category")),
	})
}

func (h *handlers) getEducation(c *gin.Context) {
	item, ok := h.catalog.EducationItem(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) crisis(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Crisis)
}

func (h *handlers) listCoping(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Coping)
}

func (h *handlers) getCoping(c *gin.Context) {
	s, ok := h.catalog.Strategy(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handlers) resources(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Resources)
}

func (h *handlers) audioURL(c *gin.Context) {
	id := c.Param("id")
	url, err := h.audio.TrackURL(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.logger.Error(c.Request.Context(), "presign failed", "track", id, "error", err, "requestID", c.GetString(requestIDKey))
		c.JSON(http.StatusBadGateway, gin.H{"error": "audio unavailable"})
		return
	}
	c.JSON(http.StatusOK, audioResponse{ID: id, URL: url, ExpiresIn: 15 * 60})
}
