package handler

import (
	"net/http"

	"catalog/internal/repository"
	"catalog/internal/service"

	"github.com/gin-gonic/gin"
)

// HomeHandler renders the catalog summary page.
type HomeHandler struct {
	summaryService *service.SummaryService
	pinger         repository.Pinger
}

func NewHomeHandler(summaryService *service.SummaryService, pinger repository.Pinger) *HomeHandler {
	return &HomeHandler{summaryService: summaryService, pinger: pinger}
}

func (h *HomeHandler) Index(c *gin.Context) {
	sum := h.summaryService.Summary(c.Request.Context())

	c.HTML(http.StatusOK, "index", gin.H{
		"Title":   "Home",
		"Summary": sum,
		"Error":   sum.Err(),
	})
}

func (h *HomeHandler) Health(c *gin.Context) {
	if err := h.pinger.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
