package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ScoreRequest is the scoring payload: one base64-encoded image per entry.
type ScoreRequest struct {
	Data []string `json:"data"`
}

func (h *Handler) Score(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	results, err := h.scoringSvc.Run(req.Data)
	if err != nil {
		log.WithError(err).Error("scoring request failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
