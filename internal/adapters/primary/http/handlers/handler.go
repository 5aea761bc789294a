package handlers

import (
	"model-deploy-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	scoringSvc *services.ScoringService
}

func New(scoringSvc *services.ScoringService) *Handler {
	return &Handler{scoringSvc: scoringSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/score", h.Score)
}
