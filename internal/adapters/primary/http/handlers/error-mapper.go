package handlers

import (
	"errors"
	"net/http"

	"model-deploy-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrModelNotFound),
		errors.Is(err, domain.ErrImageNotFound),
		errors.Is(err, domain.ErrServiceNotFound),
		errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrAssetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidModelName),
		errors.Is(err, domain.ErrInvalidModelPath),
		errors.Is(err, domain.ErrInvalidImageName),
		errors.Is(err, domain.ErrInvalidImageSpec),
		errors.Is(err, domain.ErrInvalidServiceName),
		errors.Is(err, domain.ErrInvalidDeployConfig),
		errors.Is(err, domain.ErrEmptyScoringBatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Not ready
	case errors.Is(err, domain.ErrScoringModelNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	// Internal errors
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
