package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/service"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrSectionNotFound),
		errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidSequence),
		errors.Is(err, domain.ErrInvalidAnchor),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrInvalidData),
		errors.Is(err, domain.ErrInvalidSlug):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateSlug):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPersistence), errors.Is(err, service.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[http] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}

func badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
}
