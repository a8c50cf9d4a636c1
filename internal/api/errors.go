package api

import (
	"errors"
	"net/http"

	"fitcoach/coaching-api/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Error kinds returned in the "kind" field of every error body.
const (
	kindInvalidReference  = "invalid_reference"
	kindReferenceNotFound = "reference_not_found"
	kindOwnershipMismatch = "ownership_mismatch"
	kindNotFound          = "not_found"
	kindValidationFailed  = "validation_failed"
	kindAmbiguousPlan     = "ambiguous_plan_reference"
	kindConflict          = "conflict"
	kindMediaUnavailable  = "media_unavailable"
	kindUnauthorized      = "unauthorized"
	kindForbidden         = "forbidden"
	kindInternal          = "internal"
)

// errorMappings is checked in order; the first match wins.
var errorMappings = []struct {
	target error
	status int
	kind   string
}{
	{service.ErrInvalidReference, http.StatusBadRequest, kindInvalidReference},
	{service.ErrReferenceNotFound, http.StatusNotFound, kindReferenceNotFound},
	{service.ErrOwnershipMismatch, http.StatusBadRequest, kindOwnershipMismatch},
	{service.ErrNotFound, http.StatusNotFound, kindNotFound},
	{service.ErrAmbiguousPlanReference, http.StatusBadRequest, kindAmbiguousPlan},
	{service.ErrValidationFailed, http.StatusBadRequest, kindValidationFailed},
	{service.ErrConflict, http.StatusConflict, kindConflict},
	{service.ErrAuthenticationFailed, http.StatusUnauthorized, kindUnauthorized},
	{service.ErrMediaUnavailable, http.StatusServiceUnavailable, kindMediaUnavailable},
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, kind, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message, "kind": kind})
}

// respondWithError maps a service error to its status and kind. Unknown
// errors are logged and hidden behind a 500.
func respondWithError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			abortWithError(c, m.status, m.kind, err.Error())
			return
		}
	}
	_ = c.Error(err)
	log.WithError(err).WithField("path", c.Request.URL.Path).Error("unexpected error")
	abortWithError(c, http.StatusInternalServerError, kindInternal, "An unexpected error occurred")
}

// bindJSON binds and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, http.StatusBadRequest, kindValidationFailed, "Validation error: "+err.Error())
		return false
	}
	return true
}
