package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/fitstudio/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const internalErrorMessage = "internal server error"

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrClassNotFound), errors.Is(err, domain.ErrNoBookings):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoCapacity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateBooking):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": msg}. Internal failures are logged and
// reported with a generic message.
func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(requestIDKey),
			"path":       c.Request.URL.Path,
		}).WithError(err).Error("request failed")
		msg = internalErrorMessage
	}
	c.JSON(status, gin.H{"error": msg})
}
