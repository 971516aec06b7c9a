package api

import (
	"errors"   // Sentinel matching
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"github.com/wangruoshui6/meal-accounting-backend/internal/errs"
)

// ok writes the success envelope, optionally with a data payload
func ok(c *gin.Context, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

// fail maps a service error onto the failure envelope with the right status code
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrUnauthenticated), errors.Is(err, errs.ErrTokenInvalid), errors.Is(err, errs.ErrTokenExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"success": false, "message": err.Error()})
}
