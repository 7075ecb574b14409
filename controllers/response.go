package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"fashion-store/models"
	"fashion-store/repositories"
	"fashion-store/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var badRequestErrors = []error{
	services.ErrInvalidQuantity,
	services.ErrInvalidItem,
	services.ErrProductUnavailable,
	services.ErrEmptyCheckout,
	services.ErrInvalidPaymentMethod,
	services.ErrInvalidAmount,
	services.ErrInvalidSignature,
	services.ErrInvalidPayload,
	services.ErrInvalidShipping,
	services.ErrTrackingRequired,
}

var notFoundErrors = []error{
	services.ErrProductNotFound,
	services.ErrSessionNotFound,
	services.ErrProviderNotFound,
	services.ErrTrackingNotFound,
	services.ErrOrderNotFound,
	repositories.ErrNotFound,
}

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	switch {
	case errors.Is(err, repositories.ErrCartConflict), errors.Is(err, repositories.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondError writes the error envelope. Internal failures get a generic
// message; the cause only goes to the log.
func respondError(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).WithField("path", c.FullPath()).Error(message)
		c.JSON(status, models.ErrorResponse{Success: false, Message: message})
		return
	}
	c.JSON(status, models.ErrorResponse{Success: false, Message: message, Error: err.Error()})
}

func badRequest(c *gin.Context, message string, err error) {
	resp := models.ErrorResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

func getPaginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}
