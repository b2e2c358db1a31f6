package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Liamshmuel20/Rant.GO/lifecycle"
	"github.com/Liamshmuel20/Rant.GO/service"
)

// respondError maps service and lifecycle errors to HTTP statuses.
// Undefined transitions are conflicts: the record moved on since the
// caller last looked at it (or the caller clicked twice).
func respondError(c *gin.Context, err error) {
	var transition *lifecycle.ErrTransition

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
	case errors.Is(err, service.ErrProfileIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Complete your profile (name, ID number, phone) first"})
	case errors.Is(err, service.ErrDateConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Requested dates conflict with an active rental"})
	case errors.Is(err, service.ErrBadPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
	case errors.Is(err, service.ErrChatClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "Chat is available only for active contracts"})
	case errors.Is(err, lifecycle.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date precedes start date"})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": transition.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
