package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Liamshmuel20/Rant.GO/middleware"
	"github.com/Liamshmuel20/Rant.GO/service"
)

type PaymentHandler struct {
	store   *service.Store
	rentals *service.RentalService
}

func NewPaymentHandler(store *service.Store, rentals *service.RentalService) *PaymentHandler {
	return &PaymentHandler{store: store, rentals: rentals}
}

type ConfirmPaymentBody struct {
	Method string `json:"method" binding:"required"`
}

// Confirm records that the tenant made the manual transfer; the admin
// then verifies and releases. The id is a rental request id or, for
// contracts opened directly from a product, the contract id.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var body ConfirmPaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	err := h.rentals.ConfirmPayment(c.Request.Context(), middleware.GetEmail(c), c.Param("id"), body.Method)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment confirmation recorded, awaiting admin approval"})
}

// List returns payments where the caller is tenant or landlord.
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.store.ListPaymentsForUser(middleware.GetEmail(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
