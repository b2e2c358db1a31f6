package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Liamshmuel20/Rant.GO/middleware"
	"github.com/Liamshmuel20/Rant.GO/model"
	"github.com/Liamshmuel20/Rant.GO/service"
)

type RentalHandler struct {
	store   *service.Store
	rentals *service.RentalService
}

func NewRentalHandler(store *service.Store, rentals *service.RentalService) *RentalHandler {
	return &RentalHandler{store: store, rentals: rentals}
}

type SubmitRequestBody struct {
	ProductID   string `json:"product_id" binding:"required"`
	TenantName  string `json:"tenant_name" binding:"required"`
	TenantID    string `json:"tenant_id" binding:"required"`
	TenantPhone string `json:"tenant_phone" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Message     string `json:"message"`
}

// Submit creates a rental request for the authenticated tenant.
func (h *RentalHandler) Submit(c *gin.Context) {
	var body SubmitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	start, err := time.Parse(time.DateOnly, body.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(time.DateOnly, body.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, expected YYYY-MM-DD"})
		return
	}

	tenant, err := h.store.GetUserByEmail(middleware.GetEmail(c))
	if err != nil || tenant == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	request, err := h.rentals.SubmitRequest(c.Request.Context(), tenant, service.SubmitRequestInput{
		ProductID:   body.ProductID,
		TenantName:  body.TenantName,
		TenantID:    body.TenantID,
		TenantPhone: body.TenantPhone,
		StartDate:   start,
		EndDate:     end,
		Message:     body.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// List returns requests for the caller: ?role=landlord for incoming
// requests against their products, anything else for their own.
func (h *RentalHandler) List(c *gin.Context) {
	email := middleware.GetEmail(c)

	var (
		requests []*model.RentalRequest
		err      error
	)
	if c.Query("role") == "landlord" {
		requests, err = h.store.ListRequestsForLandlord(email)
	} else {
		requests, err = h.store.ListRequestsForTenant(email)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// Approve accepts a pending request, creating the contract and payment.
func (h *RentalHandler) Approve(c *gin.Context) {
	contract, err := h.rentals.ApproveRequest(c.Request.Context(), middleware.GetEmail(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

// Reject declines a pending request.
func (h *RentalHandler) Reject(c *gin.Context) {
	if err := h.rentals.RejectRequest(c.Request.Context(), middleware.GetEmail(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request rejected"})
}
