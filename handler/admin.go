package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Liamshmuel20/Rant.GO/model"
	"github.com/Liamshmuel20/Rant.GO/service"
)

type AdminHandler struct {
	store   *service.Store
	rentals *service.RentalService
}

func NewAdminHandler(store *service.Store, rentals *service.RentalService) *AdminHandler {
	return &AdminHandler{store: store, rentals: rentals}
}

// ListPendingPayments returns payments awaiting the operator's
// confirmation, oldest first, each with its contract snapshot.
func (h *AdminHandler) ListPendingPayments(c *gin.Context) {
	payments, err := h.store.ListPaymentsAwaitingApproval()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}

	result := make([]gin.H, 0, len(payments))
	for _, p := range payments {
		entry := gin.H{"payment": p}
		if contract, err := h.store.GetContract(p.ContractID); err == nil && contract != nil {
			entry["contract"] = contract
		}
		result = append(result, entry)
	}

	c.JSON(http.StatusOK, gin.H{"payments": result})
}

// ApprovePayment confirms receipt of the tenant's transfer, activating
// the contract and opening the chat.
func (h *AdminHandler) ApprovePayment(c *gin.Context) {
	if err := h.rentals.AdminApprovePayment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment approved, rental is now active"})
}

// ListUsers returns every account for the operator's users view,
// newest first.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser returns a single account for the users view drill-down.
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.store.GetUser(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Stats aggregates the dashboard numbers: totals, revenue from active
// contracts, and contract status distribution.
func (h *AdminHandler) Stats(c *gin.Context) {
	users, err := h.store.CountUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}
	products, err := h.store.ListProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	contracts, err := h.store.ListContracts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contracts"})
		return
	}

	var totalRevenue, totalCommission int64
	statusCounts := make(map[string]int)
	for _, contract := range contracts {
		statusCounts[contract.Status]++
		if contract.Status == model.ContractActive {
			totalRevenue += contract.TotalPrice
			totalCommission += contract.CommissionAmount
		}
	}

	categoryCounts := make(map[string]int)
	for _, p := range products {
		if p.Category != "" {
			categoryCounts[p.Category]++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"users":            users,
		"products":         len(products),
		"contracts":        len(contracts),
		"total_revenue":    totalRevenue,
		"total_commission": totalCommission,
		"status_counts":    statusCounts,
		"category_counts":  categoryCounts,
	})
}
