package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Liamshmuel20/Rant.GO/lifecycle"
	"github.com/Liamshmuel20/Rant.GO/middleware"
	"github.com/Liamshmuel20/Rant.GO/model"
	"github.com/Liamshmuel20/Rant.GO/service"
)

type ContractHandler struct {
	store   *service.Store
	rentals *service.RentalService
	minio   *service.MinioService
}

func NewContractHandler(store *service.Store, rentals *service.RentalService, minioSvc *service.MinioService) *ContractHandler {
	return &ContractHandler{store: store, rentals: rentals, minio: minioSvc}
}

// List returns the caller's contracts (either side), without the
// rendered contract body.
func (h *ContractHandler) List(c *gin.Context) {
	contracts, err := h.store.ListContractsForUser(middleware.GetEmail(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contracts"})
		return
	}

	result := make([]gin.H, len(contracts))
	for i, contract := range contracts {
		result[i] = gin.H{
			"id":                  contract.ID,
			"product_description": contract.ProductDescription,
			"landlord_name":       contract.LandlordName,
			"tenant_name":         contract.TenantName,
			"start_date":          contract.StartDate.Format(time.DateOnly),
			"end_date":            contract.EndDate.Format(time.DateOnly),
			"total_price":         contract.TotalPrice,
			"status":              contract.Status,
			"created_at":          contract.CreatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, gin.H{"contracts": result})
}

// Get returns one contract, full text included, to its parties or the
// admin.
func (h *ContractHandler) Get(c *gin.Context) {
	contract, err := h.store.GetContract(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contract"})
		return
	}
	if contract == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}

	email := middleware.GetEmail(c)
	if contract.PartyOf(email) == "" && middleware.GetRole(c) != model.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}

	c.JSON(http.StatusOK, contract)
}

type CreateDraftBody struct {
	ProductID  string `json:"product_id" binding:"required"`
	TenantName string `json:"tenant_name" binding:"required"`
	TenantID   string `json:"tenant_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
}

// CreateDraft opens a contract directly from a product, skipping the
// request flow, for the landlord to send and both parties to sign.
func (h *ContractHandler) CreateDraft(c *gin.Context) {
	var body CreateDraftBody
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

	landlord, err := h.store.GetUserByEmail(middleware.GetEmail(c))
	if err != nil || landlord == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	contract, err := h.rentals.CreateDraftContract(c.Request.Context(), landlord, service.DraftContractInput{
		ProductID:  body.ProductID,
		TenantName: body.TenantName,
		TenantID:   body.TenantID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contract)
}

// Export stores the contract text as a document and returns a
// time-limited download link for the parties to keep or print.
func (h *ContractHandler) Export(c *gin.Context) {
	contract, err := h.store.GetContract(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contract"})
		return
	}
	if contract == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}

	email := middleware.GetEmail(c)
	if contract.PartyOf(email) == "" && middleware.GetRole(c) != model.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	if contract.ContractText == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Contract has no rendered text yet"})
		return
	}

	objectName := "contracts/" + contract.ID + ".txt"
	body := strings.NewReader(contract.ContractText)
	if err := h.minio.UploadFile(c.Request.Context(), objectName, body, int64(len(contract.ContractText)), "text/plain; charset=utf-8"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export contract"})
		return
	}

	url, err := h.minio.GetPresignedURL(c.Request.Context(), objectName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create download link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"download_url": url})
}

// Send moves a draft to awaiting the tenant's signature.
func (h *ContractHandler) Send(c *gin.Context) {
	h.signatureEvent(c, lifecycle.EventSendToTenant)
}

// Sign applies the signature of whichever party the caller is: tenant
// while awaiting the tenant, landlord while awaiting the landlord.
func (h *ContractHandler) Sign(c *gin.Context) {
	contract, err := h.store.GetContract(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contract"})
		return
	}
	if contract == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}

	var event lifecycle.Event
	switch contract.Status {
	case model.ContractAwaitingTenant:
		event = lifecycle.EventTenantSign
	case model.ContractAwaitingLandlord:
		event = lifecycle.EventLandlordSign
	default:
		c.JSON(http.StatusConflict, gin.H{"error": "Contract is not awaiting a signature"})
		return
	}

	h.signatureEvent(c, event)
}

// Cancel aborts a contract before it activates. Either party may
// cancel while the contract is still on the signature path.
func (h *ContractHandler) Cancel(c *gin.Context) {
	user, err := h.store.GetUserByEmail(middleware.GetEmail(c))
	if err != nil || user == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	contract, err := h.rentals.CancelContract(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (h *ContractHandler) signatureEvent(c *gin.Context, event lifecycle.Event) {
	user, err := h.store.GetUserByEmail(middleware.GetEmail(c))
	if err != nil || user == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	contract, err := h.rentals.SignContract(c.Request.Context(), user, c.Param("id"), event)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}
