package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Liamshmuel20/Rant.GO/lifecycle"
	"github.com/Liamshmuel20/Rant.GO/middleware"
	"github.com/Liamshmuel20/Rant.GO/model"
	"github.com/Liamshmuel20/Rant.GO/pkg/logger"
	"github.com/Liamshmuel20/Rant.GO/service"
)

type ProductHandler struct {
	store *service.Store
	minio *service.MinioService
}

func NewProductHandler(store *service.Store, minioSvc *service.MinioService) *ProductHandler {
	return &ProductHandler{store: store, minio: minioSvc}
}

type CreateProductRequest struct {
	Title                    string `json:"title" binding:"required"`
	Description              string `json:"description"`
	Category                 string `json:"category"`
	PricePerDay              int64  `json:"price_per_day" binding:"required,gt=0"`
	DamageCompensationAmount int64  `json:"damage_compensation_amount"`
}

// Create adds a product offered by the authenticated landlord.
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	owner, err := h.store.GetUserByEmail(middleware.GetEmail(c))
	if err != nil || owner == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	product := &model.Product{
		ID:                       uuid.New().String(),
		Title:                    req.Title,
		Description:              req.Description,
		Category:                 req.Category,
		PricePerDay:              req.PricePerDay,
		DamageCompensationAmount: req.DamageCompensationAmount,
		OwnerName:                owner.FullName,
		OwnerIDNumber:            owner.IDNumber,
		OwnerEmail:               owner.Email,
	}
	if err := h.store.CreateProduct(product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// List returns all products, or only the caller's with ?mine=1.
func (h *ProductHandler) List(c *gin.Context) {
	var (
		products []*model.Product
		err      error
	)
	if c.Query("mine") != "" {
		products, err = h.store.ListProductsByOwner(middleware.GetEmail(c))
	} else {
		products, err = h.store.ListProducts()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Get returns one product together with the calendar days its active
// contracts occupy, so the client can grey them out before a request.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.store.GetProduct(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	contracts, err := h.store.ListContractsForProduct(product.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load availability"})
		return
	}

	occupied := lifecycle.OccupiedDates(contracts)
	dates := make([]string, len(occupied))
	for i, d := range occupied {
		dates[i] = d.Format(time.DateOnly)
	}

	c.JSON(http.StatusOK, gin.H{
		"product":        product,
		"occupied_dates": dates,
	})
}

// UploadImage stores a product image and saves its public URL.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	product, err := h.store.GetProduct(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}
	if product == nil || product.OwnerEmail != middleware.GetEmail(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentTypes := map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".webp": "image/webp",
	}
	contentType, ok := contentTypes[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only JPG, PNG and WebP images are allowed"})
		return
	}

	objectName := fmt.Sprintf("products/%s/%s%s", product.ID, uuid.New().String(), ext)
	if err := h.minio.UploadFile(c.Request.Context(), objectName, file, header.Size, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image: " + err.Error()})
		return
	}

	imageURL := h.minio.GetPublicURL(objectName)
	if err := h.store.UpdateProduct(product.ID, map[string]any{"image_url": imageURL}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": imageURL})
}

// Delete removes a product. The owner may delete their own; the admin
// may delete any.
func (h *ProductHandler) Delete(c *gin.Context) {
	product, err := h.store.GetProduct(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if product.OwnerEmail != middleware.GetEmail(c) && middleware.GetRole(c) != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
		return
	}

	if err := h.store.DeleteProduct(product.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	// The stored image is cleanup, not part of the delete contract
	if h.minio != nil && product.ImageURL != "" {
		if objectName := h.minio.ObjectNameFromURL(product.ImageURL); objectName != "" {
			if err := h.minio.DeleteFile(c.Request.Context(), objectName); err != nil {
				logger.Warn(c.Request.Context(), "failed to delete product image", "error", err, "product_id", product.ID)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
