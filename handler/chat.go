package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Liamshmuel20/Rant.GO/lifecycle"
	"github.com/Liamshmuel20/Rant.GO/middleware"
	"github.com/Liamshmuel20/Rant.GO/model"
	"github.com/Liamshmuel20/Rant.GO/service"
)

type ChatHandler struct {
	store   *service.Store
	rentals *service.RentalService
}

func NewChatHandler(store *service.Store, rentals *service.RentalService) *ChatHandler {
	return &ChatHandler{store: store, rentals: rentals}
}

// ListMessages returns a contract's chat history to its parties.
// Reading stays open in any status; only writing is gated on active.
func (h *ChatHandler) ListMessages(c *gin.Context) {
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

	messages, err := h.store.ListChatMessages(contract.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":      messages,
		"chat_writable": lifecycle.ChatWritable(contract.Status),
	})
}

type SendMessageBody struct {
	Message string `json:"message" binding:"required"`
}

// SendMessage posts a message to an active contract's chat.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var body SendMessageBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.store.GetUserByEmail(middleware.GetEmail(c))
	if err != nil || user == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	message, err := h.rentals.PostChatMessage(c.Request.Context(), user, c.Param("id"), body.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}
