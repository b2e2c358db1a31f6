package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Liamshmuel20/Rant.GO/middleware"
	"github.com/Liamshmuel20/Rant.GO/model"
	"github.com/Liamshmuel20/Rant.GO/service"
)

type NotificationHandler struct {
	store *service.Store
}

func NewNotificationHandler(store *service.Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// List returns the caller's notifications, newest first, capped at 50.
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.store.ListNotificationsForUser(middleware.GetEmail(c), 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead flags one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notification, err := h.store.GetNotification(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notification"})
		return
	}
	if notification == nil || notification.UserEmail != middleware.GetEmail(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if err := h.store.MarkNotificationRead(notification.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

// MarkAllRead flags every unread notification of the caller.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.store.MarkAllNotificationsRead(middleware.GetEmail(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}

// Delete removes one of the caller's notifications.
func (h *NotificationHandler) Delete(c *gin.Context) {
	notification, err := h.store.GetNotification(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notification"})
		return
	}
	if notification == nil || notification.UserEmail != middleware.GetEmail(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if err := h.store.DeleteNotification(notification.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// Badges returns every count the shell polls for in one response: the
// unread bell plus the role-specific pending-action badges.
func (h *NotificationHandler) Badges(c *gin.Context) {
	email := middleware.GetEmail(c)

	unread, err := h.store.CountUnreadNotifications(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}
	pendingRequests, err := h.store.CountPendingRequestsForLandlord(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count requests"})
		return
	}
	payable, err := h.store.CountPayableRequestsForTenant(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count payments"})
		return
	}

	badges := gin.H{
		"unread_notifications": unread,
		"pending_requests":     pendingRequests,
		"payments_due":         payable,
	}

	if middleware.GetRole(c) == model.RoleAdmin {
		awaiting, err := h.store.CountPaymentsAwaitingApproval()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count approvals"})
			return
		}
		badges["payments_awaiting_approval"] = awaiting
	}

	c.JSON(http.StatusOK, badges)
}
