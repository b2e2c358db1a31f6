package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Liamshmuel20/Rant.GO/model"
	"github.com/Liamshmuel20/Rant.GO/service"
)

func notificationTestEnv(t *testing.T) (*gin.Engine, *service.Store) {
	t.Helper()

	store := newTestStore(t)
	handler := NewNotificationHandler(store)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("email", c.GetHeader("X-Test-Email"))
		c.Set("role", c.GetHeader("X-Test-Role"))
	})
	router.GET("/notifications", handler.List)
	router.GET("/notifications/badges", handler.Badges)
	router.POST("/notifications/:id/read", handler.MarkRead)
	router.PUT("/notifications/read-all", handler.MarkAllRead)
	router.DELETE("/notifications/:id", handler.Delete)

	return router, store
}

func seedNotification(t *testing.T, store *service.Store, id, email string) {
	t.Helper()
	if err := store.CreateNotification(&model.Notification{
		ID:        id,
		UserEmail: email,
		Title:     "בקשת השכרה חדשה",
		Type:      model.NotificationRentalRequest,
	}); err != nil {
		t.Fatalf("Failed to seed notification: %v", err)
	}
}

func TestNotificationHandlerListScopedToCaller(t *testing.T) {
	router, store := notificationTestEnv(t)
	seedNotification(t, store, "n-1", "dani@rantgo.test")
	seedNotification(t, store, "n-2", "dani@rantgo.test")
	seedNotification(t, store, "n-3", "ruth@rantgo.test")

	resp := doJSON(router, "GET", "/notifications", "dani@rantgo.test", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}
	notifications, _ := resp.Body["notifications"].([]any)
	if len(notifications) != 2 {
		t.Errorf("Expected 2 notifications for caller, got %d", len(notifications))
	}
}

func TestNotificationHandlerMarkReadOwnership(t *testing.T) {
	router, store := notificationTestEnv(t)
	seedNotification(t, store, "n-1", "dani@rantgo.test")

	// Someone else's notification looks like it does not exist
	resp := doJSON(router, "POST", "/notifications/n-1/read", "ruth@rantgo.test", nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for foreign notification, got %d", resp.Code)
	}

	resp = doJSON(router, "POST", "/notifications/n-1/read", "dani@rantgo.test", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	unread, err := store.CountUnreadNotifications("dani@rantgo.test")
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if unread != 0 {
		t.Errorf("Expected 0 unread after mark, got %d", unread)
	}
}

func TestNotificationHandlerMarkAllRead(t *testing.T) {
	router, store := notificationTestEnv(t)
	seedNotification(t, store, "n-1", "dani@rantgo.test")
	seedNotification(t, store, "n-2", "dani@rantgo.test")
	seedNotification(t, store, "n-3", "ruth@rantgo.test")

	resp := doJSON(router, "PUT", "/notifications/read-all", "dani@rantgo.test", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	unread, _ := store.CountUnreadNotifications("dani@rantgo.test")
	if unread != 0 {
		t.Errorf("Expected 0 unread for caller, got %d", unread)
	}
	otherUnread, _ := store.CountUnreadNotifications("ruth@rantgo.test")
	if otherUnread != 1 {
		t.Errorf("Expected other user's notification untouched, got %d unread", otherUnread)
	}
}

func TestNotificationHandlerDelete(t *testing.T) {
	router, store := notificationTestEnv(t)
	seedNotification(t, store, "n-1", "dani@rantgo.test")

	resp := doJSON(router, "DELETE", "/notifications/n-1", "ruth@rantgo.test", nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for foreign delete, got %d", resp.Code)
	}

	resp = doJSON(router, "DELETE", "/notifications/n-1", "dani@rantgo.test", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	notification, err := store.GetNotification("n-1")
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if notification != nil {
		t.Error("Expected notification gone after delete")
	}
}

func TestNotificationHandlerBadges(t *testing.T) {
	router, store := notificationTestEnv(t)
	seedNotification(t, store, "n-1", "landlord@rantgo.test")
	seedNotification(t, store, "n-2", "landlord@rantgo.test")

	if err := store.CreateRequest(&model.RentalRequest{
		ID:            "r-1",
		ProductID:     "p-1",
		LandlordEmail: "landlord@rantgo.test",
		TenantEmail:   "tenant@rantgo.test",
		Status:        model.RequestPending,
	}); err != nil {
		t.Fatalf("Failed to seed request: %v", err)
	}

	resp := doJSON(router, "GET", "/notifications/badges", "landlord@rantgo.test", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}
	if unread, _ := resp.Body["unread_notifications"].(float64); unread != 2 {
		t.Errorf("Expected 2 unread, got %v", resp.Body["unread_notifications"])
	}
	if pending, _ := resp.Body["pending_requests"].(float64); pending != 1 {
		t.Errorf("Expected 1 pending request, got %v", resp.Body["pending_requests"])
	}
	if _, present := resp.Body["payments_awaiting_approval"]; present {
		t.Error("Expected no admin badge for a regular user")
	}
}
