package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Liamshmuel20/Rant.GO/model"
	"github.com/Liamshmuel20/Rant.GO/service"
)

func contractTestEnv(t *testing.T) (*gin.Engine, *service.Store) {
	t.Helper()

	store := newTestStore(t)
	cfg := testConfig()
	rentals := service.NewRentalService(store, service.NewMailer(&cfg.Email), cfg)
	handler := NewContractHandler(store, rentals, nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("email", c.GetHeader("X-Test-Email"))
		c.Set("role", c.GetHeader("X-Test-Role"))
	})
	router.GET("/contracts", handler.List)
	router.GET("/contracts/:id", handler.Get)
	router.POST("/contracts", handler.CreateDraft)
	router.POST("/contracts/:id/send", handler.Send)
	router.POST("/contracts/:id/sign", handler.Sign)
	router.POST("/contracts/:id/cancel", handler.Cancel)

	return router, store
}

func TestContractHandlerCancel(t *testing.T) {
	router, store := contractTestEnv(t)
	seedRentalUsers(t, store)

	resp := doJSON(router, "POST", "/contracts", "landlord@rantgo.test", map[string]any{
		"product_id":  "p-drill",
		"tenant_name": "דני כהן",
		"tenant_id":   "987654321",
		"start_date":  "2024-03-01",
		"end_date":    "2024-03-05",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Failed to create draft: %d %s", resp.Code, resp.Raw)
	}
	contractID := resp.Body["id"].(string)

	// Outsiders cannot cancel someone else's contract
	resp = doJSON(router, "POST", "/contracts/"+contractID+"/cancel", "tenant@rantgo.test", nil)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for non-party, got %d", resp.Code)
	}

	resp = doJSON(router, "POST", "/contracts/"+contractID+"/cancel", "landlord@rantgo.test", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Failed to cancel: %d %s", resp.Code, resp.Raw)
	}
	if status, _ := resp.Body["status"].(string); status != model.ContractCancelled {
		t.Errorf("Expected cancelled status, got %q", status)
	}

	// Cancelled is terminal, the signature path is closed
	resp = doJSON(router, "POST", "/contracts/"+contractID+"/send", "landlord@rantgo.test", nil)
	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409 sending a cancelled contract, got %d", resp.Code)
	}
	resp = doJSON(router, "POST", "/contracts/"+contractID+"/cancel", "landlord@rantgo.test", nil)
	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409 cancelling twice, got %d", resp.Code)
	}
}

func TestContractHandlerSignaturePath(t *testing.T) {
	router, store := contractTestEnv(t)
	seedRentalUsers(t, store)

	resp := doJSON(router, "POST", "/contracts", "landlord@rantgo.test", map[string]any{
		"product_id":  "p-drill",
		"tenant_name": "דני כהן",
		"tenant_id":   "987654321",
		"start_date":  "2024-02-01",
		"end_date":    "2024-02-05",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Failed to create draft: %d %s", resp.Code, resp.Raw)
	}
	contractID := resp.Body["id"].(string)
	if status, _ := resp.Body["status"].(string); status != model.ContractDraft {
		t.Fatalf("Expected draft status, got %q", status)
	}

	// Signing a draft that was never sent conflicts
	resp = doJSON(router, "POST", "/contracts/"+contractID+"/sign", "tenant@rantgo.test", nil)
	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409 signing an unsent draft, got %d", resp.Code)
	}

	resp = doJSON(router, "POST", "/contracts/"+contractID+"/send", "landlord@rantgo.test", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Failed to send: %d %s", resp.Code, resp.Raw)
	}

	resp = doJSON(router, "POST", "/contracts/"+contractID+"/sign", "tenant@rantgo.test", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Tenant failed to sign: %d %s", resp.Code, resp.Raw)
	}
	if email, _ := resp.Body["tenant_email"].(string); email != "tenant@rantgo.test" {
		t.Errorf("Expected tenant email bound on signature, got %q", email)
	}

	resp = doJSON(router, "POST", "/contracts/"+contractID+"/sign", "landlord@rantgo.test", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Landlord failed to sign: %d %s", resp.Code, resp.Raw)
	}
	if status, _ := resp.Body["status"].(string); status != model.ContractAwaitingPayment {
		t.Errorf("Expected awaiting_payment after both signatures, got %q", status)
	}
}

func TestContractHandlerGetVisibility(t *testing.T) {
	router, store := contractTestEnv(t)
	seedRentalUsers(t, store)

	if err := store.CreateContract(&model.Contract{
		ID:            "c-1",
		ProductID:     "p-drill",
		LandlordEmail: "landlord@rantgo.test",
		TenantEmail:   "tenant@rantgo.test",
		ContractText:  "חוזה השכרה",
		Status:        model.ContractActive,
	}); err != nil {
		t.Fatalf("Failed to seed contract: %v", err)
	}

	for _, email := range []string{"landlord@rantgo.test", "tenant@rantgo.test"} {
		resp := doJSON(router, "GET", "/contracts/c-1", email, nil)
		if resp.Code != http.StatusOK {
			t.Errorf("Expected status 200 for %s, got %d", email, resp.Code)
		}
	}

	resp := doJSON(router, "GET", "/contracts/c-1", "other@rantgo.test", nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for outsider, got %d", resp.Code)
	}

	resp = doJSONWithRole(router, "GET", "/contracts/c-1", "admin@rantgo.test", model.RoleAdmin, nil)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200 for admin, got %d", resp.Code)
	}
}

func TestContractHandlerListOmitsBody(t *testing.T) {
	router, store := contractTestEnv(t)
	seedRentalUsers(t, store)

	if err := store.CreateContract(&model.Contract{
		ID:            "c-1",
		ProductID:     "p-drill",
		LandlordEmail: "landlord@rantgo.test",
		TenantEmail:   "tenant@rantgo.test",
		ContractText:  "חוזה השכרה ארוך מאוד",
		TotalPrice:    15000,
		StartDate:     mustDate("2024-01-01"),
		EndDate:       mustDate("2024-01-03"),
		Status:        model.ContractActive,
	}); err != nil {
		t.Fatalf("Failed to seed contract: %v", err)
	}

	resp := doJSON(router, "GET", "/contracts", "tenant@rantgo.test", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}
	contracts, _ := resp.Body["contracts"].([]any)
	if len(contracts) != 1 {
		t.Fatalf("Expected 1 contract, got %d", len(contracts))
	}
	entry := contracts[0].(map[string]any)
	if _, present := entry["contract_text"]; present {
		t.Error("Expected listing to omit the contract body")
	}
	if total, _ := entry["total_price"].(float64); int64(total) != 15000 {
		t.Errorf("Expected total 15000, got %v", entry["total_price"])
	}
}
