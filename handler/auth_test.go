package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Liamshmuel20/Rant.GO/config"
	"github.com/Liamshmuel20/Rant.GO/model"
	"github.com/Liamshmuel20/Rant.GO/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestStore(t *testing.T) *service.Store {
	t.Helper()
	store, err := service.OpenStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	return store
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret",
			TokenExpireHours: 24,
		},
		Admin: config.AdminConfig{
			Email: "admin@rantgo.test",
		},
		Pricing: config.PricingConfig{CommissionBps: 1000},
	}
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandlerRegister(t *testing.T) {
	store := newTestStore(t)
	handler := NewAuthHandler(store, testConfig())

	router := gin.New()
	router.POST("/register", handler.Register)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "valid registration",
			body: map[string]string{
				"email": "dani@rantgo.test", "password": "secret-pass", "full_name": "דני כהן",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate email",
			body: map[string]string{
				"email": "dani@rantgo.test", "password": "secret-pass", "full_name": "דני כהן",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "short password",
			body: map[string]string{
				"email": "ruth@rantgo.test", "password": "short", "full_name": "רות לוי",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad email",
			body: map[string]string{
				"email": "not-an-email", "password": "secret-pass", "full_name": "רות לוי",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing full name",
			body: map[string]string{
				"email": "ruth@rantgo.test", "password": "secret-pass",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/register", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthHandlerRegisterAdminRole(t *testing.T) {
	store := newTestStore(t)
	handler := NewAuthHandler(store, testConfig())

	router := gin.New()
	router.POST("/register", handler.Register)

	w := postJSON(router, "/register", map[string]string{
		"email": "admin@rantgo.test", "password": "admin-secret", "full_name": "מנהלת המערכת",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var user model.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Errorf("Expected admin role for operator email, got %q", user.Role)
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	store := newTestStore(t)
	handler := NewAuthHandler(store, testConfig())

	router := gin.New()
	router.POST("/register", handler.Register)
	router.POST("/login", handler.Login)

	w := postJSON(router, "/register", map[string]string{
		"email": "dani@rantgo.test", "password": "secret-pass", "full_name": "דני כהן",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to register: %d %s", w.Code, w.Body.String())
	}

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name:           "valid login",
			body:           map[string]string{"email": "dani@rantgo.test", "password": "secret-pass"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			body:           map[string]string{"email": "dani@rantgo.test", "password": "wrong-pass"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown email",
			body:           map[string]string{"email": "nobody@rantgo.test", "password": "secret-pass"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing fields",
			body:           map[string]string{"email": "dani@rantgo.test"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/login", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.expectedStatus == http.StatusOK {
				var response LoginResponse
				if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
					t.Fatalf("Failed to parse response: %v", err)
				}
				if response.Token == "" {
					t.Error("Expected token in response")
				}
				if response.Email != "dani@rantgo.test" {
					t.Errorf("Expected email dani@rantgo.test, got %q", response.Email)
				}
				if response.Role != model.RoleUser {
					t.Errorf("Expected role user, got %q", response.Role)
				}
			}
		})
	}
}

func TestAuthHandlerGetCurrentUser(t *testing.T) {
	store := newTestStore(t)
	handler := NewAuthHandler(store, testConfig())

	if err := store.CreateUser(&model.User{
		ID:    "u-1",
		Email: "dani@rantgo.test",
		Role:  model.RoleUser,
	}); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	router := gin.New()
	router.GET("/me", func(c *gin.Context) {
		c.Set("email", "dani@rantgo.test")
		handler.GetCurrentUser(c)
	})

	req := httptest.NewRequest("GET", "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var user model.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if user.Email != "dani@rantgo.test" {
		t.Errorf("Expected email dani@rantgo.test, got %q", user.Email)
	}
}

func TestAuthHandlerUpdateProfile(t *testing.T) {
	store := newTestStore(t)
	handler := NewAuthHandler(store, testConfig())

	if err := store.CreateUser(&model.User{
		ID:    "u-1",
		Email: "dani@rantgo.test",
		Role:  model.RoleUser,
	}); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	router := gin.New()
	router.PUT("/me", func(c *gin.Context) {
		c.Set("email", "dani@rantgo.test")
		handler.UpdateProfile(c)
	})

	body, _ := json.Marshal(map[string]string{
		"full_name": "דני כהן", "id_number": "123456789", "phone": "054-2222222",
	})
	req := httptest.NewRequest("PUT", "/me", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var user model.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !user.ProfileComplete() {
		t.Errorf("Expected complete profile after update, got %+v", user)
	}
}
