package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/washpoint/washpoint/internal/config"
	"github.com/washpoint/washpoint/internal/domain/model"
	"github.com/washpoint/washpoint/internal/server/http/handlers"
	testhelpers "github.com/washpoint/washpoint/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.LaundryFacadeStub{}
	engine := Setup(facade, &config.Config{}, logger)

	body, _ := json.Marshal(map[string]string{"login": "user", "password": "pass", "phone": "677112233"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/rewards/status", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for reward status, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	// catalog mutations are staff-only; the stub user is a customer
	body, _ = json.Marshal(map[string]any{"name": "Ironing", "price": 200})
	req = httptest.NewRequest(http.MethodPost, "/api/services", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", resp.Code)
	}

	staffFacade := testhelpers.LaundryFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{
			UserFn: func(_ context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id, Login: "admin", Role: model.RoleAdmin}, nil
			},
		},
	}
	engine = Setup(staffFacade, &config.Config{}, logger)
	req = httptest.NewRequest(http.MethodPost, "/api/services", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for staff, got %d", resp.Code)
	}
}

func TestSetupCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cfg := &config.Config{AllowedOrigins: []string{"https://dashboard.example"}}
	engine := Setup(testhelpers.LaundryFacadeStub{}, cfg, logger)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://dashboard.example" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}

var _ handlers.LaundryFacade = (*testhelpers.LaundryFacadeStub)(nil)
