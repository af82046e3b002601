package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAuthRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestService(t)
	if _, err := svc.SeedDemo(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))

	do := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp
	}

	resp := do("/api/v1/auth/login", `{"email":"demo@example.com","password":"password"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if session.Token == "" || session.User.Email != "demo@example.com" {
		t.Fatalf("unexpected session %+v", session)
	}

	resp = do("/api/v1/auth/login", `{"email":"demo@example.com","password":"nope"}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	resp = do("/api/v1/auth/register", `{"name":"Ada","email":"ada@corp.io","password":"longenough","company":"Corp"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	resp = do("/api/v1/auth/register", `{"name":"Ada","email":"ada@corp.io","password":"longenough","company":"Corp"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
	resp = do("/api/v1/auth/register", `{"name":"Ada"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
