package dashboard

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/stages"
)

func TestDashboardRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(&Service{Jobs: jobList(nil), Apps: appList{}, Stages: stageList(stages.Defaults())}).RegisterRoutes(r.Group("/api/v1"))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, `"recentApplications":[]`) {
		t.Fatalf("expected empty recent list, got %s", body)
	}
	if !strings.Contains(body, `"name":"Hired"`) {
		t.Fatalf("expected stage names in payload, got %s", body)
	}
}
