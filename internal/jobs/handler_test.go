package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _, _ := newTestService(t)
	r := gin.New()
	h := NewHandler(svc)
	h.RegisterRoutes(r.Group("/api/v1"))
	h.RegisterPublicRoutes(r.Group("/api/v1"))
	return r, svc
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestClientCannotSetHasCustomForm(t *testing.T) {
	r, svc := newJobRouter(t)

	resp := doJSON(r, http.MethodPost, "/api/v1/jobs", map[string]any{
		"title": "Backend Engineer", "company": "TechCorp", "status": "active", "hasCustomForm": true,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created JobResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.False(t, created.HasCustomForm)

	require.NoError(t, svc.SetHasCustomForm(context.Background(), created.ID, true))

	resp = doJSON(r, http.MethodPatch, "/api/v1/jobs/"+created.ID, map[string]any{"hasCustomForm": false, "salary": "$120k"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var patched JobResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &patched))
	assert.True(t, patched.HasCustomForm)
	assert.Equal(t, "$120k", patched.Salary)

	stored, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasCustomForm)
}

func TestJobRoutesNotFoundAndPostings(t *testing.T) {
	r, _ := newJobRouter(t)

	resp := doJSON(r, http.MethodGet, "/api/v1/jobs/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = doJSON(r, http.MethodPost, "/api/v1/jobs", map[string]any{"title": "Draft role", "company": "TechCorp"})
	require.Equal(t, http.StatusCreated, resp.Code)
	resp = doJSON(r, http.MethodPost, "/api/v1/jobs", map[string]any{"title": "Open role", "company": "TechCorp", "status": "active"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(r, http.MethodGet, "/api/v1/postings", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var postings []JobResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &postings))
	require.Len(t, postings, 1)
	assert.Equal(t, "Open role", postings[0].Title)
}
