package bootstrap_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/internal/bootstrap"
	"ats-backend/internal/shared/config"
)

type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c *client) do(method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp := httptest.NewRecorder()
	c.router.ServeHTTP(resp, req)
	return resp
}

func (c *client) json(method, path, body string) *httptest.ResponseRecorder {
	return c.do(method, path, []byte(body), "application/json")
}

func newApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENV", "test")

	app, err := bootstrap.Build(config.Config{
		Env:                  "test",
		CORSAllowOrigin:      []string{"http://localhost:5173"},
		KVBackend:            "memory",
		ObjectStoreType:      "local",
		LocalStoreDir:        t.TempDir(),
		PublicBaseURL:        "https://ats.example.com",
		EligibilityThreshold: 60,
		SeedDemoData:         true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestRecruiterAndCandidateFlow(t *testing.T) {
	app := newApp(t)
	c := &client{t: t, router: app.Router}

	resp := c.do(http.MethodGet, "/api/v1/health", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"kvBackend":"memory"`)

	resp = c.do(http.MethodGet, "/api/v1/jobs", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = c.json(http.MethodPost, "/api/v1/auth/login", `{"email":"demo@example.com","password":"password"}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &session))
	c.token = session.Token

	resp = c.do(http.MethodGet, "/api/v1/me", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"company":"ATS Demo Company"`)

	resp = c.do(http.MethodGet, "/api/v1/jobs/j1/share", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "https://ats.example.com/apply/j1")

	// Candidate side carries no token.
	candidate := &client{t: t, router: app.Router}
	resp = candidate.do(http.MethodGet, "/api/v1/apply/j1", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"name":"Frontend Developer Application"`)

	resp = candidate.do(http.MethodGet, "/api/v1/apply/j2", nil, "")
	require.Equal(t, http.StatusNotFound, resp.Code)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("file", "ada.txt")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("Ada Lovelace - analytical engines"))
	require.NoError(t, w.Close())
	resp = candidate.do(http.MethodPost, "/api/v1/apply/j1/files", body.Bytes(), w.FormDataContentType())
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var upload struct {
		UploadID string `json:"uploadId"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &upload))

	resp = candidate.json(http.MethodPost, "/api/v1/apply/j1", `{"answers":{
		"name":"Ada Lovelace",
		"email":"ada@example.com",
		"resume":"`+upload.UploadID+`",
		"yearsExperience":"12",
		"programmingLanguages":["Go","Python"],
		"availability":"Immediately"
	}}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var submitted struct {
		ID            string `json:"id"`
		CandidateName string `json:"candidateName"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &submitted))
	assert.Equal(t, "Ada Lovelace", submitted.CandidateName)

	resp = c.do(http.MethodGet, "/api/v1/applications/"+submitted.ID, nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"resume":"/api/v1/uploads/`+upload.UploadID+`"`)

	resp = c.do(http.MethodGet, "/api/v1/uploads/"+upload.UploadID+"/text", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "analytical engines")

	resp = c.do(http.MethodGet, "/api/v1/dashboard", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var summary struct {
		ActiveJobs        int `json:"activeJobs"`
		TotalApplications int `json:"totalApplications"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.ActiveJobs)
	assert.Equal(t, 4, summary.TotalApplications)

	resp = c.do(http.MethodGet, "/api/v1/metrics", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "ats_applications_submitted_total")

	resp = c.do(http.MethodDelete, "/api/v1/jobs/j1", nil, "")
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = c.do(http.MethodGet, "/api/v1/applications?jobId=j1", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())

	resp = candidate.do(http.MethodGet, "/api/v1/apply/j1", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = c.do(http.MethodGet, "/api/v1/uploads/"+upload.UploadID, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestBuildWithSQLiteBackend(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	dir := t.TempDir()

	cfg := config.Config{
		Env:             "test",
		KVBackend:       "sqlite",
		SQLitePath:      dir + "/ats.sqlite",
		ObjectStoreType: "local",
		LocalStoreDir:   dir + "/uploads",
		SeedDemoData:    true,
	}
	app, err := bootstrap.Build(cfg)
	require.NoError(t, err)
	require.NotNil(t, app.DB)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"kvBackend":"sqlite"`)
	require.NoError(t, app.Close())

	// A second start over the same file keeps the data and does not reseed.
	app, err = bootstrap.Build(cfg)
	require.NoError(t, err)
	defer app.Close()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	req.Header.Set("X-User-Id", "1")
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	var apps []map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apps))
	assert.Len(t, apps, 3)
}
