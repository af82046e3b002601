package intake

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/internal/forms"
)

func newApplyRouter(t *testing.T) (*gin.Engine, *engineEnv) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env := newEngineEnv(t)
	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(env.engine).RegisterRoutes(api, api)
	return r, env
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestApplyRoutes(t *testing.T) {
	r, env := newApplyRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/apply/"+env.job.ID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "no_form")

	env.attachForm(t,
		forms.Field{ID: "name", Type: forms.FieldText, Label: "Full Name", Required: true},
		forms.Field{ID: "skills", Type: forms.FieldCheckbox, Label: "Skills", Required: true},
	)

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/apply/"+env.job.ID, nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"title":"Frontend Developer"`)

	resp = post(r, "/api/v1/apply/"+env.job.ID, `{"answers":{"skills":[]}}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	var body struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Equal(t, "This field is required", body.Error.Details["name"])
	assert.Equal(t, "Please select at least one option", body.Error.Details["skills"])

	resp = post(r, "/api/v1/apply/"+env.job.ID, `{"answers":{"name":"Ada","skills":["Go"]}}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created submitResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, "Ada", created.CandidateName)
	assert.Equal(t, 85, created.Score)

	resp = post(r, "/api/v1/apply/"+env.job.ID, `{"answers":{"name":{"first":"Ada"}}}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
