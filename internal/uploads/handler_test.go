package uploads

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func multipartBody(t *testing.T, name, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, w.FormDataContentType()
}

func TestUploadRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := newUploadEnv(t)
	r := gin.New()
	api := r.Group("/api/v1")
	h := NewHandler(env.svc)
	h.RegisterRoutes(api)
	h.RegisterPublicRoutes(api)

	body, contentType := multipartBody(t, "cv.txt", "hello recruiter")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/apply/"+env.job.ID+"/files", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.UploadID == "" || created.URL != "/api/v1/uploads/"+created.UploadID {
		t.Fatalf("unexpected upload response %+v", created)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, created.URL, nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected download 200, got %d", resp.Code)
	}
	if resp.Body.String() != "hello recruiter" {
		t.Fatalf("unexpected download body %q", resp.Body.String())
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, created.URL+"/text", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected text 200, got %d", resp.Code)
	}
	var text textResponse
	if err := json.NewDecoder(resp.Body).Decode(&text); err != nil {
		t.Fatalf("decode text: %v", err)
	}
	if text.Text != "hello recruiter" || text.Chars != 15 {
		t.Fatalf("unexpected text response %+v", text)
	}
}

func TestUploadRouteErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := newUploadEnv(t)
	r := gin.New()
	api := r.Group("/api/v1")
	h := NewHandler(env.svc)
	h.RegisterRoutes(api)
	h.RegisterPublicRoutes(api)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/apply/"+env.job.ID+"/files", bytes.NewBufferString(""))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d", resp.Code)
	}

	body, contentType := multipartBody(t, "cv.txt", "x")
	req = httptest.NewRequest(http.MethodPost, "/api/v1/apply/nope/files", body)
	req.Header.Set("Content-Type", contentType)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown job, got %d", resp.Code)
	}

	body, contentType = multipartBody(t, "tool.sh", "x")
	req = httptest.NewRequest(http.MethodPost, "/api/v1/apply/"+env.job.ID+"/files", body)
	req.Header.Set("Content-Type", contentType)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for disallowed extension, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/uploads/missing", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown upload, got %d", resp.Code)
	}
}
