package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"libramind-backend/internal/shared/server/middleware"
	"libramind-backend/internal/summarize"
)

func newTestRouter(repo Repo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := &Service{
		Repo:       repo,
		Summarizer: summarize.New(&fakeLLM{reply: "test summary"}),
	}
	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.Auth("development", ""))
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func multipartUpload(t *testing.T, fileName string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadMissingFile(t *testing.T) {
	repo := NewMemoryRepo()
	r := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/pdf/upload", nil)
	req.Header.Set("X-User-Id", "user-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", body.Error.Code)
	}

	docs, _ := repo.ListByUser(context.Background(), "user-1", 10, 0)
	if len(docs) != 0 {
		t.Fatalf("rejected upload must not write records, found %d", len(docs))
	}
}

func TestUploadHappyPath(t *testing.T) {
	repo := NewMemoryRepo()
	r := newTestRouter(repo)

	buf, contentType := multipartUpload(t, "book.pdf", []byte("unparsable bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/pdf/upload", buf)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-Id", "user-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.ID == "" {
		t.Fatal("expected a document id")
	}
	if result.Filename != "book.pdf" {
		t.Fatalf("unexpected filename %q", result.Filename)
	}
	if result.Summary != "test summary" {
		t.Fatalf("unexpected summary %q", result.Summary)
	}
	if result.StoragePath != nil {
		t.Fatal("storage path must be absent without a configured store")
	}
}

func TestUploadRequiresUser(t *testing.T) {
	r := newTestRouter(NewMemoryRepo())

	buf, contentType := multipartUpload(t, "book.pdf", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/pdf/upload", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rec.Code)
	}
}

func TestListScopedToUser(t *testing.T) {
	repo := NewMemoryRepo()
	r := newTestRouter(repo)

	buf, contentType := multipartUpload(t, "mine.pdf", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/pdf/upload", buf)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-Id", "user-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("seed upload failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/pdf/upload", nil)
	req.Header.Set("X-User-Id", "user-2")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var items []ListItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("user-2 must not see user-1 documents, got %d", len(items))
	}
}

func TestPageNotFound(t *testing.T) {
	r := newTestRouter(NewMemoryRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/pdf/nope/pages?page=1", nil)
	req.Header.Set("X-User-Id", "user-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
