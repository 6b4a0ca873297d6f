package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/msomdec/folio-cms/internal/handler"
	"github.com/msomdec/folio-cms/internal/repository/sqlite"
	"github.com/msomdec/folio-cms/internal/service"
)

const (
	testJWTSecret = "test-secret-for-handler-tests-0123456789"
	testBaseURL   = "http://api.test"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

// newTestServices wires every service on a temp-dir SQLite database, using
// the database itself as the image store.
func newTestServices(t *testing.T) handler.Services {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	images := service.NewImageStore(db.FileStore(), testBaseURL, 1<<20)
	hasher := service.NewBcryptHasher(bcrypt.MinCost)
	tokens := service.NewTokenService(testJWTSecret, time.Hour, 24*time.Hour)

	return handler.Services{
		Auth:         service.NewAuthService(db.Users(), hasher, tokens, images),
		Users:        service.NewUserService(db.Users(), hasher, images),
		Blogs:        service.NewBlogService(db.Blogs(), db.Users(), images),
		Offerings:    service.NewOfferingService(db.Services(), images),
		Testimonials: service.NewTestimonialService(db.Testimonials(), images),
		Images:       images,
	}
}

type testServer struct {
	*httptest.Server
	svc handler.Services
}

func newTestServer(t *testing.T, opts handler.RouteOptions) *testServer {
	t.Helper()
	svc := newTestServices(t)
	if opts.MaxUploadBytes == 0 {
		opts.MaxUploadBytes = 1 << 20
	}
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, svc, opts)
	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, svc: svc}
}

// do sends a request and decodes a JSON response body when there is one.
func (s *testServer) do(t *testing.T, method, path, token, contentType string, body io.Reader) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, s.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]any
	if resp.Header.Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode %s %s response %q: %v", method, path, raw, err)
		}
	} else {
		decoded = map[string]any{"text": string(raw)}
	}
	return resp, decoded
}

func (s *testServer) postJSON(t *testing.T, path, token string, v any) (*http.Response, map[string]any) {
	t.Helper()
	return s.sendJSON(t, http.MethodPost, path, token, v)
}

func (s *testServer) sendJSON(t *testing.T, method, path, token string, v any) (*http.Response, map[string]any) {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return s.do(t, method, path, token, "application/json", bytes.NewReader(b))
}

// multipartBody builds a form with the given fields and, when fileField is
// set, a file part holding data.
func multipartBody(t *testing.T, fields map[string]string, fileField string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, "upload.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write(data)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

// registerAndLogin creates an active user and returns its id and access token.
func (s *testServer) registerAndLogin(t *testing.T, email string) (string, string) {
	t.Helper()
	body, ct := multipartBody(t, map[string]string{
		"name": "Writer", "mobile": "m-" + email, "email": email, "password": "password123", "designation": "Editor",
	}, "", nil)
	resp, created := s.do(t, http.MethodPost, "/api/user/add", "", ct, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add user: expected 201, got %d %v", resp.StatusCode, created)
	}
	id := created["user"].(map[string]any)["id"].(string)

	resp, session := s.postJSON(t, "/api/user/login", "", map[string]string{"email": email, "password": "password123"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d %v", resp.StatusCode, session)
	}
	return id, session["accessToken"].(string)
}
