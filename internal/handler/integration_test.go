package handler_test

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/msomdec/folio-cms/internal/handler"
)

func TestIntegration_BlogLifecycle(t *testing.T) {
	srv := newTestServer(t, handler.RouteOptions{})
	authorID, token := srv.registerAndLogin(t, "writer@example.com")

	// Create requires a token.
	body, ct := multipartBody(t, map[string]string{"title": "A", "description": "d"}, "image", pngBytes)
	if resp, _ := srv.do(t, http.MethodPost, "/api/blog/add", "", ct, body); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: expected 401, got %d", resp.StatusCode)
	}

	// 1. Create, author defaulting to the caller.
	body, ct = multipartBody(t, map[string]string{"title": "A", "description": "d"}, "image", pngBytes)
	resp, created := srv.do(t, http.MethodPost, "/api/blog/add", token, ct, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d %v", resp.StatusCode, created)
	}
	if created["message"] != "Blog created successfully" {
		t.Fatalf("unexpected message %v", created["message"])
	}
	blog := created["blog"].(map[string]any)
	id := blog["id"].(string)
	image := blog["image"].(string)
	if id == "" || blog["uploadedDate"] == "" || blog["authorId"] != authorID {
		t.Fatalf("unexpected blog: %v", blog)
	}
	if !strings.HasPrefix(image, "images/") {
		t.Fatalf("expected relative image path, got %q", image)
	}

	// The stored image is served back.
	imgResp, err := http.Get(srv.URL + "/" + image)
	if err != nil {
		t.Fatalf("GET image: %v", err)
	}
	data, _ := io.ReadAll(imgResp.Body)
	imgResp.Body.Close()
	if imgResp.StatusCode != http.StatusOK || imgResp.Header.Get("Content-Type") != "image/png" || !bytes.Equal(data, pngBytes) {
		t.Fatalf("serve image: %d %s", imgResp.StatusCode, imgResp.Header.Get("Content-Type"))
	}

	// 2. Duplicate title is a conflict.
	body, ct = multipartBody(t, map[string]string{"title": "A", "description": "again"}, "image", pngBytes)
	if resp, b := srv.do(t, http.MethodPost, "/api/blog/add", token, ct, body); resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d %v", resp.StatusCode, b)
	}

	// 3. Update title without a new file.
	resp, updated := srv.sendJSON(t, http.MethodPatch, "/api/blog/update/"+id, token, map[string]string{"title": "B"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d %v", resp.StatusCode, updated)
	}
	ub := updated["blog"].(map[string]any)
	if ub["title"] != "B" || ub["image"] != image || ub["description"] != "d" {
		t.Fatalf("unexpected updated blog: %v", ub)
	}

	// 4. Public single read returns the envelope with the author resolved.
	resp, got := srv.do(t, http.MethodGet, "/api/blog/get/"+id, "", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.StatusCode)
	}
	if got["currentDataSize"] != float64(1) || got["totalDataSize"] != float64(1) || got["hasMore"] != false {
		t.Fatalf("unexpected envelope: %v", got)
	}
	record := got["blogs"].([]any)[0].(map[string]any)
	if record["image"] != "http://api.test/"+image {
		t.Fatalf("expected absolute image URL, got %v", record["image"])
	}
	if author := record["author"].(map[string]any); author["id"] != authorID || author["name"] != "Writer" {
		t.Fatalf("unexpected author: %v", author)
	}

	// 5. Delete, then the record and the file are gone.
	resp, deleted := srv.do(t, http.MethodDelete, "/api/blog/delete/"+id, token, "", nil)
	if resp.StatusCode != http.StatusOK || deleted["message"] != "Blog deleted successfully" {
		t.Fatalf("delete: got %d %v", resp.StatusCode, deleted)
	}
	if resp, _ := srv.do(t, http.MethodGet, "/api/blog/get/"+id, "", "", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", resp.StatusCode)
	}
	if resp, _ := srv.do(t, http.MethodGet, "/"+image, "", "", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("image after delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestIntegration_ListPagination(t *testing.T) {
	srv := newTestServer(t, handler.RouteOptions{})
	_, token := srv.registerAndLogin(t, "lister@example.com")

	for _, name := range []string{"a", "b", "c"} {
		resp, b := srv.postJSON(t, "/api/testimonial/add", token, map[string]string{"name": name, "designation": "CTO", "message": "hi"})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("add testimonial: %d %v", resp.StatusCode, b)
		}
	}

	resp, page := srv.do(t, http.MethodGet, "/api/testimonial/get?page=1&limit=2", "", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: %d", resp.StatusCode)
	}
	if page["currentDataSize"] != float64(2) || page["totalDataSize"] != float64(3) ||
		page["totalPages"] != float64(2) || page["currentPage"] != float64(1) || page["hasMore"] != true {
		t.Fatalf("unexpected envelope: %v", page)
	}

	// Non-numeric paging falls back to page 1, limit 10.
	_, page = srv.do(t, http.MethodGet, "/api/testimonial/get?page=abc&limit=", "", "", nil)
	if page["currentDataSize"] != float64(3) || page["currentPage"] != float64(1) || page["hasMore"] != false {
		t.Fatalf("unexpected default envelope: %v", page)
	}

	// Only the leading digits count.
	_, page = srv.do(t, http.MethodGet, "/api/testimonial/get?page=2.5&limit=2x", "", "", nil)
	if page["currentDataSize"] != float64(1) || page["currentPage"] != float64(2) || page["totalPages"] != float64(2) {
		t.Fatalf("unexpected fractional envelope: %v", page)
	}

	// Out of range values are clamped, not wrapped round to the first page.
	resp, page = srv.do(t, http.MethodGet, "/api/testimonial/get?page=1000000000000000001&limit=99999999999999999999", "", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("huge page: %d", resp.StatusCode)
	}
	if page["currentDataSize"] != float64(0) || page["totalPages"] != float64(1) || page["hasMore"] != false {
		t.Fatalf("unexpected huge-page envelope: %v", page)
	}
}

func TestIntegration_Validation(t *testing.T) {
	srv := newTestServer(t, handler.RouteOptions{})
	_, token := srv.registerAndLogin(t, "val@example.com")

	// Service without an image.
	body, ct := multipartBody(t, map[string]string{"title": "Web", "description": "d"}, "", nil)
	resp, b := srv.do(t, http.MethodPost, "/api/service/add", token, ct, body)
	if resp.StatusCode != http.StatusBadRequest || b["error"] != "service image is required" {
		t.Fatalf("expected 400 image required, got %d %v", resp.StatusCode, b)
	}

	// Non-image upload.
	body, ct = multipartBody(t, map[string]string{"title": "Web", "description": "d"}, "image", []byte("just text"))
	if resp, _ := srv.do(t, http.MethodPost, "/api/service/add", token, ct, body); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-image upload, got %d", resp.StatusCode)
	}

	// Missing user fields.
	resp, b = srv.postJSON(t, "/api/user/add", "", map[string]string{"name": "n"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete user, got %d %v", resp.StatusCode, b)
	}

	// Updating something that does not exist.
	resp, b = srv.sendJSON(t, http.MethodPatch, "/api/testimonial/update/missing", token, map[string]string{"name": "x"})
	if resp.StatusCode != http.StatusNotFound || b["error"] != "Testimonial not found" {
		t.Fatalf("expected 404, got %d %v", resp.StatusCode, b)
	}
}

func TestIntegration_UserRoutes(t *testing.T) {
	srv := newTestServer(t, handler.RouteOptions{})
	id, token := srv.registerAndLogin(t, "me@example.com")

	if resp, _ := srv.do(t, http.MethodGet, "/api/user/get", "", "", nil); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("user list without token: expected 401, got %d", resp.StatusCode)
	}

	resp, page := srv.do(t, http.MethodGet, "/api/user/get/"+id, token, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get user: %d", resp.StatusCode)
	}
	user := page["users"].([]any)[0].(map[string]any)
	if _, ok := user["password"]; ok {
		t.Fatal("user response must not include a password")
	}
	if user["role"] != "user" || user["status"] != true {
		t.Fatalf("unexpected defaults: %v", user)
	}

	// Replace the photo through a multipart update.
	body, ct := multipartBody(t, map[string]string{"designation": "Lead"}, "photo", pngBytes)
	req, _ := http.NewRequest(http.MethodPatch, srv.URL+"/api/user/update/"+id, body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	upd, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("PATCH user: %v", err)
	}
	upd.Body.Close()
	if upd.StatusCode != http.StatusOK {
		t.Fatalf("update user: expected 200, got %d", upd.StatusCode)
	}

	// Passwords change through the same route.
	resp, b := srv.sendJSON(t, http.MethodPatch, "/api/user/update/"+id, token, map[string]string{"password": "another-one"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("change password: %d %v", resp.StatusCode, b)
	}
}
