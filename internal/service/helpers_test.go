package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/msomdec/folio-cms/internal/domain"
	"github.com/msomdec/folio-cms/internal/repository/disk"
	"github.com/msomdec/folio-cms/internal/repository/sqlite"
	"github.com/msomdec/folio-cms/internal/service"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests-0123456789"
	testBaseURL   = "http://api.test"
)

// pngBytes is enough of a PNG header for content sniffing.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

type testEnv struct {
	db        *sqlite.DB
	imageDir  string
	images    *service.ImageStore
	hasher    service.BcryptHasher
	users     *service.UserService
	blogs     *service.BlogService
	offerings *service.OfferingService
	quotes    *service.TestimonialService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	imageDir := filepath.Join(dir, "images")
	files, err := disk.New(imageDir)
	if err != nil {
		t.Fatalf("disk.New: %v", err)
	}

	images := service.NewImageStore(files, testBaseURL, 1<<20)
	// Use cost 4 for fast tests.
	hasher := service.NewBcryptHasher(bcrypt.MinCost)
	return &testEnv{
		db:        db,
		imageDir:  imageDir,
		images:    images,
		hasher:    hasher,
		users:     service.NewUserService(db.Users(), hasher, images),
		blogs:     service.NewBlogService(db.Blogs(), db.Users(), images),
		offerings: service.NewOfferingService(db.Services(), images),
		quotes:    service.NewTestimonialService(db.Testimonials(), images),
	}
}

func pngUpload() *domain.Upload {
	return &domain.Upload{Filename: "cover.png", ContentType: "image/png", Data: pngBytes}
}

func (e *testEnv) createUser(t *testing.T, email, password string, active bool) *domain.User {
	t.Helper()
	u := &domain.User{
		Name:     "Test User",
		Mobile:   "mobile-" + email,
		Email:    &email,
		Password: password,
		Status:   active,
	}
	created, err := e.users.Create(context.Background(), u, nil)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return created
}

// storedFiles lists the keys currently held by the disk store.
func (e *testEnv) storedFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.imageDir)
	if err != nil {
		t.Fatalf("read image dir: %v", err)
	}
	var keys []string
	for _, entry := range entries {
		keys = append(keys, entry.Name())
	}
	return keys
}

func keyOf(path string) string {
	return strings.TrimPrefix(path, domain.ImagePathPrefix)
}
