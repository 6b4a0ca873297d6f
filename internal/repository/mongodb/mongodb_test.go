package mongodb_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/msomdec/folio-cms/internal/domain"
	"github.com/msomdec/folio-cms/internal/repository/mongodb"
)

var (
	_ domain.Database              = (*mongodb.DB)(nil)
	_ domain.UserRepository        = (*mongodb.UserRepository)(nil)
	_ domain.BlogRepository        = (*mongodb.BlogRepository)(nil)
	_ domain.ServiceRepository     = (*mongodb.ServiceRepository)(nil)
	_ domain.TestimonialRepository = (*mongodb.TestimonialRepository)(nil)
)

// newTestDB connects to the server named by MONGO_URI using a throwaway
// database. Tests are skipped when no server is configured.
func newTestDB(t *testing.T) *mongodb.DB {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx := context.Background()
	db, err := mongodb.New(ctx, uri, "folio_test_"+uuid.NewString()[:8])
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Drop(context.Background())
		db.Close()
	})
	return db
}

func TestUserRepository_Mongo(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	email := "m@example.com"
	u1 := &domain.User{ID: "u1", Name: "A", Mobile: "01", Email: &email, PasswordHash: "h", Role: "user", Status: true}
	if err := repo.Create(ctx, u1); err != nil {
		t.Fatalf("Create: %v", err)
	}
	u2 := &domain.User{ID: "u2", Name: "B", Mobile: "02", PasswordHash: "h", Role: "user", Status: true}
	u3 := &domain.User{ID: "u3", Name: "C", Mobile: "03", PasswordHash: "h", Role: "user", Status: true}
	for _, u := range []*domain.User{u2, u3} {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create %s without email: %v", u.ID, err)
		}
	}

	dup := &domain.User{ID: "u4", Name: "D", Mobile: "04", Email: &email, PasswordHash: "h"}
	if err := repo.Create(ctx, dup); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate email, got %v", err)
	}

	got, err := repo.GetByEmail(ctx, email)
	if err != nil || got.ID != "u1" {
		t.Fatalf("GetByEmail: %v %+v", err, got)
	}

	users, total, err := repo.List(ctx, domain.NewPageRequest(1, 2))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(users) != 2 || users[0].ID != "u1" {
		t.Fatalf("unexpected page: total=%d %+v", total, users)
	}

	if err := repo.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBlogRepository_Mongo_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := db.Blogs()
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second"} {
		b := &domain.Blog{ID: title, Title: title, Description: "d", Image: "images/x.png",
			UploadedDate: base.Add(time.Duration(i) * time.Hour), AuthorID: "u"}
		if err := repo.Create(ctx, b); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	blogs, _, err := repo.List(ctx, domain.NewPageRequest(1, 10))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(blogs) != 2 || blogs[0].Title != "second" {
		t.Fatalf("expected newest first, got %+v", blogs)
	}

	b := blogs[1]
	b.Title = "second"
	if err := repo.Update(ctx, &b); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate title, got %v", err)
	}
}
