package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msomdec/folio-cms/internal/domain"
	"github.com/msomdec/folio-cms/internal/repository/sqlite"
)

func TestBlogRepository_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewBlogRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"old", "newest", "middle"} {
		offset := map[string]time.Duration{"old": 0, "newest": 2 * time.Hour, "middle": time.Hour}[title]
		blog := &domain.Blog{
			ID:           string(rune('a' + i)),
			Title:        title,
			Description:  "d",
			Image:        "images/" + title + ".png",
			UploadedDate: base.Add(offset),
			AuthorID:     "author-1",
		}
		if err := repo.Create(ctx, blog); err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
	}

	blogs, total, err := repo.List(ctx, domain.NewPageRequest(1, 10))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	want := []string{"newest", "middle", "old"}
	for i, b := range blogs {
		if b.Title != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], b.Title)
		}
	}
}

func TestBlogRepository_DuplicateTitle(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewBlogRepository(db)
	ctx := context.Background()

	first := &domain.Blog{ID: "b1", Title: "A", Description: "d", Image: "images/1.png", UploadedDate: time.Now(), AuthorID: "u"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	second := &domain.Blog{ID: "b2", Title: "A", Description: "d", Image: "images/2.png", UploadedDate: time.Now(), AuthorID: "u"}
	err := repo.Create(ctx, second)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	other := &domain.Blog{ID: "b3", Title: "B", Description: "d", Image: "images/3.png", UploadedDate: time.Now(), AuthorID: "u"}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create B: %v", err)
	}
	other.Title = "A"
	if err := repo.Update(ctx, other); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict renaming onto an existing title, got %v", err)
	}
}

func TestBlogRepository_UpdateKeepsUploadedDate(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewBlogRepository(db)
	ctx := context.Background()

	uploaded := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	blog := &domain.Blog{ID: "b1", Title: "A", Description: "d", Image: "images/1.png", UploadedDate: uploaded, AuthorID: "u"}
	if err := repo.Create(ctx, blog); err != nil {
		t.Fatalf("Create: %v", err)
	}

	blog.Title = "B"
	blog.UploadedDate = time.Now()
	if err := repo.Update(ctx, blog); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, "b1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "B" {
		t.Fatalf("expected title B, got %s", got.Title)
	}
	if !got.UploadedDate.Equal(uploaded) {
		t.Fatalf("expected uploaded date %v to be immutable, got %v", uploaded, got.UploadedDate)
	}
}

func TestServiceAndTestimonialRepositories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	services := db.Services()
	svc := &domain.Service{ID: "s1", Title: "Design", Description: "d", Image: "images/s.png"}
	if err := services.Create(ctx, svc); err != nil {
		t.Fatalf("Create service: %v", err)
	}
	dup := &domain.Service{ID: "s2", Title: "Design", Description: "d", Image: "images/t.png"}
	if err := services.Create(ctx, dup); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate service title, got %v", err)
	}

	testimonials := db.Testimonials()
	for _, id := range []string{"t1", "t2"} {
		tm := &domain.Testimonial{ID: id, Name: "N", Designation: "CEO", Message: "Great"}
		if err := testimonials.Create(ctx, tm); err != nil {
			t.Fatalf("Create testimonial %s: %v", id, err)
		}
	}
	list, total, err := testimonials.List(ctx, domain.NewPageRequest(1, 10))
	if err != nil {
		t.Fatalf("List testimonials: %v", err)
	}
	if total != 2 || len(list) != 2 || list[0].ID != "t1" {
		t.Fatalf("unexpected testimonials page: total=%d %+v", total, list)
	}
	if err := testimonials.Delete(ctx, "t1"); err != nil {
		t.Fatalf("Delete testimonial: %v", err)
	}
	if _, err := testimonials.GetByID(ctx, "t1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
