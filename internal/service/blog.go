package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/msomdec/folio-cms/internal/domain"
)

// BlogService manages blog posts. Descriptions are sanitised as user
// generated HTML and every blog must reference an existing author.
type BlogService struct {
	*Resource[domain.Blog, domain.BlogPatch]
}

func NewBlogService(blogs domain.BlogRepository, users domain.UserRepository, images *ImageStore) *BlogService {
	policy := bluemonday.UGCPolicy()

	spec := ResourceSpec[domain.Blog, domain.BlogPatch]{
		Kind: "blog",
		Validate: func(b *domain.Blog) error {
			return required("blog", [2]string{"title", b.Title}, [2]string{"description", b.Description}, [2]string{"author", b.AuthorID})
		},
		Prepare: func(ctx context.Context, b *domain.Blog, now time.Time) error {
			if _, err := users.GetByID(ctx, b.AuthorID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("%w: blog author does not exist", domain.ErrInvalidInput)
				}
				return fmt.Errorf("get author: %w", err)
			}
			b.Description = policy.Sanitize(b.Description)
			b.UploadedDate = now
			return nil
		},
		Apply: func(_ context.Context, b *domain.Blog, p domain.BlogPatch, _ time.Time) error {
			if err := notBlank("blog", "title", p.Title); err != nil {
				return err
			}
			if err := notBlank("blog", "description", p.Description); err != nil {
				return err
			}
			setIfPresent(&b.Title, p.Title)
			if p.Description != nil {
				b.Description = policy.Sanitize(*p.Description)
			}
			return nil
		},
		SetID:        func(b *domain.Blog, id string) { b.ID = id },
		File:         func(b *domain.Blog) *string { return &b.Image },
		FileRequired: true,
		Expand: func(ctx context.Context, b *domain.Blog) error {
			author, err := users.GetByID(ctx, b.AuthorID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil
				}
				return fmt.Errorf("get author: %w", err)
			}
			b.Author = &domain.Author{ID: author.ID, Name: author.Name, Designation: author.Designation}
			return nil
		},
	}
	return &BlogService{NewResource(blogs, images, spec)}
}
