package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/folio-cms/internal/domain"
)

const blogColumns = `id, title, description, image, uploaded_date, author_id`

// BlogRepository implements domain.BlogRepository using SQLite.
type BlogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *DB) *BlogRepository {
	return &BlogRepository{db: db.SqlDB}
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blogs (`+blogColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		blog.ID, blog.Title, blog.Description, blog.Image, blog.UploadedDate.UTC(), blog.AuthorID,
	)
	if err != nil {
		return translateWriteError(err, "blog", "insert blog")
	}
	return nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*domain.Blog, error) {
	b := &domain.Blog{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = ?`, id,
	).Scan(&b.ID, &b.Title, &b.Description, &b.Image, &b.UploadedDate, &b.AuthorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get blog: %w", err)
	}
	return b, nil
}

// List returns blogs newest first.
func (r *BlogRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Blog, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blogs").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+blogColumns+` FROM blogs
		 ORDER BY uploaded_date DESC, seq DESC
		 LIMIT ? OFFSET ?`, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []domain.Blog
	for rows.Next() {
		var b domain.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.Image, &b.UploadedDate, &b.AuthorID); err != nil {
			return nil, 0, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}
	return blogs, total, rows.Err()
}

// Update persists title, description and image. The upload date and author
// are fixed at creation.
func (r *BlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE blogs SET title = ?, description = ?, image = ? WHERE id = ?`,
		blog.Title, blog.Description, blog.Image, blog.ID,
	)
	if err != nil {
		return translateWriteError(err, "blog", "update blog")
	}
	return checkAffected(result)
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM blogs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return checkAffected(result)
}
