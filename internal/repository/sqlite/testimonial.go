package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/folio-cms/internal/domain"
)

// TestimonialRepository implements domain.TestimonialRepository using SQLite.
type TestimonialRepository struct {
	db *sql.DB
}

func NewTestimonialRepository(db *DB) *TestimonialRepository {
	return &TestimonialRepository{db: db.SqlDB}
}

func (r *TestimonialRepository) Create(ctx context.Context, t *domain.Testimonial) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO testimonials (id, name, designation, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Designation, t.Message, now,
	)
	if err != nil {
		return translateWriteError(err, "testimonial", "insert testimonial")
	}
	t.CreatedAt = now
	return nil
}

func (r *TestimonialRepository) GetByID(ctx context.Context, id string) (*domain.Testimonial, error) {
	t := &domain.Testimonial{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, designation, message, created_at FROM testimonials WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Designation, &t.Message, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get testimonial: %w", err)
	}
	return t, nil
}

func (r *TestimonialRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Testimonial, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM testimonials").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count testimonials: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, designation, message, created_at FROM testimonials
		 ORDER BY seq LIMIT ? OFFSET ?`, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	var out []domain.Testimonial
	for rows.Next() {
		var t domain.Testimonial
		if err := rows.Scan(&t.ID, &t.Name, &t.Designation, &t.Message, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan testimonial: %w", err)
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *TestimonialRepository) Update(ctx context.Context, t *domain.Testimonial) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE testimonials SET name = ?, designation = ?, message = ? WHERE id = ?`,
		t.Name, t.Designation, t.Message, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	return checkAffected(result)
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM testimonials WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	return checkAffected(result)
}
