package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/folio-cms/internal/domain"
)

// ServiceRepository implements domain.ServiceRepository using SQLite.
type ServiceRepository struct {
	db *sql.DB
}

func NewServiceRepository(db *DB) *ServiceRepository {
	return &ServiceRepository{db: db.SqlDB}
}

func (r *ServiceRepository) Create(ctx context.Context, svc *domain.Service) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO services (id, title, description, image, created_at) VALUES (?, ?, ?, ?, ?)`,
		svc.ID, svc.Title, svc.Description, svc.Image, now,
	)
	if err != nil {
		return translateWriteError(err, "service", "insert service")
	}
	svc.CreatedAt = now
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	s := &domain.Service{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, image, created_at FROM services WHERE id = ?`, id,
	).Scan(&s.ID, &s.Title, &s.Description, &s.Image, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

func (r *ServiceRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Service, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM services").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count services: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, image, created_at FROM services
		 ORDER BY seq LIMIT ? OFFSET ?`, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Image, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, s)
	}
	return services, total, rows.Err()
}

func (r *ServiceRepository) Update(ctx context.Context, svc *domain.Service) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE services SET title = ?, description = ?, image = ? WHERE id = ?`,
		svc.Title, svc.Description, svc.Image, svc.ID,
	)
	if err != nil {
		return translateWriteError(err, "service", "update service")
	}
	return checkAffected(result)
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM services WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return checkAffected(result)
}
