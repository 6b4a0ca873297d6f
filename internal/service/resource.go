package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/msomdec/folio-cms/internal/domain"
)

// ResourceSpec describes how one content type plugs into Resource.
// Function fields left nil are skipped.
type ResourceSpec[T any, P any] struct {
	// Kind names the resource in error messages, e.g. "blog".
	Kind string
	// Validate checks the required fields of a new record.
	Validate func(e *T) error
	// Prepare runs before a new record is persisted, after validation.
	Prepare func(ctx context.Context, e *T, now time.Time) error
	// Apply merges the supplied fields of patch into e.
	Apply func(ctx context.Context, e *T, patch P, now time.Time) error
	SetID func(e *T, id string)
	// File points at the record's stored image path. Nil for resources
	// without files.
	File func(e *T) *string
	// FileRequired rejects creates without an upload.
	FileRequired bool
	// Expand resolves related data for single-record reads.
	Expand func(ctx context.Context, e *T) error
}

// Resource implements create, paginated list, get, update and delete for
// any content type backed by a domain.Repository.
type Resource[T any, P any] struct {
	repo   domain.Repository[T]
	images *ImageStore
	spec   ResourceSpec[T, P]
	now    func() time.Time
}

func NewResource[T any, P any](repo domain.Repository[T], images *ImageStore, spec ResourceSpec[T, P]) *Resource[T, P] {
	return &Resource[T, P]{
		repo:   repo,
		images: images,
		spec:   spec,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create validates and persists a new record, storing upload as its image.
// The returned record keeps the relative image path.
func (r *Resource[T, P]) Create(ctx context.Context, entity *T, upload *domain.Upload) (*T, error) {
	if r.spec.Validate != nil {
		if err := r.spec.Validate(entity); err != nil {
			return nil, err
		}
	}
	if r.spec.FileRequired && upload == nil {
		return nil, fmt.Errorf("%w: %s image is required", domain.ErrInvalidInput, r.spec.Kind)
	}
	if r.spec.Prepare != nil {
		if err := r.spec.Prepare(ctx, entity, r.now()); err != nil {
			return nil, err
		}
	}
	r.spec.SetID(entity, uuid.NewString())

	var stored string
	if upload != nil && r.spec.File != nil {
		path, err := r.images.Store(ctx, upload)
		if err != nil {
			return nil, err
		}
		stored = path
		*r.spec.File(entity) = path
	}

	if err := r.repo.Create(ctx, entity); err != nil {
		if stored != "" {
			r.images.Remove(ctx, stored)
		}
		return nil, fmt.Errorf("create %s: %w", r.spec.Kind, err)
	}
	return entity, nil
}

// List returns one page of records with image paths expanded to URLs.
func (r *Resource[T, P]) List(ctx context.Context, req domain.PageRequest) (domain.Page[T], error) {
	records, total, err := r.repo.List(ctx, req)
	if err != nil {
		return domain.Page[T]{}, fmt.Errorf("list %ss: %w", r.spec.Kind, err)
	}
	for i := range records {
		r.publish(&records[i])
	}
	return domain.NewPage(records, total, req), nil
}

// Get returns one record with related data resolved and its image path
// expanded to a URL.
func (r *Resource[T, P]) Get(ctx context.Context, id string) (*T, error) {
	entity, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.spec.Kind, err)
	}
	if r.spec.Expand != nil {
		if err := r.spec.Expand(ctx, entity); err != nil {
			return nil, err
		}
	}
	r.publish(entity)
	return entity, nil
}

// Update applies the supplied fields and, when upload is set, replaces the
// stored image. The previous file is removed only after the record is saved.
func (r *Resource[T, P]) Update(ctx context.Context, id string, patch P, upload *domain.Upload) (*T, error) {
	entity, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.spec.Kind, err)
	}
	if r.spec.Apply != nil {
		if err := r.spec.Apply(ctx, entity, patch, r.now()); err != nil {
			return nil, err
		}
	}

	var previous, stored string
	if upload != nil && r.spec.File != nil {
		path, err := r.images.Store(ctx, upload)
		if err != nil {
			return nil, err
		}
		field := r.spec.File(entity)
		previous, stored = *field, path
		*field = path
	}

	if err := r.repo.Update(ctx, entity); err != nil {
		if stored != "" {
			r.images.Remove(ctx, stored)
		}
		return nil, fmt.Errorf("update %s: %w", r.spec.Kind, err)
	}
	if previous != "" {
		r.images.Remove(ctx, previous)
	}
	return entity, nil
}

// Delete removes the record's stored image and then the record.
func (r *Resource[T, P]) Delete(ctx context.Context, id string) error {
	entity, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get %s: %w", r.spec.Kind, err)
	}
	if r.spec.File != nil {
		r.images.Remove(ctx, *r.spec.File(entity))
	}
	if err := r.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", r.spec.Kind, err)
	}
	return nil
}

func (r *Resource[T, P]) publish(e *T) {
	if r.spec.File == nil {
		return
	}
	field := r.spec.File(e)
	*field = r.images.PublicURL(*field)
}

// required returns an ErrInvalidInput naming the first empty field.
func required(kind string, fields ...[2]string) error {
	for _, f := range fields {
		if f[1] == "" {
			return fmt.Errorf("%w: %s %s is required", domain.ErrInvalidInput, kind, f[0])
		}
	}
	return nil
}

// notBlank rejects a supplied but empty value for a required field.
func notBlank(kind, name string, v *string) error {
	if v != nil && *v == "" {
		return fmt.Errorf("%w: %s %s cannot be empty", domain.ErrInvalidInput, kind, name)
	}
	return nil
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
