package service

import (
	"context"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/msomdec/folio-cms/internal/domain"
)

// OfferingService manages the services advertised on the site. Descriptions
// are stored as sanitised HTML.
type OfferingService struct {
	*Resource[domain.Service, domain.ServicePatch]
}

func NewOfferingService(services domain.ServiceRepository, images *ImageStore) *OfferingService {
	policy := bluemonday.UGCPolicy()

	spec := ResourceSpec[domain.Service, domain.ServicePatch]{
		Kind: "service",
		Validate: func(s *domain.Service) error {
			return required("service", [2]string{"title", s.Title}, [2]string{"description", s.Description})
		},
		Prepare: func(_ context.Context, s *domain.Service, _ time.Time) error {
			s.Description = policy.Sanitize(s.Description)
			return nil
		},
		Apply: func(_ context.Context, s *domain.Service, p domain.ServicePatch, _ time.Time) error {
			if err := notBlank("service", "title", p.Title); err != nil {
				return err
			}
			if err := notBlank("service", "description", p.Description); err != nil {
				return err
			}
			setIfPresent(&s.Title, p.Title)
			if p.Description != nil {
				s.Description = policy.Sanitize(*p.Description)
			}
			return nil
		},
		SetID:        func(s *domain.Service, id string) { s.ID = id },
		File:         func(s *domain.Service) *string { return &s.Image },
		FileRequired: true,
	}
	return &OfferingService{NewResource(services, images, spec)}
}
