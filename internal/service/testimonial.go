package service

import (
	"context"
	"time"

	"github.com/msomdec/folio-cms/internal/domain"
)

// TestimonialService manages client testimonials. They carry no image.
type TestimonialService struct {
	*Resource[domain.Testimonial, domain.TestimonialPatch]
}

func NewTestimonialService(testimonials domain.TestimonialRepository, images *ImageStore) *TestimonialService {
	spec := ResourceSpec[domain.Testimonial, domain.TestimonialPatch]{
		Kind: "testimonial",
		Validate: func(t *domain.Testimonial) error {
			return required("testimonial", [2]string{"name", t.Name}, [2]string{"designation", t.Designation}, [2]string{"message", t.Message})
		},
		Apply: func(_ context.Context, t *domain.Testimonial, p domain.TestimonialPatch, _ time.Time) error {
			if err := notBlank("testimonial", "name", p.Name); err != nil {
				return err
			}
			if err := notBlank("testimonial", "designation", p.Designation); err != nil {
				return err
			}
			if err := notBlank("testimonial", "message", p.Message); err != nil {
				return err
			}
			setIfPresent(&t.Name, p.Name)
			setIfPresent(&t.Designation, p.Designation)
			setIfPresent(&t.Message, p.Message)
			return nil
		},
		SetID: func(t *domain.Testimonial, id string) { t.ID = id },
	}
	return &TestimonialService{NewResource(testimonials, images, spec)}
}
