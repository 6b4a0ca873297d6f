package handler

import (
	"net/http"

	"github.com/msomdec/folio-cms/internal/domain"
	"github.com/msomdec/folio-cms/internal/service"
)

func newUserHandler(users *service.UserService, maxUpload int64) *resourceHandler[domain.User, domain.UserPatch, UserDTO] {
	return &resourceHandler[domain.User, domain.UserPatch, UserDTO]{
		res:       users.Resource,
		kind:      "user",
		label:     "User",
		fileField: "photo",
		maxUpload: maxUpload,
		decodeCreate: func(_ *http.Request, f *form) (*domain.User, error) {
			status, err := f.boolean("status")
			if err != nil {
				return nil, err
			}
			u := &domain.User{
				Name:        f.get("name"),
				Mobile:      f.get("mobile"),
				Email:       f.ptr("email"),
				Password:    f.get("password"),
				Role:        f.get("role"),
				Designation: f.get("designation"),
				Description: f.ptr("description"),
				Status:      true,
			}
			if status != nil {
				u.Status = *status
			}
			return u, nil
		},
		decodePatch: func(f *form) (domain.UserPatch, error) {
			status, err := f.boolean("status")
			if err != nil {
				return domain.UserPatch{}, err
			}
			return domain.UserPatch{
				Name:        f.ptr("name"),
				Mobile:      f.ptr("mobile"),
				Email:       f.ptr("email"),
				Password:    f.ptr("password"),
				Role:        f.ptr("role"),
				Designation: f.ptr("designation"),
				Description: f.ptr("description"),
				Status:      status,
			}, nil
		},
		toDTO: toUserDTO,
	}
}

func newBlogHandler(blogs *service.BlogService, maxUpload int64) *resourceHandler[domain.Blog, domain.BlogPatch, BlogDTO] {
	return &resourceHandler[domain.Blog, domain.BlogPatch, BlogDTO]{
		res:       blogs.Resource,
		kind:      "blog",
		label:     "Blog",
		fileField: "image",
		maxUpload: maxUpload,
		decodeCreate: func(r *http.Request, f *form) (*domain.Blog, error) {
			author := f.get("author")
			if author == "" {
				if u := UserFromContext(r.Context()); u != nil {
					author = u.ID
				}
			}
			return &domain.Blog{
				Title:       f.get("title"),
				Description: f.get("description"),
				AuthorID:    author,
			}, nil
		},
		decodePatch: func(f *form) (domain.BlogPatch, error) {
			return domain.BlogPatch{Title: f.ptr("title"), Description: f.ptr("description")}, nil
		},
		toDTO: toBlogDTO,
	}
}

func newServiceHandler(offerings *service.OfferingService, maxUpload int64) *resourceHandler[domain.Service, domain.ServicePatch, ServiceDTO] {
	return &resourceHandler[domain.Service, domain.ServicePatch, ServiceDTO]{
		res:       offerings.Resource,
		kind:      "service",
		label:     "Service",
		fileField: "image",
		maxUpload: maxUpload,
		decodeCreate: func(_ *http.Request, f *form) (*domain.Service, error) {
			return &domain.Service{Title: f.get("title"), Description: f.get("description")}, nil
		},
		decodePatch: func(f *form) (domain.ServicePatch, error) {
			return domain.ServicePatch{Title: f.ptr("title"), Description: f.ptr("description")}, nil
		},
		toDTO: toServiceDTO,
	}
}

func newTestimonialHandler(testimonials *service.TestimonialService, maxUpload int64) *resourceHandler[domain.Testimonial, domain.TestimonialPatch, TestimonialDTO] {
	return &resourceHandler[domain.Testimonial, domain.TestimonialPatch, TestimonialDTO]{
		res:       testimonials.Resource,
		kind:      "testimonial",
		label:     "Testimonial",
		maxUpload: maxUpload,
		decodeCreate: func(_ *http.Request, f *form) (*domain.Testimonial, error) {
			return &domain.Testimonial{
				Name:        f.get("name"),
				Designation: f.get("designation"),
				Message:     f.get("message"),
			}, nil
		},
		decodePatch: func(f *form) (domain.TestimonialPatch, error) {
			return domain.TestimonialPatch{
				Name:        f.ptr("name"),
				Designation: f.ptr("designation"),
				Message:     f.ptr("message"),
			}, nil
		},
		toDTO: toTestimonialDTO,
	}
}
