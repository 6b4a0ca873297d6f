package handler

import (
	"time"

	"github.com/msomdec/folio-cms/internal/domain"
	"github.com/msomdec/folio-cms/internal/service"
)

// UserDTO is the JSON representation of a user. The password hash is never
// exposed.
type UserDTO struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Mobile            string  `json:"mobile"`
	Email             *string `json:"email"`
	Role              string  `json:"role"`
	Designation       string  `json:"designation"`
	Description       *string `json:"description"`
	Status            bool    `json:"status"`
	Photo             string  `json:"photo"`
	PasswordUpdatedAt *string `json:"passwordUpdatedAt"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	dto := UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Mobile:      u.Mobile,
		Email:       u.Email,
		Role:        u.Role,
		Designation: u.Designation,
		Description: u.Description,
		Status:      u.Status,
		Photo:       u.Photo,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.Format(time.RFC3339),
	}
	if u.PasswordUpdatedAt != nil {
		ts := u.PasswordUpdatedAt.Format(time.RFC3339)
		dto.PasswordUpdatedAt = &ts
	}
	return dto
}

// ProfileDTO is the user projection returned with a session.
type ProfileDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       *string `json:"email"`
	Photo       string  `json:"photo"`
	Role        string  `json:"role"`
	Designation string  `json:"designation"`
	Status      bool    `json:"status"`
}

func toProfileDTO(p service.UserProfile) ProfileDTO {
	return ProfileDTO{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		Photo:       p.Photo,
		Role:        p.Role,
		Designation: p.Designation,
		Status:      p.Status,
	}
}

type AuthorDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
}

// BlogDTO is the JSON representation of a blog. Author is only present on
// single-record reads. Description is sanitised HTML, so plain text comes
// back entity-escaped ("&" as "&amp;").
type BlogDTO struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Image        string     `json:"image"`
	UploadedDate string     `json:"uploadedDate"`
	AuthorID     string     `json:"authorId"`
	Author       *AuthorDTO `json:"author,omitempty"`
}

func toBlogDTO(b *domain.Blog) BlogDTO {
	dto := BlogDTO{
		ID:           b.ID,
		Title:        b.Title,
		Description:  b.Description,
		Image:        b.Image,
		UploadedDate: b.UploadedDate.Format(time.RFC3339),
		AuthorID:     b.AuthorID,
	}
	if b.Author != nil {
		dto.Author = &AuthorDTO{ID: b.Author.ID, Name: b.Author.Name, Designation: b.Author.Designation}
	}
	return dto
}

// ServiceDTO is the JSON representation of a service. Description is
// sanitised HTML, like BlogDTO's.
type ServiceDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CreatedAt   string `json:"createdAt"`
}

func toServiceDTO(s *domain.Service) ServiceDTO {
	return ServiceDTO{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Image:       s.Image,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
}

type TestimonialDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Message     string `json:"message"`
	CreatedAt   string `json:"createdAt"`
}

func toTestimonialDTO(t *domain.Testimonial) TestimonialDTO {
	return TestimonialDTO{
		ID:          t.ID,
		Name:        t.Name,
		Designation: t.Designation,
		Message:     t.Message,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

// pageDTO renders a domain.Page with the records under key.
func pageDTO[T any, D any](key string, page domain.Page[T], convert func(*T) D) map[string]any {
	records := make([]D, len(page.Records))
	for i := range page.Records {
		records[i] = convert(&page.Records[i])
	}
	return map[string]any{
		key:               records,
		"currentDataSize": page.CurrentDataSize,
		"totalDataSize":   page.TotalDataSize,
		"totalPages":      page.TotalPages,
		"currentPage":     page.CurrentPage,
		"hasMore":         page.HasMore,
	}
}
