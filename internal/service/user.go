package service

import (
	"context"
	"time"

	"github.com/msomdec/folio-cms/internal/domain"
)

// UserService manages user accounts. Passwords are hashed before they reach
// the repository, and only when a new password was supplied.
type UserService struct {
	*Resource[domain.User, domain.UserPatch]
}

func NewUserService(users domain.UserRepository, hasher PasswordHasher, images *ImageStore) *UserService {
	setPassword := func(u *domain.User, plaintext string, now time.Time) error {
		hash, err := hasher.Hash(plaintext)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
		u.Password = ""
		u.PasswordUpdatedAt = &now
		return nil
	}

	spec := ResourceSpec[domain.User, domain.UserPatch]{
		Kind: "user",
		Validate: func(u *domain.User) error {
			return required("user", [2]string{"name", u.Name}, [2]string{"mobile", u.Mobile}, [2]string{"password", u.Password})
		},
		Prepare: func(_ context.Context, u *domain.User, now time.Time) error {
			if u.Role == "" {
				u.Role = domain.DefaultUserRole
			}
			u.Email = emptyToNil(u.Email)
			return setPassword(u, u.Password, now)
		},
		Apply: func(_ context.Context, u *domain.User, p domain.UserPatch, now time.Time) error {
			if err := notBlank("user", "name", p.Name); err != nil {
				return err
			}
			if err := notBlank("user", "mobile", p.Mobile); err != nil {
				return err
			}
			setIfPresent(&u.Name, p.Name)
			setIfPresent(&u.Mobile, p.Mobile)
			setIfPresent(&u.Role, p.Role)
			setIfPresent(&u.Designation, p.Designation)
			if p.Email != nil {
				u.Email = emptyToNil(p.Email)
			}
			if p.Description != nil {
				u.Description = emptyToNil(p.Description)
			}
			if p.Status != nil {
				u.Status = *p.Status
			}
			if p.Password != nil && *p.Password != "" {
				return setPassword(u, *p.Password, now)
			}
			return nil
		},
		SetID: func(u *domain.User, id string) { u.ID = id },
		File:  func(u *domain.User) *string { return &u.Photo },
	}
	return &UserService{NewResource(domain.Repository[domain.User](users), images, spec)}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
