package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/folio-cms/internal/domain"
)

// UserProfile is the public projection of a user returned with a session.
type UserProfile struct {
	ID          string
	Name        string
	Email       *string
	Photo       string // absolute URL, empty when the user has no photo
	Role        string
	Designation string
	Status      bool
}

// Session is the result of a successful login or refresh.
type Session struct {
	TokenPair
	User UserProfile
}

// AuthService handles login, refresh-token rotation and access token checks.
type AuthService struct {
	users  domain.UserRepository
	hasher PasswordHasher
	tokens *TokenService
	images *ImageStore
}

func NewAuthService(users domain.UserRepository, hasher PasswordHasher, tokens *TokenService, images *ImageStore) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, images: images}
}

// Login verifies credentials and issues a token pair. Unknown emails and
// wrong passwords both yield domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}
	if !user.Status {
		return nil, domain.ErrInactiveUser
	}

	return s.newSession(user)
}

// VerifyLogin exchanges a refresh token for a new token pair. Tokens issued
// before the user's last password change are rejected.
func (s *AuthService) VerifyLogin(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.tokens.Verify(refreshToken, RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if issuedBeforePasswordChange(claims, user) {
		return nil, domain.ErrPasswordChanged
	}

	return s.newSession(user)
}

// Authenticate resolves the user behind an access token. It applies the
// same password-change rule as VerifyLogin and rejects inactive users.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	if accessToken == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.tokens.Verify(accessToken, AccessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if issuedBeforePasswordChange(claims, user) {
		return nil, domain.ErrPasswordChanged
	}
	if !user.Status {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}

func (s *AuthService) newSession(user *domain.User) (*Session, error) {
	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return &Session{
		TokenPair: pair,
		User: UserProfile{
			ID:          user.ID,
			Name:        user.Name,
			Email:       user.Email,
			Photo:       s.images.PublicURL(user.Photo),
			Role:        user.Role,
			Designation: user.Designation,
			Status:      user.Status,
		},
	}, nil
}
