package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInactiveUser    = errors.New("user is not active")
	ErrPasswordChanged = errors.New("password changed after token was issued")
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidInput    = errors.New("invalid input")
)
