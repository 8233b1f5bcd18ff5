package service

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUserNotFound       = errors.New("username not found")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidMonth       = errors.New("month must be between 1 and 12")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
)
