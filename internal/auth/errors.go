package auth

import "errors"

var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrInvalidCredentials    = errors.New("Invalid email or password")
	ErrEmailTaken            = errors.New("Email is already registered")
	ErrInvalidEmail          = errors.New("Invalid email address")
	ErrWeakPassword          = errors.New("Password must be at least 8 characters with letters and numbers")
	ErrInvalidRole           = errors.New("Invalid role")
)
