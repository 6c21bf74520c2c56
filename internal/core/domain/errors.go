package domain

import "errors"

// Authentication and account errors.
var (
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("user not found")
	ErrInvalidToken       = errors.New("token invalid or expired")
	ErrUnauthenticated    = errors.New("no token provided")
	ErrIdentityNotFound   = errors.New("token subject not found")
	ErrForbidden          = errors.New("insufficient permission")
)

// Catalog errors.
var ErrProductNotFound = errors.New("product not found")
