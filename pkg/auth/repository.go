package auth

import (
	"context"
	"errors"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Lookups compare name and email case-insensitively. Create must reject a
// duplicate name or email with ErrUserAlreadyExists even when a concurrent
// signup won the existence check.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	FindByNameOrEmail(ctx context.Context, name, email string) (User, error)
}
