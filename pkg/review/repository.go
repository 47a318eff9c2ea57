package review

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("company not found")
	ErrUnauthorized = errors.New("unauthorized access")
	// ErrUnknownAuthor is returned by Create when the owner has no user record.
	ErrUnknownAuthor = errors.New("unknown author")
)

// Repository is the review store port. Company matching ignores case.
type Repository interface {
	// Create persists r and returns it with the Author projection filled in.
	Create(ctx context.Context, r Review) (Review, error)
	// ListByCompany returns matches ordered by CreatedAt descending.
	ListByCompany(ctx context.Context, company string) ([]Review, error)
}
