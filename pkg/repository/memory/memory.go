// Package memory provides mutex-guarded in-memory stores. They back the
// "memory" storage driver for local runs and serve as fakes in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/artem13815/jobreviews/pkg/auth"
	"github.com/artem13815/jobreviews/pkg/review"
)

// Store holds users and reviews together so reviews can resolve their author.
type Store struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]auth.User
	reviews []review.Review
}

func NewStore() *Store {
	return &Store{users: make(map[uuid.UUID]auth.User)}
}

func (s *Store) Users() *UserRepository     { return &UserRepository{s: s} }
func (s *Store) Reviews() *ReviewRepository { return &ReviewRepository{s: s} }

// Name and Check let the store act as a readiness checker.
func (s *Store) Name() string                    { return "memory" }
func (s *Store) Check(ctx context.Context) error { return ctx.Err() }

// UserRepository implements auth.UserRepository.
type UserRepository struct{ s *Store }

// Create checks uniqueness and inserts under one lock.
func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.findLocked(user.Name, user.Email); ok {
		return auth.ErrUserAlreadyExists
	}
	r.s.users[user.ID] = user
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrNotFound
}

func (r *UserRepository) FindByNameOrEmail(ctx context.Context, name, email string) (auth.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.findLocked(name, email); ok {
		return u, nil
	}
	return auth.User{}, auth.ErrNotFound
}

func (s *Store) findLocked(name, email string) (auth.User, bool) {
	for _, u := range s.users {
		if strings.EqualFold(u.Name, name) || strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return auth.User{}, false
}

// ReviewRepository implements review.Repository.
type ReviewRepository struct{ s *Store }

func (r *ReviewRepository) Create(ctx context.Context, rv review.Review) (review.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[rv.UserID]
	if !ok {
		return review.Review{}, review.ErrUnknownAuthor
	}
	rv.Author = review.Author{ID: u.ID, Name: u.Name}
	r.s.reviews = append(r.s.reviews, rv)
	return rv, nil
}

func (r *ReviewRepository) ListByCompany(ctx context.Context, company string) ([]review.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var res []review.Review
	for _, rv := range r.s.reviews {
		if strings.EqualFold(rv.Company, company) {
			res = append(res, rv)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}
