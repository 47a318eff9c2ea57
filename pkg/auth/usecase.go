package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuthUseCase describes registration/authentication behavior.
type AuthUseCase interface {
	Signup(ctx context.Context, in SignupInput) (User, error)
	Login(ctx context.Context, in LoginInput) (LoginResult, error)
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

func (in SignupInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return ErrMissingFields
	}
	if len(in.Password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User  PublicUser
	Token string
}

type authService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenGenerator
	now    func() time.Time
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenGenerator) AuthUseCase {
	return &authService{repo: repo, hasher: hasher, tokens: tokens, now: time.Now}
}

// Signup creates an account. No token is issued; the caller logs in separately.
func (s *authService) Signup(ctx context.Context, in SignupInput) (User, error) {
	if err := in.Validate(); err != nil {
		return User{}, err
	}
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	// Best-effort check; the store's unique constraint is the real guarantee.
	_, err := s.repo.FindByNameOrEmail(ctx, name, email)
	switch {
	case err == nil:
		return User{}, ErrUserAlreadyExists
	case !errors.Is(err, ErrNotFound):
		return User{}, err
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login never tells an unknown email apart from a wrong password.
func (s *authService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(ctx, Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: user.Public(), Token: token}, nil
}
