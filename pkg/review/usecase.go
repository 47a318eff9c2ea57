package review

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobreviews/pkg/auth"
)

// UseCase encapsulates review reads and ownership-gated writes.
type UseCase interface {
	ListByCompany(ctx context.Context, company string) ([]Review, error)
	Create(ctx context.Context, id *auth.Identity, in CreateInput) (Review, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

// ListByCompany treats zero matches as ErrNotFound so a mistyped company is visible to the caller.
func (s *service) ListByCompany(ctx context.Context, company string) ([]Review, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, ErrNotFound
	}
	reviews, err := s.repo.ListByCompany(ctx, company)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, ErrNotFound
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (s *service) Create(ctx context.Context, id *auth.Identity, in CreateInput) (Review, error) {
	if id == nil {
		return Review{}, ErrUnauthorized
	}
	created, err := in.validate()
	if err != nil {
		return Review{}, err
	}
	r := Review{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		Role:        strings.TrimSpace(in.Role),
		UserID:      id.UserID,
		CreatedAt:   created,
	}
	return s.repo.Create(ctx, r)
}

// ErrValidation is a client input error; its text is safe to return.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

const errMissingFields = ErrValidation("all fields are required")

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func (in CreateInput) validate() (time.Time, error) {
	for _, f := range []string{in.Title, in.Description, in.Company, in.Location, in.Role, in.CreatedAt} {
		if strings.TrimSpace(f) == "" {
			return time.Time{}, errMissingFields
		}
	}
	return parseDate(in.CreatedAt)
}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrValidation("createdAt must be an RFC 3339 timestamp or YYYY-MM-DD date")
}
