package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/artem13815/jobreviews/pkg/review"
)

// ReviewRepository stores reviews; rows are never updated or deleted.
type ReviewRepository struct {
	db DB
}

func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, v review.Review) (review.Review, error) {
	row := r.db.QueryRow(ctx, `
WITH inserted AS (
	INSERT INTO reviews (id, title, description, company, location, role, user_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, title, description, company, location, role, user_id, created_at
)
SELECT i.id, i.title, i.description, i.company, i.location, i.role, i.user_id, i.created_at, u.name
FROM inserted i
JOIN users u ON u.id = i.user_id
`, v.ID, v.Title, v.Description, v.Company, v.Location, v.Role, v.UserID, v.CreatedAt)

	created, err := scanReview(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.Is(err, pgx.ErrNoRows) ||
			(errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation) {
			return review.Review{}, review.ErrUnknownAuthor
		}
		return review.Review{}, fmt.Errorf("insert review: %w", err)
	}
	return created, nil
}

func (r *ReviewRepository) ListByCompany(ctx context.Context, company string) ([]review.Review, error) {
	rows, err := r.db.Query(ctx, `
SELECT r.id, r.title, r.description, r.company, r.location, r.role, r.user_id, r.created_at, u.name
FROM reviews r
JOIN users u ON u.id = r.user_id
WHERE lower(r.company) = lower($1)
ORDER BY r.created_at DESC, r.id
`, company)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var res []review.Review
	for rows.Next() {
		v, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		res = append(res, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return res, nil
}

func scanReview(row pgx.Row) (review.Review, error) {
	var v review.Review
	var created time.Time
	if err := row.Scan(&v.ID, &v.Title, &v.Description, &v.Company, &v.Location, &v.Role,
		&v.UserID, &created, &v.Author.Name); err != nil {
		return review.Review{}, err
	}
	v.CreatedAt = created.UTC()
	v.Author.ID = v.UserID
	return v, nil
}
