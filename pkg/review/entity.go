package review

import (
	"time"

	"github.com/google/uuid"
)

// Review is an append-only company review owned by the user who wrote it.
type Review struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Role        string    `json:"role"`
	UserID      uuid.UUID `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	Author      Author    `json:"user"`
}

// Author is the public projection of a review's owner.
type Author struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CreateInput carries the client-supplied fields of a new review.
type CreateInput struct {
	Title       string
	Description string
	Company     string
	Location    string
	Role        string
	CreatedAt   string
}
