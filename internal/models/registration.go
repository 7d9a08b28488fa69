package models

import (
	"time"

	"github.com/google/uuid"
)

// Registration binds a participant email to exactly one verification code.
// Rows are append-only: the service never updates or deletes them.
type Registration struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	Newsletter bool      `json:"newsletter"`
	CreatedAt  time.Time `json:"created_at"`
}

// Participant is the projection returned to the drawing tool.
type Participant struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Code  string `json:"code"`
}
