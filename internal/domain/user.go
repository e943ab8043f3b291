package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account consumed by the permission engine as {id, role}.
// The engine never mutates users; they are seeded out of band.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecordID implements the record-store key contract.
func (u User) RecordID() uuid.UUID { return u.ID }
