package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a registered applicant or a
// catalog administrator.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
