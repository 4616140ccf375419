package user

import "github.com/google/uuid"

// User represents a user entity in the system.
// Users are created once and never modified afterwards.
type User struct {
	ID    uuid.UUID `json:"id"`    // ID is generated server-side at creation time
	Name  string    `json:"name"`  // Name is the display name of the user
	Email string    `json:"email"` // Email is not required to be unique
}
