package user

import "github.com/google/uuid"

// CreateUserRequest represents the request payload for creating a new user.
// Both fields must contain something other than whitespace.
type CreateUserRequest struct {
	Name  string `validate:"notblank"`
	Email string `validate:"notblank"`
}

// UserResponse represents a persisted user returned by the usecase.
type UserResponse struct {
	ID    uuid.UUID
	Name  string
	Email string
}
