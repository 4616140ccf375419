package user

import (
	"context"

	"github.com/google/uuid"
)

// UserUsecase defines the interface for user business logic operations.
type UserUsecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*UserResponse, error)
	GetAllUsers(ctx context.Context) ([]UserResponse, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*UserResponse, error)
}
