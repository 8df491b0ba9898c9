package user

import "context"

// UserService is the directory boundary: admin-only CRUD over users.
type UserService interface {
	ListUsers(ctx context.Context) ([]UserResponse, error)
	GetUser(ctx context.Context, id string) (UserResponse, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	// DeleteUser soft-deletes a user. callerID guards against self-deletion.
	DeleteUser(ctx context.Context, id string, callerID string) (UserResponse, error)
}
