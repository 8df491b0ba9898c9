package user

import (
	"context"
)

// UserRepository owns User rows. Soft-deleted users are invisible to every
// method except SoftDelete itself; attendance and leave rows that reference a
// deleted user are retained.
type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error)
	Update(ctx context.Context, req UpdateUserRequest) (User, error)
	SoftDelete(ctx context.Context, id string) (User, error)
}
