package user

import (
	"context"
	"testing"

	"github.com/ems-hq/ems-backend-go/internal/domain/user"
	"github.com/ems-hq/ems-backend-go/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (user.UserService, user.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	return NewUserService(users), users
}

func seedUser(t *testing.T, users user.UserRepository, email string, role user.Role) user.User {
	t.Helper()
	u, err := users.Create(context.Background(), user.User{
		ID:         uuid.NewString(),
		Name:       "Seeded User",
		Email:      email,
		Role:       role,
		Department: "Engineering",
	})
	require.NoError(t, err)
	return u
}

func TestCreateUser(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.CreateUser(context.Background(), user.CreateUserRequest{
		Name:       "Jane Smith",
		Email:      "Jane@Example.com",
		Password:   "password123",
		Role:       string(user.RoleAdmin),
		Department: "HR",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "jane@example.com", resp.Email)
	assert.Equal(t, string(user.RoleAdmin), resp.Role)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, "jane@example.com", user.RoleEmployee)

	_, err := svc.CreateUser(context.Background(), user.CreateUserRequest{
		Name:       "Jane Smith",
		Email:      "JANE@example.com",
		Password:   "password123",
		Role:       string(user.RoleEmployee),
		Department: "HR",
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUpdateUser(t *testing.T) {
	svc, users := newTestService(t)
	seeded := seedUser(t, users, "jane@example.com", user.RoleEmployee)

	resp, err := svc.UpdateUser(context.Background(), user.UpdateUserRequest{
		ID:         seeded.ID,
		Name:       "Jane Doe",
		Email:      "jane.doe@example.com",
		Role:       string(user.RoleAdmin),
		Department: "Management",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", resp.Name)
	assert.Equal(t, "jane.doe@example.com", resp.Email)
	assert.Equal(t, string(user.RoleAdmin), resp.Role)
}

func TestUpdateUser_KeepOwnEmail(t *testing.T) {
	svc, users := newTestService(t)
	seeded := seedUser(t, users, "jane@example.com", user.RoleEmployee)

	// Re-submitting the user's own email is not a conflict.
	_, err := svc.UpdateUser(context.Background(), user.UpdateUserRequest{
		ID:         seeded.ID,
		Name:       "Jane Smith",
		Email:      "jane@example.com",
		Role:       string(user.RoleEmployee),
		Department: "HR",
	})
	assert.NoError(t, err)
}

func TestUpdateUser_EmailTakenByOther(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, "john@example.com", user.RoleEmployee)
	seeded := seedUser(t, users, "jane@example.com", user.RoleEmployee)

	_, err := svc.UpdateUser(context.Background(), user.UpdateUserRequest{
		ID:         seeded.ID,
		Name:       "Jane Smith",
		Email:      "john@example.com",
		Role:       string(user.RoleEmployee),
		Department: "HR",
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateUser(context.Background(), user.UpdateUserRequest{
		ID:         uuid.NewString(),
		Name:       "Ghost",
		Email:      "ghost@example.com",
		Role:       string(user.RoleEmployee),
		Department: "HR",
	})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc, users := newTestService(t)
	admin := seedUser(t, users, "admin@example.com", user.RoleAdmin)
	target := seedUser(t, users, "john@example.com", user.RoleEmployee)

	resp, err := svc.DeleteUser(context.Background(), target.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, resp.ID)

	_, err = svc.GetUser(context.Background(), target.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	list, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeleteUser_Self(t *testing.T) {
	svc, users := newTestService(t)
	admin := seedUser(t, users, "admin@example.com", user.RoleAdmin)

	_, err := svc.DeleteUser(context.Background(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, user.ErrSelfDelete)
}
