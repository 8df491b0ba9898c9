package auth

import (
	"context"
	"testing"

	"github.com/ems-hq/ems-backend-go/internal/domain/auth"
	"github.com/ems-hq/ems-backend-go/internal/domain/user"
	"github.com/ems-hq/ems-backend-go/internal/pkg/jwt"
	"github.com/ems-hq/ems-backend-go/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (auth.AuthService, user.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	jwtService := jwt.NewJWTService("test-secret-key", "15m", "168h")
	return NewAuthService(users, jwtService, memory.NewRefreshTokenRepository()), users
}

func seedUser(t *testing.T, users user.UserRepository, email, password string, role user.Role) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := users.Create(context.Background(), user.User{
		ID:           uuid.NewString(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Department:   "Engineering",
	})
	require.NoError(t, err)
	return u
}

func TestLogin(t *testing.T) {
	svc, users := newTestService(t)
	seeded := seedUser(t, users, "john@example.com", "password123", user.RoleEmployee)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "John@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, seeded.ID, resp.User.ID)
	assert.Equal(t, "john@example.com", resp.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, "john@example.com", "password123", user.RoleEmployee)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "john@example.com",
		Password: "nope",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRegister(t *testing.T) {
	svc, users := newTestService(t)

	err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "New.Hire@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	created, err := users.GetByEmail(context.Background(), "new.hire@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new.hire", created.Name)
	assert.Equal(t, user.RoleEmployee, created.Role)
	assert.Equal(t, "General", created.Department)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, "taken@example.com", "password123", user.RoleEmployee)

	err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "TAKEN@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestRefreshToken_RotatesAndRevokesOld(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, "john@example.com", "password123", user.RoleEmployee)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "john@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token was rotated out and cannot be replayed.
	_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshToken_RejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, "john@example.com", "password123", user.RoleEmployee)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "john@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
