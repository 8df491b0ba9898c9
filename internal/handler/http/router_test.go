package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ems-hq/ems-backend-go/internal/config"
	"github.com/ems-hq/ems-backend-go/internal/domain/user"
	"github.com/ems-hq/ems-backend-go/internal/pkg/clock"
	"github.com/ems-hq/ems-backend-go/internal/pkg/jwt"
	"github.com/ems-hq/ems-backend-go/internal/repository/memory"
	attendanceService "github.com/ems-hq/ems-backend-go/internal/service/attendance"
	authService "github.com/ems-hq/ems-backend-go/internal/service/auth"
	dashboardService "github.com/ems-hq/ems-backend-go/internal/service/dashboard"
	leaveService "github.com/ems-hq/ems-backend-go/internal/service/leave"
	userService "github.com/ems-hq/ems-backend-go/internal/service/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

var testTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type env struct {
	router http.Handler
	users  user.UserRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()

	users := memory.NewUserRepository()
	attendances := memory.NewAttendanceRepository()
	leaves := memory.NewLeaveRequestRepository()
	refreshTokens := memory.NewRefreshTokenRepository()

	jwtService := jwt.NewJWTService(testSecret, "1h", "24h")
	clk := clock.Fixed(testTime)

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.FrontendURL = "http://localhost:3000"

	router := NewRouter(
		cfg,
		jwtService,
		NewAuthHandler(authService.NewAuthService(users, jwtService, refreshTokens), jwtService),
		NewUserHandler(userService.NewUserService(users)),
		NewAttendanceHandler(attendanceService.NewAttendanceService(attendances, users, clk)),
		NewLeaveHandler(leaveService.NewLeaveService(leaves, users, clk)),
		NewDashboardHandler(dashboardService.NewDashboardService(users, attendances, leaves, clk)),
	)

	return &env{router: router, users: users}
}

func (e *env) seedUser(t *testing.T, email string, role user.Role) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := e.users.Create(context.Background(), user.User{
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

func (e *env) login(t *testing.T, email string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": "password123"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	e.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestLoginAndCheckIn(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "john@example.com", user.RoleEmployee)
	token := e.login(t, "john@example.com")

	rec := e.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, nil)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// A second check-in the same day conflicts.
	rec = e.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/attendance/today", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "checked_in_only")
}

func TestLogin_BadCredentials(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "john@example.com", user.RoleEmployee)

	body, _ := json.Marshal(map[string]string{"email": "john@example.com", "password": "wrong-password"})
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoute_NoToken(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api/v1/attendance/check-in", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoute_EmployeeForbidden(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "john@example.com", user.RoleEmployee)
	token := e.login(t, "john@example.com")

	rec := e.do(t, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/users/", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLeaveApprovalFlow(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "john@example.com", user.RoleEmployee)
	e.seedUser(t, "admin@example.com", user.RoleAdmin)

	employeeToken := e.login(t, "john@example.com")
	adminToken := e.login(t, "admin@example.com")

	rec := e.do(t, http.MethodPost, "/api/v1/leaves/", employeeToken, map[string]string{
		"start_date": "2026-03-10",
		"end_date":   "2026-03-12",
		"reason":     "family trip",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Pending queue is admin-only.
	rec = e.do(t, http.MethodGet, "/api/v1/leaves/pending", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodPut, "/api/v1/leaves/"+created.Data.ID+"/approve", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// A second resolution conflicts.
	rec = e.do(t, http.MethodPut, "/api/v1/leaves/"+created.Data.ID+"/reject", adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitLeave_ValidationError(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "john@example.com", user.RoleEmployee)
	token := e.login(t, "john@example.com")

	rec := e.do(t, http.MethodPost, "/api/v1/leaves/", token, map[string]string{
		"start_date": "2026-03-12",
		"end_date":   "2026-03-10",
		"reason":     "",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDashboardStats_Admin(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "john@example.com", user.RoleEmployee)
	e.seedUser(t, "admin@example.com", user.RoleAdmin)
	adminToken := e.login(t, "admin@example.com")

	rec := e.do(t, http.MethodGet, "/api/v1/dashboard/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "total_users")
}

func TestUserManagement_SelfDeleteConflict(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser(t, "admin@example.com", user.RoleAdmin)
	adminToken := e.login(t, "admin@example.com")

	rec := e.do(t, http.MethodDelete, "/api/v1/users/"+admin.ID, adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRefreshTokenFlow(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "john@example.com", user.RoleEmployee)

	body, _ := json.Marshal(map[string]string{"email": "john@example.com", "password": "password123"})
	loginRec := httptest.NewRecorder()
	e.router.ServeHTTP(loginRec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, loginRec.Code)

	var refreshCookie *http.Cookie
	for _, c := range loginRec.Result().Cookies() {
		if c.Name == "refresh_token" {
			refreshCookie = c
		}
	}
	require.NotNil(t, refreshCookie)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(refreshCookie)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
