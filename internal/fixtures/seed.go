// Package fixtures seeds a fresh database with a demo dataset: one admin,
// two employees and a couple of pending leave requests.
package fixtures

import (
	"context"
	"fmt"
	"time"

	"github.com/ems-hq/ems-backend-go/internal/domain/leave"
	"github.com/ems-hq/ems-backend-go/internal/domain/user"
	"github.com/ems-hq/ems-backend-go/internal/pkg/database"
	"github.com/ems-hq/ems-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the password every seeded account gets.
const DefaultPassword = "password"

type seedUser struct {
	name       string
	email      string
	role       user.Role
	department string
}

var seedUsers = []seedUser{
	{name: "Admin User", email: "admin@example.com", role: user.RoleAdmin, department: "Management"},
	{name: "John Doe", email: "emp@example.com", role: user.RoleEmployee, department: "Engineering"},
	{name: "Jane Smith", email: "jane@example.com", role: user.RoleEmployee, department: "HR"},
}

// Seed inserts the demo dataset in one transaction. It is not idempotent;
// run it against an empty database only.
func Seed(ctx context.Context, db *database.DB) error {
	userRepo := postgresql.NewUserRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTx(ctx, tx)

		employees := make([]user.User, 0, len(seedUsers))
		for _, su := range seedUsers {
			created, err := userRepo.Create(txCtx, user.User{
				ID:           uuid.NewString(),
				Name:         su.name,
				Email:        su.email,
				PasswordHash: string(hash),
				Role:         su.role,
				Department:   su.department,
			})
			if err != nil {
				return fmt.Errorf("failed to seed user %s: %w", su.email, err)
			}
			if !created.IsAdmin() {
				employees = append(employees, created)
			}
		}

		nextMonday := nextWeekday(time.Now(), time.Monday)
		for i, employee := range employees {
			start := nextMonday.AddDate(0, 0, i*7)
			_, err := leaveRepo.Create(txCtx, leave.LeaveRequest{
				ID:        uuid.NewString(),
				UserID:    employee.ID,
				StartDate: start,
				EndDate:   start.AddDate(0, 0, 2),
				Reason:    "Personal time off",
				Status:    leave.LeaveRequestStatusPending,
				CreatedAt: time.Now(),
			})
			if err != nil {
				return fmt.Errorf("failed to seed leave request for %s: %w", employee.Email, err)
			}
		}

		return nil
	})
}

func nextWeekday(from time.Time, day time.Weekday) time.Time {
	date := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	offset := (int(day) - int(date.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return date.AddDate(0, 0, offset)
}
