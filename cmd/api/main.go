package main

import (
	"fmt"
	"net/http"

	"github.com/ems-hq/ems-backend-go/internal/config"
	appHTTP "github.com/ems-hq/ems-backend-go/internal/handler/http"
	"github.com/ems-hq/ems-backend-go/internal/pkg/clock"
	"github.com/ems-hq/ems-backend-go/internal/pkg/database"
	"github.com/ems-hq/ems-backend-go/internal/pkg/jwt"
	"github.com/ems-hq/ems-backend-go/internal/repository/postgresql"
	attendanceService "github.com/ems-hq/ems-backend-go/internal/service/attendance"
	authService "github.com/ems-hq/ems-backend-go/internal/service/auth"
	dashboardService "github.com/ems-hq/ems-backend-go/internal/service/dashboard"
	leaveService "github.com/ems-hq/ems-backend-go/internal/service/leave"
	userService "github.com/ems-hq/ems-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	clk := clock.System()

	authSvc := authService.NewAuthService(userRepo, jwtService, refreshTokenRepo)
	userSvc := userService.NewUserService(userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, clk)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, userRepo, clk)
	dashboardSvc := dashboardService.NewDashboardService(userRepo, attendanceRepo, leaveRequestRepo, clk)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		appHTTP.NewAuthHandler(authSvc, jwtService),
		appHTTP.NewUserHandler(userSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
