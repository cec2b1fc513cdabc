package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/facemark/attendance-backend-go/internal/config"
	appHTTP "github.com/facemark/attendance-backend-go/internal/handler/http"
	"github.com/facemark/attendance-backend-go/internal/pkg/clock"
	"github.com/facemark/attendance-backend-go/internal/pkg/cron"
	"github.com/facemark/attendance-backend-go/internal/pkg/database"
	"github.com/facemark/attendance-backend-go/internal/pkg/jwt"
	"github.com/facemark/attendance-backend-go/internal/pkg/storage"
	"github.com/facemark/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/facemark/attendance-backend-go/internal/service/attendance"
	authService "github.com/facemark/attendance-backend-go/internal/service/auth"
	employeeService "github.com/facemark/attendance-backend-go/internal/service/employee"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	clk, err := clock.New(cfg.Attendance.Timezone)
	if err != nil {
		log.Fatal("Failed to load attendance timezone: ", err)
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.UploadsDir, "/uploads")
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, clk)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, attendanceRepo, fileStorage)
	authSvc := authService.NewAuthService(employeeRepo, jwtService, fileStorage)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		employeeHandler,
		cfg.App.AllowedOrigin,
		cfg.Storage.UploadsDir,
		cfg.App.LogLevel,
	)

	scheduler, err := cron.NewScheduler(cfg.Attendance.SweepTriggerTime, clk.Location())
	if err != nil {
		log.Fatal("Failed to create scheduler: ", err)
	}
	cron.NewAbsenceSweep(attendanceRepo, employeeRepo, clk).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
