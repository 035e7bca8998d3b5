package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/nafeesnawab/payroll-backend-go/internal/config"
	appHTTP "github.com/nafeesnawab/payroll-backend-go/internal/handler/http"
	"github.com/nafeesnawab/payroll-backend-go/internal/pkg/cron"
	"github.com/nafeesnawab/payroll-backend-go/internal/pkg/database"
	"github.com/nafeesnawab/payroll-backend-go/internal/pkg/jwt"
	"github.com/nafeesnawab/payroll-backend-go/internal/repository/postgresql"
	"github.com/nafeesnawab/payroll-backend-go/internal/service/event"
	leaveService "github.com/nafeesnawab/payroll-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	balanceRepo := postgresql.NewBalanceRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	auditPublisher := event.NewAuditLogPublisher(logger)
	notifier := event.NewLogDispatcher(logger)

	dayCalculator := leaveService.NewDayCalculator()
	balanceSvc := leaveService.NewBalanceService(balanceRepo, adjustmentRepo)
	requestSvc := leaveService.NewRequestService(leaveTypeRepo, requestRepo, balanceSvc, dayCalculator)
	accrualSvc := leaveService.NewAccrualService(leaveTypeRepo, balanceRepo, adjustmentRepo, balanceSvc)
	leaveSvc := leaveService.NewLeaveService(
		db,
		leaveTypeRepo,
		requestRepo,
		adjustmentRepo,
		balanceSvc,
		requestSvc,
		auditPublisher,
		notifier,
	)

	scheduler := cron.NewScheduler()
	accrualJobs := cron.NewAccrualJobs(db, accrualSvc)
	accrualJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	router := appHTTP.NewRouter(jwtService, leaveHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
