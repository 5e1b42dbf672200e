package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "expense-approval-backend/internal/adapter/http"
	"expense-approval-backend/internal/adapter/middleware"
	"expense-approval-backend/internal/adapter/repository/mysql"
	"expense-approval-backend/internal/config"
	"expense-approval-backend/internal/domain/authz"
	"expense-approval-backend/internal/infrastructure/cache"
	"expense-approval-backend/internal/infrastructure/db"
	"expense-approval-backend/internal/infrastructure/mail"
	"expense-approval-backend/internal/infrastructure/storage"
	"expense-approval-backend/internal/notification"
	ucallowance "expense-approval-backend/internal/usecase/allowance"
	ucassignment "expense-approval-backend/internal/usecase/assignment"
	ucauth "expense-approval-backend/internal/usecase/auth"
	ucexpense "expense-approval-backend/internal/usecase/expense"
	ucproject "expense-approval-backend/internal/usecase/project"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	files, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	var sender notification.Sender = mail.LogSender{}
	if cfg.MailEnabled() {
		sender = mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFromName)
	}
	dispatcher := notification.NewDispatcher(sender)

	expenses := mysql.NewExpenseRepository(gdb)
	histories := mysql.NewHistoryRepository(gdb)
	employees := mysql.NewEmployeeRepository(gdb)
	projects := mysql.NewProjectRepository(gdb)
	assignments := mysql.NewAssignmentRepository(gdb)
	rates := mysql.NewAllowanceRepository(gdb)
	txer := mysql.NewGormUoW(gdb)

	expenseUC := ucexpense.NewUsecase(ucexpense.Deps{
		Expenses:    expenses,
		Histories:   histories,
		Employees:   employees,
		Projects:    projects,
		Assignments: assignments,
		Rates:       rates,
		UoW:         txer,
		Notifier:    dispatcher,
	})
	authUC := ucauth.NewUsecase(employees, cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	projectUC := ucproject.NewUsecase(projects)
	allowanceUC := ucallowance.NewUsecase(rates)
	assignmentUC := ucassignment.NewUsecase(assignments, employees)

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(authUC)
	expenseH := httpadp.NewExpenseHandler(expenseUC, files)
	projectH := httpadp.NewProjectHandler(projectUC)
	allowanceH := httpadp.NewAllowanceHandler(allowanceUC)
	assignmentH := httpadp.NewAssignmentHandler(assignmentUC)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	e.GET("/health", h.Health)
	e.POST("/auth/login", authH.Login)

	api := e.Group("/api",
		middleware.Auth(cfg.JWTSecret, employees),
		middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)

	api.GET("/expenses", expenseH.List)
	api.POST("/expenses", expenseH.Submit)
	api.GET("/expenses/:expense_id", expenseH.Get)
	api.PUT("/expenses/:expense_id", expenseH.Resubmit)
	api.POST("/expenses/:expense_id/review", expenseH.Review)
	api.GET("/expenses/:expense_id/history", expenseH.History)
	api.GET("/expenses/:expense_id/history-with-data", expenseH.HistoryWithItems)

	api.GET("/projects", projectH.List)
	api.POST("/projects", projectH.Create, middleware.Require(authz.PermManageProjects))
	api.PUT("/projects/:project_id", projectH.Update, middleware.Require(authz.PermManageProjects))
	api.DELETE("/projects/:project_id", projectH.Delete, middleware.Require(authz.PermManageProjects))
	api.POST("/projects/import", projectH.Import, middleware.Require(authz.PermImportProjects))

	api.GET("/allowance-rates", allowanceH.List)
	api.POST("/allowance-rates", allowanceH.Create, middleware.Require(authz.PermManageRates))
	api.PUT("/allowance-rates/:rate_id", allowanceH.Update, middleware.Require(authz.PermManageRates))
	api.DELETE("/allowance-rates/:rate_id", allowanceH.Delete, middleware.Require(authz.PermManageRates))

	api.GET("/coordinator-departments", assignmentH.List, middleware.Require(authz.PermManageAssignments))
	api.POST("/coordinator-departments", assignmentH.Create, middleware.Require(authz.PermManageAssignments))
	api.PUT("/coordinator-departments/:assignment_id", assignmentH.Reassign, middleware.Require(authz.PermManageAssignments))
	api.DELETE("/coordinator-departments/:assignment_id", assignmentH.Delete, middleware.Require(authz.PermManageAssignments))

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
