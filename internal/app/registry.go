package app

import (
	"go-timetrack/internal/auth"
	"go-timetrack/internal/config"
	"go-timetrack/internal/employee"
	"go-timetrack/internal/messaging/kafka"
	"go-timetrack/internal/middleware"
	"go-timetrack/internal/project"
	"go-timetrack/internal/screenshot"
	"go-timetrack/internal/security"
	"go-timetrack/internal/storage"
	"go-timetrack/internal/task"
	"go-timetrack/internal/timeentry"
	"go-timetrack/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Shared components ---
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpiration)
	passwords := security.NewPasswordManager()
	store := storage.NewClient(cfg.Storage)

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	timeEntryRepo := timeentry.NewRepository(gormDB)
	screenshotRepo := screenshot.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	authService := auth.NewService(gormDB, authRepo, tokens, passwords)
	employeeService := employee.NewServiceWithOutbox(gormDB, employeeRepo, passwords, outboxRepo, store)
	projectService := project.NewService(gormDB, projectRepo, store)
	taskService := task.NewService(gormDB, taskRepo, store, rdb)
	timeEntryService := timeentry.NewService(gormDB, timeEntryRepo, store)
	screenshotService := screenshot.NewService(gormDB, screenshotRepo, store, cfg.MaxScreenshotBytes)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	projectHandler := project.NewHandler(projectService)
	taskHandler := task.NewHandler(taskService)
	timeEntryHandler := timeentry.NewHandler(timeEntryService)
	screenshotHandler := screenshot.NewHandler(screenshotService)

	// --- Middleware ---
	authn := middleware.Authenticate(authService)
	activated := middleware.RequireActivated()
	loginLimit := middleware.RateLimitByIP(rate.Limit(1), 5)
	idempotent := middleware.Idempotency(rdb)

	router.Use(middleware.RequestID())

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authn, loginLimit)
		employee.RegisterRoutes(api, employeeHandler, authn)
		project.RegisterRoutes(api, projectHandler, authn)
		task.RegisterRoutes(api, taskHandler, authn)
		timeentry.RegisterRoutes(api, timeEntryHandler, authn, activated)
		screenshot.RegisterRoutes(api, screenshotHandler, authn, activated, idempotent)
	}

	return nil
}
