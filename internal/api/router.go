package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamforge/ems-api/internal/api/handler"
	"github.com/teamforge/ems-api/internal/api/middleware"
	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
	"github.com/teamforge/ems-api/internal/core/service"
	"github.com/teamforge/ems-api/internal/infrastructure/config"
	mongodb "github.com/teamforge/ems-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/teamforge/ems-api/internal/infrastructure/db/redis"
	"github.com/teamforge/ems-api/internal/infrastructure/http/handlers"
	"github.com/teamforge/ems-api/internal/infrastructure/relay"
)

// Dependencies carries the shared infrastructure the router wires handlers to.
type Dependencies struct {
	Config        *config.Config
	DB            *mongo.Database
	Redis         *redis.Client
	Hub           *relay.Hub
	Dispatcher    ports.NotificationDispatcher
	Notifications ports.NotificationService
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	cfg := deps.Config

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ems"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.HTTP.ClientOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
	}))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	categoryRepo := mongodb.NewCategoryRepository(deps.DB)
	clientRepo := mongodb.NewClientRepository(deps.DB)
	projectRepo := mongodb.NewProjectRepository(deps.DB)
	taskRepo := mongodb.NewTaskRepository(deps.DB)
	leaveRepo := mongodb.NewLeaveRepository(deps.DB)
	attendanceRepo := mongodb.NewAttendanceRepository(deps.DB)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL)
	employeeService := service.NewEmployeeService(userRepo, categoryRepo, deps.Logger)
	categoryService := service.NewCategoryService(categoryRepo)
	clientService := service.NewClientService(clientRepo)
	projectService := service.NewProjectService(projectRepo, clientRepo, deps.Logger)
	taskService := service.NewTaskService(taskRepo, projectRepo, deps.Hub, deps.Dispatcher, deps.Logger)
	leaveService := service.NewLeaveService(leaveRepo, userRepo, deps.Hub, deps.Dispatcher, deps.Logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, userRepo, deps.Logger)

	loginLimiter := redisinfra.NewLoginLimiter(deps.Redis, 0, 0)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, loginLimiter, handler.CookieOptions{
		Domain: cfg.HTTP.CookieDomain,
		Secure: cfg.Production(),
		TTL:    cfg.JWT.TTL,
	})
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	clientHandler := handler.NewClientHandler(clientService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	leaveHandler := handler.NewLeaveHandler(leaveService)
	notificationHandler := handler.NewNotificationHandler(deps.Notifications, deps.Dispatcher)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	relayHandler := handler.NewRelayHandler(deps.Hub, cfg.JWT.Secret, cfg.HTTP.ClientOrigin)

	auth := middleware.Auth(cfg.JWT.Secret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleEmployee)
	employeeOnly := middleware.RBAC(domain.RoleEmployee)

	// --- Public routes ---
	e.POST("/api/auth/signup", authHandler.Signup)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/verify", authHandler.Verify, auth)
	e.POST("/api/logout", authHandler.Logout)

	// --- Websocket relay (authenticates before upgrade) ---
	e.GET("/ws", relayHandler.Serve)

	// --- Employees ---
	employees := e.Group("/api/employee", auth)
	employees.GET("", employeeHandler.List, adminOnly)
	employees.GET("/detail/:id", employeeHandler.Get, anyRole)
	employees.POST("", employeeHandler.Create, adminOnly)
	employees.PUT("/:id", employeeHandler.Update, adminOnly)
	employees.DELETE("/:id", employeeHandler.Delete, adminOnly)

	// --- Categories ---
	categories := e.Group("/api/categories", auth, adminOnly)
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	// --- Clients ---
	clients := e.Group("/api/clients", auth, adminOnly)
	clients.GET("", clientHandler.List)
	clients.GET("/:id", clientHandler.Get)
	clients.POST("", clientHandler.Create)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	// --- Projects ---
	projects := e.Group("/api/projects", auth, adminOnly)
	projects.GET("", projectHandler.List)
	projects.GET("/ongoing", projectHandler.ListOngoing)
	projects.GET("/:id", projectHandler.Get)
	projects.POST("", projectHandler.Create)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	// --- Tasks ---
	tasks := e.Group("/api/tasks", auth)
	tasks.GET("", taskHandler.List, adminOnly)
	tasks.GET("/employee/:employeeId", taskHandler.ListByEmployee, anyRole)
	tasks.GET("/ongoing", taskHandler.ListOngoing, adminOnly)
	tasks.POST("", taskHandler.Create, adminOnly)
	tasks.PUT("/:taskId", taskHandler.Update, adminOnly)
	tasks.PUT("/:taskId/status", taskHandler.UpdateStatus, anyRole)
	tasks.PATCH("/:taskId/reassign", taskHandler.Reassign, adminOnly)
	tasks.DELETE("/:taskId", taskHandler.Delete, adminOnly)

	// --- Leave ---
	leave := e.Group("/api/leave", auth)
	leave.POST("", leaveHandler.Submit, employeeOnly)
	leave.GET("/my-requests", leaveHandler.MyRequests, anyRole)
	leave.GET("/pending", leaveHandler.Pending, adminOnly)
	leave.PATCH("/:id/status", leaveHandler.Decide, adminOnly)

	// --- Notifications ---
	notifications := e.Group("/api/notification", auth)
	notifications.GET("/:userId", notificationHandler.ListFor, anyRole)
	notifications.GET("/unread/:userId", notificationHandler.UnreadCount, anyRole)
	notifications.POST("", notificationHandler.Create, adminOnly)
	notifications.PUT("/:notificationId/read", notificationHandler.MarkRead, anyRole)
	notifications.PUT("/mark-all-read/:userId", notificationHandler.MarkAllRead, anyRole)
	notifications.DELETE("/:notificationId", notificationHandler.Delete, anyRole)

	// --- Attendance ---
	attendance := e.Group("/api/attendance", auth)
	attendance.POST("/clockin", attendanceHandler.ClockIn, employeeOnly)
	attendance.POST("/clockout", attendanceHandler.ClockOut, employeeOnly)
	attendance.GET("/status", attendanceHandler.Status, anyRole)
	attendance.GET("/records/:employeeId", attendanceHandler.Records, anyRole)
	attendance.GET("", attendanceHandler.Summary, adminOnly)
	attendance.GET("/date/:date", attendanceHandler.SummaryByDate, adminOnly)

	// --- Ops endpoints ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
