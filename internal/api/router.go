package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estatehub/realty-platform/internal/api/handler"
	"github.com/estatehub/realty-platform/internal/api/middleware"
	"github.com/estatehub/realty-platform/internal/auth/token"
	"github.com/estatehub/realty-platform/internal/client"
	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/service"
	"github.com/estatehub/realty-platform/internal/infrastructure/config"
	mongodb "github.com/estatehub/realty-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/estatehub/realty-platform/internal/infrastructure/db/redis"
	"github.com/estatehub/realty-platform/internal/search"
	"github.com/estatehub/realty-platform/pkg/logger"
)

// NewRouter builds the Echo instance with every service's routes
// registered. All sibling services share one process here; the peer
// clients still go through HTTP so the composition can be split per
// service by pointing the peer URLs elsewhere.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("realty"))

	// --- Token issuing and verification ---
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authOnly := middleware.Auth(issuer)
	optionalAuth := middleware.OptionalAuth(issuer)
	agentOnly := middleware.RBAC(domain.RoleAgent, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Peer clients ---
	notifyPeer := client.NewNotificationClient(cfg.Peers.NotificationURL)
	propertyPeer := client.NewPropertyClient(cfg.Peers.PropertyURL)
	inquiryPeer := client.NewInquiryClient(cfg.Peers.InquiryURL)

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	propertyRepo := mongodb.NewPropertyRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	inquiryRepo := mongodb.NewInquiryRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	analyticsRepo := mongodb.NewAnalyticsRepository(db)
	transactionRepo := mongodb.NewTransactionRepository(db)
	logRepo := mongodb.NewLogRepository(db)

	var deduper service.ViewDeduper
	if rdb != nil {
		deduper = redisdb.NewViewDeduper(rdb)
	}

	// --- Services ---
	authService := service.NewAuthService(userRepo, issuer, notifyPeer, log)
	propertyService := service.NewPropertyService(propertyRepo, notifyPeer, log)
	inquiryService := service.NewInquiryService(clientRepo, inquiryRepo, appointmentRepo, propertyPeer, notifyPeer, log)
	projectService := service.NewProjectService(projectRepo)
	notificationService := service.NewNotificationService(notificationRepo, log)
	analyticsService := service.NewAnalyticsService(analyticsRepo, deduper, log)
	paymentService := service.NewPaymentService(transactionRepo, notifyPeer, log)
	loggingService := service.NewLoggingService(logRepo)
	searchService := search.NewService(propertyPeer, log)
	reportingService := service.NewReportingService(propertyPeer, inquiryPeer)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, issuer)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	inquiryHandler := handler.NewInquiryHandler(inquiryService)
	projectHandler := handler.NewProjectHandler(projectService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	loggingHandler := handler.NewLoggingHandler(loggingService)
	searchHandler := handler.NewSearchHandler(searchService)
	reportHandler := handler.NewReportHandler(reportingService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/verify", authHandler.Verify)
	e.GET("/auth/me", authHandler.Me, authOnly)
	e.GET("/users", authHandler.ListUsers, authOnly, adminOnly)
	e.GET("/users/:id", authHandler.GetUser, authOnly)

	// --- Property routes ---
	e.GET("/properties", propertyHandler.List)
	e.GET("/properties/:id", propertyHandler.Get)
	e.POST("/properties", propertyHandler.Create, authOnly, agentOnly)
	e.PATCH("/properties/:id", propertyHandler.Update, authOnly, agentOnly)
	e.DELETE("/properties/:id", propertyHandler.Delete, authOnly, agentOnly)

	// --- Inquiry, client and appointment routes ---
	e.POST("/inquiries", inquiryHandler.CreateInquiry, optionalAuth)
	e.GET("/inquiries", inquiryHandler.ListInquiries, authOnly)
	e.GET("/inquiries/:id", inquiryHandler.GetInquiry, authOnly, agentOnly)
	e.PATCH("/inquiries/:id/status", inquiryHandler.UpdateStatus, authOnly, agentOnly)
	e.DELETE("/inquiries/:id", inquiryHandler.DeleteInquiry, authOnly)
	e.GET("/clients", inquiryHandler.ListClients, authOnly, agentOnly)
	e.GET("/clients/:id", inquiryHandler.GetClient, authOnly, agentOnly)
	e.POST("/appointments", inquiryHandler.CreateAppointment, authOnly, agentOnly)
	e.GET("/appointments", inquiryHandler.ListAppointments, authOnly, agentOnly)
	e.GET("/appointments/:id", inquiryHandler.GetAppointment, authOnly, agentOnly)

	// --- Project routes (internal work tracking, agents and admins) ---
	projects := e.Group("/projects", authOnly, agentOnly)
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.ListProjects)
	projects.GET("/:id", projectHandler.GetProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)
	projects.POST("/:id/tasks", projectHandler.CreateTask)
	tasks := e.Group("/tasks", authOnly, agentOnly)
	tasks.GET("/:id", projectHandler.GetTask)
	tasks.PATCH("/:id", projectHandler.UpdateTask)
	tasks.POST("/:id/toggle", projectHandler.ToggleTask)
	tasks.DELETE("/:id", projectHandler.DeleteTask)
	tasks.POST("/:id/comments", projectHandler.CreateComment)

	// --- Search routes ---
	e.GET("/search", searchHandler.Search)
	e.POST("/search/rebuild", searchHandler.Rebuild, authOnly, agentOnly)

	// --- Notification routes ---
	// Send is open to sibling services, which call it without a token.
	e.POST("/notifications", notificationHandler.Send)
	e.GET("/notifications", notificationHandler.List, authOnly)

	// --- Analytics routes ---
	e.POST("/events", analyticsHandler.Track)
	e.GET("/events", analyticsHandler.List, authOnly, agentOnly)
	e.GET("/events/stats", analyticsHandler.Stats, authOnly, agentOnly)

	// --- Payment routes ---
	e.POST("/transactions", paymentHandler.Create, authOnly)
	e.GET("/transactions", paymentHandler.List, authOnly)

	// --- Logging sink routes ---
	e.POST("/logs", loggingHandler.Append)
	e.GET("/logs", loggingHandler.List, authOnly, adminOnly)
	e.GET("/logs/stats", loggingHandler.Stats, authOnly, adminOnly)

	// --- Report routes ---
	e.GET("/reports/properties", reportHandler.Properties, authOnly, agentOnly)
	e.GET("/reports/inquiries", reportHandler.Inquiries, authOnly, agentOnly)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
