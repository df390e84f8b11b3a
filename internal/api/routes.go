package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/max-ramos-rod/nda-backend/internal/api/handlers"
	"github.com/max-ramos-rod/nda-backend/internal/api/middleware"
	"github.com/max-ramos-rod/nda-backend/internal/services"
	"github.com/max-ramos-rod/nda-backend/pkg/metrics"
	"go.uber.org/zap"
)

type Router struct {
	engine              *gin.Engine
	logger              *zap.Logger
	metrics             *metrics.MetricsCollector
	authHandler         *handlers.AuthHandler
	processHandler      *handlers.ProcessHandler
	notificationHandler *handlers.NotificationHandler
	reqMiddleware       *middleware.RequestMiddleware
}

func NewRouter(
	logger *zap.Logger,
	metricsCollector *metrics.MetricsCollector,
	userService *services.UserService,
	vaultService *services.VaultService,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	reqMiddleware := middleware.NewRequestMiddleware(logger)
	engine.Use(reqMiddleware.ProcessRequest())
	engine.Use(reqMiddleware.RecoverPanic())

	return &Router{
		engine:              engine,
		logger:              logger,
		metrics:             metricsCollector,
		authHandler:         handlers.NewAuthHandler(userService, logger),
		processHandler:      handlers.NewProcessHandler(vaultService, logger),
		notificationHandler: handlers.NewNotificationHandler(vaultService, logger),
		reqMiddleware:       reqMiddleware,
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "up", "name": "nda-backend"})
	})

	r.engine.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"counters":  r.metrics.GetCounters(),
			"latencies": r.metrics.GetLatencies(),
		})
	})

	users := r.engine.Group("/api/users")
	{
		users.POST("/register", r.authHandler.Register)
		users.POST("/login", r.authHandler.Login)
	}

	processes := r.engine.Group("/api/processes")
	{
		processes.POST("", r.processHandler.CreateProcess)
		processes.GET("", r.processHandler.ListProcesses)
		processes.POST("/share", r.processHandler.ShareProcess)
		processes.POST("/access", r.processHandler.AccessProcess)
	}

	r.engine.GET("/api/notifications", r.notificationHandler.ListNotifications)
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

func (r *Router) Run(addr string) error {
	r.logger.Info("Starting HTTP server", zap.String("address", addr))
	return r.engine.Run(addr)
}
