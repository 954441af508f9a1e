package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/summercamp-api/api/swagger"
	"github.com/noah-isme/summercamp-api/internal/gateway"
	"github.com/noah-isme/summercamp-api/internal/handler"
	"github.com/noah-isme/summercamp-api/internal/middleware"
	"github.com/noah-isme/summercamp-api/internal/models"
	"github.com/noah-isme/summercamp-api/internal/repository"
	"github.com/noah-isme/summercamp-api/internal/service"
	"github.com/noah-isme/summercamp-api/pkg/cache"
	"github.com/noah-isme/summercamp-api/pkg/config"
	"github.com/noah-isme/summercamp-api/pkg/database"
	"github.com/noah-isme/summercamp-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/summercamp-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/summercamp-api/pkg/middleware/requestid"
)

// @title Summer Camp API
// @version 0.1.0
// @description Course enrollment and payment backend
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, listing cache disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	selectionRepo := repository.NewSelectionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	stripeGateway := gateway.NewStripeGateway(cfg.Payments)

	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, cacheRepo, metricsSvc, validate, logr, cfg.Catalog.PopularCacheTTL)
	enrollmentSvc := service.NewEnrollmentService(paymentRepo, selectionRepo, enrollmentRepo, classRepo, stripeGateway, metricsSvc, validate, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	classHandler := handler.NewClassHandler(classSvc)
	selectionHandler := handler.NewSelectionHandler(enrollmentSvc)
	paymentHandler := handler.NewPaymentHandler(enrollmentSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authed := middleware.JWT(authSvc)
	adminOnly := middleware.RequireRole(userRepo, models.RoleAdmin)
	instructorOnly := middleware.RequireRole(userRepo, models.RoleInstructor)

	api := r.Group(cfg.APIPrefix)

	// Public routes.
	api.POST("/jwt", authHandler.CreateToken)
	api.POST("/users", userHandler.Register)
	api.GET("/user/role/:email", userHandler.Role)
	api.GET("/class/approved", classHandler.ListApproved)
	api.GET("/class/popular", classHandler.ListPopular)

	// Any authenticated caller.
	authenticated := api.Group("", authed)
	authenticated.GET("/class/feedback/:id", classHandler.Get)
	authenticated.PUT("/class/seats/:id", classHandler.ReserveSeat)
	authenticated.POST("/myClasses", selectionHandler.Create)
	authenticated.GET("/myClasses/student/:email", selectionHandler.ListByStudent)
	authenticated.GET("/myClasses/one/:id", selectionHandler.GetByClass)
	authenticated.DELETE("/myClasses/:id", selectionHandler.Delete)
	authenticated.POST("/create-payment-intent", paymentHandler.CreateIntent)
	authenticated.POST("/payment", paymentHandler.Record)
	authenticated.POST("/checkout", paymentHandler.Checkout)
	authenticated.GET("/enroll/:email", paymentHandler.Enrollments)
	authenticated.GET("/payment-history/:email", paymentHandler.History)
	authenticated.GET("/payment-history/:email/export", paymentHandler.ExportHistory)

	// Admin-gated routes.
	admin := api.Group("", authed, adminOnly)
	admin.GET("/users", userHandler.List)
	admin.GET("/users/role/:role", userHandler.ListByRole)
	admin.PATCH("/users/admin/:id", userHandler.PromoteAdmin)
	admin.PATCH("/users/instructor/:id", userHandler.PromoteInstructor)
	admin.GET("/class", classHandler.List)
	admin.PUT("/class/approve/:id", classHandler.Approve)
	admin.PUT("/class/deny/:id", classHandler.Deny)
	admin.PATCH("/class/feedback/:id", classHandler.Feedback)

	// Instructor-gated routes.
	instructor := api.Group("", authed, instructorOnly)
	instructor.POST("/class", classHandler.Create)
	instructor.GET("/class/instructor/:email", classHandler.ListByInstructor)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
