package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/childcare-api/api/swagger"
	"github.com/noah-isme/childcare-api/internal/handler"
	"github.com/noah-isme/childcare-api/internal/middleware"
	"github.com/noah-isme/childcare-api/internal/repository"
	"github.com/noah-isme/childcare-api/internal/service"
	"github.com/noah-isme/childcare-api/pkg/config"
	"github.com/noah-isme/childcare-api/pkg/database"
	"github.com/noah-isme/childcare-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/childcare-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/childcare-api/pkg/middleware/requestid"
)

// @title Childcare API
// @version 1.0.0
// @description Role-gated REST backend for childcare attendance tracking
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	if err := database.Migrate(db); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	contactRepo := repository.NewContactRepository(db)

	credentials := service.NewBcryptCredentialStore(cfg.Bcrypt.Cost)
	metricsSvc := service.NewMetricsService()

	authSvc := service.NewAuthService(userRepo, credentials, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, credentials, validate, logr)
	childSvc := service.NewChildService(childRepo, userRepo, validate, logr)
	commentSvc := service.NewCommentService(commentRepo, childRepo, userRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, childRepo, contactRepo, validate, logr)
	groupSvc := service.NewGroupService(groupRepo, teacherRepo, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, validate, logr)
	contactSvc := service.NewContactService(contactRepo, contactRepo, userRepo, validate, logr)

	userHandler := handler.NewUserHandler(userSvc, authSvc, metricsSvc)
	childHandler := handler.NewChildHandler(childSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	groupHandler := handler.NewGroupHandler(groupSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	contactHandler := handler.NewContactHandler(contactSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/users", userHandler.Signup)
	r.POST("/users/login", userHandler.Login)

	auth := r.Group("/", middleware.JWT(authSvc))

	users := auth.Group("/users")
	users.POST("/admin", userHandler.CreateAdmin)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	children := auth.Group("/children")
	children.GET("", childHandler.List)
	children.POST("", childHandler.Create)
	children.GET("/:id", childHandler.Get)
	children.PATCH("/:id", childHandler.Update)
	children.DELETE("/:id", childHandler.Delete)
	children.GET("/:id/comments", childHandler.Comments)
	children.POST("/:id/comments", commentHandler.Create)
	children.GET("/:id/comments/:commentID", commentHandler.Get)
	children.PATCH("/:id/comments/:commentID", commentHandler.Update)
	children.DELETE("/:id/comments/:commentID", commentHandler.Delete)
	children.GET("/:id/attendances", attendanceHandler.List)
	children.POST("/:id/attendances", attendanceHandler.Create)
	children.GET("/:id/attendances/:attendanceID", attendanceHandler.Get)
	children.PATCH("/:id/attendances/:attendanceID", attendanceHandler.Update)
	children.DELETE("/:id/attendances/:attendanceID", attendanceHandler.Delete)

	groups := auth.Group("/groups")
	groups.GET("", groupHandler.List)
	groups.POST("", groupHandler.Create)
	groups.GET("/:id", groupHandler.Get)
	groups.PATCH("/:id", groupHandler.Update)
	groups.DELETE("/:id", groupHandler.Delete)

	teachers := auth.Group("/teachers")
	teachers.GET("", teacherHandler.List)
	teachers.POST("", teacherHandler.Create)
	teachers.GET("/:id", teacherHandler.Get)
	teachers.PATCH("/:id", teacherHandler.Update)
	teachers.DELETE("/:id", teacherHandler.Delete)

	contacts := auth.Group("/contacts")
	contacts.GET("", contactHandler.List)
	contacts.POST("", contactHandler.Create)
	contacts.GET("/:id", contactHandler.Get)
	contacts.PATCH("/:id", contactHandler.Update)
	contacts.DELETE("/:id", contactHandler.Delete)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("forced shutdown", "error", err)
		return
	}
	logr.Sugar().Infow("server stopped")
}
