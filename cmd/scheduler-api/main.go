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
	"go.uber.org/zap"

	_ "github.com/noah-isme/class-scheduler-api/api/swagger"
	"github.com/noah-isme/class-scheduler-api/internal/handler"
	internalmiddleware "github.com/noah-isme/class-scheduler-api/internal/middleware"
	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/internal/observability"
	"github.com/noah-isme/class-scheduler-api/internal/repository"
	"github.com/noah-isme/class-scheduler-api/internal/service"
	"github.com/noah-isme/class-scheduler-api/pkg/cache"
	"github.com/noah-isme/class-scheduler-api/pkg/config"
	"github.com/noah-isme/class-scheduler-api/pkg/database"
	"github.com/noah-isme/class-scheduler-api/pkg/export"
	"github.com/noah-isme/class-scheduler-api/pkg/jobs"
	"github.com/noah-isme/class-scheduler-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/class-scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/class-scheduler-api/pkg/middleware/requestid"
)

// @title Class Scheduler API
// @version 1.0.0
// @description Administration backend for timetables, faculty, rooms and swap requests.
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

	flushSentry, err := observability.InitSentry(cfg.Sentry.DSN, cfg.Env, cfg.Sentry.Release)
	if err != nil {
		logr.Warn("sentry disabled", zap.Error(err))
	}
	defer flushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db.DB); err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
		logr.Info("migrations applied")
	}

	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			defer client.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(client, "scheduler")
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	authSvc := service.NewAuthService(userRepo, facultyRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})
	scheduleSvc := service.NewScheduleService(scheduleRepo, db, export.NewRegistry(), cacheSvc, metrics, validate, logr)
	swapSvc := service.NewSwapService(repository.NewSwapRepository(db), scheduleRepo, db, cacheSvc, metrics, validate, logr)

	auditSvc := service.NewAuditService(repository.NewAuditRepository(db), logr, jobs.QueueConfig{Workers: 2, MaxRetries: 2})
	auditSvc.Start(context.Background())
	defer auditSvc.Stop()

	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Faculty:    handler.NewFacultyHandler(service.NewFacultyService(facultyRepo, cacheSvc, validate, logr)),
		Grades:     handler.NewGradeHandler(service.NewGradeService(repository.NewGradeRepository(db), cacheSvc, validate, logr)),
		Classrooms: handler.NewRoomHandler(service.NewRoomService(repository.NewRoomRepository(db, models.RoomKindClassroom), cacheSvc, validate, logr)),
		Labs:       handler.NewRoomHandler(service.NewRoomService(repository.NewRoomRepository(db, models.RoomKindLab), cacheSvc, validate, logr)),
		Subjects:   handler.NewSubjectHandler(service.NewSubjectService(repository.NewSubjectRepository(db), cacheSvc, validate, logr)),
		Schedules:  handler.NewScheduleHandler(scheduleSvc),
		Swaps:      handler.NewSwapHandler(swapSvc),
		Leaves:     handler.NewLeaveHandler(service.NewLeaveService(repository.NewLeaveRepository(db), cacheSvc, validate, logr)),
		Feedback:   handler.NewFeedbackHandler(service.NewFeedbackService(repository.NewFeedbackRepository(db), cacheSvc, validate, logr)),
		Metrics:    handler.NewMetricsHandler(metrics, db),
		Audit:      handler.NewAuditHandler(auditSvc),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Metrics(metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.ErrorReporter(nil))

	handler.RegisterRoutes(r, handlers, handler.RouterOptions{
		Prefix: cfg.APIPrefix,
		Gate:   cfg.Auth.Gate,
		Tokens: authSvc,
		Audit:  auditSvc,
		Logger: logr,
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.String("auth_gate", cfg.Auth.Gate))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
