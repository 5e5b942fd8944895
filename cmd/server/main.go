package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/userbase/backend/api/handler"
	"github.com/userbase/backend/internal/bootstrap"
	"github.com/userbase/backend/internal/config"
	"github.com/userbase/backend/internal/infrastructure/monitor"
	pgInfra "github.com/userbase/backend/internal/infrastructure/postgres"
	redisInfra "github.com/userbase/backend/internal/infrastructure/redis"
	"github.com/userbase/backend/internal/middleware"
	"github.com/userbase/backend/internal/router"
	"github.com/userbase/backend/internal/services/lifecycle"
	"github.com/userbase/backend/pkg/httpcontext"
	"github.com/userbase/backend/pkg/logger"
	"github.com/userbase/backend/pkg/security"
	"github.com/userbase/backend/repository/postgres"
	redisRepo "github.com/userbase/backend/repository/redis"
	authUC "github.com/userbase/backend/usecase/auth"
	userUC "github.com/userbase/backend/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	if err := bootstrap.FirstSuperuser(appCtx, pool, cfg.Bootstrap, zapLogger); err != nil {
		zapLogger.Fatal("superuser bootstrap failed", zap.Error(err))
	}

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	mon := monitor.New(pool, redisClient, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	loginThrottle := redisRepo.NewLoginThrottle(redisClient, cfg.RateLimit.LoginWindow)

	tokens := security.NewTokenService(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.ResetTokenTTL,
	)

	authUseCase := authUC.New(userRepo, loginThrottle, tokens, cfg.RateLimit.LoginAttempts, zapLogger)
	userUseCase := userUC.New(userRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		User:   apiHandler.NewUserHandler(userUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(cfg.AppName, mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.NewAuth(tokens, userRepo, zapLogger)
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      corsMiddleware(r.Handler),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
