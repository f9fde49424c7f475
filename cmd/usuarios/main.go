package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"medical-agenda/internal/app"
	"medical-agenda/internal/auth"
	"medical-agenda/internal/cache"
	"medical-agenda/internal/config"
	"medical-agenda/internal/handler"
	"medical-agenda/internal/logger"
	"medical-agenda/internal/middleware"
	"medical-agenda/internal/service"
)

func main() {
	if err := run(); err != nil {
		logger.New(os.Stderr, "usuarios", "info", "json").Error("usuarios.stopped", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Usuarios)
	if err != nil {
		return err
	}
	log := logger.New(os.Stdout, cfg.App.Name, cfg.App.LogLevel, cfg.App.LogFormat)
	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	st, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	catalog, err := cache.NewCatalog(st, cfg.Cache.CatalogSize, log)
	if err != nil {
		return fmt.Errorf("catalog cache: %w", err)
	}
	svc := service.NewUserService(st, catalog, auth.Hasher{}, log)

	if cfg.Bootstrap.AdminEmail != "" {
		created, err := svc.EnsureAdmin(ctx, cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
		if err != nil {
			return err
		}
		log.Info("bootstrap.admin", "email", cfg.Bootstrap.AdminEmail, "created", created)
	}

	rl := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	defer rl.Stop()
	if cfg.Auth.JWTSecret == "" {
		log.Warn("auth.disabled", "message", "JWT_SECRET not set, endpoints are open and login is off")
	}
	router := handler.NewRouter(handler.RouterConfig{Log: log, JWTSecret: cfg.Auth.JWTSecret, Limiter: rl})
	handler.NewUserHandler(svc, log, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).RegisterRoutes(router)

	return app.Run(ctx, cfg, log, router)
}
