package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"

	"medical-agenda/internal/app"
	"medical-agenda/internal/config"
	"medical-agenda/internal/events"
	"medical-agenda/internal/handler"
	"medical-agenda/internal/logger"
	"medical-agenda/internal/middleware"
	"medical-agenda/internal/service"
	"medical-agenda/internal/userclient"
)

func main() {
	if err := run(); err != nil {
		logger.New(os.Stderr, "citas", "info", "json").Error("citas.stopped", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Citas)
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

	users := userclient.New(userclient.Config{
		BaseURL:   cfg.UserService.URL,
		Timeout:   cfg.UserService.Timeout,
		JWTSecret: cfg.Auth.JWTSecret,
		Caller:    cfg.App.Name,
	}, log)

	// a nil publisher disables events
	var pub service.EventPublisher
	if cfg.RabbitMQ.Enabled {
		p, err := events.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			return err
		}
		defer p.Close()
		pub = p
	} else {
		log.Info("rabbitmq.disabled")
	}
	svc := service.NewAppointmentService(st, users, pub, log)

	rl := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	defer rl.Stop()
	router := handler.NewRouter(handler.RouterConfig{Log: log, JWTSecret: cfg.Auth.JWTSecret, Limiter: rl})
	handler.NewAppointmentHandler(svc, log).RegisterRoutes(router)

	return app.Run(ctx, cfg, log, router)
}
