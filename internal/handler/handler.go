package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"medical-agenda/internal/httperr"
	"medical-agenda/internal/middleware"
	"medical-agenda/internal/model"
)

type RouterConfig struct {
	Log       *slog.Logger
	JWTSecret string
	// Limiter is optional; nil disables rate limiting.
	Limiter *middleware.RateLimiter
}

// NewRouter builds the gin engine shared by both services: recovery,
// request ids, access log, and optionally JWT auth and rate limiting.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(cfg.Log))
	if cfg.Limiter != nil {
		r.Use(middleware.RateLimit(cfg.Limiter))
	}
	if cfg.JWTSecret != "" {
		r.Use(middleware.Auth(cfg.JWTSecret))
	}
	r.NoRoute(func(c *gin.Context) {
		httperr.Abort(c, http.StatusNotFound, "route not found")
	})
	return r
}

// order matters only for readability; the sentinels are disjoint
var statusByError = []struct {
	err    error
	status int
}{
	{model.ErrAppointmentNotFound, http.StatusNotFound},
	{model.ErrUserNotFound, http.StatusNotFound},
	{model.ErrInvalidPatient, http.StatusBadRequest},
	{model.ErrInvalidDoctor, http.StatusBadRequest},
	{model.ErrInvalidUser, http.StatusBadRequest},
	{model.ErrInvalidRequest, http.StatusBadRequest},
	{model.ErrInvalidCredentials, http.StatusUnauthorized},
	{model.ErrForbidden, http.StatusForbidden},
	{model.ErrDuplicateAppointment, http.StatusConflict},
	{model.ErrDuplicateEmail, http.StatusConflict},
	{model.ErrUserServiceUnavailable, http.StatusServiceUnavailable},
}

func statusOf(err error) int {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError translates a service error into the error body. Unclassified
// errors are logged and answered with a generic message.
func writeError(c *gin.Context, log *slog.Logger, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.ErrorContext(c.Request.Context(), "http.internal_error",
			"method", c.Request.Method, "path", c.FullPath(), "error", err.Error())
		msg = "internal server error"
	}
	httperr.Abort(c, status, msg)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httperr.Abort(c, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.Abort(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
