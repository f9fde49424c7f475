// Package userclient resolves user types by calling the usuarios service
// over HTTP.
package userclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"medical-agenda/internal/auth"
	"medical-agenda/internal/middleware"
	"medical-agenda/internal/model"
	"medical-agenda/internal/service"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	// JWTSecret, when set, is used to sign a short-lived service token
	// for every call.
	JWTSecret string
	Caller    string
}

type Client struct {
	client  *http.Client
	baseURL string
	secret  string
	caller  string
	log     *slog.Logger
}

var _ service.RoleResolver = (*Client)(nil)

func New(cfg Config, log *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		secret:  cfg.JWTSecret,
		caller:  cfg.Caller,
		log:     log,
	}
}

type userResponse struct {
	Tipo *string `json:"tipo"`
}

// ResolveRole fetches GET /api/usuarios/{id} and reads its tipo field.
// A 404 or a body without tipo is model.UserTypeUnknown; every other
// failure is model.ErrUserServiceUnavailable.
func (c *Client) ResolveRole(ctx context.Context, userID int64) (model.UserType, error) {
	url := fmt.Sprintf("%s/api/usuarios/%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.ErrorContext(ctx, "userclient.request.build_failed", "userId", userID, "error", err.Error())
		return "", model.ErrUserServiceUnavailable
	}
	req.Header.Set("Accept", "application/json")
	if rid := middleware.RequestIDFromContext(ctx); rid != "" {
		req.Header.Set(middleware.RequestIDHeader, rid)
	}
	if c.secret != "" {
		tok, err := auth.MakeToken(c.caller, auth.ServiceRole, c.secret, time.Minute)
		if err != nil {
			c.log.ErrorContext(ctx, "userclient.token.sign_failed", "error", err.Error())
			return "", model.ErrUserServiceUnavailable
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "userclient.fetch_failed", "userId", userID, "error", err.Error())
		return "", model.ErrUserServiceUnavailable
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		c.log.DebugContext(ctx, "userclient.user_not_found", "userId", userID)
		return model.UserTypeUnknown, nil
	default:
		c.log.ErrorContext(ctx, "userclient.fetch_failed", "userId", userID, "status", resp.StatusCode)
		return "", model.ErrUserServiceUnavailable
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.ErrorContext(ctx, "userclient.decode_failed", "userId", userID, "error", err.Error())
		return "", model.ErrUserServiceUnavailable
	}
	if body.Tipo == nil {
		return model.UserTypeUnknown, nil
	}
	return model.ParseUserType(*body.Tipo), nil
}
