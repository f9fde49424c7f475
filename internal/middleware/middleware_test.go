package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-agenda/internal/auth"
	"medical-agenda/internal/httperr"
	"medical-agenda/internal/logger"
	"medical-agenda/internal/middleware"
)

func init() { gin.SetMode(gin.TestMode) }

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString("{}"))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	const secret = "k"
	r := gin.New()
	r.Use(middleware.Auth(secret))
	r.GET("/api/usuarios/:id", func(c *gin.Context) {
		claims := middleware.ClaimsFromContext(c.Request.Context())
		c.String(http.StatusOK, claims.Subject)
	})
	r.POST("/api/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodGet, "/api/usuarios/1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body httperr.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "no token", body.Message)
	assert.Equal(t, http.StatusUnauthorized, body.Status)

	w = do(r, http.MethodGet, "/api/usuarios/1", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tok, err := auth.MakeToken("citas", auth.ServiceRole, secret, time.Minute)
	require.NoError(t, err)
	w = do(r, http.MethodGet, "/api/usuarios/1", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "citas", w.Body.String())

	w = do(r, http.MethodPost, "/api/auth/login", "")
	assert.Equal(t, http.StatusOK, w.Code, "login stays open")
}

func TestRateLimit(t *testing.T) {
	rl := middleware.NewRateLimiter(0.001, 2)
	t.Cleanup(rl.Stop)
	r := gin.New()
	r.Use(middleware.RateLimit(rl))
	r.POST("/api/usuarios", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/api/usuarios", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/usuarios", "").Code)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/usuarios", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/usuarios", "").Code)

	// reads are not limited
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/usuarios", "").Code)
	}
	rl.Stop()
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.RequestIDFromContext(c.Request.Context()))
	})

	w := do(r, http.MethodGet, "/x", "")
	rid := w.Header().Get(middleware.RequestIDHeader)
	assert.NotEmpty(t, rid)
	assert.Equal(t, rid, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(middleware.RequestIDHeader, strings.Repeat("a", 500))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Body.String(), 36, "oversized ids are replaced")
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(logger.New(&buf, "test", "info", "json")))
	r.GET("/api/citas/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do(r, http.MethodGet, "/api/citas/7", "")
	assert.Contains(t, buf.String(), `"msg":"http.request"`)
	assert.Contains(t, buf.String(), "/api/citas/:id")
}

func TestAuth_OpenRoutesKeepValidClaims(t *testing.T) {
	const secret = "k"
	r := gin.New()
	r.Use(middleware.Auth(secret))
	r.POST("/api/usuarios", func(c *gin.Context) {
		role := ""
		if claims := middleware.ClaimsFromContext(c.Request.Context()); claims != nil {
			role = claims.Role
		}
		c.String(http.StatusCreated, role)
	})

	w := do(r, http.MethodPost, "/api/usuarios", "")
	assert.Equal(t, http.StatusCreated, w.Code, "registration needs no token")
	assert.Empty(t, w.Body.String())

	w = do(r, http.MethodPost, "/api/usuarios", "garbage")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Body.String())

	tok, err := auth.MakeToken("1", "ADMIN", secret, time.Minute)
	require.NoError(t, err)
	w = do(r, http.MethodPost, "/api/usuarios", tok)
	assert.Equal(t, "ADMIN", w.Body.String())
}

func TestRequireRole(t *testing.T) {
	const secret = "k"
	r := gin.New()
	r.Use(middleware.Auth(secret))
	r.PUT("/api/usuarios/:id", middleware.RequireRole(true, "ADMIN"), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.DELETE("/api/usuarios/:id", middleware.RequireRole(false, "ADMIN"), func(c *gin.Context) { c.Status(http.StatusOK) })

	patient, err := auth.MakeToken("7", "PACIENTE", secret, time.Minute)
	require.NoError(t, err)
	admin, err := auth.MakeToken("1", "ADMIN", secret, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPut, "/api/usuarios/7", patient).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPut, "/api/usuarios/8", patient).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodDelete, "/api/usuarios/7", patient).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/api/usuarios/8", admin).Code)

	// without Auth in the chain there are no claims to check
	open := gin.New()
	open.DELETE("/x/:id", middleware.RequireRole(false, "ADMIN"), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, do(open, http.MethodDelete, "/x/1", "").Code)
}

func TestHasRole(t *testing.T) {
	assert.False(t, middleware.HasRole(nil, "ADMIN"))
	assert.True(t, middleware.HasRole(&auth.Claims{Role: "SERVICE"}, "ADMIN", "SERVICE"))
	assert.False(t, middleware.HasRole(&auth.Claims{Role: "PACIENTE"}, "ADMIN", "SERVICE"))
}
