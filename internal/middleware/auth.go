package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medical-agenda/internal/auth"
	"medical-agenda/internal/httperr"
)

const claimsKey ctxKey = "claims"

// skip auth for these
var open = map[string]bool{
	"POST /api/auth/login": true,
	"POST /api/usuarios":   true,
}

// Auth requires a valid bearer token on every route except the open ones.
// On open routes a valid token is still attached, a bad one is ignored.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// token from Authorization: Bearer <jwt>
		raw := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimPrefix(h, "Bearer ")
		}

		if open[c.Request.Method+" "+c.FullPath()] {
			if raw != "" {
				if claims, err := auth.ParseToken(raw, secret); err == nil {
					c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), claimsKey, claims))
				}
			}
			c.Next()
			return
		}

		if raw == "" {
			httperr.Abort(c, http.StatusUnauthorized, "no token")
			return
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "bad token")
			return
		}

		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), claimsKey, claims))
		c.Next()
	}
}

// ClaimsFromContext returns the verified token claims, or nil when the
// request was not authenticated.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// HasRole reports whether claims carry one of roles.
func HasRole(claims *auth.Claims, roles ...string) bool {
	if claims == nil {
		return false
	}
	for _, r := range roles {
		if claims.Role == r {
			return true
		}
	}
	return false
}

// RequireRole lets a request through when its token carries one of roles,
// or, with allowSelf, when the token subject equals the :id path param.
// It must run after Auth; a request without claims (auth disabled) passes.
func RequireRole(allowSelf bool, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c.Request.Context())
		if claims == nil || HasRole(claims, roles...) {
			c.Next()
			return
		}
		if allowSelf && claims.Subject != "" && claims.Subject == c.Param("id") {
			c.Next()
			return
		}
		httperr.Abort(c, http.StatusForbidden, "forbidden")
	}
}
