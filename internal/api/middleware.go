// Package api exposes the HR service as gin handlers and middleware.
package api

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/celerix-dev/celerix-hrms/pkg/schema"
)

const sessionKey = "hrms.session"

// SessionResolver turns a bearer token into the session it belongs to.
type SessionResolver interface {
	Authenticate(token string) (schema.Session, error)
}

// RequireAuth rejects requests without the current session's bearer token.
func RequireAuth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "format: Bearer <token>"})
			return
		}

		sess, err := sessions.Authenticate(strings.TrimSpace(token))
		if err != nil {
			respondError(c, err)
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...schema.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		if !ok {
			respondError(c, schema.ErrUnauthorized)
			return
		}
		if !slices.Contains(roles, sess.User.Role) {
			respondError(c, schema.ErrForbidden)
			return
		}
		c.Next()
	}
}

// SessionFrom returns the session stored by RequireAuth.
func SessionFrom(c *gin.Context) (schema.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return schema.Session{}, false
	}
	sess, ok := v.(schema.Session)
	return sess, ok
}

// CORS allows the browser UI to call the API from another origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
