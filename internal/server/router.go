// Package server mounts the HR API on gin and runs the HTTP(S) listener.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/celerix-dev/celerix-hrms/internal/api"
	"github.com/celerix-dev/celerix-hrms/pkg/schema"
)

// DefaultRoute is where unknown paths are redirected.
const DefaultRoute = "/dashboard"

type Router struct {
	engine *gin.Engine
	cert   *tls.Certificate
	log    zerolog.Logger

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
}

// NewRouter builds the route table around h.
func NewRouter(h *api.Handler, log zerolog.Logger) *Router {
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(log), api.CORS())

	r.GET("/health", h.Health)
	r.POST("/login", h.Login)

	authed := r.Group("/", api.RequireAuth(h.Sessions))
	{
		authed.POST("/logout", h.Logout)
		authed.GET("/session", h.Session)
		authed.GET("/dashboard", h.Dashboard)
		authed.GET("/employees", h.ListEmployees)
		authed.GET("/employees/:id", h.GetEmployee)
		authed.GET("/attendance", h.ListAttendance)
	}

	editors := r.Group("/", api.RequireAuth(h.Sessions), api.RequireRole(schema.RoleAdmin, schema.RoleManager))
	{
		editors.POST("/employees", h.CreateEmployee)
		editors.PATCH("/employees/:id", h.UpdateEmployee)
		editors.DELETE("/employees/:id", h.DeleteEmployee)
		editors.POST("/attendance", h.RecordAttendance)
	}

	r.GET("/snapshot", api.RequireAuth(h.Sessions), api.RequireRole(schema.RoleAdmin), h.Snapshot)

	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, DefaultRoute)
	})

	return &Router{engine: r, log: log.With().Str("component", "server").Logger()}
}

// Handler exposes the gin engine, mainly for tests.
func (r *Router) Handler() http.Handler {
	return r.engine
}

// SetCertificate enables TLS for Listen.
func (r *Router) SetCertificate(cert tls.Certificate) {
	r.cert = &cert
}

// Listen serves until Shutdown is called.
func (r *Router) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           r.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       5 * time.Minute,
	}
	if r.cert != nil {
		srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{*r.cert}}
		ln = tls.NewListener(ln, srv.TLSConfig)
	}

	r.mu.Lock()
	r.srv = srv
	r.listener = ln
	r.mu.Unlock()

	r.log.Info().Str("addr", ln.Addr().String()).Bool("tls", r.cert != nil).Msg("listening")
	err = srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Addr returns the bound address once Listen has started, or nil.
func (r *Router) Addr() net.Addr {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listener == nil {
		return nil
	}
	return r.listener.Addr()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (r *Router) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	srv := r.srv
	r.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
