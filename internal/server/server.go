// Package server provides the HTTP REST API for the job tracker.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/jobtrack/internal/config"
	"github.com/jonathan/jobtrack/internal/db"
	"github.com/jonathan/jobtrack/internal/server/middleware"
	"github.com/jonathan/jobtrack/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	database   *db.DB

	jobs        JobStore
	userService *UserService
	jwtService  *JWTService
	validator   *validator.Validate
	rateLimiter *ratelimit.Limiter

	requestTimeout time.Duration
}

// Config holds server configuration
type Config struct {
	Port int
	App  *config.AppConfig
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.App.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := &Server{
		database:       database,
		jobs:           database,
		userService:    NewUserService(database, passwordConfig),
		jwtService:     NewJWTService(jwtConfig),
		validator:      validator.New(),
		rateLimiter:    ratelimit.NewLimiter(ratelimit.LoadConfig()),
		requestTimeout: cfg.App.RequestTimeout,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.routes(cfg.App.DemoUserID)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Every /jobs route passes the auth guard first;
// mutating routes additionally pass the read-only guard.
func (s *Server) routes(demoUserID uuid.UUID) http.Handler {
	auth := middleware.Auth(s.jwtService.AsTokenValidator(), demoUserID)

	protect := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}
	protectMutation := func(h http.HandlerFunc) http.Handler {
		return auth(middleware.ReadOnly(h))
	}

	mux := http.NewServeMux()

	mux.Handle("POST /api/v1/auth/register", s.withAuthRateLimit(http.HandlerFunc(s.handleRegister)))
	mux.Handle("POST /api/v1/auth/login", s.withAuthRateLimit(http.HandlerFunc(s.handleLogin)))
	mux.Handle("PATCH /api/v1/auth/update-user", protectMutation(s.handleUpdateUser))

	mux.Handle("GET /api/v1/jobs", protect(s.handleListJobs))
	mux.Handle("POST /api/v1/jobs", protectMutation(s.handleCreateJob))
	mux.Handle("GET /api/v1/jobs/stats", protect(s.handleShowStats))
	mux.Handle("GET /api/v1/jobs/{id}", protect(s.handleGetJob))
	mux.Handle("PATCH /api/v1/jobs/{id}", protectMutation(s.handleUpdateJob))
	mux.Handle("DELETE /api/v1/jobs/{id}", protectMutation(s.handleDeleteJob))

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.database.Close()
	log.Println("Server stopped")
	return nil
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withAuthRateLimit limits register/login attempts per client IP.
func (s *Server) withAuthRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow(clientIP(r)) {
			s.errorResponse(w, http.StatusTooManyRequests, "too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client address, preferring X-Forwarded-For when the
// service runs behind a proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if i := strings.IndexByte(forwarded, ','); i >= 0 {
			return strings.TrimSpace(forwarded[:i])
		}
		return strings.TrimSpace(forwarded)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// requestContext derives a bounded context for a request's storage calls.
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.requestTimeout)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes the uniform error envelope
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"msg": message})
}

// serviceError translates a service or storage error into a response. Typed
// errors carry their own status; timeouts surface as such; anything else is
// logged and reported generically so internal detail never leaks.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		s.errorResponse(w, http.StatusGatewayTimeout, "request timed out")
		return
	}

	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		s.errorResponse(w, status, "something went wrong, try again later")
		return
	}

	s.errorResponse(w, status, err.Error())
}
