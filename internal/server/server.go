package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/admission-advisor/internal/catalog"
	"github.com/jonathan/admission-advisor/internal/config"
	"github.com/jonathan/admission-advisor/internal/pipeline"
	"github.com/jonathan/admission-advisor/internal/server/middleware"
	"github.com/jonathan/admission-advisor/internal/server/ratelimit"
	"github.com/jonathan/admission-advisor/internal/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Banner is returned by GET /.
const Banner = "Student Admission Suggester API is running. POST to /suggest-admission to get results."

// Suggester produces ranked suggestions. Implemented by *pipeline.Service.
type Suggester interface {
	Suggest(ctx context.Context, profile *types.StudentProfile) []types.Suggestion
	Stream(ctx context.Context, profile *types.StudentProfile, onProgress pipeline.ProgressCallback) []types.Suggestion
}

// Counselor answers free-text chat messages. Implemented by *chat.Counselor.
type Counselor interface {
	Reply(ctx context.Context, message string) string
}

// ApplicationService stores applications. Implemented by *applications.Service.
type ApplicationService interface {
	Submit(ctx context.Context, req *types.ApplicationRequest) (*types.SubmitResponse, error)
	List(ctx context.Context) ([]types.Application, error)
}

// CatalogReloader swaps in a fresh catalog. Implemented by *catalog.Store.
type CatalogReloader interface {
	Reload(ctx context.Context) (*catalog.Catalog, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	handler      http.Handler
	suggester    Suggester
	counselor    Counselor
	applications ApplicationService
	catalog      CatalogReloader
	rateLimiter  *ratelimit.Limiter
	authHandler  *AuthHandler
}

// Config holds server configuration and dependencies. Counselor, Applications
// and Catalog are optional; their routes answer 503 when unset. Dashboard
// routes are registered only when JWT is set.
type Config struct {
	Port         int
	Suggester    Suggester
	Counselor    Counselor
	Applications ApplicationService
	Catalog      CatalogReloader

	JWT       *config.JWTConfig
	Dashboard *config.DashboardConfig
	Passwords *config.PasswordConfig
	RateLimit *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Suggester == nil {
		return nil, fmt.Errorf("server requires a suggester")
	}

	s := &Server{
		suggester:    cfg.Suggester,
		counselor:    cfg.Counselor,
		applications: cfg.Applications,
		catalog:      cfg.Catalog,
		rateLimiter:  ratelimit.NewLimiter(cfg.RateLimit),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /suggest-admission", s.handleSuggest)
	mux.HandleFunc("POST /suggest-admission/stream", s.handleSuggestStream)
	mux.HandleFunc("POST /ai-chat", s.handleChat)
	mux.HandleFunc("POST /submit-application", s.handleSubmitApplication)

	if cfg.JWT != nil {
		passwords := cfg.Passwords
		if passwords == nil {
			var err error
			if passwords, err = config.NewPasswordConfig(); err != nil {
				return nil, fmt.Errorf("failed to create password config: %w", err)
			}
		}
		jwtService := NewJWTService(cfg.JWT)
		s.authHandler = NewAuthHandler(cfg.Dashboard, passwords, jwtService)

		protected := middleware.AuthMiddleware(jwtService.AsTokenValidator())
		mux.HandleFunc("POST /login", s.authHandler.Login)
		mux.Handle("GET /applications", protected(http.HandlerFunc(s.handleListApplications)))
		mux.Handle("POST /catalog/reload", protected(http.HandlerFunc(s.handleCatalogReload)))
	} else {
		log.Printf("[server] JWT_SECRET not set, dashboard routes disabled")
	}

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // streaming waits on AI explanations
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
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

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// writeError writes an error JSON response. The "detail" key matches what
// the frontend reads from failed requests.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"detail": message})
}

// extractClientID uses the IP from RemoteAddr. X-Forwarded-For is ignored
// since it is client controlled.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"detail":    "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d", info.Limit, info.Remaining)
	writeJSON(w, http.StatusTooManyRequests, response)
}
