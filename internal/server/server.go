package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amigo-fit/amigo-server/internal/database"
	"github.com/amigo-fit/amigo-server/internal/gacha"
	"github.com/amigo-fit/amigo-server/internal/handler"
	"github.com/amigo-fit/amigo-server/internal/inventory"
	"github.com/amigo-fit/amigo-server/internal/leaderboard"
	"github.com/amigo-fit/amigo-server/internal/logger"
	"github.com/amigo-fit/amigo-server/internal/metrics"
	"github.com/amigo-fit/amigo-server/internal/purchase"
	"github.com/amigo-fit/amigo-server/internal/social"
	"github.com/amigo-fit/amigo-server/internal/steps"
	"github.com/amigo-fit/amigo-server/internal/user"
)

// Services bundles the application services the router exposes.
type Services struct {
	User        user.Service
	Purchase    purchase.Service
	Steps       steps.Service
	Social      social.Service
	Leaderboard leaderboard.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
	services   Services
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, engine *gacha.Engine, stores inventory.Provider, services Services) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterUser(services.User))
			r.Get("/profile", handler.HandleGetProfile(services.User))
			r.Post("/username", handler.HandleSetUsername(services.User))
			r.Get("/username/available", handler.HandleUsernameAvailable(services.User))
			r.Post("/pet", handler.HandleSetPetName(services.User))
			r.Post("/equipped", handler.HandleSetEquippedItems(services.User))
		})

		r.Route("/gacha", func(r chi.Router) {
			r.Post("/pull", handler.HandlePull(services.Purchase))
			r.Post("/pull/batch", handler.HandlePullBatch(services.Purchase))
			r.Get("/catalog", handler.HandleGetCatalog(engine))
		})

		r.Post("/shop/buy", handler.HandleBuyItem(services.Purchase))

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", handler.HandleGetInventory(stores))
			r.Post("/clear", handler.HandleClearInventory(stores))
		})

		r.Post("/steps/sync", handler.HandleSyncSteps(services.Steps))
		r.Get("/leaderboard", handler.HandleGetLeaderboard(services.Leaderboard))

		r.Route("/social", func(r chi.Router) {
			r.Post("/request", handler.HandleSendFriendRequest(services.Social))
			r.Post("/request/accept", handler.HandleAcceptFriendRequest(services.Social))
			r.Post("/request/decline", handler.HandleDeclineFriendRequest(services.Social))
			r.Get("/requests", handler.HandleListFriendRequests(services.Social))
			r.Get("/friends", handler.HandleListFriends(services.Social))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:   dbPool,
		services: services,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health probes and the metrics scraper hit every few seconds;
		// logging them drowns out real traffic.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
