// Package server wires the HTTP API: routing, authentication, rate
// limiting, request logging and metrics.
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

	"github.com/ilerise/farmsim/internal/database"
	"github.com/ilerise/farmsim/internal/handler"
	"github.com/ilerise/farmsim/internal/logger"
	"github.com/ilerise/farmsim/internal/metrics"
)

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
	farm       handler.FarmService
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, farmService handler.FarmService) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
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
		r.Route("/farm", func(r chi.Router) {
			r.Get("/state", handler.HandleFarmState(farmService))
			r.Post("/skip-day", handler.HandleSkipDay(farmService))
			r.Post("/pause", handler.HandlePause(farmService))
			r.Post("/speed", handler.HandleSetSpeed(farmService))
			r.Post("/save", handler.HandleSave(farmService))
			r.Post("/load", handler.HandleLoad(farmService))

			r.Route("/plots", func(r chi.Router) {
				r.Get("/{plotID}/actions", handler.HandleAvailableActions(farmService))
				r.Post("/unlock", handler.HandleUnlockPlot(farmService))
				r.Post("/plant", handler.HandlePlantCrop(farmService))
				r.Post("/harvest", handler.HandleHarvestPlot(farmService))
			})

			r.Post("/actions/execute", handler.HandleExecuteAction(farmService))
		})

		r.Route("/market", func(r chi.Router) {
			r.Get("/trends", handler.HandleMarketTrends(farmService))
			r.Get("/history", handler.HandleMarketHistory(farmService))
			r.Post("/buy", handler.HandleMarketBuy(farmService))
			r.Post("/sell", handler.HandleMarketSell(farmService))
		})

		r.Route("/livestock", func(r chi.Router) {
			r.Get("/", handler.HandleLivestockState(farmService))
			r.Post("/unlock", handler.HandleUnlockBuilding(farmService))
			r.Post("/upgrade", handler.HandleUpgradeBuilding(farmService))
			r.Post("/buy", handler.HandleBuyAnimals(farmService))
			r.Post("/feed", handler.HandleFeedAnimals(farmService))
			r.Post("/milk", handler.HandleCollectMilk(farmService))

			r.Route("/compost", func(r chi.Router) {
				r.Post("/unlock", handler.HandleUnlockCompostPit(farmService))
				r.Post("/start", handler.HandleStartComposting(farmService))
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
		farm:   farmService,
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

		// Skip logging for health check endpoints and metrics
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
