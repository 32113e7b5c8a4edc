package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	temporalclient "go.temporal.io/sdk/client"

	"github.com/halvard/teamstore/internal/api/handler"
	mw "github.com/halvard/teamstore/internal/api/middleware"
	"github.com/halvard/teamstore/internal/config"
	"github.com/halvard/teamstore/internal/core"
	"github.com/halvard/teamstore/internal/push"
)

type Server struct {
	router         chi.Router
	logger         zerolog.Logger
	services       *core.Services
	pool           *pgxpool.Pool
	temporalClient temporalclient.Client
	push           *push.Redis
	cfg            *config.Config
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, temporalClient temporalclient.Client, services *core.Services, pushChannel *push.Redis, cfg *config.Config) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		logger:         logger,
		services:       services,
		pool:           pool,
		temporalClient: temporalClient,
		push:           pushChannel,
		cfg:            cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(s.pool))

		// Teams
		team := handler.NewTeam(s.services.Team)
		r.With(mw.RequireScope("teams", "write")).Post("/teams", team.Create)
		r.With(mw.RequireScope("teams", "read")).Get("/teams", team.List)
		r.With(mw.RequireScope("teams", "read")).Get("/teams/{teamID}", team.Get)

		// Object store credentials
		credential := handler.NewCredential(s.services.Credential)
		r.With(mw.RequireScope("credentials", "write")).Put("/teams/{teamID}/credentials", credential.Put)
		r.With(mw.RequireScope("credentials", "write")).Delete("/teams/{teamID}/credentials", credential.Delete)

		// Buckets
		bucket := handler.NewBucket(s.services.Bucket)
		r.With(mw.RequireScope("buckets", "read")).Get("/teams/{teamID}/buckets", bucket.List)
		r.With(mw.RequireScope("buckets", "write")).Delete("/teams/{teamID}/buckets/{bucketName}", bucket.Delete)

		// Bucket requests
		bucketRequest := handler.NewBucketRequest(s.services.Request)
		r.With(mw.RequireScope("bucket-requests", "write")).Post("/teams/{teamID}/bucket-requests", bucketRequest.Submit)
		r.With(mw.RequireScope("bucket-requests", "read")).Get("/teams/{teamID}/bucket-requests", bucketRequest.List)
		r.With(mw.RequireScope("bucket-requests", "approve")).Post("/bucket-requests/{requestID}/decision", bucketRequest.Decide)

		// Notifications
		notification := handler.NewNotification(s.services.Notification, s.push, s.logger)
		r.With(mw.RequireScope("notifications", "read")).Get("/notifications", notification.List)
		r.With(mw.RequireScope("notifications", "read")).Get("/notifications/stream", notification.Stream)

		// API keys
		apiKey := handler.NewAPIKey(s.services.APIKey)
		r.With(mw.RequireScope("api-keys", "write")).Post("/api-keys", apiKey.Create)
		r.With(mw.RequireScope("api-keys", "write")).Delete("/api-keys/{id}", apiKey.Revoke)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	if _, err := s.temporalClient.CheckHealth(ctx, &temporalclient.CheckHealthRequest{}); err != nil {
		checks["temporal"] = err.Error()
		healthy = false
	} else {
		checks["temporal"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
