package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/PranamRaj/football-connect/config"
	"github.com/PranamRaj/football-connect/internal/db"
	"github.com/PranamRaj/football-connect/internal/events"
	"github.com/PranamRaj/football-connect/internal/handlers"
	"github.com/PranamRaj/football-connect/internal/mq"
	"github.com/PranamRaj/football-connect/internal/services"
	"github.com/PranamRaj/football-connect/internal/storage"
	"github.com/PranamRaj/football-connect/internal/store"
	"github.com/PranamRaj/football-connect/internal/token"
	"go.uber.org/zap"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	broker     *mq.MQ
	logger     *zap.Logger
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		_ = dbConn.Close()
		return nil, errors.New("JWT_SECRET is required")
	}
	issuer := token.NewIssuer(jwtSecret)

	blobs, err := newBlobStorage(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	if err := blobs.EnsureBucket(ctx); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ensure bucket: %w", err)
	}

	broker, err := newBroker(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	publisher := events.NewPublisher(broker, logger)

	accountRepo := store.NewAccountRepository(dbConn)
	playerRepo := store.NewPlayerRepository(dbConn)
	clubRepo := store.NewClubRepository(dbConn)
	matchRepo := store.NewMatchRepository(dbConn)
	socialRepo := store.NewSocialRepository(dbConn)

	authService := services.NewAuthService(accountRepo, playerRepo, clubRepo, blobs, issuer, publisher, logger)
	profileService := services.NewProfileService(playerRepo, clubRepo, matchRepo)
	playerService := services.NewPlayerService(playerRepo, clubRepo, publisher)
	matchService := services.NewMatchService(matchRepo)
	socialService := services.NewSocialService(socialRepo, blobs, publisher)

	authMiddleware := handlers.RequireAuth(issuer)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, authService, logger)
	})
	router.Route("/me", func(r chi.Router) {
		handlers.MeRouter(r, profileService, authMiddleware, logger)
	})
	router.Route("/players", func(r chi.Router) {
		handlers.PlayerRouter(r, profileService, playerService, authMiddleware, logger)
	})
	router.Route("/clubs", func(r chi.Router) {
		handlers.ClubRouter(r, profileService, playerService, authMiddleware, logger)
	})
	router.Route("/matches", func(r chi.Router) {
		handlers.MatchRouter(r, matchService, authMiddleware, logger)
	})
	router.Route("/social", func(r chi.Router) {
		handlers.SocialRouter(r, socialService, authMiddleware, logger)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		broker:     broker,
		logger:     logger,
	}, nil
}

func newBlobStorage(ctx context.Context, cfg config.Config) (*storage.Storage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Blob.Backend)) {
	case "", "minio":
		client, err := storage.NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("failed to init minio: %w", err)
		}
		return storage.NewStorage(client), nil
	case "gcs":
		client, err := storage.NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, fmt.Errorf("failed to init gcs: %w", err)
		}
		return storage.NewStorage(client), nil
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.Blob.Backend)
	}
}

// newBroker returns nil when no events backend is configured; the
// publisher treats a nil broker as a no-op sink.
func newBroker(ctx context.Context, cfg config.Config) (*mq.MQ, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Events.Backend)) {
	case "":
		return nil, nil
	case "rabbitmq":
		client, err := mq.NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, fmt.Errorf("failed to init rabbitmq: %w", err)
		}
		return mq.New(client), nil
	case "pubsub":
		client, err := mq.NewPubSubClient(ctx, cfg.PubSub)
		if err != nil {
			return nil, fmt.Errorf("failed to init pubsub: %w", err)
		}
		return mq.New(client), nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Events.Backend)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.broker != nil {
		_ = s.broker.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
