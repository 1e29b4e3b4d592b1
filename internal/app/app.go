package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/korima-app/korima-backend/internal/adapter/blobstore"
	"github.com/korima-app/korima-backend/internal/adapter/postgres"
	analyticsrepo "github.com/korima-app/korima-backend/internal/adapter/postgres/analytics"
	"github.com/korima-app/korima-backend/internal/adapter/postgres/comment"
	"github.com/korima-app/korima-backend/internal/adapter/postgres/ledger"
	notificationrepo "github.com/korima-app/korima-backend/internal/adapter/postgres/notification"
	"github.com/korima-app/korima-backend/internal/adapter/postgres/quota"
	"github.com/korima-app/korima-backend/internal/adapter/postgres/reaction"
	requestrepo "github.com/korima-app/korima-backend/internal/adapter/postgres/request"
	"github.com/korima-app/korima-backend/internal/adapter/postgres/response"
	"github.com/korima-app/korima-backend/internal/adapter/postgres/token"
	userrepo "github.com/korima-app/korima-backend/internal/adapter/postgres/user"
	"github.com/korima-app/korima-backend/internal/adapter/provider/crossref"
	"github.com/korima-app/korima-backend/internal/adapter/provider/unpaywall"
	"github.com/korima-app/korima-backend/internal/adapter/pubsub"
	authpkg "github.com/korima-app/korima-backend/internal/auth"
	"github.com/korima-app/korima-backend/internal/config"
	"github.com/korima-app/korima-backend/internal/metrics"
	"github.com/korima-app/korima-backend/internal/service/admin"
	"github.com/korima-app/korima-backend/internal/service/analytics"
	authsvc "github.com/korima-app/korima-backend/internal/service/auth"
	"github.com/korima-app/korima-backend/internal/service/metadata"
	"github.com/korima-app/korima-backend/internal/service/notification"
	"github.com/korima-app/korima-backend/internal/service/points"
	"github.com/korima-app/korima-backend/internal/service/profile"
	"github.com/korima-app/korima-backend/internal/service/profilecache"
	requestsvc "github.com/korima-app/korima-backend/internal/service/request"
	"github.com/korima-app/korima-backend/internal/service/social"
	"github.com/korima-app/korima-backend/internal/transport/middleware"
	"github.com/korima-app/korima-backend/internal/transport/realtime"
	"github.com/korima-app/korima-backend/internal/transport/rest"
)

// Run is the server entry point. It wires every dependency, serves HTTP until
// ctx is cancelled and then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	// 1. Database.
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Server.MigrateOnStart {
		if err := Migrate(ctx, pool, "up"); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	txm := postgres.NewTxManager(pool)

	// 2. Infrastructure.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	blobs, err := blobstore.New(cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("init blob store: %w", err)
	}

	broker, err := pubsub.New(ctx, cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("init pubsub: %w", err)
	}
	defer broker.Close() //nolint:errcheck
	feed := pubsub.NewNotifications(broker, cfg.Redis.ChannelPrefix)

	// 3. Repositories.
	userRepo := userrepo.New(pool)
	tokenRepo := token.New(pool)
	requestRepo := requestrepo.New(pool)
	responseRepo := response.New(pool)
	ledgerRepo := ledger.New(pool)
	quotaRepo := quota.New(pool)
	commentRepo := comment.New(pool)
	reactionRepo := reaction.New(pool)
	notificationRepo := notificationrepo.New(pool)
	analyticsRepo := analyticsrepo.New(pool)

	// 4. External providers.
	catalog := crossref.NewProvider(
		cfg.Metadata.CrossRefBaseURL, cfg.Metadata.ContactEmail,
		cfg.Metadata.SearchRows, cfg.Metadata.Timeout, logger,
	)
	openAccess := unpaywall.NewProvider(
		cfg.Metadata.UnpaywallBaseURL, cfg.Metadata.ContactEmail,
		cfg.Metadata.Timeout, logger,
	)

	// 5. Services.
	economy := cfg.Economy.Domain()
	jwtMgr := authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	profiles := profilecache.New(userRepo)

	authService := authsvc.NewService(logger, userRepo, tokenRepo, jwtMgr, cfg.Auth, economy.InitialBalance)
	notificationService := notification.NewService(logger, notificationRepo, feed)
	pointsService := points.NewService(logger, userRepo, ledgerRepo, quotaRepo, profiles, txm, m, economy)
	profileService := profile.NewService(logger, userRepo, profiles)
	requestService := requestsvc.NewService(
		logger, requestRepo, responseRepo, userRepo, quotaRepo, ledgerRepo, reactionRepo,
		blobs, jwtMgr, notificationService, profiles, txm, m, economy,
		requestsvc.FileConfig{
			MaxUploadBytes: cfg.Storage.MaxUploadBytes,
			SignedURLTTL:   cfg.Storage.SignedURLTTL,
			PublicBaseURL:  cfg.Storage.PublicBaseURL,
		},
	)
	socialService := social.NewService(logger, requestRepo, commentRepo, reactionRepo, requestService, notificationService)
	metadataService := metadata.NewService(logger, catalog, openAccess, m)
	adminService := admin.NewService(logger, userRepo, analyticsRepo, profiles)
	analyticsService := analytics.NewService(logger, analyticsRepo)

	// 6. Transport.
	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := rest.NewRouter(rest.Handlers{
		Health: rest.NewHealthHandler(BuildVersion(),
			rest.Check{Name: "database", Target: pool},
			rest.Check{Name: "pubsub", Target: broker},
		),
		Auth:          rest.NewAuthHandler(authService, logger),
		Profile:       rest.NewProfileHandler(profileService, logger),
		Points:        rest.NewPointsHandler(pointsService, logger),
		Request:       rest.NewRequestHandler(requestService, cfg.Storage.MaxUploadBytes, logger),
		Social:        rest.NewSocialHandler(socialService, logger),
		Notification:  rest.NewNotificationHandler(notificationService, logger),
		Metadata:      rest.NewMetadataHandler(metadataService, logger),
		Admin:         rest.NewAdminHandler(adminService, analyticsService, logger),
		Realtime:      realtime.NewHandler(logger, authService, feed, splitList(cfg.CORS.AllowedOrigins)),
		MetricsHandle: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, rest.RouterDeps{
		Logger:   logger,
		Tokens:   authService,
		Profiles: profiles,
		Metrics:  m,
		Limiter:  limiter,
		CORS:     cfg.CORS,
		Limits:   cfg.RateLimit,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// serve runs srv until ctx is done, then drains in-flight requests for at
// most timeout.
func serve(ctx context.Context, srv *http.Server, timeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", timeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
