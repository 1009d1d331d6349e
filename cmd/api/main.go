package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/josecleyvison-eng/jau-emprega/internal/app"
	"github.com/josecleyvison-eng/jau-emprega/internal/config"
	"github.com/josecleyvison-eng/jau-emprega/internal/database"
	"github.com/josecleyvison-eng/jau-emprega/internal/domain/banner"
	"github.com/josecleyvison-eng/jau-emprega/internal/domain/listing"
	"github.com/josecleyvison-eng/jau-emprega/internal/domain/payment"
	apphttp "github.com/josecleyvison-eng/jau-emprega/internal/http"
	"github.com/josecleyvison-eng/jau-emprega/internal/http/handlers"
	"github.com/josecleyvison-eng/jau-emprega/internal/http/metrics"
	httpmw "github.com/josecleyvison-eng/jau-emprega/internal/http/middleware"
	"github.com/josecleyvison-eng/jau-emprega/internal/observability"
	"github.com/josecleyvison-eng/jau-emprega/internal/payment/mercadopago"
	"github.com/josecleyvison-eng/jau-emprega/internal/repository/postgres"
	"github.com/josecleyvison-eng/jau-emprega/internal/repository/sqlite"
	"github.com/josecleyvison-eng/jau-emprega/internal/security"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := observability.NewLogger()

	var listingRepo listing.Repository
	var bannerRepo banner.Repository
	switch cfg.DBDriver {
	case "sqlite":
		db := database.NewSQLite(cfg.SQLitePath)
		defer db.Close()
		var err error
		if listingRepo, err = sqlite.NewListingRepository(db); err != nil {
			log.Fatalf("failed to initialize listing store: %v", err)
		}
		if bannerRepo, err = sqlite.NewBannerRepository(db); err != nil {
			log.Fatalf("failed to initialize banner store: %v", err)
		}
	default:
		db := database.NewPostgres(database.PostgresConfig{
			DSN:             cfg.PostgresDSN,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxIdle:     cfg.DBConnMaxIdle,
			ConnMaxLifetime: cfg.DBConnMaxLife,
		})
		defer db.Close()
		listingRepo = postgres.NewListingRepository(db)
		bannerRepo = postgres.NewBannerRepository(db)
	}

	var gateway payment.Gateway
	if cfg.MPAccessToken != "" {
		gateway = mercadopago.NewClient(cfg.MPBaseURL, cfg.MPAccessToken, &http.Client{Timeout: 10 * time.Second})
	}

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	listingService := app.NewListingService(listingRepo, gateway, logger, app.ListingConfig{
		FeeCents:       cfg.ListingFeeCents,
		CallbackURL:    cfg.WebhookCallbackURL,
		AllowRepublish: cfg.AllowRepublish,
	})
	authService := app.NewAuthService(cfg.AdminPasswordHash, jwtProvider, cfg.AdminTokenTTL, logger)
	bannerService := app.NewBannerService(bannerRepo, logger)

	var limiter httpmw.Limiter
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = httpmw.NewRedisLimiter(client, "jau-emprega")
	} else {
		limiter = httpmw.NewRateLimiter()
	}

	collector := metrics.NewCollector()
	router := apphttp.NewRouter(apphttp.RouterDependencies{
		ListingHandler: handlers.NewListingHandler(listingService),
		AuthHandler:    handlers.NewAuthHandler(authService, limiter),
		WebhookHandler: handlers.NewWebhookHandler(listingService, cfg.MPWebhookSecret, logger),
		BannerHandler:  handlers.NewBannerHandler(bannerService),
		AuthMiddleware: httpmw.NewAuthMiddleware(jwtProvider),
		Limiter:        limiter,
		Metrics:        collector,
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
