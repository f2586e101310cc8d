package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talenthub/internal/app"
	"talenthub/internal/config"
	"talenthub/internal/database"
	apphttp "talenthub/internal/http"
	"talenthub/internal/http/handlers"
	httpmw "talenthub/internal/http/middleware"
	"talenthub/internal/observability"
	"talenthub/internal/realtime"
	"talenthub/internal/repository/postgres"
	"talenthub/internal/security"
	"talenthub/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	defer logger.Sync()

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	redisClient := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if redisClient != nil {
		defer redisClient.Close()
	}

	principalRepo := postgres.NewPrincipalRepository(db)
	candidateRepo := postgres.NewCandidateProfileRepository(db)
	employerRepo := postgres.NewEmployerProfileRepository(db)
	recruiterRepo := postgres.NewRecruiterProfileRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	blobStore := storage.NewHTTPStore(cfg.StorageEndpoint, cfg.StorageBucket, cfg.StoragePublicURL)

	hub := realtime.NewHub(logger)
	var feed app.FeedPublisher = hub
	if redisFeed := realtime.NewRedisFeed(redisClient); redisFeed != nil {
		feed = redisFeed
		go redisFeed.Pump(context.Background(), hub)
	}

	authz := app.NewAuthorizer(candidateRepo, employerRepo, recruiterRepo)
	notifier := app.NewNotifier(notificationRepo, candidateRepo, employerRepo, feed, logger)

	authService := app.NewAuthService(principalRepo, jwtProvider, logger, cfg.AccessTokenTTL)
	registryService := app.NewRegistryService(principalRepo, candidateRepo, employerRepo, recruiterRepo, logger)
	profileService := app.NewProfileService(candidateRepo, employerRepo, recruiterRepo, blobStore, logger)
	jobService := app.NewJobService(jobRepo, authz, notifier, logger)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, authz, notifier, logger)
	statsService := app.NewStatsService(statsRepo, jobRepo, authz)
	notificationService := app.NewNotificationService(notificationRepo)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if redisClient != nil {
		limiter = httpmw.NewRedisLimiter(redisClient)
	}

	authHandler := handlers.NewAuthHandler(authService, limiter)
	profileHandler := handlers.NewProfileHandler(registryService, profileService, authz)
	jobHandler := handlers.NewJobHandler(jobService, authz)
	applicationHandler := handlers.NewApplicationHandler(applicationService, authz, limiter)
	statsHandler := handlers.NewStatsHandler(statsService, jobService, authz)
	notificationHandler := handlers.NewNotificationHandler(notificationService, authz)
	realtimeHandler := handlers.NewRealtimeHandler(hub)
	middleware := httpmw.NewAuthMiddleware(jwtProvider)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:         authHandler,
		ProfileHandler:      profileHandler,
		JobHandler:          jobHandler,
		ApplicationHandler:  applicationHandler,
		StatsHandler:        statsHandler,
		NotificationHandler: notificationHandler,
		RealtimeHandler:     realtimeHandler,
		AuthMiddleware:      middleware,
		Logger:              logger,
		RequestTimeout:      cfg.RequestTimeout,
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
