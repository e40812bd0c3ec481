package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/voyagehub/travel-bookings/internal/domain"
	"github.com/voyagehub/travel-bookings/internal/http/handlers"
	mw "github.com/voyagehub/travel-bookings/internal/http/middleware"
	"github.com/voyagehub/travel-bookings/internal/platform/auth"
	"github.com/voyagehub/travel-bookings/internal/repo/postgres"
	"github.com/voyagehub/travel-bookings/internal/service"
	"github.com/voyagehub/travel-bookings/pkg/config"
	"github.com/voyagehub/travel-bookings/pkg/database"
	"github.com/voyagehub/travel-bookings/pkg/events"
	"github.com/voyagehub/travel-bookings/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	if cfg.UsingDevSecret() {
		logger.Warn("JWT_SECRET is unset, using the development fallback key; do not run this in production")
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	var bus events.Publisher = events.NopPublisher{}
	if cfg.NATS.URL != "" {
		natsBus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			logger.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsBus.Close()
		bus = natsBus
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("invalid redis URL", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	userRepo := postgres.NewUserRepository(pool)
	packageRepo := postgres.NewPackageRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authService := service.NewAuthService(userRepo, tokens)
	packageService := service.NewPackageService(packageRepo)
	bookingService := service.NewBookingService(bookingRepo, packageRepo, bus)

	authHandler := handlers.NewAuthHandler(authService)
	packageHandler := handlers.NewPackageHandler(packageService)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	authn := mw.NewAuthenticator(tokens, userRepo)
	adminOnly := mw.RequireRoles(domain.RoleAdmin)
	limiter := mw.NewRateLimiter(redisClient, 20, time.Minute)

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(limiter.Middleware()).Post("/signup", authHandler.Signup)
			r.With(limiter.Middleware()).Post("/login", authHandler.Login)
			r.With(authn.Authenticate).Get("/profile", authHandler.Profile)
		})

		r.Route("/packages", func(r chi.Router) {
			r.Get("/", packageHandler.List)
			r.Get("/{id}", packageHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authn.Authenticate, adminOnly)
				r.Post("/", packageHandler.Create)
				r.Put("/{id}", packageHandler.Update)
				r.Delete("/{id}", packageHandler.Delete)
			})
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.Post("/", bookingHandler.Create)
			r.Get("/my-bookings", bookingHandler.MyBookings)
			r.Put("/{id}/cancel", bookingHandler.Cancel)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", bookingHandler.ListAll)
				r.Put("/{id}/status", bookingHandler.UpdateStatus)
			})
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down API server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("starting API server", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
