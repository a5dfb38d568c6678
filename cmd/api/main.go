package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/auth"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/config"
	apphttp "github.com/FathomMedia/tja-portal-1229-sub000/internal/http"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/handlers"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/mailer"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/metrics"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/admins"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/adventures"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/bookings"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/checkout"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/consultations"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/coupons"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/customers"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/email"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/levels"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/payments"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/storage"
)

func main() {
	// .env is optional; prod supplies real env vars
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.FromEnv(ctx)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	logger.Info("storage ready", "driver", store.Driver)

	smtp := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	outbox := email.NewOutboxService(db, smtp, cfg.MailFrom, logger)
	go outbox.Run(ctx, 15*time.Second)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	var provider payments.Provider
	if cfg.PayAPIKey != "" {
		provider = payments.NewHostedProvider(cfg.PayBaseURL, cfg.PayAPIKey)
	} else {
		logger.Warn("PAY_API_KEY not set, using mock payment provider")
		provider = &payments.MockProvider{BaseURL: cfg.BaseURL}
	}
	sessions := payments.NewSessionStore(rdb)

	customersRepo := customers.NewRepo(db)
	customersSvc := customers.NewService(db, rdb, logger)
	adminsRepo := admins.NewRepo(db)
	adminsSvc := admins.NewService(adminsRepo, outbox, cfg.BaseURL, logger)
	levelsRepo := levels.NewRepo(db)
	couponsRepo := coupons.NewRepo(db)
	couponsSvc := coupons.NewService(couponsRepo)
	adventuresRepo := adventures.NewRepo(db)
	consultationsRepo := consultations.NewRepo(db)
	bookingsRepo := bookings.NewRepo(db)
	bookingsSvc := bookings.NewAdminService(db)
	checkoutSvc := checkout.NewService(db, adventuresRepo, consultationsRepo, couponsSvc, customersRepo, provider, sessions, outbox, cfg.BaseURL)
	checkoutSvc.SetLogger(logger)
	webhookSvc := payments.NewWebhookService(db)
	webhookSvc.SetLogger(logger)

	r := apphttp.NewRouter(apphttp.Deps{
		Logger:  logger,
		Tokens:  tokens,
		Redis:   rdb,
		Metrics: metrics.New(),

		Auth: &handlers.AuthHandler{
			Admins:    adminsSvc,
			Customers: customersRepo,
			Tokens:    tokens,
			CookieTTL: int(cfg.TokenTTL.Seconds()),
		},
		Customers:     &handlers.CustomersHandler{Repo: customersRepo, Svc: customersSvc, Coupons: couponsRepo},
		Admins:        &handlers.AdminsHandler{Repo: adminsRepo, Svc: adminsSvc},
		Levels:        &handlers.LevelsHandler{Repo: levelsRepo},
		Coupons:       &handlers.CouponsHandler{Repo: couponsRepo, Svc: couponsSvc},
		Adventures:    &handlers.AdventuresHandler{Repo: adventuresRepo, Storage: store.Storage},
		Consultations: &handlers.ConsultationsHandler{Repo: consultationsRepo},
		Bookings:      &handlers.BookingsHandler{Repo: bookingsRepo, Svc: bookingsSvc},
		Checkout:      &handlers.CheckoutHandler{Svc: checkoutSvc},
		Webhooks: &handlers.WebhookHandler{
			Logger:       logger,
			ProviderName: provider.Name(),
			Secret:       cfg.PayAPIKey,
			WebhookSvc:   webhookSvc,
		},
	})

	logger.Info("listening", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
