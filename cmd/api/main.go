package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"dreamxec/internal/adapter/repo"
	httpapi "dreamxec/internal/http"
	"dreamxec/internal/http/handlers"
	"dreamxec/internal/infra"
	"dreamxec/internal/infra/geoip"
	"dreamxec/internal/providers/razorpay"
	"dreamxec/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	cache, err := infra.NewRedis(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure redis")
	}
	defer cache.Close()

	country, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable, donor country tagging limited to headers")
		country = nil
	}
	if country != nil {
		defer country.Close()
	}

	covers, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare file storage")
	}

	payments, err := razorpay.NewClient(razorpay.Options{
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpayKeySecret,
		BaseURL:   cfg.RazorpayBaseURL,
		Logger:    &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure payment provider")
	}

	app := &handlers.App{
		SQL:    infra.NewSQLRunner(dbpool, logger),
		Pool:   dbpool,
		Logger: logger,

		JWTSecret:     cfg.JWTSecret,
		WebhookSecret: cfg.RazorpayWebhookSecret,
		PaymentSecret: cfg.RazorpayKeySecret,

		Payments:      payments,
		PaymentsKeyID: payments.KeyID(),

		Campaigns: repo.NewCampaignRepository(dbpool),
		Donations: repo.NewDonationRepository(dbpool),

		Cache:  cache,
		Covers: covers,
	}
	if country != nil {
		app.Country = country.CountryCode
	}

	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
