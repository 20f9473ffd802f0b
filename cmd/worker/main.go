package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"dreamxec/internal/infra"
	"dreamxec/internal/sqlinline"
)

// The worker closes out expired campaigns, flips funded milestones to
// achieved, and keeps a warm copy of the platform stats in the cache.
func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("component", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	sql := infra.NewSQLRunner(dbpool, logger)

	logger.Info().Dur("interval", cfg.WorkerInterval).Msg("worker started")

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	runOnce(ctx, sql, cache, logger)
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("worker stopped")
			return
		case <-ticker.C:
			runOnce(ctx, sql, cache, logger)
		}
	}
}

func runOnce(ctx context.Context, sql infra.SQLExecutor, cache *infra.Redis, logger zerolog.Logger) {
	tickCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if tag, err := sql.Exec(tickCtx, sqlinline.QCompleteExpiredCampaigns); err != nil {
		logger.Error().Err(err).Msg("complete expired campaigns failed")
	} else if tag.RowsAffected() > 0 {
		logger.Info().Int64("campaigns", tag.RowsAffected()).Msg("expired campaigns completed")
	}

	if tag, err := sql.Exec(tickCtx, sqlinline.QAchieveFundedMilestones); err != nil {
		logger.Error().Err(err).Msg("achieve funded milestones failed")
	} else if tag.RowsAffected() > 0 {
		logger.Info().Int64("milestones", tag.RowsAffected()).Msg("funded milestones achieved")
	}

	if cache.Enabled() {
		warmStats(tickCtx, sql, cache, logger)
	}
}

// warmStats keeps the admin dashboard cheap to serve. The cached payload
// matches the /admin/stats response body exactly.
func warmStats(ctx context.Context, sql infra.SQLExecutor, cache *infra.Redis, logger zerolog.Logger) {
	var totalCampaigns, pending, approved, completed int64
	var donations, amountTotal, donations24h, amount24h int64
	row := sql.QueryRow(ctx, sqlinline.QAdminStats)
	if err := row.Scan(&totalCampaigns, &pending, &approved, &completed, &donations, &amountTotal, &donations24h, &amount24h); err != nil {
		logger.Error().Err(err).Msg("load stats failed")
		return
	}
	payload, err := json.Marshal(map[string]any{
		"campaigns_total":     totalCampaigns,
		"campaigns_pending":   pending,
		"campaigns_approved":  approved,
		"campaigns_completed": completed,
		"donations_total":     donations,
		"amount_total":        amountTotal,
		"donations_24h":       donations24h,
		"amount_24h":          amount24h,
	})
	if err != nil {
		return
	}
	if err := cache.Set(ctx, "stats:platform", string(payload), 5*time.Minute); err != nil {
		logger.Error().Err(err).Msg("warm stats cache failed")
	}
}
