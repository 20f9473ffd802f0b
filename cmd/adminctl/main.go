package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"dreamxec/internal/domain"
	"dreamxec/internal/infra"
	"dreamxec/internal/sqlinline"
)

// adminctl performs one-off operator tasks against the database:
//
//	adminctl -promote user@example.com
//	adminctl -verify-club <club-uuid> [-status rejected]
func main() {
	promote := flag.String("promote", "", "email of the user to promote to admin")
	verifyClub := flag.String("verify-club", "", "id of the club to mark verified")
	status := flag.String("status", "verified", "verification status for -verify-club (verified|rejected)")
	flag.Parse()

	if *promote == "" && *verifyClub == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("component", "adminctl").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	sql := infra.NewSQLRunner(dbpool, logger)

	if *promote != "" {
		var id string
		if err := sql.QueryRow(ctx, sqlinline.QSetUserRole, *promote, string(domain.UserRoleAdmin)).Scan(&id); err != nil {
			logger.Fatal().Err(err).Str("email", *promote).Msg("promote failed")
		}
		logger.Info().Str("user_id", id).Str("email", *promote).Msg("user promoted to admin")
	}

	if *verifyClub != "" {
		if *status != string(domain.ClubVerified) && *status != string(domain.ClubRejected) {
			logger.Fatal().Str("status", *status).Msg("status must be verified or rejected")
		}
		tag, err := sql.Exec(ctx, sqlinline.QUpdateClubVerification, *verifyClub, *status)
		if err != nil {
			logger.Fatal().Err(err).Str("club_id", *verifyClub).Msg("club verification failed")
		}
		if tag.RowsAffected() == 0 {
			logger.Fatal().Str("club_id", *verifyClub).Msg("club not found")
		}
		logger.Info().Str("club_id", *verifyClub).Str("status", *status).Msg("club verification updated")
	}
}
