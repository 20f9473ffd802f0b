package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"dreamxec/internal/domain"
	"dreamxec/internal/infra"
	"dreamxec/internal/middleware"
	"dreamxec/internal/providers/razorpay"
	"dreamxec/internal/storage"
)

// App bundles the dependencies the HTTP handlers need. It is assembled once
// in cmd/api and shared across requests.
type App struct {
	SQL    infra.SQLExecutor
	Pool   *pgxpool.Pool
	Logger zerolog.Logger

	JWTSecret     string
	WebhookSecret string
	PaymentSecret string

	Payments      razorpay.OrdersAPI
	PaymentsKeyID string

	Campaigns domain.CampaignRepository
	Donations domain.DonationRepository

	Cache   *infra.Redis
	Covers  *storage.FileStore
	Country middleware.CountryLookup
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{"error": map[string]string{"code": code, "message": message}})
}

// domainError maps domain sentinels onto HTTP statuses; anything unexpected
// becomes a generic 500 after logging.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrInvalidSignature):
		a.error(w, http.StatusBadRequest, "invalid_signature", "invalid payment signature")
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, domain.ErrCampaignClosed), errors.Is(err, domain.ErrDuplicateOperation):
		a.error(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrProviderFailure):
		a.error(w, http.StatusBadGateway, "provider_failure", "payment provider unavailable")
	default:
		a.Logger.Error().Err(err).Msg("unhandled error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func (a *App) currentRole(r *http.Request) string {
	return middleware.RoleFromContext(r.Context())
}

func (a *App) isAdmin(r *http.Request) bool {
	return a.currentRole(r) == string(domain.UserRoleAdmin)
}
