package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"dreamxec/internal/http/handlers"
	"dreamxec/internal/infra"
	"dreamxec/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		chimw.Recoverer,
		middleware.RequestID,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
		middleware.I18N(app.Country),
	)

	// Health
	r.Get("/v1/healthz", app.Health)

	// Stored campaign covers
	r.Get("/static/*", app.StaticFile)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.AuthRegister)
		r.Post("/login", app.AuthLogin)
	})

	r.Route("/campaigns", func(r chi.Router) {
		r.Get("/", app.CampaignsList)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(cfg.JWTSecret))
			r.Post("/", app.CampaignsCreate)
			r.Get("/mine", app.CampaignsMine)
			r.Post("/{campaignID}/cover", app.CampaignsUploadCover)
			r.Post("/{campaignID}/milestones", app.MilestonesCreate)
			r.Post("/{campaignID}/referrals", app.ReferralsCreate)
			r.Get("/{campaignID}/referrals", app.ReferralsByCampaign)
			r.With(middleware.RequireAdmin).Patch("/{campaignID}/status", app.CampaignsSetStatus)
		})

		r.Get("/{campaignID}", app.CampaignsGet)
		r.Get("/{campaignID}/milestones", app.MilestonesList)
	})

	r.Route("/milestones", func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret))
		r.Put("/{milestoneID}", app.MilestonesUpdate)
		r.Delete("/{milestoneID}", app.MilestonesDelete)
	})

	r.Route("/clubs", func(r chi.Router) {
		r.Get("/", app.ClubsList)
		r.With(middleware.AuthJWT(cfg.JWTSecret)).Post("/", app.ClubsCreate)
		r.With(middleware.AuthJWT(cfg.JWTSecret), middleware.RequireAdmin).
			Patch("/{clubID}/verify", app.ClubsVerify)
	})

	r.Get("/referrals/{code}", app.ReferralsResolve)

	r.Route("/donations", func(r chi.Router) {
		// Guests may donate, so auth is optional on the payment path.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuthJWT(cfg.JWTSecret))
			r.Post("/order", app.DonationsCreateOrder)
			r.Post("/verify", app.DonationsVerify)
		})

		// Signature-authenticated, no session.
		r.Post("/webhook", app.DonationsWebhook)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(cfg.JWTSecret))
			r.Get("/my", app.DonationsMine)
			r.Get("/summary", app.DonationsSummary)
			r.Get("/project/{campaignID}", app.DonationsByCampaign)
		})
	})

	r.With(middleware.AuthJWT(cfg.JWTSecret)).Get("/me", app.Me)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret), middleware.RequireAdmin)
		r.Get("/stats", app.AdminStats)
		r.Get("/export", app.AdminExport)
	})

	return r
}
