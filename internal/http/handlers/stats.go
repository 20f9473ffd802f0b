package handlers

import (
	"net/http"
	"strconv"
	"time"

	"dreamxec/internal/sqlinline"
	"dreamxec/pkg/export"
)

// AdminStats reports platform-wide totals for the moderation dashboard.
// The worker refreshes a cached copy periodically; fall back to the
// database when the cache is cold or disabled.
func (a *App) AdminStats(w http.ResponseWriter, r *http.Request) {
	if a.Cache.Enabled() {
		if cached, err := a.Cache.Get(r.Context(), "stats:platform"); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QAdminStats)
	var totalCampaigns, pending, approved, completed int64
	var donations, amountTotal, donations24h, amount24h int64
	if err := row.Scan(&totalCampaigns, &pending, &approved, &completed, &donations, &amountTotal, &donations24h, &amount24h); err != nil {
		a.Logger.Error().Err(err).Msg("load stats failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"campaigns_total":     totalCampaigns,
		"campaigns_pending":   pending,
		"campaigns_approved":  approved,
		"campaigns_completed": completed,
		"donations_total":     donations,
		"amount_total":        amountTotal,
		"donations_24h":       donations24h,
		"amount_24h":          amount24h,
	})
}

// AdminExport streams a zip archive of donation and campaign CSVs.
func (a *App) AdminExport(w http.ResponseWriter, r *http.Request) {
	donationRows, err := a.SQL.Query(r.Context(), sqlinline.QExportDonations)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to export")
		return
	}
	donations := export.Table{
		Name:   "donations",
		Header: []string{"id", "campaign_id", "campaign_title", "user_id", "guest_name", "amount", "anonymous", "donor_country", "payment_id", "created_at"},
	}
	func() {
		defer donationRows.Close()
		for donationRows.Next() {
			var id, campaignID, title, userID, guestName, country, paymentID string
			var amount int64
			var anonymous bool
			var createdAt time.Time
			if err := donationRows.Scan(&id, &campaignID, &title, &userID, &guestName, &amount, &anonymous, &country, &paymentID, &createdAt); err != nil {
				a.Logger.Error().Err(err).Msg("scan donation export row failed")
				continue
			}
			donations.Rows = append(donations.Rows, []string{
				id, campaignID, title, userID, guestName,
				strconv.FormatInt(amount, 10), strconv.FormatBool(anonymous),
				country, paymentID, createdAt.Format(time.RFC3339),
			})
		}
	}()

	campaignRows, err := a.SQL.Query(r.Context(), sqlinline.QExportCampaigns)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to export")
		return
	}
	campaigns := export.Table{
		Name:   "campaigns",
		Header: []string{"id", "title", "category", "status", "goal_amount", "amount_raised", "created_at"},
	}
	func() {
		defer campaignRows.Close()
		for campaignRows.Next() {
			var id, title, category, status string
			var goal, raised int64
			var createdAt time.Time
			if err := campaignRows.Scan(&id, &title, &category, &status, &goal, &raised, &createdAt); err != nil {
				a.Logger.Error().Err(err).Msg("scan campaign export row failed")
				continue
			}
			campaigns.Rows = append(campaigns.Rows, []string{
				id, title, category, status,
				strconv.FormatInt(goal, 10), strconv.FormatInt(raised, 10),
				createdAt.Format(time.RFC3339),
			})
		}
	}()

	archive, err := export.Archive([]export.Table{donations, campaigns})
	if err != nil {
		a.Logger.Error().Err(err).Msg("build export archive failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to export")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="dreamxec-export.zip"`)
	_, _ = w.Write(archive)
}
