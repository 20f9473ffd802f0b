package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dreamxec/internal/domain"
	"dreamxec/internal/sqlinline"
)

// ReferralsCreate mints a shareable code for the owner's campaign.
func (a *App) ReferralsCreate(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Campaigns.GetByID(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	userID := a.currentUserID(r)
	if campaign.OwnerID != userID {
		a.domainError(w, domain.ErrForbidden)
		return
	}

	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertReferral, campaign.ID, code, userID)
	var referralID string
	if err := row.Scan(&referralID); err != nil {
		a.Logger.Error().Err(err).Msg("insert referral failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create referral")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"id": referralID, "code": code})
}

// ReferralsResolve looks up a code, counts the click, and points the caller
// at the campaign.
func (a *App) ReferralsResolve(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))
	if code == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "code is required")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QResolveReferral, code)
	var ref domain.Referral
	if err := row.Scan(&ref.ID, &ref.CampaignID, &ref.Code, &ref.CreatedBy, &ref.Clicks, &ref.DonationCount, &ref.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.domainError(w, domain.ErrNotFound)
			return
		}
		a.Logger.Error().Err(err).Msg("resolve referral failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to resolve referral")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"code":        ref.Code,
		"campaign_id": ref.CampaignID,
		"clicks":      ref.Clicks,
	})
}

func (a *App) ReferralsByCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Campaigns.GetByID(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	if campaign.OwnerID != a.currentUserID(r) && !a.isAdmin(r) {
		a.domainError(w, domain.ErrForbidden)
		return
	}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListReferralsByCampaign, campaign.ID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load referrals")
		return
	}
	defer rows.Close()

	var items []map[string]any
	for rows.Next() {
		var ref domain.Referral
		if err := rows.Scan(&ref.ID, &ref.CampaignID, &ref.Code, &ref.CreatedBy, &ref.Clicks, &ref.DonationCount, &ref.CreatedAt); err != nil {
			a.Logger.Error().Err(err).Msg("scan referral failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to load referrals")
			return
		}
		items = append(items, map[string]any{
			"id":             ref.ID,
			"code":           ref.Code,
			"clicks":         ref.Clicks,
			"donation_count": ref.DonationCount,
			"created_at":     ref.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
