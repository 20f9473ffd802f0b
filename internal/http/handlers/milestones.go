package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"dreamxec/internal/domain"
	"dreamxec/internal/sqlinline"
)

type milestoneRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	TargetAmount int64  `json:"target_amount"` // paise
}

func (r milestoneRequest) validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if r.TargetAmount <= 0 {
		return errors.New("target_amount must be positive")
	}
	return nil
}

func (a *App) MilestonesCreate(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Campaigns.GetByID(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	if campaign.OwnerID != a.currentUserID(r) {
		a.domainError(w, domain.ErrForbidden)
		return
	}
	var req milestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := req.validate(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertMilestone, campaign.ID, strings.TrimSpace(req.Title), req.Description, req.TargetAmount)
	var milestoneID string
	if err := row.Scan(&milestoneID); err != nil {
		a.Logger.Error().Err(err).Msg("insert milestone failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create milestone")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"id": milestoneID})
}

func (a *App) MilestonesList(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListMilestonesByCampaign, chi.URLParam(r, "campaignID"))
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load milestones")
		return
	}
	defer rows.Close()

	var items []map[string]any
	for rows.Next() {
		var m domain.Milestone
		if err := rows.Scan(&m.ID, &m.CampaignID, &m.Title, &m.Description, &m.TargetAmount, &m.Achieved, &m.AchievedAt, &m.CreatedAt); err != nil {
			a.Logger.Error().Err(err).Msg("scan milestone failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to load milestones")
			return
		}
		items = append(items, map[string]any{
			"id":            m.ID,
			"campaign_id":   m.CampaignID,
			"title":         m.Title,
			"description":   m.Description,
			"target_amount": m.TargetAmount,
			"achieved":      m.Achieved,
			"achieved_at":   m.AchievedAt,
			"created_at":    m.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// milestoneOwner resolves the owning campaign's owner for permission checks.
func (a *App) milestoneOwner(r *http.Request, milestoneID string) (string, error) {
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectMilestoneCampaignOwner, milestoneID)
	var ownerID string
	if err := row.Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return ownerID, nil
}

func (a *App) MilestonesUpdate(w http.ResponseWriter, r *http.Request) {
	milestoneID := chi.URLParam(r, "milestoneID")
	ownerID, err := a.milestoneOwner(r, milestoneID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if ownerID != a.currentUserID(r) {
		a.domainError(w, domain.ErrForbidden)
		return
	}
	var req milestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := req.validate(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if _, err := a.SQL.Exec(r.Context(), sqlinline.QUpdateMilestone, milestoneID, strings.TrimSpace(req.Title), req.Description, req.TargetAmount); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to update milestone")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"id": milestoneID})
}

func (a *App) MilestonesDelete(w http.ResponseWriter, r *http.Request) {
	milestoneID := chi.URLParam(r, "milestoneID")
	ownerID, err := a.milestoneOwner(r, milestoneID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if ownerID != a.currentUserID(r) && !a.isAdmin(r) {
		a.domainError(w, domain.ErrForbidden)
		return
	}
	if _, err := a.SQL.Exec(r.Context(), sqlinline.QDeleteMilestone, milestoneID); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete milestone")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
