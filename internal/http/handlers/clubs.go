package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"dreamxec/internal/domain"
	"dreamxec/internal/sqlinline"
)

type clubRequest struct {
	Name        string `json:"name"`
	College     string `json:"college"`
	Description string `json:"description"`
}

func (a *App) ClubsCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.domainError(w, domain.ErrUnauthorized)
		return
	}
	var req clubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.College = strings.TrimSpace(req.College)
	if req.Name == "" || req.College == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name and college are required")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertClub, userID, req.Name, req.College, req.Description)
	var clubID string
	if err := row.Scan(&clubID); err != nil {
		a.Logger.Error().Err(err).Msg("insert club failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register club")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"id": clubID, "verification_status": string(domain.ClubPending)})
}

func (a *App) ClubsList(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListVerifiedClubs, 100)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load clubs")
		return
	}
	defer rows.Close()

	var items []map[string]any
	for rows.Next() {
		var c domain.Club
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.College, &c.Description, &c.Verification, &c.CreatedAt); err != nil {
			a.Logger.Error().Err(err).Msg("scan club failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to load clubs")
			return
		}
		items = append(items, map[string]any{
			"id":                  c.ID,
			"name":                c.Name,
			"college":             c.College,
			"description":         c.Description,
			"verification_status": string(c.Verification),
			"created_at":          c.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type clubVerifyRequest struct {
	Status string `json:"status"`
}

// ClubsVerify is the admin moderation action for club registrations.
func (a *App) ClubsVerify(w http.ResponseWriter, r *http.Request) {
	var req clubVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	status := domain.ClubVerification(req.Status)
	if status != domain.ClubVerified && status != domain.ClubRejected {
		a.error(w, http.StatusBadRequest, "bad_request", "status must be verified or rejected")
		return
	}
	tag, err := a.SQL.Exec(r.Context(), sqlinline.QUpdateClubVerification, chi.URLParam(r, "clubID"), string(status))
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to update club")
		return
	}
	if tag.RowsAffected() == 0 {
		a.domainError(w, domain.ErrNotFound)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"verification_status": string(status)})
}
