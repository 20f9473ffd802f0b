package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"dreamxec/internal/domain"
	"dreamxec/internal/infra"
	"dreamxec/internal/sqlinline"
)

type campaignRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	GoalAmount  int64   `json:"goal_amount"` // paise
	ClubID      *string `json:"club_id"`
	Deadline    *string `json:"deadline"` // RFC 3339
}

type campaignDTO struct {
	ID           string     `json:"id"`
	OwnerID      string     `json:"owner_id"`
	ClubID       *string    `json:"club_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	GoalAmount   int64      `json:"goal_amount"`
	AmountRaised int64      `json:"amount_raised"`
	CoverURL     string     `json:"cover_url,omitempty"`
	Status       string     `json:"status"`
	Deadline     *time.Time `json:"deadline"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.domainError(w, domain.ErrUnauthorized)
		return
	}
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "title is required")
		return
	}
	if req.GoalAmount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "goal_amount must be positive")
		return
	}
	var deadline *time.Time
	if req.Deadline != nil && *req.Deadline != "" {
		parsed, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "deadline must be RFC 3339")
			return
		}
		if parsed.Before(time.Now()) {
			a.error(w, http.StatusBadRequest, "bad_request", "deadline must be in the future")
			return
		}
		deadline = &parsed
	}

	clubID := ""
	if req.ClubID != nil {
		clubID = *req.ClubID
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertCampaign, userID, clubID, req.Title, req.Description, req.Category, req.GoalAmount, deadline)
	var campaignID string
	if err := row.Scan(&campaignID); err != nil {
		a.Logger.Error().Err(err).Msg("insert campaign failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create campaign")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"id": campaignID, "status": string(domain.CampaignStatusPending)})
}

const campaignCacheTTL = 30 * time.Second

// CampaignsList serves the public directory of approved campaigns, cached
// briefly in Redis when available.
func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	cacheKey := "campaigns:approved:" + category + ":" + strconv.Itoa(limit)
	if cached, err := a.Cache.Get(r.Context(), cacheKey); err == nil {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(cached))
		return
	} else if !infra.IsMiss(err) && err != infra.ErrRedisDisabled {
		a.Logger.Warn().Err(err).Msg("campaign cache read failed")
	}

	rows, err := a.SQL.Query(r.Context(), sqlinline.QListApprovedCampaigns, category, limit)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaigns")
		return
	}
	items, err := scanCampaignRows(rows)
	if err != nil {
		a.Logger.Error().Err(err).Msg("scan campaigns failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaigns")
		return
	}

	payload, err := json.Marshal(map[string]any{"items": items})
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaigns")
		return
	}
	if err := a.Cache.Set(r.Context(), cacheKey, string(payload), campaignCacheTTL); err != nil && err != infra.ErrRedisDisabled {
		a.Logger.Warn().Err(err).Msg("campaign cache write failed")
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Campaigns.GetByID(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, campaignToDTO(*campaign))
}

func (a *App) CampaignsMine(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.domainError(w, domain.ErrUnauthorized)
		return
	}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListCampaignsByOwner, userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaigns")
		return
	}
	items, err := scanCampaignRows(rows)
	if err != nil {
		a.Logger.Error().Err(err).Msg("scan campaigns failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaigns")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type campaignStatusRequest struct {
	Status string `json:"status"`
}

// CampaignsSetStatus is the admin moderation action: approve or reject a
// pending campaign.
func (a *App) CampaignsSetStatus(w http.ResponseWriter, r *http.Request) {
	var req campaignStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	status := domain.CampaignStatus(req.Status)
	if status != domain.CampaignStatusApproved && status != domain.CampaignStatusRejected {
		a.error(w, http.StatusBadRequest, "bad_request", "status must be approved or rejected")
		return
	}
	if err := a.Campaigns.SetStatus(r.Context(), chi.URLParam(r, "campaignID"), status); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": string(status)})
}

const maxCoverBytes = 2 << 20

// CampaignsUploadCover stores a cover image for the owner's campaign.
func (a *App) CampaignsUploadCover(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Campaigns.GetByID(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	if campaign.OwnerID != a.currentUserID(r) && !a.isAdmin(r) {
		a.domainError(w, domain.ErrForbidden)
		return
	}
	if a.Covers == nil {
		a.error(w, http.StatusServiceUnavailable, "unavailable", "cover storage not configured")
		return
	}

	var ext string
	switch r.Header.Get("Content-Type") {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "cover must be image/png or image/jpeg")
		return
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxCoverBytes+1))
	if err != nil || len(data) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "unreadable image body")
		return
	}
	if len(data) > maxCoverBytes {
		a.error(w, http.StatusBadRequest, "bad_request", "cover exceeds 2MB")
		return
	}

	key, err := a.Covers.Write(campaign.ID, ext, data)
	if err != nil {
		a.Logger.Error().Err(err).Msg("store cover failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to store cover")
		return
	}
	coverURL := "/static/" + key
	if _, err := a.SQL.Exec(r.Context(), sqlinline.QSetCampaignCover, campaign.ID, coverURL); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to update campaign")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"cover_url": coverURL})
}

func campaignToDTO(c domain.Campaign) campaignDTO {
	return campaignDTO{
		ID:           c.ID,
		OwnerID:      c.OwnerID,
		ClubID:       c.ClubID,
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		GoalAmount:   c.GoalAmount,
		AmountRaised: c.AmountRaised,
		CoverURL:     c.CoverURL,
		Status:       string(c.Status),
		Deadline:     c.Deadline,
		CreatedAt:    c.CreatedAt,
	}
}

func scanCampaignRows(rows pgx.Rows) ([]campaignDTO, error) {
	defer rows.Close()
	var items []campaignDTO
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.ClubID, &c.Title, &c.Description, &c.Category, &c.GoalAmount, &c.AmountRaised, &c.CoverURL, &c.Status, &c.Deadline, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, campaignToDTO(c))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []campaignDTO{}
	}
	return items, nil
}
