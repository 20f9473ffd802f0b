package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"dreamxec/internal/domain"
	"dreamxec/internal/middleware"
	"dreamxec/internal/sqlinline"
)

// testRowsBase fills the pgx.Rows methods the handlers never touch.
type testRowsBase struct{}

func (testRowsBase) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (testRowsBase) Conn() *pgx.Conn                              { return nil }
func (testRowsBase) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (testRowsBase) RawValues() [][]byte                          { return nil }
func (testRowsBase) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

type campaignRowsIterator struct {
	testRowsBase
	rows []domain.Campaign
	idx  int
}

func (it *campaignRowsIterator) Next() bool {
	if it.idx >= len(it.rows) {
		return false
	}
	it.idx++
	return true
}

func (it *campaignRowsIterator) Scan(dest ...any) error {
	if it.idx == 0 || it.idx > len(it.rows) {
		return pgx.ErrNoRows
	}
	c := it.rows[it.idx-1]
	if len(dest) != 12 {
		return fmt.Errorf("unexpected scan args: %d", len(dest))
	}
	*(dest[0].(*string)) = c.ID
	*(dest[1].(*string)) = c.OwnerID
	*(dest[2].(**string)) = c.ClubID
	*(dest[3].(*string)) = c.Title
	*(dest[4].(*string)) = c.Description
	*(dest[5].(*string)) = c.Category
	*(dest[6].(*int64)) = c.GoalAmount
	*(dest[7].(*int64)) = c.AmountRaised
	*(dest[8].(*string)) = c.CoverURL
	*(dest[9].(*domain.CampaignStatus)) = c.Status
	*(dest[10].(**time.Time)) = c.Deadline
	*(dest[11].(*time.Time)) = c.CreatedAt
	return nil
}

func (it *campaignRowsIterator) Err() error { return nil }
func (it *campaignRowsIterator) Close()     {}

type campaignTestSQL struct {
	approved  []domain.Campaign
	createdID string
	lastQuery string
	lastArgs  []any
}

func (s *campaignTestSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.lastQuery, s.lastArgs = query, args
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (s *campaignTestSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	s.lastQuery, s.lastArgs = query, args
	if query == sqlinline.QInsertCampaign {
		id := s.createdID
		return scanRow(func(dest ...any) error {
			*(dest[0].(*string)) = id
			return nil
		})
	}
	return scanRow(func(...any) error { return pgx.ErrNoRows })
}

func (s *campaignTestSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	s.lastQuery, s.lastArgs = query, args
	if query != sqlinline.QListApprovedCampaigns && query != sqlinline.QListCampaignsByOwner {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	return &campaignRowsIterator{rows: s.approved}, nil
}

func TestCampaignsCreate_StartsPending(t *testing.T) {
	sql := &campaignTestSQL{createdID: "33333333-3333-3333-3333-333333333333"}
	app := &App{SQL: sql, Logger: testLogger()}

	deadline := time.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339)
	req := httptest.NewRequest("POST", "/campaigns",
		strings.NewReader(fmt.Sprintf(`{"title":"Robotics lab","goal_amount":500000,"deadline":%q}`, deadline)))
	req = req.WithContext(middleware.ContextWithUser(req.Context(), "owner-1", "student"))
	rr := httptest.NewRecorder()
	app.CampaignsCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201: %s", rr.Code, rr.Body.String())
	}
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "pending" {
		t.Fatalf("new campaigns must start pending, got %q", resp["status"])
	}
	if sql.lastQuery != sqlinline.QInsertCampaign {
		t.Fatalf("unexpected query: %s", sql.lastQuery)
	}
}

func TestCampaignsCreate_RejectsPastDeadline(t *testing.T) {
	app := &App{SQL: &campaignTestSQL{}, Logger: testLogger()}

	deadline := time.Now().Add(-time.Hour).Format(time.RFC3339)
	req := httptest.NewRequest("POST", "/campaigns",
		strings.NewReader(fmt.Sprintf(`{"title":"Robotics lab","goal_amount":500000,"deadline":%q}`, deadline)))
	req = req.WithContext(middleware.ContextWithUser(req.Context(), "owner-1", "student"))
	rr := httptest.NewRecorder()
	app.CampaignsCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rr.Code)
	}
}

func TestCampaignsList_ReturnsApproved(t *testing.T) {
	sql := &campaignTestSQL{approved: []domain.Campaign{{
		ID:           "c1",
		OwnerID:      "owner-1",
		Title:        "Robotics lab",
		GoalAmount:   500000,
		AmountRaised: 125000,
		Status:       domain.CampaignStatusApproved,
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}}}
	app := &App{SQL: sql, Logger: testLogger()}

	req := httptest.NewRequest("GET", "/campaigns?category=tech&limit=10", nil)
	rr := httptest.NewRecorder()
	app.CampaignsList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if len(sql.lastArgs) != 2 || sql.lastArgs[0] != "tech" || sql.lastArgs[1] != 10 {
		t.Fatalf("unexpected query args: %v", sql.lastArgs)
	}
	var payload struct {
		Items []campaignDTO `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Items) != 1 || payload.Items[0].AmountRaised != 125000 {
		t.Fatalf("unexpected items: %+v", payload.Items)
	}
}

func TestCampaignsSetStatus_ApprovesPending(t *testing.T) {
	campaign := approvedCampaign(0)
	campaign.Status = domain.CampaignStatusPending
	app, campaigns, _, _ := newDonationTestApp(campaign)

	req := httptest.NewRequest("PATCH", "/campaigns/"+campaign.ID+"/status",
		strings.NewReader(`{"status":"approved"}`))
	req = withURLParam(req, "campaignID", campaign.ID)
	rr := httptest.NewRecorder()
	app.CampaignsSetStatus(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if campaigns.campaigns[campaign.ID].Status != domain.CampaignStatusApproved {
		t.Fatalf("status not applied: %s", campaigns.campaigns[campaign.ID].Status)
	}
}

func TestCampaignsSetStatus_RejectsInvalidTransition(t *testing.T) {
	campaign := approvedCampaign(0)
	app, _, _, _ := newDonationTestApp(campaign)

	req := httptest.NewRequest("PATCH", "/campaigns/"+campaign.ID+"/status",
		strings.NewReader(`{"status":"completed"}`))
	req = withURLParam(req, "campaignID", campaign.ID)
	rr := httptest.NewRecorder()
	app.CampaignsSetStatus(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rr.Code)
	}
}
