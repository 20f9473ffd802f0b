package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"dreamxec/internal/domain"
	"dreamxec/internal/providers/razorpay"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// withURLParam injects a chi route parameter so handlers can be exercised
// without mounting the full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func hmacHex(secret string, data []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

type fakeCampaigns struct {
	campaigns map[string]*domain.Campaign
}

func (f *fakeCampaigns) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCampaigns) SetStatus(_ context.Context, id string, status domain.CampaignStatus) error {
	c, ok := f.campaigns[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Status = status
	return nil
}

// fakeDonations mirrors the transactional semantics of the real repository:
// a repeated payment id is reported as not created and leaves the raised
// counter untouched.
type fakeDonations struct {
	records   map[string]domain.Donation // keyed by payment id
	campaigns *fakeCampaigns
	referrals map[string]int
}

func newFakeDonations(campaigns *fakeCampaigns) *fakeDonations {
	return &fakeDonations{
		records:   map[string]domain.Donation{},
		campaigns: campaigns,
		referrals: map[string]int{},
	}
}

func (f *fakeDonations) RecordCompleted(_ context.Context, d *domain.Donation, referralCode string) (bool, error) {
	if _, exists := f.records[d.PaymentID]; exists {
		return false, nil
	}
	campaign, ok := f.campaigns.campaigns[d.CampaignID]
	if !ok {
		return false, domain.ErrNotFound
	}
	f.records[d.PaymentID] = *d
	campaign.AmountRaised += d.Amount
	if referralCode != "" {
		f.referrals[referralCode]++
	}
	return true, nil
}

func (f *fakeDonations) ListByUser(_ context.Context, userID string, _ int) ([]domain.Donation, error) {
	var out []domain.Donation
	for _, d := range f.records {
		if d.UserID != nil && *d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDonations) ListByCampaign(_ context.Context, campaignID string, _ int) ([]domain.Donation, error) {
	var out []domain.Donation
	for _, d := range f.records {
		if d.CampaignID == campaignID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDonations) SummaryByUser(_ context.Context, userID string) (*domain.DonorSummary, error) {
	summary := &domain.DonorSummary{}
	seen := map[string]bool{}
	for _, d := range f.records {
		if d.UserID == nil || *d.UserID != userID {
			continue
		}
		summary.TotalAmount += d.Amount
		summary.DonationCount++
		seen[d.CampaignID] = true
	}
	summary.CampaignCount = int64(len(seen))
	return summary, nil
}

// fakeOrders stands in for the Razorpay orders API.
type fakeOrders struct {
	orders      map[string]*razorpay.Order
	createCalls int
	createErr   error
	fetchErr    error
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[string]*razorpay.Order{}}
}

func (f *fakeOrders) CreateOrder(_ context.Context, params razorpay.CreateOrderParams) (*razorpay.Order, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	currency := params.Currency
	if currency == "" {
		currency = "INR"
	}
	order := &razorpay.Order{
		ID:       fmt.Sprintf("order_%03d", f.createCalls),
		Amount:   params.Amount,
		Currency: currency,
		Receipt:  params.Receipt,
		Status:   "created",
		Notes:    params.Notes,
	}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrders) FetchOrder(_ context.Context, orderID string) (*razorpay.Order, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	order, ok := f.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	return order, nil
}
