package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dreamxec/internal/middleware"
)

func webhookBody(t *testing.T, event, orderID, paymentID string, amount int64, notes map[string]string) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"event": event,
		"payload": map[string]any{
			"payment": map[string]any{
				"entity": map[string]any{
					"id":       paymentID,
					"order_id": orderID,
					"amount":   amount,
					"status":   "captured",
					"notes":    notes,
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal webhook body: %v", err)
	}
	return payload
}

func postWebhook(app *App, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/donations/webhook", strings.NewReader(string(body)))
	req.Header.Set("X-Razorpay-Signature", signature)
	rr := httptest.NewRecorder()
	app.DonationsWebhook(rr, req)
	return rr
}

func TestDonationsWebhook_RecordsCapturedPayment(t *testing.T) {
	campaign := approvedCampaign(100000)
	app, campaigns, donations, _ := newDonationTestApp(campaign)

	body := webhookBody(t, "payment.captured", "order_001", "pay_wh", 25000,
		map[string]string{"campaign_id": campaign.ID, "guest_name": "Ravi"})
	rr := postWebhook(app, body, hmacHex(app.WebhookSecret, body))

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if len(donations.records) != 1 {
		t.Fatalf("expected 1 donation, got %d", len(donations.records))
	}
	if got := campaigns.campaigns[campaign.ID].AmountRaised; got != 125000 {
		t.Fatalf("amount_raised: got %d, want 125000", got)
	}
	if donations.records["pay_wh"].GuestName != "Ravi" {
		t.Fatalf("notes not carried into record: %+v", donations.records["pay_wh"])
	}
}

func TestDonationsWebhook_RejectsBadSignature(t *testing.T) {
	campaign := approvedCampaign(100000)
	app, campaigns, donations, _ := newDonationTestApp(campaign)

	body := webhookBody(t, "payment.captured", "order_001", "pay_wh", 25000,
		map[string]string{"campaign_id": campaign.ID})
	rr := postWebhook(app, body, "deadbeef")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rr.Code)
	}
	if len(donations.records) != 0 {
		t.Fatalf("donation recorded despite bad signature")
	}
	if got := campaigns.campaigns[campaign.ID].AmountRaised; got != 100000 {
		t.Fatalf("amount_raised changed: %d", got)
	}
}

// A deployment that lost its webhook secret must reject every event: anyone
// can compute the empty-key HMAC, so verifying against it would let a forged
// capture event mint a donation with no payment behind it.
func TestDonationsWebhook_RejectsWhenSecretUnconfigured(t *testing.T) {
	campaign := approvedCampaign(100000)
	app, campaigns, donations, _ := newDonationTestApp(campaign)
	app.WebhookSecret = ""

	body := webhookBody(t, "payment.captured", "order_001", "pay_forged", 9999900,
		map[string]string{"campaign_id": campaign.ID})
	rr := postWebhook(app, body, hmacHex("", body))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400: %s", rr.Code, rr.Body.String())
	}
	if len(donations.records) != 0 {
		t.Fatalf("forged webhook recorded a donation")
	}
	if got := campaigns.campaigns[campaign.ID].AmountRaised; got != 100000 {
		t.Fatalf("amount_raised changed: %d", got)
	}
}

// The webhook request comes from the provider's servers, so its geo context
// describes their infrastructure, not the donor.
func TestDonationsWebhook_DoesNotTagDonorCountry(t *testing.T) {
	campaign := approvedCampaign(0)
	app, _, donations, _ := newDonationTestApp(campaign)

	body := webhookBody(t, "payment.captured", "order_001", "pay_geo", 25000,
		map[string]string{"campaign_id": campaign.ID})
	req := httptest.NewRequest("POST", "/donations/webhook", strings.NewReader(string(body)))
	req = req.WithContext(context.WithValue(req.Context(), middleware.CountryKey, "US"))
	req.Header.Set("X-Razorpay-Signature", hmacHex(app.WebhookSecret, body))
	rr := httptest.NewRecorder()
	app.DonationsWebhook(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if got := donations.records["pay_geo"].DonorCountry; got != "" {
		t.Fatalf("donor_country tagged from provider request: %q", got)
	}
}

func TestDonationsWebhook_IgnoresOtherEvents(t *testing.T) {
	campaign := approvedCampaign(0)
	app, _, donations, _ := newDonationTestApp(campaign)

	body := webhookBody(t, "payment.failed", "order_001", "pay_fail", 25000,
		map[string]string{"campaign_id": campaign.ID})
	rr := postWebhook(app, body, hmacHex(app.WebhookSecret, body))

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rr.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "ignored" {
		t.Fatalf("expected ignored, got %q", resp["status"])
	}
	if len(donations.records) != 0 {
		t.Fatalf("failed payment recorded")
	}
}

// The callback and the webhook race for the same payment; whichever arrives
// second must not double-count.
func TestDonationsWebhook_AfterVerifyIsNoOp(t *testing.T) {
	campaign := approvedCampaign(100000)
	app, campaigns, donations, _ := newDonationTestApp(campaign)

	orderID := createTestOrder(t, app, fmt.Sprintf(`{"amount":250,"campaignId":%q}`, campaign.ID))
	signature := hmacHex(testPaymentSecret, []byte(orderID+"|pay_race"))
	req := httptest.NewRequest("POST", "/donations/verify", strings.NewReader(verifyBody(orderID, "pay_race", signature)))
	rr := httptest.NewRecorder()
	app.DonationsVerify(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("verify: got status %d, want 200", rr.Code)
	}

	body := webhookBody(t, "payment.captured", orderID, "pay_race", 25000,
		map[string]string{"campaign_id": campaign.ID})
	whr := postWebhook(app, body, hmacHex(app.WebhookSecret, body))
	if whr.Code != http.StatusOK {
		t.Fatalf("webhook: got status %d, want 200", whr.Code)
	}

	if len(donations.records) != 1 {
		t.Fatalf("expected exactly 1 donation after both paths, got %d", len(donations.records))
	}
	if got := campaigns.campaigns[campaign.ID].AmountRaised; got != 125000 {
		t.Fatalf("amount_raised: got %d, want 125000 (single increment)", got)
	}
}

func TestDonationsWebhook_MissingCampaignNote(t *testing.T) {
	campaign := approvedCampaign(0)
	app, _, donations, _ := newDonationTestApp(campaign)

	body := webhookBody(t, "payment.captured", "order_001", "pay_bad", 25000, map[string]string{})
	rr := postWebhook(app, body, hmacHex(app.WebhookSecret, body))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rr.Code)
	}
	if len(donations.records) != 0 {
		t.Fatalf("donation recorded without campaign note")
	}
}
