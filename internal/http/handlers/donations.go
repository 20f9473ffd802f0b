package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dreamxec/internal/domain"
	"dreamxec/internal/middleware"
	"dreamxec/internal/providers/razorpay"
)

type orderRequest struct {
	Amount       int64  `json:"amount"` // rupees
	CampaignID   string `json:"campaignId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Message      string `json:"message"`
	Anonymous    bool   `json:"anonymous"`
	ReferralCode string `json:"referralCode"`
}

type verifyRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// DonationsCreateOrder registers a payment intent with the provider. The
// donation metadata travels in the order notes so verification can read it
// back from the provider instead of trusting the client.
func (a *App) DonationsCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}
	if strings.TrimSpace(req.CampaignID) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "campaignId is required")
		return
	}

	campaign, err := a.Campaigns.GetByID(r.Context(), req.CampaignID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if !campaign.AcceptsDonations(time.Now()) {
		a.domainError(w, domain.ErrCampaignClosed)
		return
	}

	notes := map[string]string{
		"campaign_id":   campaign.ID,
		"user_id":       a.currentUserID(r),
		"guest_name":    strings.TrimSpace(req.Name),
		"guest_email":   strings.TrimSpace(req.Email),
		"message":       req.Message,
		"anonymous":     strconv.FormatBool(req.Anonymous),
		"referral_code": strings.TrimSpace(req.ReferralCode),
	}
	receipt := "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20]

	order, err := a.Payments.CreateOrder(r.Context(), razorpay.CreateOrderParams{
		Amount:  req.Amount * 100,
		Receipt: receipt,
		Notes:   notes,
	})
	if err != nil {
		a.Logger.Error().Err(err).Str("campaign_id", campaign.ID).Msg("create payment order failed")
		a.error(w, http.StatusBadGateway, "provider_failure", "failed to create payment order")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"key":      a.PaymentsKeyID,
	})
}

// DonationsVerify handles the checkout callback. The signature proves the
// payment outcome; the order fetched from the provider supplies the amount
// and metadata. Recording is idempotent against the webhook path.
func (a *App) DonationsVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if !razorpay.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature, a.PaymentSecret) {
		a.domainError(w, domain.ErrInvalidSignature)
		return
	}

	order, err := a.Payments.FetchOrder(r.Context(), req.OrderID)
	if err != nil {
		a.Logger.Error().Err(err).Str("order_id", req.OrderID).Msg("fetch order failed")
		a.error(w, http.StatusBadGateway, "provider_failure", "failed to fetch payment order")
		return
	}

	created, err := a.recordVerifiedPayment(r.Context(), order.Notes, order.Amount, req.OrderID, req.PaymentID, middleware.CountryFromContext(r.Context()))
	if err != nil {
		a.domainError(w, err)
		return
	}
	if !created {
		a.Logger.Info().Str("payment_id", req.PaymentID).Msg("payment already recorded")
	}
	a.json(w, http.StatusOK, map[string]any{"success": true})
}

// recordVerifiedPayment builds the donation from provider-held notes and
// records it atomically. Shared by the callback and webhook paths; the
// webhook passes an empty donorCountry because that request comes from the
// provider's servers, not the donor.
func (a *App) recordVerifiedPayment(ctx context.Context, notes map[string]string, amount int64, orderID, paymentID, donorCountry string) (bool, error) {
	campaignID := notes["campaign_id"]
	if campaignID == "" {
		return false, domain.ErrNotFound
	}

	var userID *string
	if id := notes["user_id"]; id != "" {
		userID = &id
	}
	anonymous, _ := strconv.ParseBool(notes["anonymous"])

	donation := &domain.Donation{
		CampaignID:    campaignID,
		UserID:        userID,
		GuestName:     notes["guest_name"],
		GuestEmail:    notes["guest_email"],
		Amount:        amount,
		Message:       notes["message"],
		Anonymous:     anonymous,
		DonorCountry:  donorCountry,
		OrderID:       orderID,
		PaymentID:     paymentID,
		PaymentStatus: domain.PaymentStatusCompleted,
	}
	return a.Donations.RecordCompleted(ctx, donation, notes["referral_code"])
}

type donationDTO struct {
	ID           string    `json:"id"`
	CampaignID   string    `json:"campaign_id"`
	UserID       *string   `json:"user_id"`
	DonorName    string    `json:"donor_name"`
	Amount       int64     `json:"amount"`
	Message      string    `json:"message"`
	Anonymous    bool      `json:"anonymous"`
	DonorCountry string    `json:"donor_country,omitempty"`
	PaymentID    string    `json:"payment_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func donationToDTO(d domain.Donation, maskAnonymous bool) donationDTO {
	dto := donationDTO{
		ID:           d.ID,
		CampaignID:   d.CampaignID,
		UserID:       d.UserID,
		DonorName:    d.GuestName,
		Amount:       d.Amount,
		Message:      d.Message,
		Anonymous:    d.Anonymous,
		DonorCountry: d.DonorCountry,
		PaymentID:    d.PaymentID,
		Status:       string(d.PaymentStatus),
		CreatedAt:    d.CreatedAt,
	}
	if d.Anonymous && maskAnonymous {
		dto.UserID = nil
		dto.DonorName = "Anonymous"
	}
	return dto
}

func (a *App) DonationsMine(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.domainError(w, domain.ErrUnauthorized)
		return
	}
	items, err := a.Donations.ListByUser(r.Context(), userID, 100)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}
	out := make([]donationDTO, 0, len(items))
	for _, d := range items {
		out = append(out, donationToDTO(d, false))
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}

// DonationsByCampaign lists a campaign's donations for its owner or an admin.
// Owners see anonymous donations with the donor identity masked.
func (a *App) DonationsByCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	campaign, err := a.Campaigns.GetByID(r.Context(), campaignID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	admin := a.isAdmin(r)
	if campaign.OwnerID != a.currentUserID(r) && !admin {
		a.domainError(w, domain.ErrForbidden)
		return
	}
	items, err := a.Donations.ListByCampaign(r.Context(), campaignID, 500)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list campaign donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}
	out := make([]donationDTO, 0, len(items))
	for _, d := range items {
		out = append(out, donationToDTO(d, !admin))
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}

func (a *App) DonationsSummary(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.domainError(w, domain.ErrUnauthorized)
		return
	}
	summary, err := a.Donations.SummaryByUser(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("donation summary failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load summary")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"total_amount":    summary.TotalAmount,
		"campaigns":       summary.CampaignCount,
		"donations":       summary.DonationCount,
		"formatted_total": formatINR(r, summary.TotalAmount),
	})
}

// formatINR renders a paise amount as a localized rupee string.
func formatINR(r *http.Request, paise int64) string {
	tag, err := language.Parse(middleware.LocaleFromContext(r.Context()))
	if err != nil {
		tag = language.English
	}
	printer := message.NewPrinter(tag)
	amount := currency.INR.Amount(float64(paise) / 100)
	return printer.Sprint(currency.Symbol(amount))
}
