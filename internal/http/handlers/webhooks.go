package handlers

import (
	"io"
	"net/http"

	"dreamxec/internal/domain"
	"dreamxec/internal/providers/razorpay"
)

const maxWebhookBody = 1 << 20

// DonationsWebhook is the server-to-server reconciliation path. Razorpay
// pushes payment events signed with the webhook secret; a captured payment is
// recorded through the same idempotent write as the checkout callback, so
// whichever path lands first wins and the other becomes a no-op.
func (a *App) DonationsWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "unreadable body")
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !razorpay.VerifyWebhookSignature(body, signature, a.WebhookSecret) {
		a.Logger.Warn().Msg("webhook signature mismatch")
		a.domainError(w, domain.ErrInvalidSignature)
		return
	}

	event, err := razorpay.ParseWebhookEvent(body)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "malformed event")
		return
	}
	if event.Event != "payment.captured" {
		a.json(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	payment := event.Payload.Payment.Entity
	if payment.ID == "" || payment.OrderID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "incomplete payment entity")
		return
	}

	created, err := a.recordVerifiedPayment(r.Context(), payment.Notes, payment.Amount, payment.OrderID, payment.ID, "")
	if err != nil {
		a.Logger.Error().Err(err).Str("payment_id", payment.ID).Msg("webhook recording failed")
		a.domainError(w, err)
		return
	}
	if !created {
		a.Logger.Info().Str("payment_id", payment.ID).Msg("webhook payment already recorded")
	}
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
