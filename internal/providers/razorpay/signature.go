package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// VerifyPaymentSignature checks the checkout callback signature: the
// hex-encoded HMAC-SHA256 of "orderID|paymentID" keyed with the API secret.
// The comparison is constant time. An empty secret never verifies.
func VerifyPaymentSignature(orderID, paymentID, signature, secret string) bool {
	if orderID == "" || paymentID == "" || signature == "" || secret == "" {
		return false
	}
	expected := signHex([]byte(orderID+"|"+paymentID), secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against the
// hex-encoded HMAC-SHA256 of the raw webhook body, keyed with the webhook
// secret (distinct from the API secret). An empty secret never verifies, so a
// misconfigured deployment rejects every webhook instead of accepting forged
// ones signed with the empty-key HMAC.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	if len(body) == 0 || signature == "" || secret == "" {
		return false
	}
	expected := signHex(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func signHex(data []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

// WebhookEvent is the envelope Razorpay pushes for payment events.
type WebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity Payment `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// ParseWebhookEvent decodes a webhook body after its signature has been
// verified.
func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
