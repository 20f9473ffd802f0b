package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func hexSign(t *testing.T, secret string, data []byte) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	const secret = "shhh"
	sig := hexSign(t, secret, []byte("order_abc|pay_xyz"))

	if !VerifyPaymentSignature("order_abc", "pay_xyz", sig, secret) {
		t.Fatalf("valid signature rejected")
	}
	if VerifyPaymentSignature("order_abc", "pay_xyz", sig, "wrong-secret") {
		t.Fatalf("signature accepted with wrong secret")
	}
	if VerifyPaymentSignature("order_abc", "pay_other", sig, secret) {
		t.Fatalf("signature accepted for different payment id")
	}
	if VerifyPaymentSignature("order_abc", "pay_xyz", "", secret) {
		t.Fatalf("empty signature accepted")
	}
	if VerifyPaymentSignature("order_abc", "pay_xyz", hexSign(t, "", []byte("order_abc|pay_xyz")), "") {
		t.Fatalf("empty secret accepted")
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	const secret = "webhook-secret"
	body := []byte(`{"event":"payment.captured"}`)
	sig := hexSign(t, secret, body)

	if !VerifyWebhookSignature(body, sig, secret) {
		t.Fatalf("valid webhook signature rejected")
	}
	if VerifyWebhookSignature(body, sig, "other") {
		t.Fatalf("webhook signature accepted with wrong secret")
	}
	if VerifyWebhookSignature([]byte(`{"event":"tampered"}`), sig, secret) {
		t.Fatalf("webhook signature accepted for tampered body")
	}
	if VerifyWebhookSignature(body, hexSign(t, "", body), "") {
		t.Fatalf("empty webhook secret accepted")
	}
}

func TestParseWebhookEvent(t *testing.T) {
	body := []byte(`{
		"event": "payment.captured",
		"payload": {
			"payment": {
				"entity": {
					"id": "pay_123",
					"order_id": "order_abc",
					"amount": 25000,
					"status": "captured",
					"notes": {"campaign_id": "c1"}
				}
			}
		}
	}`)

	event, err := ParseWebhookEvent(body)
	if err != nil {
		t.Fatalf("ParseWebhookEvent returned error: %v", err)
	}
	if event.Event != "payment.captured" {
		t.Fatalf("event = %q", event.Event)
	}
	entity := event.Payload.Payment.Entity
	if entity.ID != "pay_123" || entity.OrderID != "order_abc" || entity.Amount != 25000 {
		t.Fatalf("unexpected payment entity: %+v", entity)
	}
	if entity.Notes["campaign_id"] != "c1" {
		t.Fatalf("notes not decoded: %+v", entity.Notes)
	}
}
