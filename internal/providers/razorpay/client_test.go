package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient(Options{KeyID: "", KeySecret: ""}); err != ErrMissingCredentials {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
	if _, err := NewClient(Options{KeyID: "rzp_test", KeySecret: " "}); err != ErrMissingCredentials {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
}

func TestCreateOrderSendsNotesAndAuth(t *testing.T) {
	var gotPath, gotAuthUser string
	var gotBody orderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuthUser, _, _ = r.BasicAuth()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Order{
			ID:       "order_abc",
			Amount:   gotBody.Amount,
			Currency: gotBody.Currency,
			Receipt:  gotBody.Receipt,
			Status:   "created",
			Notes:    gotBody.Notes,
		})
	}))
	defer srv.Close()

	client, err := NewClient(Options{KeyID: "rzp_test_key", KeySecret: "secret", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	order, err := client.CreateOrder(context.Background(), CreateOrderParams{
		Amount:  25000,
		Receipt: "rcpt_1",
		Notes:   map[string]string{"campaign_id": "c1", "anonymous": "false"},
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	if gotPath != "/orders" {
		t.Fatalf("path = %q, want /orders", gotPath)
	}
	if gotAuthUser != "rzp_test_key" {
		t.Fatalf("basic auth user = %q", gotAuthUser)
	}
	if gotBody.Currency != "INR" {
		t.Fatalf("currency = %q, want INR default", gotBody.Currency)
	}
	if order.ID != "order_abc" || order.Amount != 25000 {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.Notes["campaign_id"] != "c1" {
		t.Fatalf("notes not round-tripped: %+v", order.Notes)
	}
}

func TestFetchOrderSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"order does not exist"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(Options{KeyID: "rzp_test_key", KeySecret: "secret", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = client.FetchOrder(context.Background(), "order_missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "order does not exist") {
		t.Fatalf("error should carry provider description, got %v", err)
	}
}

func TestFetchOrderRejectsEmptyID(t *testing.T) {
	client, err := NewClient(Options{KeyID: "rzp_test_key", KeySecret: "secret"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := client.FetchOrder(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty order id")
	}
}
