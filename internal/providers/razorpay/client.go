package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrMissingCredentials indicates the client was configured without API keys.
var ErrMissingCredentials = errors.New("razorpay: key id and key secret are required")

const defaultBaseURL = "https://api.razorpay.com/v1"

// Options configures the Razorpay REST client.
type Options struct {
	KeyID          string
	KeySecret      string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *zerolog.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the Razorpay Orders API.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger
}

// Order is a provider-side payment intent. Amount is in paise. Notes carry
// the authoritative donation metadata written at order creation and read back
// at verification time.
type Order struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Status   string            `json:"status"`
	Notes    map[string]string `json:"notes"`
}

// Payment is the captured-payment entity delivered by webhooks.
type Payment struct {
	ID      string            `json:"id"`
	OrderID string            `json:"order_id"`
	Amount  int64             `json:"amount"`
	Status  string            `json:"status"`
	Notes   map[string]string `json:"notes"`
}

// CreateOrderParams captures the inputs for order creation.
type CreateOrderParams struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// OrdersAPI is the surface the donation flow depends on.
type OrdersAPI interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*Order, error)
	FetchOrder(ctx context.Context, orderID string) (*Order, error)
}

// NewClient validates options and builds a client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.KeyID) == "" || strings.TrimSpace(opts.KeySecret) == "" {
		return nil, ErrMissingCredentials
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		keyID:      opts.KeyID,
		keySecret:  opts.KeySecret,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     opts.Logger,
	}, nil
}

// KeyID returns the public key identifier handed to browser checkout.
func (c *Client) KeyID() string {
	return c.keyID
}

type orderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder registers a payment intent with the provider. Nothing is
// persisted locally at this step.
func (c *Client) CreateOrder(ctx context.Context, params CreateOrderParams) (*Order, error) {
	currency := params.Currency
	if currency == "" {
		currency = "INR"
	}
	payload, err := json.Marshal(orderRequest{
		Amount:   params.Amount,
		Currency: currency,
		Receipt:  params.Receipt,
		Notes:    params.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("razorpay: encode order: %w", err)
	}

	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", bytes.NewReader(payload), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// FetchOrder retrieves the provider's record of an order, including the notes
// written at creation time.
func (c *Client) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("razorpay: order id is required")
	}
	var order Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("razorpay: build request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("razorpay: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var detail apiError
		desc := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &detail) == nil && detail.Error.Description != "" {
			desc = detail.Error.Description
		}
		if c.logger != nil {
			c.logger.Error().Int("status", resp.StatusCode).Str("path", path).Str("detail", desc).Msg("razorpay request failed")
		}
		return fmt.Errorf("razorpay: %s %s: status %d: %s", method, path, resp.StatusCode, desc)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("razorpay: decode response: %w", err)
	}
	return nil
}

var _ OrdersAPI = (*Client)(nil)
