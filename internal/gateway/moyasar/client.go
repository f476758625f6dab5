// Package moyasar is a thin client for the Moyasar payment-creation API.
// Moyasar has no Go SDK; requests go over plain HTTP with the secret key as
// the basic-auth username.
package moyasar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.moyasar.com/v1"

// PaymentRequest is the payment-creation payload forwarded to the gateway.
type PaymentRequest struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Source      map[string]string `json:"source,omitempty"`
	CallbackURL string            `json:"callback_url,omitempty"`
}

// PaymentResult carries the gateway's verbatim response. On a non-2xx status
// the caller forwards StatusCode and Body to its own client unchanged.
type PaymentResult struct {
	StatusCode int
	Body       []byte
	Payment    map[string]interface{} // decoded payment object, 2xx only
}

// OK reports whether the gateway accepted the payment.
func (r *PaymentResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// TransactionURL returns the gateway-provided redirect URL, if any.
func (r *PaymentResult) TransactionURL() string {
	source, ok := r.Payment["source"].(map[string]interface{})
	if !ok {
		return ""
	}
	u, _ := source["transaction_url"].(string)
	return u
}

// PaymentID returns the gateway payment id, if present.
func (r *PaymentResult) PaymentID() string {
	id, _ := r.Payment["id"].(string)
	return id
}

// Client talks to one Moyasar environment. The base URL and HTTP client are
// injectable so tests can point it at a fake gateway.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// CreatePayment forwards one payment-creation request. The call is attempted
// exactly once; a transport error propagates to the caller untouched.
func (c *Client) CreatePayment(ctx context.Context, secretKey string, req *PaymentRequest) (*PaymentResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("moyasar: marshal payment: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/payments", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("moyasar: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// Moyasar authenticates with the secret key as the basic-auth username
	// and an empty password.
	httpReq.SetBasicAuth(secretKey, "")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("moyasar: create payment: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("moyasar: read response: %w", err)
	}

	result := &PaymentResult{StatusCode: resp.StatusCode, Body: body}
	if result.OK() {
		if err := json.Unmarshal(body, &result.Payment); err != nil {
			return nil, fmt.Errorf("moyasar: decode payment: %w", err)
		}
	}
	return result, nil
}
