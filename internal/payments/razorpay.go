// Package payments talks to the Razorpay REST API: order creation and
// callback signature verification.
package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"furnimart/internal/models"
)

var (
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrSignatureMismatch    = errors.New("payment signature mismatch")
)

const defaultBaseURL = "https://api.razorpay.com/v1"

type Client struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	HTTP      *http.Client
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{
		KeyID:     keyID,
		KeySecret: keySecret,
		BaseURL:   defaultBaseURL,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether gateway credentials are present. Absence is an
// operator condition surfaced per request, not a startup failure, so the
// rest of the API stays available.
func (c *Client) Configured() bool {
	return c != nil && c.KeyID != "" && c.KeySecret != ""
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type gatewayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder registers an order with the gateway. Amount arrives in major
// units and is converted to minor units at the 100:1 ratio all supported
// two-decimal currencies share.
func (c *Client) CreateOrder(amount float64, currency, receipt string) (*models.GatewayOrder, error) {
	if !c.Configured() {
		return nil, ErrGatewayNotConfigured
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if currency == "" {
		currency = "INR"
	}
	if receipt == "" {
		receipt = "rcpt_" + uuid.NewString()
	}

	body, err := json.Marshal(orderRequest{
		Amount:   int64(math.Round(amount * 100)),
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ge gatewayError
		_ = json.Unmarshal(raw, &ge)
		log.Printf("[payments][create-order] gateway error status=%d code=%s", resp.StatusCode, ge.Error.Code)
		if ge.Error.Description != "" {
			return nil, fmt.Errorf("%w: %s", ErrGatewayUnavailable, ge.Error.Description)
		}
		return nil, fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var order models.GatewayOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("parse order response: %w", err)
	}
	log.Printf("[payments][create-order] ok order_id=%s amount=%d %s", order.ID, order.Amount, order.Currency)
	return &order, nil
}

// VerifySignature authenticates a payment callback. The expected value is
// the hex HMAC-SHA256 of "orderID|paymentID" under the key secret; the
// comparison is constant time. A mismatch is an expected adversarial input,
// not a server fault.
func (c *Client) VerifySignature(orderID, paymentID, signature string) error {
	if !c.Configured() {
		return ErrGatewayNotConfigured
	}

	mac := hmac.New(sha256.New, []byte(c.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}
