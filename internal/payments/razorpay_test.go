package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedWith(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_KnownVector(t *testing.T) {
	t.Parallel()

	c := NewClient("rzp_test_key", "test_secret")

	good := signedWith("test_secret", "order_1", "pay_1")
	assert.NoError(t, c.VerifySignature("order_1", "pay_1", good))

	assert.ErrorIs(t, c.VerifySignature("order_1", "pay_1", "deadbeef"), ErrSignatureMismatch)
	assert.ErrorIs(t, c.VerifySignature("order_1", "pay_1", ""), ErrSignatureMismatch)

	// signature for different ids does not transfer
	other := signedWith("test_secret", "order_2", "pay_1")
	assert.ErrorIs(t, c.VerifySignature("order_1", "pay_1", other), ErrSignatureMismatch)
}

func TestVerifySignature_NotConfigured(t *testing.T) {
	t.Parallel()

	c := NewClient("", "")
	assert.ErrorIs(t, c.VerifySignature("order_1", "pay_1", "sig"), ErrGatewayNotConfigured)
}

func TestCreateOrder_InvalidAmount(t *testing.T) {
	t.Parallel()

	c := NewClient("rzp_test_key", "test_secret")
	for _, amount := range []float64{0, -1, -0.01} {
		_, err := c.CreateOrder(amount, "INR", "rcpt_1")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestCreateOrder_NotConfigured(t *testing.T) {
	t.Parallel()

	c := NewClient("rzp_test_key", "")
	_, err := c.CreateOrder(100, "INR", "rcpt_1")
	assert.ErrorIs(t, err, ErrGatewayNotConfigured)
}

func TestCreateOrder_Success(t *testing.T) {
	t.Parallel()

	var got orderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "rzp_test_key", user)
		require.Equal(t, "test_secret", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_ABC123",
			"entity":   "order",
			"amount":   got.Amount,
			"currency": got.Currency,
			"receipt":  got.Receipt,
			"status":   "created",
		})
	}))
	defer srv.Close()

	c := NewClient("rzp_test_key", "test_secret")
	c.BaseURL = srv.URL

	order, err := c.CreateOrder(499.99, "INR", "rcpt_42")
	require.NoError(t, err)

	assert.Equal(t, int64(49999), got.Amount, "major units convert to paise exactly")
	assert.Equal(t, "INR", got.Currency)
	assert.Equal(t, "rcpt_42", got.Receipt)

	assert.Equal(t, "order_ABC123", order.ID)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrder_Defaults(t *testing.T) {
	t.Parallel()

	var got orderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "order_X", "status": "created"})
	}))
	defer srv.Close()

	c := NewClient("rzp_test_key", "test_secret")
	c.BaseURL = srv.URL

	_, err := c.CreateOrder(10, "", "")
	require.NoError(t, err)

	assert.Equal(t, "INR", got.Currency)
	assert.True(t, strings.HasPrefix(got.Receipt, "rcpt_"), "server fills in a receipt id")
}

func TestCreateOrder_GatewayError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"code":        "BAD_REQUEST_ERROR",
				"description": "Order amount less than minimum amount allowed",
			},
		})
	}))
	defer srv.Close()

	c := NewClient("rzp_test_key", "test_secret")
	c.BaseURL = srv.URL

	_, err := c.CreateOrder(0.001, "INR", "rcpt_1")
	require.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.Contains(t, err.Error(), "minimum amount", "gateway detail is surfaced")
	assert.NotContains(t, err.Error(), "test_secret", "secret never leaks into errors")
}

func TestCreateOrder_GatewayUnreachable(t *testing.T) {
	t.Parallel()

	c := NewClient("rzp_test_key", "test_secret")
	c.BaseURL = "http://127.0.0.1:1" // nothing listens here

	_, err := c.CreateOrder(10, "INR", "rcpt_1")
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}
