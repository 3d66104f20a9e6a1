package models

// CreateOrderRequest is the client's order-creation payload. Amount is in
// major units (rupees); the adapter converts to the gateway's minor units.
type CreateOrderRequest struct {
	Amount   float64 `json:"amount" binding:"required"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

// GatewayOrder mirrors the order object Razorpay returns on creation.
type GatewayOrder struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type VerifyPaymentRequest struct {
	OrderID   string                 `json:"razorpay_order_id" binding:"required"`
	PaymentID string                 `json:"razorpay_payment_id" binding:"required"`
	Signature string                 `json:"razorpay_signature" binding:"required"`
	OrderData map[string]interface{} `json:"orderData"`
}
