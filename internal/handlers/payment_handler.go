package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"furnimart/internal/models"
	"furnimart/internal/payments"
)

type PaymentHandler struct {
	gateway *payments.Client
}

func NewPaymentHandler(gateway *payments.Client) *PaymentHandler {
	return &PaymentHandler{gateway: gateway}
}

// @Summary      Create a payment order
// @Description  Registers an order with Razorpay and returns it with the public key id
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        request  body      models.CreateOrderRequest  true  "Order parameters"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      502      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Router       /api/razorpay/create-order [post]
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.gateway.CreateOrder(req.Amount, req.Currency, req.Receipt)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be greater than zero"})
		case errors.Is(err, payments.ErrGatewayNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment gateway not configured"})
		case errors.Is(err, payments.ErrGatewayUnavailable):
			log.Printf("[payments][create-order] gateway failure: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable"})
		default:
			log.Printf("[payments][create-order] failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Order creation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
		"key_id":  h.gateway.KeyID,
	})
}

// @Summary      Verify a payment
// @Description  Checks the gateway signature over the order and payment ids
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        request  body      models.VerifyPaymentRequest  true  "Gateway callback fields"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}
// @Failure      503      {object}  map[string]string
// @Router       /api/razorpay/verify-payment [post]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		if errors.Is(err, payments.ErrGatewayNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment gateway not configured"})
			return
		}
		// mismatch is expected adversarial input, not a server error
		log.Printf("[payments][verify] signature mismatch order_id=%s payment_id=%s", req.OrderID, req.PaymentID)
		c.JSON(http.StatusBadRequest, gin.H{
			"success":  false,
			"verified": false,
			"message":  "Payment verification failed",
		})
		return
	}

	log.Printf("[payments][verify] ok order_id=%s payment_id=%s", req.OrderID, req.PaymentID)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"verified": true,
		"message":  "Payment verified successfully",
	})
}
