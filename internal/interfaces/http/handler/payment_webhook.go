package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailbooks/backend/internal/application/ordering"
)

// razorpayWebhookEvent is the subset of the webhook payload we act on.
type razorpayWebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// PaymentWebhookHandler receives Razorpay webhook callbacks. Webhooks
// are tenant-agnostic: orders are located by gateway order ID.
type PaymentWebhookHandler struct {
	BaseHandler
	orders  *ordering.OrderService
	gateway ordering.PaymentGateway
}

// NewPaymentWebhookHandler creates a PaymentWebhookHandler.
func NewPaymentWebhookHandler(orders *ordering.OrderService, gateway ordering.PaymentGateway, log *zap.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{
		BaseHandler: NewBaseHandler(log),
		orders:      orders,
		gateway:     gateway,
	}
}

// RegisterRoutes registers the webhook route under the API group.
func (h *PaymentWebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/webhook", h.Handle)
}

// Handle verifies the webhook signature against the raw body and applies
// the payment event. Unknown events are acknowledged so the gateway
// stops retrying them.
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "unreadable request body")
		return
	}
	signature := c.GetHeader("X-Razorpay-Signature")
	if err := h.gateway.VerifyWebhookSignature(body, signature); err != nil {
		h.HandleError(c, err)
		return
	}

	var event razorpayWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.BadRequest(c, "malformed webhook payload")
		return
	}

	payment := event.Payload.Payment.Entity
	switch event.Event {
	case "payment.captured":
		err = h.orders.WebhookPaymentCaptured(c.Request.Context(), payment.OrderID, payment.ID)
	case "payment.failed":
		err = h.orders.WebhookPaymentFailed(c.Request.Context(), payment.OrderID)
	default:
		h.requestLogger(c).Debug("ignoring webhook event", zap.String("event", event.Event))
		h.Success(c, gin.H{"status": "ignored"})
		return
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"status": "processed"})
}
