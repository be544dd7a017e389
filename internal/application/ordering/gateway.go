package ordering

import "context"

// GatewayOrder is the reference the payment gateway hands back at checkout
type GatewayOrder struct {
	ID       string
	Amount   int64 // subunits (paise)
	Currency string
}

// PaymentGateway abstracts the online payment provider used at checkout.
// Amounts cross this boundary in currency subunits.
type PaymentGateway interface {
	// CreateOrder registers a collect order with the gateway
	CreateOrder(ctx context.Context, amountSubunits int64, currency, receipt string) (*GatewayOrder, error)
	// Refund returns a captured payment, fully when amountSubunits covers it
	Refund(ctx context.Context, paymentID string, amountSubunits int64) (string, error)
	// VerifyPaymentSignature checks the checkout callback signature
	VerifyPaymentSignature(gatewayOrderID, gatewayPaymentID, signature string) error
	// VerifyWebhookSignature checks the raw webhook body signature
	VerifyWebhookSignature(body []byte, signature string) error
}
