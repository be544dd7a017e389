// Package payment implements the online payment gateway port.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/retailbooks/backend/internal/application/ordering"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/infrastructure/config"
)

const (
	razorpayOrdersPath = "/orders"
	razorpayRefundPath = "/payments/%s/refund"

	defaultTimeout = 30 * time.Second
)

// RazorpayAdapter implements ordering.PaymentGateway against the Razorpay
// REST API. Amounts cross the boundary in paise.
type RazorpayAdapter struct {
	keyID         string
	keySecret     string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
}

// NewRazorpayAdapter creates a new Razorpay adapter
func NewRazorpayAdapter(cfg config.RazorpayConfig) (*RazorpayAdapter, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, fmt.Errorf("razorpay: key id and key secret are required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("razorpay: base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &RazorpayAdapter{
		keyID:         cfg.KeyID,
		keySecret:     cfg.KeySecret,
		webhookSecret: cfg.WebhookSecret,
		baseURL:       cfg.BaseURL,
		httpClient:    &http.Client{Timeout: timeout},
	}, nil
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type razorpayRefundResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type razorpayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder registers a collect order with Razorpay
func (a *RazorpayAdapter) CreateOrder(ctx context.Context, amountSubunits int64, currency, receipt string) (*ordering.GatewayOrder, error) {
	if amountSubunits <= 0 {
		return nil, fmt.Errorf("razorpay: amount must be positive")
	}

	body, err := json.Marshal(map[string]any{
		"amount":   amountSubunits,
		"currency": currency,
		"receipt":  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to marshal order request: %w", err)
	}

	respBody, err := a.doRequest(ctx, http.MethodPost, razorpayOrdersPath, body)
	if err != nil {
		return nil, err
	}

	var order razorpayOrderResponse
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("razorpay: failed to parse order response: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("razorpay: order response missing id")
	}

	return &ordering.GatewayOrder{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
	}, nil
}

// Refund returns a captured payment and reports the gateway refund id
func (a *RazorpayAdapter) Refund(ctx context.Context, paymentID string, amountSubunits int64) (string, error) {
	if paymentID == "" {
		return "", fmt.Errorf("razorpay: payment id is required")
	}

	body, err := json.Marshal(map[string]any{
		"amount": amountSubunits,
	})
	if err != nil {
		return "", fmt.Errorf("razorpay: failed to marshal refund request: %w", err)
	}

	respBody, err := a.doRequest(ctx, http.MethodPost, fmt.Sprintf(razorpayRefundPath, paymentID), body)
	if err != nil {
		return "", err
	}

	var refund razorpayRefundResponse
	if err := json.Unmarshal(respBody, &refund); err != nil {
		return "", fmt.Errorf("razorpay: failed to parse refund response: %w", err)
	}
	if refund.ID == "" {
		return "", fmt.Errorf("razorpay: refund response missing id")
	}
	return refund.ID, nil
}

// VerifyPaymentSignature checks the checkout callback signature: an
// HMAC-SHA256 of "orderId|paymentId" under the key secret
func (a *RazorpayAdapter) VerifyPaymentSignature(gatewayOrderID, gatewayPaymentID, signature string) error {
	expected := hmacHex(a.keySecret, []byte(gatewayOrderID+"|"+gatewayPaymentID))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return shared.NewDomainError("VALIDATION_ERROR", "Payment signature verification failed")
	}
	return nil
}

// VerifyWebhookSignature checks the raw webhook body against the
// X-Razorpay-Signature header value
func (a *RazorpayAdapter) VerifyWebhookSignature(body []byte, signature string) error {
	if a.webhookSecret == "" {
		return fmt.Errorf("razorpay: webhook secret is not configured")
	}
	expected := hmacHex(a.webhookSecret, body)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return shared.NewDomainError("VALIDATION_ERROR", "Webhook signature verification failed")
	}
	return nil
}

func hmacHex(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func (a *RazorpayAdapter) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(a.keyID, a.keySecret)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp razorpayErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return nil, fmt.Errorf("razorpay: %s - %s", errResp.Error.Code, errResp.Error.Description)
		}
		return nil, fmt.Errorf("razorpay: HTTP %d", resp.StatusCode)
	}
	return respBody, nil
}
