package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/ordering"
)

// AddCartItemRequest puts one unit of a product into the cart
type AddCartItemRequest struct {
	ProductRef string `json:"product_ref" binding:"required"`
}

// SelectAddressRequest chooses the delivery address for checkout
type SelectAddressRequest struct {
	AddressID uuid.UUID `json:"address_id" binding:"required"`
}

// CheckoutRequest converts the cart into an order
type CheckoutRequest struct {
	PaymentMethod string                   `json:"payment_method" binding:"required,oneof=razorpay cod"`
	Address       ShippingAddressRequest   `json:"address" binding:"required"`
}

// ShippingAddressRequest is the address snapshot captured at checkout
type ShippingAddressRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Phone   string `json:"phone" binding:"required,max=20"`
	Line1   string `json:"line1" binding:"required,max=255"`
	Line2   string `json:"line2" binding:"max=255"`
	City    string `json:"city" binding:"required,max=100"`
	State   string `json:"state" binding:"required,max=100"`
	Pincode string `json:"pincode" binding:"required,max=10"`
}

// VerifyPaymentRequest carries the gateway checkout callback
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id" binding:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

// UpdateOrderStatusRequest moves an order's fulfilment status
type UpdateOrderStatusRequest struct {
	Status  string `json:"status" binding:"required,oneof=Processing Shipped Delivered Cancelled"`
	Message string `json:"message" binding:"max=500"`
}

// SetTrackingRequest records shipment tracking details
type SetTrackingRequest struct {
	TrackingNumber    string     `json:"tracking_number" binding:"required,max=100"`
	Carrier           string     `json:"carrier" binding:"max=100"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID                uuid.UUID          `json:"id"`
	UserID            uuid.UUID          `json:"user_id"`
	Items             []CartItemResponse `json:"items"`
	SelectedAddressID *uuid.UUID         `json:"selected_address_id,omitempty"`
}

// TimelineEntryResponse is one order history record
type TimelineEntryResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderItemResponse represents an order line snapshot
type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                uuid.UUID               `json:"id"`
	UserID            uuid.UUID               `json:"user_id"`
	Items             []OrderItemResponse     `json:"items"`
	TotalPrice        decimal.Decimal         `json:"total_price"`
	Status            string                  `json:"status"`
	PaymentMethod     string                  `json:"payment_method"`
	PaymentState      string                  `json:"payment_state"`
	GatewayOrderID    string                  `json:"gateway_order_id,omitempty"`
	TrackingNumber    string                  `json:"tracking_number,omitempty"`
	Carrier           string                  `json:"carrier,omitempty"`
	EstimatedDelivery *time.Time              `json:"estimated_delivery,omitempty"`
	Timeline          []TimelineEntryResponse `json:"timeline"`
	CreatedAt         time.Time               `json:"created_at"`
}

// CheckoutResponse pairs the stored order with the gateway collect order
type CheckoutResponse struct {
	Order          OrderResponse `json:"order"`
	GatewayOrderID string        `json:"gateway_order_id,omitempty"`
	AmountSubunits int64         `json:"amount_subunits,omitempty"`
	Currency       string        `json:"currency,omitempty"`
}

func toCartResponse(c *ordering.Cart) *CartResponse {
	resp := &CartResponse{
		ID:                c.ID,
		UserID:            c.UserID,
		Items:             make([]CartItemResponse, 0, len(c.Items)),
		SelectedAddressID: c.SelectedAddressID,
	}
	for i := range c.Items {
		it := &c.Items[i]
		resp.Items = append(resp.Items, CartItemResponse{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return resp
}

func toOrderResponse(o *ordering.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:                o.ID,
		UserID:            o.UserID,
		Items:             make([]OrderItemResponse, 0, len(o.Items)),
		TotalPrice:        o.TotalPrice,
		Status:            string(o.Status),
		PaymentMethod:     o.PaymentMethod,
		PaymentState:      string(o.PaymentState),
		GatewayOrderID:    o.GatewayOrderID,
		TrackingNumber:    o.TrackingNumber,
		Carrier:           o.Carrier,
		EstimatedDelivery: o.EstimatedDelivery,
		Timeline:          make([]TimelineEntryResponse, 0, len(o.Timeline)),
		CreatedAt:         o.CreatedAt,
	}
	for i := range o.Items {
		it := &o.Items[i]
		resp.Items = append(resp.Items, OrderItemResponse{ProductID: it.ProductID, Name: it.Name, Price: it.Price, Quantity: it.Quantity})
	}
	for i := range o.Timeline {
		te := &o.Timeline[i]
		resp.Timeline = append(resp.Timeline, TimelineEntryResponse{Status: string(te.Status), Message: te.Message, Timestamp: te.Timestamp})
	}
	return resp
}
