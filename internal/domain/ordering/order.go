package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// OrderStatus represents the fulfilment state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status.
// Fulfilment moves strictly forward; Cancelled is reachable from Pending
// and Processing only.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
		OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped:    {OrderStatusDelivered},
		OrderStatusDelivered:  {},
		OrderStatusCancelled:  {},
	}
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Next returns the automatic forward step for the status, or empty when the
// status does not auto-progress
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case OrderStatusPending:
		return OrderStatusProcessing
	case OrderStatusProcessing:
		return OrderStatusShipped
	case OrderStatusShipped:
		return OrderStatusDelivered
	}
	return ""
}

// PaymentState represents the payment collection state of an order,
// distinct from document-level payment status on bills
type PaymentState string

const (
	PaymentStatePending    PaymentState = "pending"
	PaymentStateProcessing PaymentState = "processing"
	PaymentStateCompleted  PaymentState = "completed"
	PaymentStateRefunded   PaymentState = "refunded"
	PaymentStateFailed     PaymentState = "failed"
)

// IsValid checks if the payment state is valid
func (s PaymentState) IsValid() bool {
	switch s {
	case PaymentStatePending, PaymentStateProcessing, PaymentStateCompleted,
		PaymentStateRefunded, PaymentStateFailed:
		return true
	}
	return false
}

// CanTransitionTo checks if the payment state can transition to the target
func (s PaymentState) CanTransitionTo(target PaymentState) bool {
	transitions := map[PaymentState][]PaymentState{
		PaymentStatePending:    {PaymentStateProcessing, PaymentStateCompleted, PaymentStateFailed},
		PaymentStateProcessing: {PaymentStateCompleted, PaymentStateFailed},
		PaymentStateCompleted:  {PaymentStateRefunded},
		PaymentStateRefunded:   {},
		PaymentStateFailed:     {},
	}
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// PaymentMethodRazorpay and PaymentMethodCOD are the supported collection
// channels for orders
const (
	PaymentMethodRazorpay = "razorpay"
	PaymentMethodCOD      = "cod"
)

// OrderItem is an immutable snapshot of a product at order time. Later
// edits to the product do not affect placed orders.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"size:255;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity  int64           `gorm:"not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// ShippingAddress is the address snapshot embedded in an order
type ShippingAddress struct {
	Name    string `gorm:"column:ship_name;size:255"`
	Phone   string `gorm:"column:ship_phone;size:20"`
	Line1   string `gorm:"column:ship_line1;size:255"`
	Line2   string `gorm:"column:ship_line2;size:255"`
	City    string `gorm:"column:ship_city;size:100"`
	State   string `gorm:"column:ship_state;size:100"`
	Pincode string `gorm:"column:ship_pincode;size:10"`
}

// TimelineEntry is one append-only record in an order's history. Entries
// are never rewritten or removed.
type TimelineEntry struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status    OrderStatus `gorm:"size:20;not null"`
	Message   string      `gorm:"size:500"`
	Timestamp time.Time   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TimelineEntry) TableName() string {
	return "order_timeline_entries"
}

// Order is a placed customer order with item and address snapshots,
// a fulfilment status machine and a payment state machine
type Order struct {
	shared.TenantAggregateRoot
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items             []OrderItem     `gorm:"foreignKey:OrderID;references:ID"`
	Address           ShippingAddress `gorm:"embedded"`
	TotalPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status            OrderStatus     `gorm:"size:20;default:'Pending';index"`
	StatusChangedAt   time.Time       `gorm:"not null"`
	PaymentMethod     string          `gorm:"size:20;not null"`
	PaymentState      PaymentState    `gorm:"size:20;default:'pending'"`
	GatewayOrderID    string          `gorm:"size:100;index"`
	GatewayPaymentID  string          `gorm:"size:100"`
	TrackingNumber    string          `gorm:"size:100"`
	Carrier           string          `gorm:"size:100"`
	EstimatedDelivery *time.Time
	Timeline          []TimelineEntry `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order from item and address snapshots
func NewOrder(tenantID, userID uuid.UUID, items []OrderItem, address ShippingAddress, paymentMethod string) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "User ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Order must have at least one item")
	}
	if paymentMethod != PaymentMethodRazorpay && paymentMethod != PaymentMethodCOD {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unsupported payment method: "+paymentMethod)
	}

	total := decimal.Zero
	for i := range items {
		if items[i].Quantity <= 0 {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Item quantity must be positive")
		}
		if items[i].Price.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Item price cannot be negative")
		}
		total = total.Add(items[i].Price.Mul(decimal.NewFromInt(items[i].Quantity)))
	}

	now := time.Now()
	order := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		Address:             address,
		TotalPrice:          total.Round(2),
		Status:              OrderStatusPending,
		StatusChangedAt:     now,
		PaymentMethod:       paymentMethod,
		PaymentState:        PaymentStatePending,
	}
	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = order.ID
		items[i].CreatedAt = now
	}
	order.Items = items
	order.appendTimeline(OrderStatusPending, "Order placed", now)
	return order, nil
}

// Transition moves the order to the target fulfilment status and appends a
// timeline entry
func (o *Order) Transition(target OrderStatus, message string) error {
	if !target.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid order status: "+string(target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition order from "+string(o.Status)+" to "+string(target))
	}
	now := time.Now()
	o.Status = target
	o.StatusChangedAt = now
	o.appendTimeline(target, message, now)
	o.UpdatedAt = now
	return nil
}

// Cancel validates that the order can be cancelled and that any completed
// gateway payment is refundable, then transitions to Cancelled. An order
// paid through the gateway without a recorded payment id cannot be
// refunded, so cancellation is refused before any state changes.
func (o *Order) Cancel(message string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot cancel order in status "+string(o.Status))
	}
	if o.RequiresRefund() && o.GatewayPaymentID == "" {
		return shared.NewDomainError("VALIDATION_ERROR",
			"Order payment cannot be refunded: missing gateway payment reference")
	}
	return o.Transition(OrderStatusCancelled, message)
}

// RequiresRefund reports whether cancelling this order must refund a
// collected gateway payment
func (o *Order) RequiresRefund() bool {
	return o.PaymentState == PaymentStateCompleted && o.PaymentMethod == PaymentMethodRazorpay
}

// SetPaymentState moves the payment state machine
func (o *Order) SetPaymentState(target PaymentState) error {
	if !target.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid payment state: "+string(target))
	}
	if !o.PaymentState.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition payment from "+string(o.PaymentState)+" to "+string(target))
	}
	o.PaymentState = target
	o.UpdatedAt = time.Now()
	return nil
}

// AttachGatewayOrder records the gateway order reference created at checkout
func (o *Order) AttachGatewayOrder(gatewayOrderID string) {
	o.GatewayOrderID = gatewayOrderID
	o.UpdatedAt = time.Now()
}

// RecordPayment records a verified gateway payment and completes the
// payment state
func (o *Order) RecordPayment(gatewayPaymentID string) error {
	if gatewayPaymentID == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Gateway payment ID cannot be empty")
	}
	if err := o.SetPaymentState(PaymentStateCompleted); err != nil {
		return err
	}
	o.GatewayPaymentID = gatewayPaymentID
	return nil
}

// SetTracking records shipment tracking details
func (o *Order) SetTracking(trackingNumber, carrier string, estimatedDelivery *time.Time) {
	o.TrackingNumber = trackingNumber
	o.Carrier = carrier
	o.EstimatedDelivery = estimatedDelivery
	o.UpdatedAt = time.Now()
}

// IsTerminal reports whether the order can no longer change status
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}

func (o *Order) appendTimeline(status OrderStatus, message string, at time.Time) {
	o.Timeline = append(o.Timeline, TimelineEntry{
		ID:        uuid.New(),
		OrderID:   o.ID,
		Status:    status,
		Message:   message,
		Timestamp: at,
	})
}
