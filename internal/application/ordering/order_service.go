package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/ordering"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
)

// OrderService handles checkout and order lifecycle operations.
//
// Stock for an order is already reserved by the cart, so checkout converts
// the reservation instead of touching stock again. A gateway failure during
// checkout leaves no local order behind; cancellation restores stock.
type OrderService struct {
	orderRepo   ordering.OrderRepository
	cartRepo    ordering.CartRepository
	productRepo catalog.ProductRepository
	gateway     PaymentGateway
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo ordering.OrderRepository,
	cartRepo ordering.CartRepository,
	productRepo catalog.ProductRepository,
	gateway PaymentGateway,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		gateway:     gateway,
	}
}

// Checkout converts the user's cart into an order. For gateway payments a
// collect order is registered first; if the gateway refuses, nothing is
// persisted and the cart keeps its reservations.
func (s *OrderService) Checkout(ctx context.Context, tenantID, userID uuid.UUID, req CheckoutRequest) (*CheckoutResponse, error) {
	cart, err := s.cartRepo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Cart is empty")
	}

	items := make([]ordering.OrderItem, 0, len(cart.Items))
	for i := range cart.Items {
		ci := &cart.Items[i]
		product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, ci.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, ordering.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.MRP,
			Quantity:  ci.Quantity,
		})
	}

	address := ordering.ShippingAddress{
		Name:    req.Address.Name,
		Phone:   req.Address.Phone,
		Line1:   req.Address.Line1,
		Line2:   req.Address.Line2,
		City:    req.Address.City,
		State:   req.Address.State,
		Pincode: req.Address.Pincode,
	}
	order, err := ordering.NewOrder(tenantID, userID, items, address, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	resp := &CheckoutResponse{}
	if req.PaymentMethod == ordering.PaymentMethodRazorpay {
		total := valueobject.NewMoneyINR(order.TotalPrice)
		gw, err := s.gateway.CreateOrder(ctx, total.Subunits(), string(total.Currency()), order.ID.String())
		if err != nil {
			return nil, shared.NewDomainError("EXTERNAL_SERVICE_ERROR", "Payment gateway rejected the order: "+err.Error())
		}
		order.AttachGatewayOrder(gw.ID)
		resp.GatewayOrderID = gw.ID
		resp.AmountSubunits = gw.Amount
		resp.Currency = gw.Currency
	}

	if err := s.orderRepo.SaveWithChildren(ctx, order); err != nil {
		return nil, err
	}

	// the cart's reservations now belong to the order; clear without restock
	itemIDs := make([]uuid.UUID, 0, len(cart.Items))
	for i := range cart.Items {
		itemIDs = append(itemIDs, cart.Items[i].ID)
	}
	cart.Clear()
	if err := s.cartRepo.SaveWithItems(ctx, cart); err != nil {
		return nil, err
	}
	if err := s.cartRepo.DeleteItems(ctx, cart.ID, itemIDs); err != nil {
		return nil, err
	}

	resp.Order = *toOrderResponse(order)
	return resp, nil
}

// VerifyPayment validates the checkout callback signature and marks the
// order paid
func (s *OrderService) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*OrderResponse, error) {
	if err := s.gateway.VerifyPaymentSignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature); err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid payment signature")
	}
	order, err := s.orderRepo.FindByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if err := order.RecordPayment(req.GatewayPaymentID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithChildren(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// WebhookPaymentCaptured marks an order paid from a gateway webhook
func (s *OrderService) WebhookPaymentCaptured(ctx context.Context, gatewayOrderID, gatewayPaymentID string) error {
	order, err := s.orderRepo.FindByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return err
	}
	if order.PaymentState == ordering.PaymentStateCompleted {
		return nil // webhook retry after callback already landed
	}
	if err := order.RecordPayment(gatewayPaymentID); err != nil {
		return err
	}
	return s.orderRepo.SaveWithChildren(ctx, order)
}

// WebhookPaymentFailed marks an order's payment failed from a gateway webhook
func (s *OrderService) WebhookPaymentFailed(ctx context.Context, gatewayOrderID string) error {
	order, err := s.orderRepo.FindByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return err
	}
	if order.PaymentState == ordering.PaymentStateFailed {
		return nil
	}
	if err := order.SetPaymentState(ordering.PaymentStateFailed); err != nil {
		return err
	}
	return s.orderRepo.SaveWithChildren(ctx, order)
}

// Cancel cancels an order, refunding a captured gateway payment first and
// restoring the order's stock. An unrefundable payment blocks cancellation.
func (s *OrderService) Cancel(ctx context.Context, tenantID, id uuid.UUID, reason string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	needsRefund := order.RequiresRefund()
	if err := order.Cancel(reason); err != nil {
		return nil, err
	}

	if needsRefund {
		total := valueobject.NewMoneyINR(order.TotalPrice)
		if _, err := s.gateway.Refund(ctx, order.GatewayPaymentID, total.Subunits()); err != nil {
			// in-memory transition is discarded; the stored order is untouched
			return nil, shared.NewDomainError("EXTERNAL_SERVICE_ERROR", "Refund failed: "+err.Error())
		}
		if err := order.SetPaymentState(ordering.PaymentStateRefunded); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.SaveWithChildren(ctx, order); err != nil {
		return nil, err
	}
	for i := range order.Items {
		it := &order.Items[i]
		_ = s.productRepo.AdjustStock(ctx, tenantID, it.ProductID, it.Quantity)
	}
	return toOrderResponse(order), nil
}

// UpdateStatus applies an explicit fulfilment transition
func (s *OrderService) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	target := ordering.OrderStatus(req.Status)
	if target == ordering.OrderStatusCancelled {
		return s.Cancel(ctx, tenantID, id, req.Message)
	}

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := order.Transition(target, req.Message); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithChildren(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// SetTracking records shipment tracking details
func (s *OrderService) SetTracking(ctx context.Context, tenantID, id uuid.UUID, req SetTrackingRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	order.SetTracking(req.TrackingNumber, req.Carrier, req.EstimatedDelivery)
	if err := s.orderRepo.SaveWithChildren(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Get returns one order
func (s *OrderService) Get(ctx context.Context, tenantID, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ListByUser returns the user's orders, newest first
func (s *OrderService) ListByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *toOrderResponse(&orders[i]))
	}
	return out, nil
}

// ProgressStale advances paid orders that have sat in one status past its
// delay. Each sweep moves an order at most one step, so a long-stale order
// still walks the chain one transition per sweep.
func (s *OrderService) ProgressStale(ctx context.Context, delays map[ordering.OrderStatus]time.Duration) (int, error) {
	cutoffs := make(map[ordering.OrderStatus]int64, len(delays))
	for status, delay := range delays {
		cutoffs[status] = time.Now().Add(-delay).Unix()
	}
	orders, err := s.orderRepo.FindAutoProgressible(ctx, cutoffs)
	if err != nil {
		return 0, err
	}

	progressed := 0
	for i := range orders {
		order := &orders[i]
		if order.PaymentState != ordering.PaymentStateCompleted {
			continue
		}
		next := order.Status.Next()
		if next == "" {
			continue
		}
		if err := order.Transition(next, "Automatically moved to "+string(next)); err != nil {
			continue
		}
		if err := s.orderRepo.SaveWithChildren(ctx, order); err != nil {
			return progressed, err
		}
		progressed++
	}
	return progressed, nil
}
