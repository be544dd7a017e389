// Package trade implements application services for purchases and returns.
package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ledgerapp "github.com/retailbooks/backend/internal/application/ledger"
	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/partner"
	"github.com/retailbooks/backend/internal/domain/sequence"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/trade"
)

// PurchaseService records supplier purchases, moving stock in and posting
// the supplier's side of the ledger
type PurchaseService struct {
	purchaseRepo trade.PurchaseRepository
	productRepo  catalog.ProductRepository
	supplierRepo partner.SupplierRepository
	ledgerSvc    *ledgerapp.Service
	sequencer    sequence.Sequencer
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo trade.PurchaseRepository,
	productRepo catalog.ProductRepository,
	supplierRepo partner.SupplierRepository,
	ledgerSvc *ledgerapp.Service,
	sequencer sequence.Sequencer,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		ledgerSvc:    ledgerSvc,
		sequencer:    sequencer,
	}
}

func buildTradeItems(ctx context.Context, productRepo catalog.ProductRepository, tenantID uuid.UUID, items []TradeItemRequest, build func(productID uuid.UUID, qty int64, rate TradeItemRequest) error) error {
	for _, req := range items {
		product, err := productRepo.FindByRef(ctx, tenantID, req.ProductRef)
		if err != nil {
			return err
		}
		if err := build(product.ID, req.Qty, req); err != nil {
			return err
		}
	}
	return nil
}

// Preview computes the voucher totals without persisting anything
func (s *PurchaseService) Preview(ctx context.Context, tenantID uuid.UUID, items []TradeItemRequest) (*PurchasePreviewResponse, error) {
	nextNo, err := s.sequencer.Peek(ctx, tenantID, sequence.KindPurchase)
	if err != nil {
		return nil, err
	}
	resp := &PurchasePreviewResponse{NextPurchaseNo: nextNo, Items: make([]TradeItemResponse, 0, len(items))}
	err = buildTradeItems(ctx, s.productRepo, tenantID, items, func(productID uuid.UUID, qty int64, req TradeItemRequest) error {
		item, err := trade.NewPurchaseItem(productID, qty, req.Rate)
		if err != nil {
			return err
		}
		resp.Items = append(resp.Items, TradeItemResponse{
			ID: item.ID, ProductID: item.ProductID, Qty: item.Qty, Rate: item.Rate, Amount: item.Amount,
		})
		resp.TotalAmount = resp.TotalAmount.Add(item.Amount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Create records a purchase: stock comes in, the supplier is credited
func (s *PurchaseService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	supplier, err := s.supplierRepo.FindByRef(ctx, tenantID, req.SupplierRef)
	if err != nil {
		return nil, err
	}

	var items []trade.PurchaseItem
	err = buildTradeItems(ctx, s.productRepo, tenantID, req.Items, func(productID uuid.UUID, qty int64, r TradeItemRequest) error {
		item, err := trade.NewPurchaseItem(productID, qty, r.Rate)
		if err != nil {
			return err
		}
		items = append(items, *item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	purchaseID, err := s.sequencer.Next(ctx, tenantID, sequence.KindPurchase)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	purchase, err := trade.NewPurchase(tenantID, purchaseID, req.BillNo, supplier.ID, supplier.Name, date, items)
	if err != nil {
		return nil, err
	}
	if req.PaymentMethod != "" || req.Status != "" {
		status := purchase.Status
		if req.Status != "" {
			status = trade.PurchaseStatus(req.Status)
		}
		method := purchase.PaymentMethod
		if req.PaymentMethod != "" {
			method = req.PaymentMethod
		}
		purchase.SetPayment(method, status)
	}

	for i := range purchase.Items {
		it := &purchase.Items[i]
		if err := s.productRepo.AdjustStock(ctx, tenantID, it.ProductID, it.Qty); err != nil {
			for j := 0; j < i; j++ {
				_ = s.productRepo.AdjustStock(ctx, tenantID, purchase.Items[j].ProductID, -purchase.Items[j].Qty)
			}
			return nil, err
		}
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		for i := range purchase.Items {
			_ = s.productRepo.AdjustStock(ctx, tenantID, purchase.Items[i].ProductID, -purchase.Items[i].Qty)
		}
		return nil, err
	}

	if err := s.postPurchase(ctx, tenantID, supplier, purchase); err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// postPurchase credits the supplier with the voucher amount; a settled
// purchase carries a matching debit so the balance nets to zero
func (s *PurchaseService) postPurchase(ctx context.Context, tenantID uuid.UUID, supplier *partner.Supplier, purchase *trade.Purchase) error {
	debit := decimal.Zero
	if purchase.Status == trade.PurchaseStatusPaid {
		debit = purchase.TotalAmount
	}
	_, err := s.ledgerSvc.Record(ctx, tenantID, ledgerapp.RecordEntryRequest{
		PartyType:     string(ledger.PartyTypeSupplier),
		PartyCode:     supplier.Code,
		PartyName:     supplier.Name,
		MobileNumber:  supplier.Phone,
		Type:          string(ledger.EntryTypePurchase),
		ReferenceNo:   purchase.PurchaseID,
		PaymentMethod: purchase.PaymentMethod,
		Debit:         debit,
		Credit:        purchase.TotalAmount,
		Date:          &purchase.Date,
	})
	return err
}

// GetByRef resolves a purchase by id or voucher number
func (s *PurchaseService) GetByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*PurchaseResponse, error) {
	if id, err := uuid.Parse(ref); err == nil {
		purchase, err := s.purchaseRepo.FindByIDForTenant(ctx, tenantID, id)
		if err == nil {
			return toPurchaseResponse(purchase), nil
		}
		if err != shared.ErrNotFound {
			return nil, err
		}
	}
	purchase, err := s.purchaseRepo.FindByPurchaseID(ctx, tenantID, ref)
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// List returns purchases for the tenant
func (s *PurchaseService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseResponse, error) {
	purchases, err := s.purchaseRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		out = append(out, *toPurchaseResponse(&purchases[i]))
	}
	return out, nil
}

// ListByDateRange returns purchases inside the validated range
func (s *PurchaseService) ListByDateRange(ctx context.Context, tenantID uuid.UUID, from, to *time.Time) ([]PurchaseResponse, error) {
	if err := shared.ValidateDateRange(from, to); err != nil {
		return nil, err
	}
	start := time.Time{}
	end := time.Now()
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	purchases, err := s.purchaseRepo.FindByDateRange(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		out = append(out, *toPurchaseResponse(&purchases[i]))
	}
	return out, nil
}

// Delete removes the purchase and takes its stock back out. The guarded
// decrement refuses when the goods were already sold on; ledger history
// stays untouched either way.
func (s *PurchaseService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	purchase, err := s.purchaseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	for i := range purchase.Items {
		it := &purchase.Items[i]
		if err := s.productRepo.AdjustStock(ctx, tenantID, it.ProductID, -it.Qty); err != nil {
			for j := 0; j < i; j++ {
				_ = s.productRepo.AdjustStock(ctx, tenantID, purchase.Items[j].ProductID, purchase.Items[j].Qty)
			}
			return err
		}
	}
	return s.purchaseRepo.DeleteWithItems(ctx, tenantID, id)
}
