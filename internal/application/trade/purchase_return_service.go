package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	ledgerapp "github.com/retailbooks/backend/internal/application/ledger"
	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/partner"
	"github.com/retailbooks/backend/internal/domain/sequence"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/trade"
)

// PurchaseReturnService records goods returned to suppliers
type PurchaseReturnService struct {
	returnRepo   trade.PurchaseReturnRepository
	productRepo  catalog.ProductRepository
	supplierRepo partner.SupplierRepository
	ledgerSvc    *ledgerapp.Service
	sequencer    sequence.Sequencer
}

// NewPurchaseReturnService creates a new PurchaseReturnService
func NewPurchaseReturnService(
	returnRepo trade.PurchaseReturnRepository,
	productRepo catalog.ProductRepository,
	supplierRepo partner.SupplierRepository,
	ledgerSvc *ledgerapp.Service,
	sequencer sequence.Sequencer,
) *PurchaseReturnService {
	return &PurchaseReturnService{
		returnRepo:   returnRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		ledgerSvc:    ledgerSvc,
		sequencer:    sequencer,
	}
}

// Create records a purchase return: stock goes back out through the guarded
// decrement and the supplier is debited with the returned value
func (s *PurchaseReturnService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePurchaseReturnRequest) (*PurchaseReturnResponse, error) {
	supplier, err := s.supplierRepo.FindByRef(ctx, tenantID, req.SupplierRef)
	if err != nil {
		return nil, err
	}

	var items []trade.PurchaseReturnItem
	err = buildTradeItems(ctx, s.productRepo, tenantID, req.Items, func(productID uuid.UUID, qty int64, r TradeItemRequest) error {
		item, err := trade.NewPurchaseReturnItem(productID, qty, r.Rate)
		if err != nil {
			return err
		}
		items = append(items, *item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	returnID, err := s.sequencer.Next(ctx, tenantID, sequence.KindPurchaseReturn)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	ret, err := trade.NewPurchaseReturn(tenantID, returnID, supplier.ID, supplier.Name, date, items)
	if err != nil {
		return nil, err
	}
	if req.Reason != "" {
		ret.SetReason(req.Reason)
	}

	for i := range ret.Items {
		it := &ret.Items[i]
		if err := s.productRepo.AdjustStock(ctx, tenantID, it.ProductID, -it.Qty); err != nil {
			for j := 0; j < i; j++ {
				_ = s.productRepo.AdjustStock(ctx, tenantID, ret.Items[j].ProductID, ret.Items[j].Qty)
			}
			return nil, err
		}
	}

	if err := s.returnRepo.Save(ctx, ret); err != nil {
		for i := range ret.Items {
			_ = s.productRepo.AdjustStock(ctx, tenantID, ret.Items[i].ProductID, ret.Items[i].Qty)
		}
		return nil, err
	}

	_, err = s.ledgerSvc.Record(ctx, tenantID, ledgerapp.RecordEntryRequest{
		PartyType:    string(ledger.PartyTypeSupplier),
		PartyCode:    supplier.Code,
		PartyName:    supplier.Name,
		MobileNumber: supplier.Phone,
		Type:         string(ledger.EntryTypePurReturn),
		ReferenceNo:  ret.ReturnID,
		Debit:        ret.TotalAmount,
		Date:         &ret.Date,
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseReturnResponse(ret), nil
}

// GetByRef resolves a purchase return by id or return number
func (s *PurchaseReturnService) GetByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*PurchaseReturnResponse, error) {
	if id, err := uuid.Parse(ref); err == nil {
		ret, err := s.returnRepo.FindByIDForTenant(ctx, tenantID, id)
		if err == nil {
			return toPurchaseReturnResponse(ret), nil
		}
		if err != shared.ErrNotFound {
			return nil, err
		}
	}
	ret, err := s.returnRepo.FindByReturnID(ctx, tenantID, ref)
	if err != nil {
		return nil, err
	}
	return toPurchaseReturnResponse(ret), nil
}

// List returns purchase returns for the tenant
func (s *PurchaseReturnService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseReturnResponse, error) {
	rets, err := s.returnRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]PurchaseReturnResponse, 0, len(rets))
	for i := range rets {
		out = append(out, *toPurchaseReturnResponse(&rets[i]))
	}
	return out, nil
}

// Delete removes the return and brings its stock back in
func (s *PurchaseReturnService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	ret, err := s.returnRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	for i := range ret.Items {
		_ = s.productRepo.AdjustStock(ctx, tenantID, ret.Items[i].ProductID, ret.Items[i].Qty)
	}
	return s.returnRepo.DeleteWithItems(ctx, tenantID, id)
}
