package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	ledgerapp "github.com/retailbooks/backend/internal/application/ledger"
	"github.com/retailbooks/backend/internal/domain/billing"
	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/partner"
	"github.com/retailbooks/backend/internal/domain/sequence"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/trade"
)

// SaleReturnService records goods taken back from customers against a bill
type SaleReturnService struct {
	returnRepo   trade.SaleReturnRepository
	billRepo     billing.BillRepository
	productRepo  catalog.ProductRepository
	customerRepo partner.CustomerRepository
	ledgerSvc    *ledgerapp.Service
	sequencer    sequence.Sequencer
}

// NewSaleReturnService creates a new SaleReturnService
func NewSaleReturnService(
	returnRepo trade.SaleReturnRepository,
	billRepo billing.BillRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	ledgerSvc *ledgerapp.Service,
	sequencer sequence.Sequencer,
) *SaleReturnService {
	return &SaleReturnService{
		returnRepo:   returnRepo,
		billRepo:     billRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		ledgerSvc:    ledgerSvc,
		sequencer:    sequencer,
	}
}

func (s *SaleReturnService) resolveBill(ctx context.Context, tenantID uuid.UUID, ref string) (*billing.Bill, error) {
	if id, err := uuid.Parse(ref); err == nil {
		bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, id)
		if err == nil {
			return bill, nil
		}
		if err != shared.ErrNotFound {
			return nil, err
		}
	}
	return s.billRepo.FindByBillNo(ctx, tenantID, ref)
}

// Create records a sale return against a bill: returned goods come back
// into stock and the bill's customer is credited with the returned value
func (s *SaleReturnService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSaleReturnRequest) (*SaleReturnResponse, error) {
	bill, err := s.resolveBill(ctx, tenantID, req.BillRef)
	if err != nil {
		return nil, err
	}

	var items []trade.SaleReturnItem
	err = buildTradeItems(ctx, s.productRepo, tenantID, req.Items, func(productID uuid.UUID, qty int64, r TradeItemRequest) error {
		item, err := trade.NewSaleReturnItem(productID, qty, r.Rate)
		if err != nil {
			return err
		}
		items = append(items, *item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	returnID, err := s.sequencer.Next(ctx, tenantID, sequence.KindSaleReturn)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	ret, err := trade.NewSaleReturn(tenantID, returnID, bill.ID, bill.BillNo, date, items)
	if err != nil {
		return nil, err
	}
	if req.Reason != "" {
		ret.SetReason(req.Reason)
	}

	var customer *partner.Customer
	if bill.CustomerID != nil {
		customer, err = s.customerRepo.FindByIDForTenant(ctx, tenantID, *bill.CustomerID)
		if err != nil && err != shared.ErrNotFound {
			return nil, err
		}
		if customer != nil {
			ret.SetCustomer(customer.ID, customer.DisplayName())
		}
	}

	for i := range ret.Items {
		_ = s.productRepo.AdjustStock(ctx, tenantID, ret.Items[i].ProductID, ret.Items[i].Qty)
	}

	if err := s.returnRepo.Save(ctx, ret); err != nil {
		for i := range ret.Items {
			_ = s.productRepo.AdjustStock(ctx, tenantID, ret.Items[i].ProductID, -ret.Items[i].Qty)
		}
		return nil, err
	}

	if customer != nil {
		_, err = s.ledgerSvc.Record(ctx, tenantID, ledgerapp.RecordEntryRequest{
			PartyType:    string(ledger.PartyTypeCustomer),
			PartyCode:    customer.Code,
			PartyName:    customer.DisplayName(),
			MobileNumber: customer.Phone,
			Type:         string(ledger.EntryTypeSaleReturn),
			ReferenceNo:  ret.ReturnID,
			Credit:       ret.TotalAmount,
			Date:         &ret.Date,
		})
		if err != nil {
			return nil, err
		}
	}
	return toSaleReturnResponse(ret), nil
}

// UpdateStatus moves a sale return through review
func (s *SaleReturnService) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, req UpdateSaleReturnStatusRequest) (*SaleReturnResponse, error) {
	ret, err := s.returnRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := ret.UpdateStatus(trade.SaleReturnStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.returnRepo.Save(ctx, ret); err != nil {
		return nil, err
	}
	return toSaleReturnResponse(ret), nil
}

// GetByRef resolves a sale return by id or return number
func (s *SaleReturnService) GetByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*SaleReturnResponse, error) {
	if id, err := uuid.Parse(ref); err == nil {
		ret, err := s.returnRepo.FindByIDForTenant(ctx, tenantID, id)
		if err == nil {
			return toSaleReturnResponse(ret), nil
		}
		if err != shared.ErrNotFound {
			return nil, err
		}
	}
	ret, err := s.returnRepo.FindByReturnID(ctx, tenantID, ref)
	if err != nil {
		return nil, err
	}
	return toSaleReturnResponse(ret), nil
}

// List returns sale returns for the tenant
func (s *SaleReturnService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SaleReturnResponse, error) {
	rets, err := s.returnRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]SaleReturnResponse, 0, len(rets))
	for i := range rets {
		out = append(out, *toSaleReturnResponse(&rets[i]))
	}
	return out, nil
}

// Delete removes the sale return and takes the restocked goods back out
// through the guarded decrement
func (s *SaleReturnService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	ret, err := s.returnRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	for i := range ret.Items {
		it := &ret.Items[i]
		if err := s.productRepo.AdjustStock(ctx, tenantID, it.ProductID, -it.Qty); err != nil {
			for j := 0; j < i; j++ {
				_ = s.productRepo.AdjustStock(ctx, tenantID, ret.Items[j].ProductID, ret.Items[j].Qty)
			}
			return err
		}
	}
	return s.returnRepo.DeleteWithItems(ctx, tenantID, id)
}
