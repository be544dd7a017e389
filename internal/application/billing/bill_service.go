// Package billing implements the GST bill application service.
package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ledgerapp "github.com/retailbooks/backend/internal/application/ledger"
	partnerapp "github.com/retailbooks/backend/internal/application/partner"
	"github.com/retailbooks/backend/internal/domain/billing"
	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/sequence"
	"github.com/retailbooks/backend/internal/domain/shared"
)

// BillService handles bill creation, mutation, and queries.
//
// Stock moves through the product repository's guarded atomic adjustment;
// a failed decrement aborts the whole operation and re-credits whatever was
// already taken. Ledger postings are append-only: bill updates and deletes
// never rewrite ledger history.
type BillService struct {
	billRepo    billing.BillRepository
	productRepo catalog.ProductRepository
	customers   *partnerapp.CustomerService
	ledgerSvc   *ledgerapp.Service
	sequencer   sequence.Sequencer
}

// NewBillService creates a new BillService
func NewBillService(
	billRepo billing.BillRepository,
	productRepo catalog.ProductRepository,
	customers *partnerapp.CustomerService,
	ledgerSvc *ledgerapp.Service,
	sequencer sequence.Sequencer,
) *BillService {
	return &BillService{
		billRepo:    billRepo,
		productRepo: productRepo,
		customers:   customers,
		ledgerSvc:   ledgerSvc,
		sequencer:   sequencer,
	}
}

// stockUnits converts a billed quantity plus free quantity into whole stock
// units, rounding fractional quantities up
func stockUnits(qty, freeQty decimal.Decimal) int64 {
	return qty.Add(freeQty).Ceil().IntPart()
}

type preparedLine struct {
	item  billing.LineItem
	units int64
}

// prepareLines resolves each requested line against the catalog, applying
// product fallbacks for rate, discount, and GST
func (s *BillService) prepareLines(ctx context.Context, tenantID uuid.UUID, items []BillItemRequest) ([]preparedLine, error) {
	prepared := make([]preparedLine, 0, len(items))
	for _, req := range items {
		product, err := s.productRepo.FindByRef(ctx, tenantID, req.ProductRef)
		if err != nil {
			return nil, err
		}

		rate := product.MRP
		if req.Rate != nil {
			rate = *req.Rate
		}
		discount := product.DiscountPercent
		if req.DiscountPercent != nil {
			discount = *req.DiscountPercent
		}
		gst := product.GSTPercent
		if req.GSTPercent != nil {
			gst = *req.GSTPercent
		}

		line, err := billing.NewLineItem(product.ID, product.ItemCode, product.Name, req.Qty, rate, discount, gst)
		if err != nil {
			return nil, err
		}
		line.SetProductDetails(product.BrandName, product.HSNCode, product.PackSize, req.Batch, product.MRP)
		line.FreeQty = req.FreeQty

		prepared = append(prepared, preparedLine{item: *line, units: stockUnits(req.Qty, req.FreeQty)})
	}
	return prepared, nil
}

// consumeStock decrements stock for every prepared line. On any failure the
// decrements already applied are re-credited before returning.
func (s *BillService) consumeStock(ctx context.Context, tenantID uuid.UUID, lines []preparedLine) error {
	for i, line := range lines {
		if line.units == 0 {
			continue
		}
		if err := s.productRepo.AdjustStock(ctx, tenantID, line.item.ProductID, -line.units); err != nil {
			for j := 0; j < i; j++ {
				if lines[j].units == 0 {
					continue
				}
				_ = s.productRepo.AdjustStock(ctx, tenantID, lines[j].item.ProductID, lines[j].units)
			}
			return err
		}
	}
	return nil
}

// restoreStock re-credits stock for every prepared line
func (s *BillService) restoreStock(ctx context.Context, tenantID uuid.UUID, lines []preparedLine) {
	for _, line := range lines {
		if line.units == 0 {
			continue
		}
		_ = s.productRepo.AdjustStock(ctx, tenantID, line.item.ProductID, line.units)
	}
}

func (s *BillService) resolveCustomer(ctx context.Context, tenantID uuid.UUID, req CreateBillRequest) (*partnerapp.CustomerResponse, error) {
	ref := req.CustomerRef
	// Clients send "null"/"undefined" for walk-in sales; codes and phone
	// numbers fail UUID parsing and pass through untouched.
	if id, err := shared.ParseOptionalID(ref); err == nil && id == nil {
		ref = ""
	}
	if ref != "" {
		return s.customers.GetByRef(ctx, tenantID, ref)
	}
	if req.CustomerPhone != "" {
		return s.customers.FindOrCreateByPhone(ctx, tenantID, req.CustomerPhone, req.CustomerName)
	}
	return nil, nil
}

// Create builds a bill from the request, consuming stock and allocating the
// next bill number. For credit customers the sale is posted to the ledger;
// draft bills post nothing.
func (s *BillService) Create(ctx context.Context, tenantID uuid.UUID, req CreateBillRequest) (*BillResponse, error) {
	customer, err := s.resolveCustomer(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	lines, err := s.prepareLines(ctx, tenantID, req.Items)
	if err != nil {
		return nil, err
	}
	if err := s.consumeStock(ctx, tenantID, lines); err != nil {
		return nil, err
	}

	billDate := time.Now()
	if req.BillDate != nil {
		billDate = *req.BillDate
	}

	bill, err := s.saveNewBill(ctx, tenantID, billDate, customer, lines, req)
	if err != nil {
		s.restoreStock(ctx, tenantID, lines)
		return nil, err
	}

	if customer != nil && !bill.IsDraft() {
		if err := s.postSale(ctx, tenantID, customer, bill); err != nil {
			return nil, err
		}
	}
	return toBillResponse(bill), nil
}

// saveNewBill allocates a bill number and persists the bill. A duplicate
// number from a concurrent allocation is retried once with a fresh number.
func (s *BillService) saveNewBill(
	ctx context.Context,
	tenantID uuid.UUID,
	billDate time.Time,
	customer *partnerapp.CustomerResponse,
	lines []preparedLine,
	req CreateBillRequest,
) (*billing.Bill, error) {
	for attempt := 0; attempt < 2; attempt++ {
		billNo, err := s.sequencer.Next(ctx, tenantID, sequence.KindBill)
		if err != nil {
			return nil, err
		}
		bill, err := billing.NewBill(tenantID, billNo, billDate)
		if err != nil {
			return nil, err
		}
		if customer != nil {
			bill.SetCustomer(customer.ID)
		}
		bill.SetPayment(req.PaymentMode, req.Notes)

		items := make([]billing.LineItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, line.item)
		}
		if err := bill.ReplaceItems(items, req.RoundOff, req.PaidAmount, billing.PaymentStatus(req.PaymentStatus)); err != nil {
			return nil, err
		}

		err = s.billRepo.Save(ctx, bill)
		if err == nil {
			return bill, nil
		}
		if de := shared.IsDomainError(err); de == nil || de.Code != "ALREADY_EXISTS" || attempt == 1 {
			return nil, err
		}
	}
	return nil, shared.ErrConcurrencyConflict
}

func (s *BillService) postSale(ctx context.Context, tenantID uuid.UUID, customer *partnerapp.CustomerResponse, bill *billing.Bill) error {
	method := bill.PaymentMode
	_, err := s.ledgerSvc.Record(ctx, tenantID, ledgerapp.RecordEntryRequest{
		PartyType:     string(ledger.PartyTypeCustomer),
		PartyCode:     customer.Code,
		PartyName:     customer.DisplayName,
		MobileNumber:  customer.Phone,
		Type:          string(ledger.EntryTypeSale),
		ReferenceNo:   bill.BillNo,
		PaymentMethod: method,
		Debit:         bill.NetAmount,
		Credit:        bill.PaidAmount,
		Date:          &bill.BillDate,
	})
	return err
}

// Update replaces the bill's lines in full, applying only the net stock
// difference per product
func (s *BillService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateBillRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	oldUnits := make(map[uuid.UUID]int64, len(bill.Items))
	for i := range bill.Items {
		it := &bill.Items[i]
		oldUnits[it.ProductID] += stockUnits(it.Qty, it.FreeQty)
	}

	lines, err := s.prepareLines(ctx, tenantID, req.Items)
	if err != nil {
		return nil, err
	}
	newUnits := make(map[uuid.UUID]int64, len(lines))
	for _, line := range lines {
		newUnits[line.item.ProductID] += line.units
	}

	if err := s.applyStockDelta(ctx, tenantID, oldUnits, newUnits); err != nil {
		return nil, err
	}

	if req.BillDate != nil {
		bill.BillDate = *req.BillDate
	}
	bill.SetPayment(req.PaymentMode, req.Notes)
	items := make([]billing.LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, line.item)
	}
	if err := bill.ReplaceItems(items, req.RoundOff, req.PaidAmount, billing.PaymentStatus(req.PaymentStatus)); err != nil {
		s.applyStockDeltaBestEffort(ctx, tenantID, newUnits, oldUnits)
		return nil, err
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		s.applyStockDeltaBestEffort(ctx, tenantID, newUnits, oldUnits)
		return nil, err
	}
	return toBillResponse(bill), nil
}

// applyStockDelta moves stock from the old line quantities to the new ones.
// Increments are applied first so a shrinking line can never fail, then the
// guarded decrements; a failed decrement reverses everything applied so far.
func (s *BillService) applyStockDelta(ctx context.Context, tenantID uuid.UUID, oldUnits, newUnits map[uuid.UUID]int64) error {
	type step struct {
		productID uuid.UUID
		delta     int64
	}
	var increments, decrements []step
	seen := make(map[uuid.UUID]bool)
	for productID, n := range newUnits {
		seen[productID] = true
		delta := oldUnits[productID] - n
		if delta > 0 {
			increments = append(increments, step{productID, delta})
		} else if delta < 0 {
			decrements = append(decrements, step{productID, delta})
		}
	}
	for productID, o := range oldUnits {
		if !seen[productID] && o > 0 {
			increments = append(increments, step{productID, o})
		}
	}

	var applied []step
	for _, st := range append(increments, decrements...) {
		if err := s.productRepo.AdjustStock(ctx, tenantID, st.productID, st.delta); err != nil {
			for _, done := range applied {
				_ = s.productRepo.AdjustStock(ctx, tenantID, done.productID, -done.delta)
			}
			return err
		}
		applied = append(applied, st)
	}
	return nil
}

func (s *BillService) applyStockDeltaBestEffort(ctx context.Context, tenantID uuid.UUID, oldUnits, newUnits map[uuid.UUID]int64) {
	_ = s.applyStockDelta(ctx, tenantID, oldUnits, newUnits)
}

// Delete removes the bill and restores the stock it consumed. Ledger
// history stays untouched.
func (s *BillService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	for i := range bill.Items {
		it := &bill.Items[i]
		units := stockUnits(it.Qty, it.FreeQty)
		if units > 0 {
			_ = s.productRepo.AdjustStock(ctx, tenantID, it.ProductID, units)
		}
	}
	return s.billRepo.DeleteWithItems(ctx, tenantID, id)
}

// GetByRef resolves a bill by id or bill number
func (s *BillService) GetByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*BillResponse, error) {
	if id, err := uuid.Parse(ref); err == nil {
		bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, id)
		if err == nil {
			return toBillResponse(bill), nil
		}
		if err != shared.ErrNotFound {
			return nil, err
		}
	}
	bill, err := s.billRepo.FindByBillNo(ctx, tenantID, ref)
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// List returns bills for the tenant
func (s *BillService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]BillResponse, error) {
	bills, err := s.billRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	return toBillResponses(bills), nil
}

// ListByDateRange returns bills whose bill date falls inside the validated
// range
func (s *BillService) ListByDateRange(ctx context.Context, tenantID uuid.UUID, req DateRangeRequest) ([]BillResponse, error) {
	if err := shared.ValidateDateRange(req.From, req.To); err != nil {
		return nil, err
	}
	from := time.Time{}
	to := time.Now()
	if req.From != nil {
		from = *req.From
	}
	if req.To != nil {
		to = endOfDay(*req.To)
	}
	bills, err := s.billRepo.FindByDateRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	return toBillResponses(bills), nil
}

// ListOutstanding returns unpaid and partially paid bills
func (s *BillService) ListOutstanding(ctx context.Context, tenantID uuid.UUID) ([]BillResponse, error) {
	bills, err := s.billRepo.FindByStatuses(ctx, tenantID, []billing.PaymentStatus{
		billing.PaymentStatusUnpaid,
		billing.PaymentStatusPartial,
	})
	if err != nil {
		return nil, err
	}
	return toBillResponses(bills), nil
}

// ListByCustomer returns a customer's bills
func (s *BillService) ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]BillResponse, error) {
	bills, err := s.billRepo.FindByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	return toBillResponses(bills), nil
}

func toBillResponses(bills []billing.Bill) []BillResponse {
	out := make([]BillResponse, 0, len(bills))
	for i := range bills {
		out = append(out, *toBillResponse(&bills[i]))
	}
	return out
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
